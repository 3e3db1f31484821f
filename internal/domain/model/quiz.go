package model

// Question — вопрос квиза с вариантами ответа.
// Правильный ответ на клиент никогда не приходит: проверка выполняется на сервере.
type Question struct {
	ID      string   `json:"_id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Quiz — метаданные квиза вместе с вопросами, как их отдает API.
// TimeLimit задается в минутах; ноль означает отсутствие ограничения по времени.
type Quiz struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TotalMarks  int        `json:"totalMarks"`
	TimeLimit   int        `json:"timeLimit,omitempty"`
	IsPublic    bool       `json:"isPublic"`
	Questions   []Question `json:"questions,omitempty"`
}

// ReviewItem — элемент разбора ответов, который сервер возвращает после сдачи квиза.
type ReviewItem struct {
	QuestionID     string `json:"questionId"`
	QuestionText   string `json:"questionText"`
	SelectedAnswer string `json:"selectedAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

// AttemptResult — итог сдачи квиза: набранный балл и разбор по вопросам.
type AttemptResult struct {
	Score  int          `json:"score"`
	Review []ReviewItem `json:"review"`
}
