package quiz_link_handler

// QuizLinkRequest структура для данных запроса.
type QuizLinkRequest struct {
	QuizID string `json:"quiz_id"`
}

// QuizLinkResponse структура для ответа.
type QuizLinkResponse struct {
	Link      string `json:"link"`
	QRCodeURL string `json:"qr_code_url"`
}
