package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	"github.com/Kritika122297/QuizMaster/internal/storage"
)

// Статусы попытки. Переходы: loading -> active -> submitting -> completed.
// Неуспешная сдача возвращает попытку из submitting в active для повтора.
const (
	StatusLoading    = "loading"
	StatusActive     = "active"
	StatusSubmitting = "submitting"
	StatusCompleted  = "completed"
)

// ErrNoAttempt возвращается, когда у пользователя нет активной попытки.
var ErrNoAttempt = errors.New("attempt: активная попытка не найдена")

// ErrAlreadySubmitted возвращается при повторной сдаче: попытка уже отправлена
// или завершена. Вызывающие трактуют это как no-op (гарантия «не более одной сдачи»).
var ErrAlreadySubmitted = errors.New("attempt: попытка уже отправлена")

// Attempt — одна попытка прохождения квиза. Все поля защищены mu:
// к попытке одновременно обращаются обработчики бота и горутина таймера.
type Attempt struct {
	mu sync.Mutex

	id        string
	userID    int64
	token     string
	quiz      *model.Quiz
	questions []model.Question // Перемешанный порядок, фиксируется при загрузке.
	answers   map[string]string
	current   int
	deadline  time.Time // Нулевое значение — квиз без ограничения по времени.
	status    string
	result    *model.AttemptResult

	// ID сообщений бота: вопрос и таймер. Нужны для редактирования и удаления.
	questionMessageID int
	timerMessageID    int

	// Контекст живет столько же, сколько «экран» попытки: его отмена
	// останавливает таймер и обрывает незавершенные запросы, чтобы
	// устаревший ответ не трогал снятое состояние.
	ctx    context.Context
	cancel context.CancelFunc
}

// ID возвращает идентификатор попытки.
func (a *Attempt) ID() string { return a.id }

// UserID возвращает Telegram-ID владельца попытки.
func (a *Attempt) UserID() int64 { return a.userID }

// Quiz возвращает квиз попытки.
func (a *Attempt) Quiz() *model.Quiz { return a.quiz }

// Context возвращает контекст жизненного цикла попытки.
func (a *Attempt) Context() context.Context { return a.ctx }

// Status возвращает текущий статус попытки.
func (a *Attempt) Status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Result возвращает результат сдачи (nil до завершения).
func (a *Attempt) Result() *model.AttemptResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

// Current возвращает индекс текущего вопроса и сам вопрос.
func (a *Attempt) Current() (int, model.Question) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current, a.questions[a.current]
}

// Total возвращает количество вопросов.
func (a *Attempt) Total() int { return len(a.questions) }

// Questions возвращает вопросы в порядке показа.
func (a *Attempt) Questions() []model.Question { return a.questions }

// Answers возвращает копию карты ответов.
func (a *Attempt) Answers() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	answers := make(map[string]string, len(a.answers))
	for k, v := range a.answers {
		answers[k] = v
	}
	return answers
}

// SelectedOption возвращает сохраненный ответ на вопрос.
func (a *Attempt) SelectedOption(questionID string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	option, ok := a.answers[questionID]
	return option, ok
}

// HasDeadline сообщает, ограничена ли попытка по времени.
func (a *Attempt) HasDeadline() bool { return !a.deadline.IsZero() }

// Deadline возвращает момент истечения времени.
func (a *Attempt) Deadline() time.Time { return a.deadline }

// RemainingSeconds возвращает оставшееся время в секундах (не меньше нуля).
// Дедлайн привязан к настенным часам, поэтому значение монотонно не растет
// независимо от задержек планировщика.
func (a *Attempt) RemainingSeconds() int {
	if !a.HasDeadline() {
		return 0
	}
	remaining := time.Until(a.deadline)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Round(time.Second).Seconds())
}

// SetQuestionMessageID запоминает ID сообщения с текущим вопросом.
func (a *Attempt) SetQuestionMessageID(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.questionMessageID = id
}

// QuestionMessageID возвращает ID сообщения с текущим вопросом.
func (a *Attempt) QuestionMessageID() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.questionMessageID
}

// SetTimerMessageID запоминает ID сообщения с таймером.
func (a *Attempt) SetTimerMessageID(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timerMessageID = id
}

// TimerMessageID возвращает ID сообщения с таймером.
func (a *Attempt) TimerMessageID() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timerMessageID
}

// AttemptService управляет попытками прохождения: по одной активной на пользователя.
type AttemptService struct {
	api   *api.Client
	store storage.Store

	mu     sync.Mutex
	active map[int64]*Attempt
}

// NewAttemptService создает новый AttemptService.
func NewAttemptService(apiClient *api.Client, store storage.Store) *AttemptService {
	return &AttemptService{
		api:    apiClient,
		store:  store,
		active: make(map[int64]*Attempt),
	}
}

// Start загружает квиз и создает попытку (переход loading -> active).
// Порядок вопросов перемешивается один раз честной перестановкой; сохраненные
// ранее ответы восстанавливаются из локального хранилища, но номер вопроса и
// таймер начинаются заново — это принятое ограничение клиентского таймера.
func (s *AttemptService) Start(ctx context.Context, userID int64, token, quizID string) (*Attempt, error) {
	// Предыдущая попытка пользователя снимается вместе со своим таймером.
	s.Abort(userID)

	attemptCtx, cancel := context.WithCancel(context.Background())

	attempt := &Attempt{
		id:     uuid.New().String(),
		userID: userID,
		token:  token,
		status: StatusLoading,
		ctx:    attemptCtx,
		cancel: cancel,
	}

	quiz, err := s.api.GetQuiz(ctx, token, quizID)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("attempt: не удалось загрузить квиз: %w", err)
	}
	if quiz == nil || len(quiz.Questions) == 0 {
		cancel()
		return nil, fmt.Errorf("attempt: в квизе %s нет вопросов", quizID)
	}

	questions := make([]model.Question, len(quiz.Questions))
	copy(questions, quiz.Questions)
	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	answers := make(map[string]string)
	if saved, ok, err := s.store.GetAnswers(ctx, userID, quiz.ID); err == nil && ok {
		for questionID, option := range saved {
			answers[questionID] = option
		}
	}

	attempt.quiz = quiz
	attempt.questions = questions
	attempt.answers = answers
	if quiz.TimeLimit > 0 {
		attempt.deadline = time.Now().Add(time.Duration(quiz.TimeLimit) * time.Minute)
	}
	attempt.status = StatusActive

	s.mu.Lock()
	s.active[userID] = attempt
	s.mu.Unlock()

	return attempt, nil
}

// Get возвращает активную попытку пользователя.
func (s *AttemptService) Get(userID int64) (*Attempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempt, ok := s.active[userID]
	return attempt, ok
}

// Answer записывает выбранный вариант: последний выбор по вопросу побеждает.
// Каждое изменение немедленно сохраняется в локальное хранилище, чтобы
// перезапуск мог восстановить незавершенную попытку.
func (s *AttemptService) Answer(ctx context.Context, userID int64, questionID, option string) error {
	attempt, ok := s.Get(userID)
	if !ok {
		return ErrNoAttempt
	}

	attempt.mu.Lock()
	if attempt.status != StatusActive {
		attempt.mu.Unlock()
		return ErrNoAttempt
	}
	attempt.answers[questionID] = option
	snapshot := make(map[string]string, len(attempt.answers))
	for k, v := range attempt.answers {
		snapshot[k] = v
	}
	quizID := attempt.quiz.ID
	attempt.mu.Unlock()

	if err := s.store.SetAnswers(ctx, userID, quizID, snapshot); err != nil {
		return fmt.Errorf("attempt: не удалось сохранить ответы: %w", err)
	}
	return nil
}

// Next переводит попытку к следующему вопросу (не дальше последнего).
func (s *AttemptService) Next(userID int64) (int, error) {
	return s.move(userID, 1)
}

// Prev переводит попытку к предыдущему вопросу (не раньше первого).
func (s *AttemptService) Prev(userID int64) (int, error) {
	return s.move(userID, -1)
}

func (s *AttemptService) move(userID int64, delta int) (int, error) {
	attempt, ok := s.Get(userID)
	if !ok {
		return 0, ErrNoAttempt
	}
	attempt.mu.Lock()
	defer attempt.mu.Unlock()
	if attempt.status != StatusActive {
		return attempt.current, ErrNoAttempt
	}
	next := attempt.current + delta
	// Индекс всегда остается в пределах [0, len(questions)-1].
	if next < 0 {
		next = 0
	}
	if max := len(attempt.questions) - 1; next > max {
		next = max
	}
	attempt.current = next
	return next, nil
}

// Submit отправляет ответы на проверку. Переход в submitting выполняется под
// мьютексом попытки ровно один раз: повторные нажатия и сработавший таймер
// получают ErrAlreadySubmitted и ничего не делают. Неуспешная сдача возвращает
// попытку в active и позволяет повторить.
func (s *AttemptService) Submit(userID int64) (*model.AttemptResult, error) {
	attempt, ok := s.Get(userID)
	if !ok {
		return nil, ErrNoAttempt
	}

	attempt.mu.Lock()
	switch attempt.status {
	case StatusSubmitting, StatusCompleted:
		attempt.mu.Unlock()
		return nil, ErrAlreadySubmitted
	case StatusActive:
		// Продолжаем.
	default:
		attempt.mu.Unlock()
		return nil, ErrNoAttempt
	}
	attempt.status = StatusSubmitting
	answers := make(map[string]string, len(attempt.answers))
	for k, v := range attempt.answers {
		answers[k] = v
	}
	token := attempt.token
	quizID := attempt.quiz.ID
	attempt.mu.Unlock()

	// Запрос идет с контекстом попытки: снятие «экрана» обрывает его,
	// и устаревший ответ не доберется до состояния.
	result, err := s.api.SubmitAttempt(attempt.ctx, token, quizID, answers)
	if err != nil {
		attempt.mu.Lock()
		attempt.status = StatusActive
		attempt.mu.Unlock()
		return nil, fmt.Errorf("attempt: сдача не выполнена: %w", err)
	}

	attempt.mu.Lock()
	attempt.status = StatusCompleted
	attempt.result = result
	attempt.mu.Unlock()

	// Сервер уже засчитал попытку: несработавшая очистка локальных ответов
	// не должна выглядеть как неудачная сдача. Осиротевшая карта перезапишется
	// при следующем запуске этого квиза.
	if err := s.store.DeleteAnswers(context.Background(), userID, quizID); err != nil {
		log.Printf("attempt: не удалось очистить сохраненные ответы пользователя %d: %v", userID, err)
	}
	return result, nil
}

// Abort снимает попытку пользователя: отменяет ее контекст (таймер, запросы)
// и удаляет из реестра. Сохраненные ответы остаются для возобновления.
func (s *AttemptService) Abort(userID int64) {
	s.mu.Lock()
	attempt, ok := s.active[userID]
	if ok {
		delete(s.active, userID)
	}
	s.mu.Unlock()
	if ok {
		attempt.cancel()
	}
}

// Snapshot — срез состояния активной попытки для отчетов.
type Snapshot struct {
	UserID           int64  `json:"user_id"`
	QuizID           string `json:"quiz_id"`
	QuizTitle        string `json:"quiz_title"`
	QuestionIndex    int    `json:"question_index"`
	TotalQuestions   int    `json:"total_questions"`
	AnsweredCount    int    `json:"answered_count"`
	RemainingSeconds int    `json:"remaining_seconds"`
	Status           string `json:"status"`
}

// ActiveAttempts возвращает срезы всех текущих попыток.
func (s *AttemptService) ActiveAttempts() []Snapshot {
	s.mu.Lock()
	attempts := make([]*Attempt, 0, len(s.active))
	for _, attempt := range s.active {
		attempts = append(attempts, attempt)
	}
	s.mu.Unlock()

	snapshots := make([]Snapshot, 0, len(attempts))
	for _, attempt := range attempts {
		attempt.mu.Lock()
		snapshots = append(snapshots, Snapshot{
			UserID:           attempt.userID,
			QuizID:           attempt.quiz.ID,
			QuizTitle:        attempt.quiz.Title,
			QuestionIndex:    attempt.current,
			TotalQuestions:   len(attempt.questions),
			AnsweredCount:    len(attempt.answers),
			RemainingSeconds: attempt.RemainingSeconds(),
			Status:           attempt.status,
		})
		attempt.mu.Unlock()
	}
	return snapshots
}
