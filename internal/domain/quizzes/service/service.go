package service

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	"github.com/Kritika122297/QuizMaster/internal/storage"
)

// Вкладки дашборда: все доступные квизы и квизы текущего пользователя.
const (
	TabAll  = "all"
	TabMine = "mine"
)

// QuizService — операции управления квизами поверх API: списки, создание,
// редактирование, удаление. Результаты не кешируются: после каждой мутации
// список запрашивается заново, сервер — единственный источник истины.
type QuizService struct {
	api   *api.Client
	store storage.Store
}

// NewQuizService создает новый QuizService.
func NewQuizService(apiClient *api.Client, store storage.Store) *QuizService {
	return &QuizService{api: apiClient, store: store}
}

// List возвращает квизы выбранной вкладки. Без токена доступны только
// публичные квизы независимо от вкладки.
func (s *QuizService) List(ctx context.Context, token, tab string) ([]model.Quiz, error) {
	var (
		quizzes []model.Quiz
		err     error
	)
	switch {
	case token == "":
		quizzes, err = s.api.PublicQuizzes(ctx)
	case tab == TabMine:
		quizzes, err = s.api.MyQuizzes(ctx, token)
	default:
		quizzes, err = s.api.AllQuizzes(ctx, token)
	}
	if err != nil {
		return nil, fmt.Errorf("quizzes: не удалось получить список: %w", err)
	}
	// Порядок ответа сервера не специфицирован; сортировка по названию
	// делает пагинацию в чате стабильной между запросами.
	sort.SliceStable(quizzes, func(i, j int) bool {
		return quizzes[i].Title < quizzes[j].Title
	})
	return quizzes, nil
}

// Get возвращает квиз с вопросами по его ID.
func (s *QuizService) Get(ctx context.Context, token, quizID string) (*model.Quiz, error) {
	quiz, err := s.api.GetQuiz(ctx, token, quizID)
	if err != nil {
		return nil, fmt.Errorf("quizzes: не удалось получить квиз %s: %w", quizID, err)
	}
	return quiz, nil
}

// CreateFromDraft собирает multipart-форму из накопленного черновика и файла
// с вопросами и отправляет ее на сервер. Черновик пользователя очищается
// только при успехе: при ошибке валидации можно прислать другой файл.
func (s *QuizService) CreateFromDraft(ctx context.Context, userID int64, token string, draft storage.QuizDraft, fileName string, file io.Reader) (*model.Quiz, error) {
	quiz, err := s.api.CreateQuiz(ctx, token, api.CreateQuizForm{
		Title:       draft.Title,
		Description: draft.Description,
		TotalMarks:  draft.TotalMarks,
		TimeLimit:   draft.TimeLimit,
		FileName:    fileName,
		File:        file,
	})
	if err != nil {
		return nil, err
	}
	if err := s.clearDraft(ctx, userID); err != nil {
		return quiz, err
	}
	return quiz, nil
}

// Rename обновляет название и описание квиза.
func (s *QuizService) Rename(ctx context.Context, token, quizID, title, description string) error {
	upd := api.UpdateQuizRequest{}
	if title != "" {
		upd.Title = &title
	}
	if description != "" {
		upd.Description = &description
	}
	if err := s.api.UpdateQuiz(ctx, token, quizID, upd); err != nil {
		return fmt.Errorf("quizzes: не удалось обновить квиз %s: %w", quizID, err)
	}
	return nil
}

// SetVisibility переключает публичность квиза.
func (s *QuizService) SetVisibility(ctx context.Context, token, quizID string, isPublic bool) error {
	upd := api.UpdateQuizRequest{IsPublic: &isPublic}
	if err := s.api.UpdateQuiz(ctx, token, quizID, upd); err != nil {
		return fmt.Errorf("quizzes: не удалось изменить видимость квиза %s: %w", quizID, err)
	}
	return nil
}

// Delete удаляет квиз. Вызывается только после явного подтверждения
// пользователем в чате.
func (s *QuizService) Delete(ctx context.Context, token, quizID string) error {
	if err := s.api.DeleteQuiz(ctx, token, quizID); err != nil {
		return fmt.Errorf("quizzes: не удалось удалить квиз %s: %w", quizID, err)
	}
	return nil
}

// DeleteQuestion удаляет отдельный вопрос квиза.
func (s *QuizService) DeleteQuestion(ctx context.Context, token, questionID string) error {
	if err := s.api.DeleteQuestion(ctx, token, questionID); err != nil {
		return fmt.Errorf("quizzes: не удалось удалить вопрос %s: %w", questionID, err)
	}
	return nil
}

func (s *QuizService) clearDraft(ctx context.Context, userID int64) error {
	state, _, err := s.store.GetState(ctx, userID)
	if err != nil {
		return fmt.Errorf("quizzes: не удалось прочитать состояние: %w", err)
	}
	state.Draft = nil
	state.UIState = model.UIStateNone
	if err := s.store.SetState(ctx, userID, state); err != nil {
		return fmt.Errorf("quizzes: не удалось сохранить состояние: %w", err)
	}
	return nil
}
