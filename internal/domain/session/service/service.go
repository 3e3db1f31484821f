package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	"github.com/Kritika122297/QuizMaster/internal/storage"
)

// ErrInvalidCredentials возвращается при неверном логине или пароле.
// Это не сбой: форма остается на месте, пользователь может попробовать снова.
var ErrInvalidCredentials = errors.New("session: неверные учетные данные")

// Listener уведомляется о каждом изменении сессии пользователя.
type Listener func(userID int64, session model.Session)

// SessionService владеет сессией {пользователь, токен} каждого Telegram-пользователя.
// Токен и данные пользователя сохраняются в локальном хранилище; все изменения
// проходят через этот сервис и рассылаются подписчикам — окружающего
// глобального состояния нет.
type SessionService struct {
	api   *api.Client
	store storage.Store

	mu        sync.RWMutex
	listeners []Listener
}

// NewSessionService создает новый SessionService.
func NewSessionService(apiClient *api.Client, store storage.Store) *SessionService {
	return &SessionService{api: apiClient, store: store}
}

// Subscribe регистрирует подписчика на изменения сессий.
func (s *SessionService) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *SessionService) notify(userID int64, session model.Session) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(userID, session)
	}
}

// Session возвращает текущую сессию пользователя (пустую, если ее нет).
func (s *SessionService) Session(ctx context.Context, userID int64) (model.Session, error) {
	state, ok, err := s.store.GetState(ctx, userID)
	if err != nil {
		return model.Session{}, fmt.Errorf("session: не удалось прочитать состояние: %w", err)
	}
	if !ok {
		return model.Session{}, nil
	}
	return state.Session, nil
}

// updateSession изменяет сессию пользователя, сохраняя остальное состояние
// диалога (UIState, черновик) нетронутым, и уведомляет подписчиков.
func (s *SessionService) updateSession(ctx context.Context, userID int64, mutate func(*model.Session)) error {
	state, _, err := s.store.GetState(ctx, userID)
	if err != nil {
		return fmt.Errorf("session: не удалось прочитать состояние: %w", err)
	}
	mutate(&state.Session)
	if err := s.store.SetState(ctx, userID, state); err != nil {
		return fmt.Errorf("session: не удалось сохранить состояние: %w", err)
	}
	s.notify(userID, state.Session)
	return nil
}

// Login отправляет учетные данные на сервер. При успехе сохраняет токен и
// подтягивает данные пользователя запросом «кто я». Неверные учетные данные —
// это ErrInvalidCredentials, а не сбой; сессия при этом остается пустой.
func (s *SessionService) Login(ctx context.Context, userID int64, email, password string) (model.Session, error) {
	token, user, err := s.api.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) || api.IsValidation(err) {
			return model.Session{}, ErrInvalidCredentials
		}
		return model.Session{}, fmt.Errorf("session: вход не выполнен: %w", err)
	}

	// Сначала сохраняем токен, затем подтверждаем сессию запросом /auth/user —
	// в том же порядке, в котором это делает веб-клиент.
	if err := s.updateSession(ctx, userID, func(sess *model.Session) {
		sess.Token = token
		sess.User = user
	}); err != nil {
		return model.Session{}, err
	}

	fetched, err := s.FetchCurrentUser(ctx, userID)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: token, User: fetched}, nil
}

// Signup регистрирует пользователя; постусловия те же, что у Login.
func (s *SessionService) Signup(ctx context.Context, userID int64, username, email, password string) (model.Session, error) {
	token, user, err := s.api.Signup(ctx, api.SignupForm{Username: username, Email: email, Password: password})
	if err != nil {
		if api.IsValidation(err) {
			return model.Session{}, err
		}
		return model.Session{}, fmt.Errorf("session: регистрация не выполнена: %w", err)
	}
	if err := s.updateSession(ctx, userID, func(sess *model.Session) {
		sess.Token = token
		sess.User = user
	}); err != nil {
		return model.Session{}, err
	}
	fetched, err := s.FetchCurrentUser(ctx, userID)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: token, User: fetched}, nil
}

// FetchCurrentUser запрашивает «кто я» по сохраненному токену.
// 401 очищает и токен, и пользователя; любая другая ошибка очищает только
// пользователя, оставляя токен (временный сбой не должен разлогинивать).
func (s *SessionService) FetchCurrentUser(ctx context.Context, userID int64) (*model.UserSummary, error) {
	session, err := s.Session(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Token == "" {
		return nil, nil
	}

	// Если срок действия токена истек по его собственному exp, не ходим на
	// сервер: результат известен заранее. Авторитетная проверка остается за API.
	if tokenExpired(session.Token) {
		if err := s.updateSession(ctx, userID, func(sess *model.Session) {
			sess.Token = ""
			sess.User = nil
		}); err != nil {
			return nil, err
		}
		return nil, nil
	}

	user, err := s.api.CurrentUser(ctx, session.Token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			if updErr := s.updateSession(ctx, userID, func(sess *model.Session) {
				sess.Token = ""
				sess.User = nil
			}); updErr != nil {
				return nil, updErr
			}
			return nil, nil
		}
		if updErr := s.updateSession(ctx, userID, func(sess *model.Session) {
			sess.User = nil
		}); updErr != nil {
			return nil, updErr
		}
		return nil, fmt.Errorf("session: не удалось получить пользователя: %w", err)
	}

	if err := s.updateSession(ctx, userID, func(sess *model.Session) {
		sess.User = user
	}); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout безусловно очищает токен и пользователя. Инвалидация на сервере —
// best-effort: выполняется в фоне и не влияет на результат.
func (s *SessionService) Logout(ctx context.Context, userID int64) error {
	session, err := s.Session(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.updateSession(ctx, userID, func(sess *model.Session) {
		sess.Token = ""
		sess.User = nil
	}); err != nil {
		return err
	}

	if session.Token != "" {
		token := session.Token
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.api.Logout(ctx, token); err != nil {
				log.Printf("session: инвалидация токена на сервере не удалась: %v", err)
			}
		}()
	}
	return nil
}
