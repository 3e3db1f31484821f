package middleware

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/storage"
)

// DebugUserActions возвращает middleware, которое при включенном режиме
// отладки отправляет пользователю сообщение с его ID, состоянием диалога
// и описанием действия. Полезно при диагностике сценариев в разработке.
func DebugUserActions(enabled bool, store storage.Store) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			err := next(c)
			if enabled {
				user := c.Sender()
				uiState, authenticated := "", false
				if store != nil {
					if state, ok, stErr := store.GetState(context.Background(), user.ID); stErr == nil && ok {
						uiState = state.UIState
						authenticated = state.Session.Authenticated()
					}
				}
				var action string
				if msg := c.Message(); msg != nil {
					action = "Message: " + msg.Text
				} else if cb := c.Callback(); cb != nil {
					action = "Callback: " + cb.Data
				} else {
					action = "Unknown action"
				}
				debugMsg := fmt.Sprintf("DEBUG: User: %s (ID: %d), Auth: %t, State: %s, Action: %s",
					user.FirstName, user.ID, authenticated, uiState, action)
				go c.Bot().Send(user, debugMsg)
			}
			return err
		}
	}
}
