package middleware

import (
	tele "gopkg.in/telebot.v4"
)

// AutoRespond возвращает middleware, которое отвечает на каждый callback
// после его обработки, чтобы у пользователя не зависали «часики» на кнопке.
func AutoRespond() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Callback() != nil {
				defer c.Respond()
			}
			return next(c)
		}
	}
}
