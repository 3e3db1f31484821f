package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired проверяет claim exp токена без проверки подписи.
// Подпись клиент проверить не может (секрет знает только сервер), но истекший
// exp позволяет не делать заведомо провальный запрос. Если токен не является
// JWT или exp отсутствует, решение остается за сервером.
func tokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
