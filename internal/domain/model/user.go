package model

// UserSummary представляет данные авторизованного пользователя платформы,
// которые возвращает API по эндпоинту /auth/user.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session — представление клиента о текущем авторизованном пользователе.
// Пустой токен означает отсутствие сессии. Поле User может отсутствовать
// даже при наличии токена (например, после временной ошибки /auth/user).
type Session struct {
	User  *UserSummary `json:"user,omitempty"`
	Token string       `json:"token,omitempty"`
}

// Authenticated сообщает, подтверждена ли сессия данными пользователя.
func (s Session) Authenticated() bool {
	return s.User != nil
}
