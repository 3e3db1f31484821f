package authgate

import (
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
)

// Decision — результат проверки навигации: либо маршрут разрешен,
// либо указан маршрут, на который нужно перенаправить пользователя.
type Decision struct {
	Allowed    bool
	RedirectTo model.Route
}

// Gate решает, доступен ли маршрут при текущем состоянии сессии.
// Это презентационная проверка, а не граница безопасности: авторитетная
// проверка токена выполняется сервером на каждом запросе API.
type Gate struct {
	// requireAuthForAttempt управляет доступом к прохождению квиза без входа.
	// В исходном клиенте этот маршрут был доступен анонимно; здесь это
	// явная настройка.
	requireAuthForAttempt bool
}

// NewGate создает Auth Gate.
func NewGate(requireAuthForAttempt bool) *Gate {
	return &Gate{requireAuthForAttempt: requireAuthForAttempt}
}

// Decide — чистый предикат над (наличие пользователя, маршрут).
// Авторизованных уводит с экранов входа/регистрации на дашборд,
// неавторизованных — с защищенных экранов на вход.
func (g *Gate) Decide(authenticated bool, route model.Route) Decision {
	switch route {
	case model.RouteLogin, model.RouteSignup:
		if authenticated {
			return Decision{RedirectTo: model.RouteDashboard}
		}
		return Decision{Allowed: true}
	case model.RouteDashboard, model.RouteCreate, model.RouteMyQuizzes:
		if !authenticated {
			return Decision{RedirectTo: model.RouteLogin}
		}
		return Decision{Allowed: true}
	case model.RouteAttempt:
		if g.requireAuthForAttempt && !authenticated {
			return Decision{RedirectTo: model.RouteLogin}
		}
		return Decision{Allowed: true}
	default:
		return Decision{Allowed: true}
	}
}
