package model

// Route — навигационные «экраны» клиента. В SPA-версии это были маршруты
// роутера, здесь — состояния диалога с ботом, через которые проходит Auth Gate.
type Route string

const (
	RouteHome      Route = "home"
	RouteLogin     Route = "login"
	RouteSignup    Route = "signup"
	RouteDashboard Route = "dashboard"
	RouteCreate    Route = "create_quiz"
	RouteMyQuizzes Route = "my_quizzes"
	RouteAttempt   Route = "attempt"
)

// Состояния диалога, в которых бот ожидает от пользователя текстовый ввод.
// Хранятся в локальном хранилище вместе с сессией.
const (
	UIStateNone            = ""
	UIStateLoginEmail      = "login_wait_email"
	UIStateLoginPassword   = "login_wait_password"
	UIStateSignupUsername  = "signup_wait_username"
	UIStateSignupEmail     = "signup_wait_email"
	UIStateSignupPassword  = "signup_wait_password"
	UIStateCreateTitle     = "create_wait_title"
	UIStateCreateDesc      = "create_wait_description"
	UIStateCreateMarks     = "create_wait_marks"
	UIStateCreateTimeLimit = "create_wait_time_limit"
	UIStateCreateFile      = "create_wait_file"
	UIStateEditTitle       = "edit_wait_title"
	UIStateEditDesc        = "edit_wait_description"
)
