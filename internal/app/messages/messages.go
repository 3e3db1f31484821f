// Package messages собирает тексты и подписи кнопок бота в одном месте,
// чтобы обработчики не разносили формулировки по всему коду.
package messages

// Подписи кнопок.
const (
	BtnLogin      = "🔑 Войти"
	BtnSignup     = "📝 Регистрация"
	BtnLogout     = "🚪 Выйти из аккаунта"
	BtnAllQuizzes = "📚 Квизы"
	BtnMyQuizzes  = "🗂 Мои квизы"
	BtnCreate     = "➕ Создать квиз"
	BtnTabAll     = "Все"
	BtnTabMine    = "Мои"
	BtnNextPage   = "Вперед ➡️"
	BtnPrevPage   = "⬅️ Назад"
	BtnStartQuiz  = "▶️ Пройти"
	BtnManageQuiz = "⚙️ Управление"
	BtnNextQ      = "➡️"
	BtnPrevQ      = "⬅️"
	BtnSubmit     = "✅ Завершить"
	BtnAbort      = "✖️ Прервать"
	BtnEditTitle  = "✏️ Название"
	BtnEditDesc   = "✏️ Описание"
	BtnMakePublic = "🌐 Сделать публичным"
	BtnMakeHidden = "🔒 Скрыть"
	BtnDeleteQuiz = "🗑 Удалить квиз"
	BtnDeleteQ    = "🗑 Удалить вопрос"
	BtnConfirmDel = "Да, удалить"
	BtnCancelDel  = "Отмена"
	BtnBackToMenu = "🏠 В меню"
)

// Тексты сообщений.
const (
	WelcomeGuestFmt = "👋 Привет, %s! Это QuizMaster — платформа квизов.\n\nВойдите, чтобы создавать квизы и видеть полный список, или откройте публичные квизы без входа."
	WelcomeUserFmt  = "👋 С возвращением, %s!"

	PromptLoginEmail     = "Введите email:"
	PromptLoginPassword  = "Введите пароль:"
	PromptSignupUsername = "Придумайте имя пользователя:"
	PromptSignupEmail    = "Введите email:"
	PromptSignupPassword = "Придумайте пароль:"
	LoginOkFmt           = "✅ Вход выполнен. Здравствуйте, %s!"
	SignupOkFmt          = "✅ Регистрация завершена. Добро пожаловать, %s!"
	LoginFailed          = "❌ Неверный email или пароль. Попробуйте еще раз — введите email:"
	LogoutOk             = "Вы вышли из аккаунта."

	PromptCreateTitle     = "Название нового квиза:"
	PromptCreateDesc      = "Описание:"
	PromptCreateMarks     = "Максимальный балл (целое число):"
	PromptCreateTimeLimit = "Ограничение по времени в минутах (0 — без ограничения):"
	PromptCreateFile      = "Пришлите файл с вопросами (документом)."
	CreateOkFmt           = "✅ Квиз «%s» создан."
	NeedInteger           = "Нужно целое число. Попробуйте еще раз:"

	PromptEditTitle = "Новое название:"
	PromptEditDesc  = "Новое описание:"
	EditOk          = "✅ Изменения сохранены."

	QuizListHeaderAll  = "📚 Доступные квизы (стр. %d/%d):"
	QuizListHeaderMine = "🗂 Ваши квизы (стр. %d/%d):"
	QuizListEmpty      = "Пока нет ни одного квиза."
	QuizLineFmt        = "• %s — %s"

	AttemptStartFmt   = "▶️ Квиз «%s»: %d вопросов.\nОтвечайте кнопками под вопросом; последний выбранный вариант и засчитывается."
	QuestionHeaderFmt = "❓ *Вопрос %d/%d:*\n%s"
	TimerInitial      = "⏰ Подготовка таймера..."
	SubmittingNote    = "⏳ Отправляю ответы на проверку..."
	ResultFmt         = "🏁 Квиз завершен!\nВаш результат: %d из %d."
	ReviewCorrect     = "✅"
	ReviewWrong       = "❌"
	AttemptAborted    = "Попытка прервана. Ответы сохранены — можно вернуться позже."
	SubmitFailed      = "❌ Не удалось отправить ответы. Нажмите «Завершить» еще раз."

	ConfirmDeleteQuizFmt = "Удалить квиз «%s»? Это действие необратимо."
	DeleteQuizOk         = "🗑 Квиз удален."
	PickQuestionToDelete = "Выберите вопрос для удаления:"
	DeleteQuestionOk     = "🗑 Вопрос удален."
	DeleteCanceled       = "Удаление отменено."

	AuthRequired    = "Для этого действия нужно войти в аккаунт."
	UnknownCommand  = "Не понимаю. Воспользуйтесь кнопками меню или командой /start."
	NoActiveAttempt = "Активная попытка не найдена. Начните квиз заново из списка."
)
