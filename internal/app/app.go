package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/api"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/http/active_attempts_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/http/quiz_link_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/attempt/abort_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/attempt/answer_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/attempt/begin_attempt_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/attempt/nav_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/attempt/submit_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/auth/login_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/auth/logout_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/auth/signup_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/create_quiz_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/document_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/manage/delete_question_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/manage/delete_quiz_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/manage/edit_quiz_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/manage/manage_quiz_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/manage/toggle_visibility_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/menu_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/quiz_list/next_page_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/quiz_list/open_quiz_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/quiz_list/prev_page_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/quiz_list/quiz_list_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/start_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/text_handler"
	"github.com/Kritika122297/QuizMaster/internal/app/handlers/telegram/views"
	attemptService "github.com/Kritika122297/QuizMaster/internal/domain/attempt/service"
	"github.com/Kritika122297/QuizMaster/internal/domain/authgate"
	"github.com/Kritika122297/QuizMaster/internal/domain/model"
	quizService "github.com/Kritika122297/QuizMaster/internal/domain/quizzes/service"
	sessionService "github.com/Kritika122297/QuizMaster/internal/domain/session/service"
	"github.com/Kritika122297/QuizMaster/internal/infra/config"
	"github.com/Kritika122297/QuizMaster/internal/infra/timer"
	"github.com/Kritika122297/QuizMaster/internal/storage"
	"github.com/Kritika122297/QuizMaster/middleware"
	"github.com/Kritika122297/QuizMaster/poller"
)

type Services struct {
	sessionService *sessionService.SessionService
	quizService    *quizService.QuizService
	attemptService *attemptService.AttemptService
}

type App struct {
	config    *config.Config
	bot       *telebot.Bot
	store     storage.Store
	apiClient *api.Client
	gate      *authgate.Gate
	server    *http.Server

	Services
}

func NewApp(configPath string) (*App, error) {
	configImpl, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	store, err := storage.NewStore(context.Background(), configImpl)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app := &App{
		config: configImpl,
		store:  store,
	}

	app.initServices()

	return app, nil
}

// Функция для инициализации сервисов
func (app *App) initServices() {
	app.apiClient = api.NewClient(app.config.API.BaseURL, app.config.APITimeout())
	app.gate = authgate.NewGate(app.config.Attempt.RequireAuth)

	app.sessionService = sessionService.NewSessionService(app.apiClient, app.store)
	app.quizService = quizService.NewQuizService(app.apiClient, app.store)
	app.attemptService = attemptService.NewAttemptService(app.apiClient, app.store)

	// Изменения сессии рассылаются подписчикам. При разлогине активная
	// попытка пользователя снимается вместе со своим таймером.
	app.sessionService.Subscribe(func(userID int64, session model.Session) {
		if !session.Authenticated() && session.Token == "" {
			app.attemptService.Abort(userID)
		}
		if app.config.TelegramBot.Debug {
			log.Printf("session: пользователь %d, авторизован=%t", userID, session.Authenticated())
		}
	})
}

// ListenAndServeTelegram запускает сервер Telegram бота
func (app *App) ListenAndServeTelegram() error {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  app.config.TelegramBot.Token,
		Poller: poller.NewPoller(app.config),
	})
	if err != nil {
		return fmt.Errorf("telebot.NewBot: %w", err)
	}
	app.bot = bot

	customLogger := log.New(os.Stdout, "[bot] ", log.LstdFlags)
	if app.config.TelegramBot.Debug {
		app.bot.Use(middleware.Logger(customLogger))
		app.bot.Use(middleware.DebugUserActions(true, app.store))
	}
	app.bot.Use(
		middleware.AutoRespond(),
		middleware.Recover(),
	)

	app.bootstrapHandlersTelegram()

	go app.bot.Start()

	return nil
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	submitH := submit_handler.NewSubmitHandler(app.bot, app.attemptService)
	timerUpdater := timer.NewTimerUpdater(app.bot, app.attemptService, submitH.Finish)
	beginH := begin_attempt_handler.NewBeginAttemptHandler(app.sessionService, app.attemptService, app.gate, timerUpdater)

	app.bot.Handle("/start", start_handler.NewStartHandler(app.sessionService, app.gate, beginH.Begin).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueMenu}, menu_handler.NewMenuHandler(app.sessionService).GetHandlerFunc())

	// Вход, регистрация, выход.
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueLogin}, login_handler.NewLoginHandler(app.store).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueSignup}, signup_handler.NewSignupHandler(app.store).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueLogout}, logout_handler.NewLogoutHandler(app.sessionService, app.attemptService).GetHandlerFunc())

	// Список квизов с вкладками и пагинацией.
	listH := quiz_list_handler.NewQuizListHandler(app.sessionService, app.quizService)
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueQuizList}, listH.GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueTab}, listH.GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueNextPage}, next_page_handler.NewNextPageHandler(app.sessionService, app.quizService).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniquePrevPage}, prev_page_handler.NewPrevPageHandler(app.sessionService, app.quizService).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueOpenQuiz}, open_quiz_handler.NewOpenQuizHandler(app.sessionService, app.quizService).GetHandlerFunc())

	// Прохождение квиза.
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueAttempt}, beginH.GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueAnswer}, answer_handler.NewAnswerHandler(app.attemptService).GetHandlerFunc())
	navH := nav_handler.NewNavHandler(app.attemptService)
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueNextQ}, navH.HandleNext)
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniquePrevQ}, navH.HandlePrev)
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueSubmit}, submitH.GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueAbort}, abort_handler.NewAbortHandler(app.bot, app.attemptService).GetHandlerFunc())

	// Управление своими квизами.
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueCreateQuiz}, create_quiz_handler.NewCreateQuizHandler(app.store, app.sessionService, app.gate).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueManage}, manage_quiz_handler.NewManageQuizHandler(app.sessionService, app.quizService).GetHandlerFunc())
	editH := edit_quiz_handler.NewEditQuizHandler(app.store)
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueEditTitle}, editH.HandleTitle)
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueEditDesc}, editH.HandleDescription)
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueToggleVis}, toggle_visibility_handler.NewToggleVisibilityHandler(app.sessionService, app.quizService).GetHandlerFunc())
	deleteH := delete_quiz_handler.NewDeleteQuizHandler(app.sessionService, app.quizService)
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueDeleteQuiz}, deleteH.HandleRequest)
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueConfirmDel}, deleteH.HandleConfirm)
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueCancelDel}, deleteH.HandleCancel)
	delQH := delete_question_handler.NewDeleteQuestionHandler(app.sessionService, app.quizService)
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniquePickDelQ}, delQH.HandlePick)
	app.bot.Handle(&telebot.InlineButton{Unique: views.UniqueDeleteQ}, delQH.HandleDelete)

	// Диалоги, ожидающие текст или файл.
	app.bot.Handle(telebot.OnText, text_handler.NewTextHandler(app.store, app.sessionService, app.quizService).GetHandlerFunc())
	app.bot.Handle(telebot.OnDocument, document_handler.NewDocumentHandler(app.store, app.sessionService, app.quizService).GetHandlerFunc())
}

// ListenAndServeHTTP запускает сервисный HTTP сервер
func (app *App) ListenAndServeHTTP() error {
	mx := http.NewServeMux()

	baseURL := fmt.Sprintf("http://%s:%s", app.config.Server.Host, app.config.Server.Port)
	mx.Handle("GET /attempts/active", active_attempts_handler.NewActiveAttemptsHandler(app.attemptService))
	mx.Handle("POST /quiz_links/generate", quiz_link_handler.NewQuizLinkHandler(app.quizService, app.config.TelegramBot.Username, baseURL))
	mx.Handle("GET /qr/", http.StripPrefix("/qr/", http.FileServer(http.Dir("qr"))))

	app.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", app.config.Server.Host, app.config.Server.Port),
		Handler: mx,
	}

	return app.server.ListenAndServe()
}

// ListenAndServe запускает оба сервера (Telegram и HTTP)
func (app *App) ListenAndServe() error {
	if err := app.ListenAndServeTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}

	if err := app.ListenAndServeHTTP(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}
