package timer

import (
	"fmt"
	"log"
	"time"

	"gopkg.in/telebot.v4"

	attemptService "github.com/Kritika122297/QuizMaster/internal/domain/attempt/service"
)

// Updater ведет сообщение с обратным отсчетом для попытки с ограничением
// по времени и при истечении срока сдает попытку автоматически.
type Updater struct {
	bot      *telebot.Bot
	attempts *attemptService.AttemptService
	onResult func(userID int64)
}

// NewTimerUpdater создает новый Updater. onResult вызывается после
// автоматической сдачи, чтобы показать пользователю результат.
func NewTimerUpdater(bot *telebot.Bot, attempts *attemptService.AttemptService, onResult func(userID int64)) *Updater {
	return &Updater{
		bot:      bot,
		attempts: attempts,
		onResult: onResult,
	}
}

// Run обновляет сообщение таймера раз в секунду до истечения времени или
// отмены контекста попытки. Остаток считается от дедлайна по настенным часам,
// а не декрементом, поэтому задержки тиков не растягивают отведенное время.
func (tu *Updater) Run(attempt *attemptService.Attempt) {
	if !attempt.HasDeadline() {
		return
	}

	ctx := attempt.Context()
	userID := attempt.UserID()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status := attempt.Status()
			if status == attemptService.StatusCompleted {
				return
			}

			remaining := attempt.RemainingSeconds()
			if remaining <= 0 {
				tu.expire(userID, attempt)
				return
			}

			// Пока идет сдача, отсчет не редактируем: сообщение вот-вот сменится.
			if status != attemptService.StatusActive {
				continue
			}

			text := fmt.Sprintf(
				"⏰ Оставшееся время: %02d:%02d, вопрос %d/%d",
				remaining/60, remaining%60, currentIndex(attempt)+1, attempt.Total(),
			)
			if _, err := tu.bot.Edit(&telebot.Message{
				ID:   attempt.TimerMessageID(),
				Chat: &telebot.Chat{ID: userID},
			}, text); err != nil {
				log.Printf("timer: не удалось обновить сообщение таймера для %d: %v", userID, err)
			}
		}
	}
}

// expire сдает попытку по истечении времени. Если пользователь успел нажать
// «Завершить» сам, Submit вернет ErrAlreadySubmitted и ничего не произойдет.
func (tu *Updater) expire(userID int64, attempt *attemptService.Attempt) {
	if _, err := tu.bot.Edit(&telebot.Message{
		ID:   attempt.TimerMessageID(),
		Chat: &telebot.Chat{ID: userID},
	}, "⏰ Время вышло! Отправляю ответы..."); err != nil {
		log.Printf("timer: не удалось обновить сообщение таймера для %d: %v", userID, err)
	}

	if _, err := tu.attempts.Submit(userID); err != nil {
		if err == attemptService.ErrAlreadySubmitted {
			return
		}
		log.Printf("timer: автоматическая сдача для %d не удалась: %v", userID, err)
		if _, sendErr := tu.bot.Send(&telebot.User{ID: userID},
			"⏰ Время вышло, но отправить ответы не удалось. Нажмите «Завершить», чтобы повторить."); sendErr != nil {
			log.Printf("timer: не удалось уведомить пользователя %d: %v", userID, sendErr)
		}
		return
	}

	if tu.onResult != nil {
		tu.onResult(userID)
	}
}

func currentIndex(attempt *attemptService.Attempt) int {
	idx, _ := attempt.Current()
	return idx
}
