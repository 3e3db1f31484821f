package poller

import (
	"log"

	"gopkg.in/telebot.v4"

	"github.com/Kritika122297/QuizMaster/internal/infra/config"
)

// NewPoller создает Poller в зависимости от режима работы бота.
func NewPoller(cfg *config.Config) telebot.Poller {
	if cfg.TelegramBot.Mode == "webhook" {
		if cfg.TelegramBot.WebhookURL == "" {
			log.Fatalf("В режиме webhook параметр webhook_url должен быть задан")
		}
		return &telebot.Webhook{
			Listen: cfg.TelegramBot.ListenAddr,
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: cfg.TelegramBot.WebhookURL,
			},
		}
	}
	return &telebot.LongPoller{Timeout: cfg.PollInterval()}
}
