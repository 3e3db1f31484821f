package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config содержит параметры конфигурации клиента QuizMaster.
// Здесь хранятся настройки Telegram-бота, адрес внешнего API платформы,
// параметры локального хранилища состояния и настройки HTTP-сервера.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	TelegramBot struct {
		Token               string `yaml:"token"`
		Username            string `yaml:"username"`              // Имя бота для формирования deep-link ссылок.
		Mode                string `yaml:"mode"`                  // "polling" или "webhook".
		WebhookURL          string `yaml:"webhook_url"`           // Публичный URL (режим webhook).
		ListenAddr          string `yaml:"listen_addr"`           // Адрес прослушивания вебхука.
		PollIntervalSeconds int    `yaml:"poll_interval_seconds"` // Интервал лонгпуллинга.
		Debug               bool   `yaml:"debug"`
	} `yaml:"telegram_bot"`
	API struct {
		BaseURL        string `yaml:"base_url"` // Базовый URL REST API, например http://localhost:4532/api.
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"api"`
	Storage struct {
		Type     string `yaml:"type"` // "memory", "json", "postgres" или "redis".
		JSONFile string `yaml:"json_file"`
		Postgres struct {
			Host     string `yaml:"host"`
			Port     string `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			Name     string `yaml:"dbname"`
		} `yaml:"postgres"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"storage"`
	Attempt struct {
		// RequireAuth определяет, требуется ли авторизация для прохождения квиза.
		// В оригинальном клиенте маршрут прохождения был доступен без авторизации,
		// здесь это явный конфигурационный выбор.
		RequireAuth bool `yaml:"require_auth"`
	} `yaml:"attempt"`
}

// LoadConfig загружает конфигурацию из YAML-файла, затем применяет переопределения
// из файла .env (если он существует) и переменных окружения.
func LoadConfig(filename string) (*Config, error) {
	// Загружаем переменные окружения из файла .env (если файл существует).
	_ = godotenv.Load()

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("config: не удалось открыть %s: %w", filename, err)
	}
	defer f.Close()

	config := &Config{}
	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return nil, fmt.Errorf("config: не удалось разобрать %s: %w", filename, err)
	}

	applyDefaults(config)
	applyEnvOverrides(config)

	if config.TelegramBot.Token == "" {
		return nil, fmt.Errorf("config: токен бота не задан (telegram_bot.token или TELEGRAM_BOT_TOKEN)")
	}
	if config.API.BaseURL == "" {
		return nil, fmt.Errorf("config: базовый URL API не задан (api.base_url или API_BASE_URL)")
	}

	return config, nil
}

func applyDefaults(c *Config) {
	if c.TelegramBot.Mode == "" {
		c.TelegramBot.Mode = "polling"
	}
	if c.TelegramBot.ListenAddr == "" {
		c.TelegramBot.ListenAddr = ":8443"
	}
	if c.TelegramBot.PollIntervalSeconds <= 0 {
		c.TelegramBot.PollIntervalSeconds = 2
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = 15
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "memory"
	}
	if c.Storage.JSONFile == "" {
		c.Storage.JSONFile = "data/states.json"
	}
}

// PollInterval возвращает интервал лонгпуллинга как time.Duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.TelegramBot.PollIntervalSeconds) * time.Second
}

// APITimeout возвращает таймаут HTTP-запросов к API как time.Duration.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// applyEnvOverrides применяет переменные окружения поверх значений из YAML.
// Секреты (токен бота, пароль базы) удобнее передавать через окружение.
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramBot.Token = v
	}
	if v := os.Getenv("TELEGRAM_BOT_USERNAME"); v != "" {
		c.TelegramBot.Username = v
	}
	if v := os.Getenv("API_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		c.Storage.Postgres.Password = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Storage.Redis.Addr = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.TelegramBot.Debug = b
		}
	}
}
