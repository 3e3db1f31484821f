package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestLoadConfigDefaults(t *testing.T) {
	filename := writeConfig(t, `
telegram_bot:
  token: "test-token"
api:
  base_url: "http://localhost:4532/api"
`)

	cfg, err := LoadConfig(filename)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if cfg.TelegramBot.Mode != "polling" {
		t.Errorf("режим по умолчанию = %q, ожидался polling", cfg.TelegramBot.Mode)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("тип хранилища по умолчанию = %q, ожидался memory", cfg.Storage.Type)
	}
	if cfg.PollInterval() != 2*time.Second {
		t.Errorf("интервал пуллинга = %v, ожидалось 2s", cfg.PollInterval())
	}
	if cfg.APITimeout() != 15*time.Second {
		t.Errorf("таймаут API = %v, ожидалось 15s", cfg.APITimeout())
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	filename := writeConfig(t, `
telegram_bot:
  token: "from-yaml"
api:
  base_url: "http://from-yaml"
storage:
  type: "json"
`)

	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("STORAGE_TYPE", "redis")
	t.Setenv("DEBUG", "true")

	cfg, err := LoadConfig(filename)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if cfg.TelegramBot.Token != "from-env" {
		t.Errorf("окружение должно переопределять YAML: %q", cfg.TelegramBot.Token)
	}
	if cfg.Storage.Type != "redis" {
		t.Errorf("тип хранилища = %q, ожидался redis", cfg.Storage.Type)
	}
	if !cfg.TelegramBot.Debug {
		t.Error("DEBUG=true должен включать отладку")
	}
}

func TestLoadConfigRequiresToken(t *testing.T) {
	filename := writeConfig(t, `
api:
  base_url: "http://localhost:4532/api"
`)

	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	if _, err := LoadConfig(filename); err == nil {
		t.Fatal("конфигурация без токена должна отклоняться")
	}
}

func TestLoadConfigRequiresBaseURL(t *testing.T) {
	filename := writeConfig(t, `
telegram_bot:
  token: "test-token"
`)

	if _, err := LoadConfig(filename); err == nil {
		t.Fatal("конфигурация без адреса API должна отклоняться")
	}
}
