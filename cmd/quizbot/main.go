package main

import (
	"log"
	"os"

	"github.com/Kritika122297/QuizMaster/internal/app"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/values_example.yaml"
	}

	a, err := app.NewApp(configPath)
	if err != nil {
		log.Fatalf("Ошибка инициализации приложения: %v", err)
	}

	if err := a.ListenAndServe(); err != nil {
		log.Fatalf("Ошибка запуска: %v", err)
	}
}
