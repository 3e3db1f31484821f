package report

import (
	"os"
	"testing"

	"github.com/Kritika122297/QuizMaster/internal/domain/model"
)

func TestGeneratePDFReport(t *testing.T) {
	// Пути к шрифтам заданы относительно корня репозитория, как при запуске бота.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(".."); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	filename, err := GeneratePDFReport(ReportData{
		UserID:            7,
		TelegramFirstName: "Иван",
		TelegramUsername:  "ivan_test",
		QuizTitle:         "Квиз по географии",
		Score:             2,
		TotalMarks:        3,
		Review: []model.ReviewItem{
			{QuestionText: "Столица Франции?", SelectedAnswer: "Париж", CorrectAnswer: "Париж", IsCorrect: true},
			{QuestionText: "Столица Австралии?", SelectedAnswer: "Сидней", CorrectAnswer: "Канберра"},
		},
	})
	if err != nil {
		t.Fatalf("отчет не сформирован: %v", err)
	}
	defer os.Remove(filename)

	if filename != "ivan_test.pdf" {
		t.Errorf("имя файла = %q, ожидалось ivan_test.pdf", filename)
	}
	info, err := os.Stat(filename)
	if err != nil {
		t.Fatalf("файл отчета не создан: %v", err)
	}
	if info.Size() == 0 {
		t.Error("файл отчета пуст")
	}
}

func TestGeneratePDFReportFilenameWithoutUsername(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(".."); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	filename, err := GeneratePDFReport(ReportData{UserID: 42, QuizTitle: "Квиз"})
	if err != nil {
		t.Fatalf("отчет не сформирован: %v", err)
	}
	defer os.Remove(filename)

	if filename != "report_42.pdf" {
		t.Errorf("имя файла = %q, ожидалось report_42.pdf", filename)
	}
}
