package report

import (
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/Kritika122297/QuizMaster/internal/domain/model"
)

// ReportData содержит данные для формирования отчета о пройденном квизе.
type ReportData struct {
	UserID            int64
	TelegramFirstName string
	TelegramUsername  string
	QuizTitle         string
	Score             int
	TotalMarks        int
	Review            []model.ReviewItem
}

// GeneratePDFReport генерирует PDF-отчет по результатам попытки и сохраняет
// его в файл. Возвращает имя файла и ошибку, если она произошла.
func GeneratePDFReport(r ReportData) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")

	// UTF-8 шрифты с поддержкой кириллицы.
	pdf.AddUTF8Font("DejaVu", "", "report/fonts/DejaVuSans.ttf")
	pdf.AddUTF8Font("DejaVu", "B", "report/fonts/DejaVuSans-Bold.ttf")

	pdf.SetFont("DejaVu", "", 14)
	pdf.AddPage()

	pdf.SetFont("DejaVu", "B", 16)
	pdf.MultiCell(0, 10, "Отчет о прохождении квиза", "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("DejaVu", "", 12)
	info := fmt.Sprintf("Имя: %s\nUsername: %s\nUser ID: %d\nКвиз: %s\nРезультат: %d из %d\n",
		r.TelegramFirstName, r.TelegramUsername, r.UserID, r.QuizTitle, r.Score, r.TotalMarks)
	pdf.MultiCell(0, 8, info, "", "L", false)
	pdf.Ln(4)

	for i, item := range r.Review {
		qHeader := fmt.Sprintf("Вопрос %d:", i+1)
		pdf.SetFont("DejaVu", "B", 12)
		pdf.MultiCell(0, 8, qHeader, "", "L", false)

		pdf.SetFont("DejaVu", "", 12)
		pdf.MultiCell(0, 8, item.QuestionText, "", "L", false)
		pdf.Ln(2)

		verdict := "неверно"
		if item.IsCorrect {
			verdict = "верно"
		}
		answerLine := fmt.Sprintf("Ваш ответ: %s (%s)\nПравильный: %s\n",
			item.SelectedAnswer, verdict, item.CorrectAnswer)
		pdf.MultiCell(0, 8, answerLine, "", "L", false)
		pdf.Ln(4)
	}

	filename := ""
	if r.TelegramUsername != "" {
		filename = r.TelegramUsername + ".pdf"
	} else {
		filename = "report_" + strconv.FormatInt(r.UserID, 10) + ".pdf"
	}

	if err := pdf.OutputFileAndClose(filename); err != nil {
		return "", err
	}
	return filename, nil
}
