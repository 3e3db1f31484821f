package quiz_link_handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	quizService "github.com/Kritika122297/QuizMaster/internal/domain/quizzes/service"
	httpError "github.com/Kritika122297/QuizMaster/pkg/http"
)

// QuizLinkHandler генерирует диплинк на прохождение квиза в боте и QR-код
// для него. Ссылку можно печатать на раздатке или показывать на экране.
type QuizLinkHandler struct {
	quizzes     *quizService.QuizService
	botUsername string
	baseURL     string
}

// NewQuizLinkHandler создает новый экземпляр обработчика.
func NewQuizLinkHandler(quizzes *quizService.QuizService, botUsername, baseURL string) *QuizLinkHandler {
	return &QuizLinkHandler{
		quizzes:     quizzes,
		botUsername: botUsername,
		baseURL:     baseURL,
	}
}

// ServeHTTP метод для обработки запроса.
func (h *QuizLinkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req QuizLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.QuizID == "" {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Missing quiz_id")
		return
	}

	// Проверяем, что квиз существует и доступен без авторизации.
	ctx := context.Background()
	quiz, err := h.quizzes.Get(ctx, "", req.QuizID)
	if err != nil || quiz == nil {
		httpError.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("Quiz %s not found", req.QuizID))
		return
	}

	link := fmt.Sprintf("https://t.me/%s?start=quiz_%s", h.botUsername, req.QuizID)

	// Файл QR-кода отдается раздачей статики по /qr/.
	qrCodeFilename := fmt.Sprintf("quiz_%s_%s.png", req.QuizID, uuid.New().String())
	_ = os.MkdirAll("qr", 0o755)
	if err := qrcode.WriteFile(link, qrcode.Medium, 256, "qr/"+qrCodeFilename); err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate QR code: %v", err))
		return
	}

	qrCodeURL := fmt.Sprintf("%s/qr/%s", h.baseURL, qrCodeFilename)

	response := QuizLinkResponse{
		Link:      link,
		QRCodeURL: qrCodeURL,
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}
}
