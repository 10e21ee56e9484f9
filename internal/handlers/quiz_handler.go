package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"careerquiz/backend/internal/middleware"
	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/utils"
)

type QuizService interface {
	Generate(ctx context.Context, authID string, req *models.GenerateQuizRequest) (*models.QuizResponse, error)
	Submit(ctx context.Context, authID string, req *models.SubmitQuizRequest) (*models.EvaluationResponse, error)
}

type QuizHandler struct {
	quizzes QuizService
	logger  *zap.Logger
}

func NewQuizHandler(quizzes QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{quizzes: quizzes, logger: utils.LoggerOrDefault(logger)}
}

// GenerateHandler always answers with a full quiz; model failures are
// absorbed by the fallback catalog.
func (h *QuizHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	authID, ok := requireAuthID(w, r)
	if !ok {
		return
	}
	req := middleware.GetValidatedRequest[*models.GenerateQuizRequest](r)

	quiz, err := h.quizzes.Generate(r.Context(), authID, req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to generate quiz")
		return
	}
	utils.JSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	authID, ok := requireAuthID(w, r)
	if !ok {
		return
	}
	req := middleware.GetValidatedRequest[*models.SubmitQuizRequest](r)

	eval, err := h.quizzes.Submit(r.Context(), authID, req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to evaluate quiz")
		return
	}
	utils.JSON(w, http.StatusOK, eval)
}
