package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/utils"
)

type SharedResultService interface {
	GetShared(ctx context.Context, resultID string) (*models.SharedResult, error)
}

type ResultHandler struct {
	results SharedResultService
	logger  *zap.Logger
}

func NewResultHandler(results SharedResultService, logger *zap.Logger) *ResultHandler {
	return &ResultHandler{results: results, logger: utils.LoggerOrDefault(logger)}
}

// GetSharedResultHandler serves the public view of a result.
func (h *ResultHandler) GetSharedResultHandler(w http.ResponseWriter, r *http.Request) {
	resultID := strings.TrimSpace(chi.URLParam(r, "id"))
	if resultID == "" {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "missing_result_id",
			Message: "Result ID is required",
		})
		return
	}

	result, err := h.results.GetShared(r.Context(), resultID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load result")
		return
	}
	utils.JSON(w, http.StatusOK, result)
}
