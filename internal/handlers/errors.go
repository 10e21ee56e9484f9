package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"careerquiz/backend/internal/middleware"
	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/repositories"
	"careerquiz/backend/internal/services"
	"careerquiz/backend/internal/utils"
)

// writeServiceError maps service and repository errors onto HTTP responses.
// Unknown errors are logged and reported as 500 with fallbackMessage.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "user_not_found",
			Message: "User not found. Sync the account first.",
		})
	case errors.Is(err, repositories.ErrQuizNotFound):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "quiz_not_found",
			Message: "Quiz not found",
		})
	case errors.Is(err, repositories.ErrResultNotFound):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "result_not_found",
			Message: "Result not found",
		})
	case errors.Is(err, services.ErrQuizAlreadySubmitted):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "quiz_already_submitted",
			Message: "Quiz has already been submitted",
		})
	default:
		logger.Error(fallbackMessage, zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: fallbackMessage,
		})
	}
}

// requireAuthID reads the caller's auth id, writing 401 when it is absent.
func requireAuthID(w http.ResponseWriter, r *http.Request) (string, bool) {
	authID, ok := middleware.AuthIDFromContext(r.Context())
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
			Code:    "missing_token",
			Message: "Authentication required",
		})
	}
	return authID, ok
}
