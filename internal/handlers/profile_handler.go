package handlers

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"careerquiz/backend/internal/middleware"
	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/utils"
)

type ProfileService interface {
	Profile(ctx context.Context, authID string) (*models.ProfileResponse, error)
	Update(ctx context.Context, authID string, req *models.UpdateProfileRequest) (*models.User, error)
	Attempts(ctx context.Context, authID string, limit int) ([]models.Attempt, error)
	Improvement(ctx context.Context, authID string) ([]models.ImprovementPoint, error)
	Delete(ctx context.Context, authID string) error
}

type ProfileHandler struct {
	profiles ProfileService
	logger   *zap.Logger
}

func NewProfileHandler(profiles ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: utils.LoggerOrDefault(logger)}
}

func (h *ProfileHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	authID, ok := requireAuthID(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.Profile(r.Context(), authID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load profile")
		return
	}
	utils.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	authID, ok := requireAuthID(w, r)
	if !ok {
		return
	}
	req := middleware.GetValidatedRequest[*models.UpdateProfileRequest](r)

	user, err := h.profiles.Update(r.Context(), authID, req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update profile")
		return
	}
	utils.JSON(w, http.StatusOK, models.UserResponse{
		Message: "Profile updated successfully",
		User:    user,
	})
}

// AttemptsHandler lists recent attempts; ?limit= must be a positive integer.
func (h *ProfileHandler) AttemptsHandler(w http.ResponseWriter, r *http.Request) {
	authID, ok := requireAuthID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
				Code:    "invalid_limit",
				Message: "limit must be a positive integer",
			})
			return
		}
		limit = n
	}

	attempts, err := h.profiles.Attempts(r.Context(), authID, limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load attempts")
		return
	}
	utils.JSON(w, http.StatusOK, models.AttemptsResponse{Attempts: attempts})
}

func (h *ProfileHandler) ImprovementHandler(w http.ResponseWriter, r *http.Request) {
	authID, ok := requireAuthID(w, r)
	if !ok {
		return
	}

	points, err := h.profiles.Improvement(r.Context(), authID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load improvement data")
		return
	}
	utils.JSON(w, http.StatusOK, models.ImprovementResponse{Data: points})
}

func (h *ProfileHandler) DeleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	authID, ok := requireAuthID(w, r)
	if !ok {
		return
	}

	if err := h.profiles.Delete(r.Context(), authID); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete account")
		return
	}
	utils.JSON(w, http.StatusOK, models.MessageResponse{Message: "Account deleted successfully"})
}
