package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"careerquiz/backend/internal/middleware"
	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/utils"
)

type AccountService interface {
	Sync(ctx context.Context, req *models.SyncUserRequest) (*models.User, error)
	Me(ctx context.Context, authID string) (*models.User, error)
}

type AuthHandler struct {
	accounts AccountService
	logger   *zap.Logger
}

func NewAuthHandler(accounts AccountService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, logger: utils.LoggerOrDefault(logger)}
}

// SyncHandler creates or refreshes the caller's user record. The body's
// auth_id must match the token subject.
func (h *AuthHandler) SyncHandler(w http.ResponseWriter, r *http.Request) {
	authID, ok := requireAuthID(w, r)
	if !ok {
		return
	}
	req := middleware.GetValidatedRequest[*models.SyncUserRequest](r)
	if req.AuthID != authID {
		h.logger.Warn("Sync rejected: auth_id does not match token subject")
		utils.JSON(w, http.StatusForbidden, models.ErrorResponse{
			Code:    "auth_id_mismatch",
			Message: "auth_id does not match the authenticated user",
		})
		return
	}

	user, err := h.accounts.Sync(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to sync user")
		return
	}

	utils.JSON(w, http.StatusOK, models.UserResponse{
		Message: "User synced successfully",
		User:    user,
	})
}

func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	authID, ok := requireAuthID(w, r)
	if !ok {
		return
	}

	user, err := h.accounts.Me(r.Context(), authID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load user")
		return
	}
	utils.JSON(w, http.StatusOK, models.UserResponse{User: user})
}
