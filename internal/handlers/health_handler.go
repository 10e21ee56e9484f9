package handlers

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"careerquiz/backend/internal/cache"
	"careerquiz/backend/internal/config"
	"careerquiz/backend/internal/llm"
	"careerquiz/backend/internal/prompts"
	"careerquiz/backend/internal/utils"
)

const (
	serviceName  = "careerquiz"
	checkTimeout = 2 * time.Second
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"` // Service name
	Checks  map[string]ReadinessCheck `json:"checks"`  // Individual check results
}

type APIHealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type HealthHandler struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	config        *config.Config
	db            *gorm.DB
	cache         cache.Store
	now           func() time.Time
}

func NewHealthHandler(provider llm.Provider, promptManager prompts.PromptProvider, cfg *config.Config, db *gorm.DB, store cache.Store) *HealthHandler {
	return &HealthHandler{
		provider:      provider,
		promptManager: promptManager,
		config:        cfg,
		db:            db,
		cache:         store,
		now:           time.Now,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
		"version": "1.0.0",
	})
}

// APIHealthHandler answers the client-facing /api/health endpoint.
func (handler *HealthHandler) APIHealthHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, APIHealthResponse{
		Status:    "ok",
		Message:   "Career quiz API is running",
		Timestamp: handler.now().UTC(),
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), checkTimeout)
	defer cancel()

	checks := map[string]ReadinessCheck{
		"provider":       handler.checkProvider(),
		"prompt_manager": handler.checkPrompts(),
		"configuration":  handler.checkConfig(),
		"database":       handler.checkDatabase(ctx),
		"cache":          handler.checkCache(ctx),
	}

	response := ReadinessResponse{
		Status:  "ready",
		Service: serviceName,
		Checks:  checks,
	}
	for _, check := range checks {
		if check.Status != "ok" {
			response.Status = "not_ready"
			utils.JSON(writer, http.StatusServiceUnavailable, response)
			return
		}
	}
	utils.JSON(writer, http.StatusOK, response)
}

func (handler *HealthHandler) checkProvider() ReadinessCheck {
	if handler.provider == nil {
		return failed("AI provider not initialized")
	}
	return ReadinessCheck{Status: "ok"}
}

func (handler *HealthHandler) checkPrompts() ReadinessCheck {
	if handler.promptManager == nil {
		return failed("Prompt manager not initialized")
	}
	if len(handler.promptManager.GetTemplates()) == 0 {
		return failed("No prompt templates loaded")
	}
	return ReadinessCheck{Status: "ok"}
}

func (handler *HealthHandler) checkConfig() ReadinessCheck {
	if handler.config == nil {
		return failed("Configuration not loaded")
	}
	return ReadinessCheck{Status: "ok"}
}

func (handler *HealthHandler) checkDatabase(ctx context.Context) ReadinessCheck {
	if handler.db == nil {
		return failed("Database not initialized")
	}
	sqlDB, err := handler.db.DB()
	if err != nil {
		return failed(err.Error())
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return failed("Database unreachable: " + err.Error())
	}
	return ReadinessCheck{Status: "ok"}
}

func (handler *HealthHandler) checkCache(ctx context.Context) ReadinessCheck {
	if handler.cache == nil {
		return failed("Result cache not initialized")
	}
	if err := handler.cache.Ping(ctx); err != nil {
		return failed("Result cache unreachable: " + err.Error())
	}
	return ReadinessCheck{Status: "ok"}
}

func failed(message string) ReadinessCheck {
	return ReadinessCheck{Status: "failed", Message: message}
}
