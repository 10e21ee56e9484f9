package routers

import (
	"net/http"

	"careerquiz/backend/internal/handlers"
	"careerquiz/backend/internal/middleware"
	"careerquiz/backend/internal/models"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the handlers mounted under /api.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Quiz    *handlers.QuizHandler
	Profile *handlers.ProfileHandler
	Results *handlers.ResultHandler
}

// APIRoutes mounts the API. Only shared results are public; requireAuth
// guards every route that acts on the caller's account.
func APIRoutes(router *chi.Mux, h Handlers, requireAuth func(http.Handler) http.Handler) {
	router.Route("/api", func(r chi.Router) {
		r.Get("/results/{id}", h.Results.GetSharedResultHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.With(middleware.ValidateRequest[*models.SyncUserRequest]()).Post("/auth/sync", h.Auth.SyncHandler)
			r.Get("/auth/me", h.Auth.MeHandler)

			r.With(middleware.ValidateRequest[*models.GenerateQuizRequest]()).Post("/quiz/generate", h.Quiz.GenerateHandler)
			r.With(middleware.ValidateRequest[*models.SubmitQuizRequest]()).Post("/quiz/submit", h.Quiz.SubmitHandler)

			r.Get("/profile", h.Profile.GetProfileHandler)
			r.Delete("/profile", h.Profile.DeleteAccountHandler)
			r.With(middleware.ValidateRequest[*models.UpdateProfileRequest]()).Put("/profile/update", h.Profile.UpdateProfileHandler)
			r.Get("/profile/attempts", h.Profile.AttemptsHandler)
			r.Get("/profile/improvement", h.Profile.ImprovementHandler)
		})
	})
}
