package routers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"careerquiz/backend/internal/config"
	"careerquiz/backend/internal/handlers"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newTestHandlers() Handlers {
	logger := zap.NewNop()
	return Handlers{
		Auth:    handlers.NewAuthHandler(nil, logger),
		Quiz:    handlers.NewQuizHandler(nil, logger),
		Profile: handlers.NewProfileHandler(nil, logger),
		Results: handlers.NewResultHandler(nil, logger),
	}
}

func denyAll(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
}

func TestHealthRoutes(t *testing.T) {
	router := chi.NewRouter()
	handler := handlers.NewHealthHandler(nil, nil, &config.Config{Provider: "gemini"}, nil, nil)

	HealthRoutes(router, handler)

	for _, path := range []string{"/healthz", "/api/health"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s route not registered correctly, got status %d", path, rec.Code)
		}
	}
}

func TestAPIRoutesRegistersEndpoints(t *testing.T) {
	router := chi.NewRouter()
	APIRoutes(router, newTestHandlers(), denyAll)

	paths := map[string]bool{}
	if err := chi.Walk(router, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		paths[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("failed walking routes: %v", err)
	}

	expected := []string{
		"POST /api/auth/sync",
		"GET /api/auth/me",
		"POST /api/quiz/generate",
		"POST /api/quiz/submit",
		"GET /api/profile",
		"PUT /api/profile/update",
		"GET /api/profile/attempts",
		"GET /api/profile/improvement",
		"DELETE /api/profile",
		"GET /api/results/{id}",
	}

	for _, route := range expected {
		if !paths[route] {
			t.Fatalf("expected route %s to be registered, have %v", route, paths)
		}
	}
}

func TestAPIRoutesGuardsAccountRoutes(t *testing.T) {
	router := chi.NewRouter()
	APIRoutes(router, newTestHandlers(), denyAll)

	guarded := []struct{ method, path string }{
		{http.MethodPost, "/api/auth/sync"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/quiz/generate"},
		{http.MethodPost, "/api/quiz/submit"},
		{http.MethodGet, "/api/profile"},
		{http.MethodPut, "/api/profile/update"},
		{http.MethodGet, "/api/profile/attempts"},
		{http.MethodGet, "/api/profile/improvement"},
		{http.MethodDelete, "/api/profile"},
	}

	for _, route := range guarded {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected auth guard, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestAPIRoutesSyncRequiresToken(t *testing.T) {
	router := chi.NewRouter()
	APIRoutes(router, newTestHandlers(), denyAll)

	body := strings.NewReader(`{"auth_id":"victim","email":"x@example.com","name":"Mallory"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/sync", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected sync without a token to be rejected, got %d", rec.Code)
	}
}
