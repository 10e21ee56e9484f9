package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"text/template"

	"careerquiz/backend/internal/llm"
	"careerquiz/backend/internal/middleware"
	"careerquiz/backend/internal/models"
)

type mockProvider struct {
	completeFn func(ctx context.Context, prompt string, opts llm.GenerationOptions) (*models.GenerationResponse, error)
}

func (m *mockProvider) Complete(ctx context.Context, prompt string, opts llm.GenerationOptions) (*models.GenerationResponse, error) {
	if m.completeFn == nil {
		return &models.GenerationResponse{}, nil
	}
	return m.completeFn(ctx, prompt, opts)
}

func (m *mockProvider) GetProviderName() string {
	return "mock"
}

type mockPromptManager struct {
	getTemplatesFn func() map[string]map[string]*template.Template
}

func (m *mockPromptManager) BuildPrompt(mode, variant string, data interface{}) (string, error) {
	return "mock prompt", nil
}

func (m *mockPromptManager) GetTemplates() map[string]map[string]*template.Template {
	if m.getTemplatesFn == nil {
		return map[string]map[string]*template.Template{
			"questions": {
				"default": template.Must(template.New("test").Parse("test")),
			},
		}
	}
	return m.getTemplatesFn()
}

// serveValidated runs h behind the validation middleware for T, optionally
// as an authenticated caller.
func serveValidated[T middleware.Validator](h http.HandlerFunc, method, body, authID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", bytes.NewBufferString(body))
	if authID != "" {
		req = req.WithContext(middleware.WithAuthID(req.Context(), authID))
	}
	rec := httptest.NewRecorder()
	middleware.ValidateRequest[T]()(h).ServeHTTP(rec, req)
	return rec
}

func serveAuthed(h http.HandlerFunc, method, target, authID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if authID != "" {
		req = req.WithContext(middleware.WithAuthID(req.Context(), authID))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return resp
}
