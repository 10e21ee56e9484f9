package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"careerquiz/backend/internal/models"
)

type testProvider struct {
	timeout time.Duration
}

func (testProvider) Complete(context.Context, string, GenerationOptions) (*models.GenerationResponse, error) {
	return &models.GenerationResponse{Content: "ok"}, nil
}
func (testProvider) GetProviderName() string { return "test" }

func TestProviderErrorError(t *testing.T) {
	err := &ProviderError{Provider: "gemini", Message: "failed"}
	if err.Error() != "gemini error: failed" {
		t.Fatalf("unexpected error message: %s", err.Error())
	}

	wrapped := &ProviderError{Provider: "gemini", Message: "failed", Err: errors.New("detail")}
	if got := wrapped.Error(); got != "gemini error: failed (detail)" {
		t.Fatalf("unexpected wrapped error message: %s", got)
	}
}

func TestProviderErrorUnwrapAndCode(t *testing.T) {
	err := fmt.Errorf("generate: %w", &ProviderError{
		Provider: "gemini",
		Code:     ErrCodeTimeout,
		Message:  "deadline",
		Err:      context.DeadlineExceeded,
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("expected wrapped error to unwrap to context.DeadlineExceeded")
	}
	if code := ErrorCode(err); code != ErrCodeTimeout {
		t.Fatalf("expected timeout code, got %q", code)
	}
	if code := ErrorCode(errors.New("plain")); code != "" {
		t.Fatalf("expected empty code for plain error, got %q", code)
	}
}

func TestRegisterAndNewProvider(t *testing.T) {
	var got ProviderOptions
	RegisterProvider("test_provider", func(opts ProviderOptions) (Provider, error) {
		got = opts
		return testProvider{timeout: opts.Timeout}, nil
	})
	defer delete(providers, "test_provider")

	provider, err := NewProvider("test_provider", ProviderOptions{Timeout: 3 * time.Second})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	if name := provider.GetProviderName(); name != "test" {
		t.Fatalf("expected provider name test, got %s", name)
	}
	if got.Timeout != 3*time.Second {
		t.Fatalf("expected options to reach the factory, got %+v", got)
	}

	found := false
	for _, name := range RegisteredProviders() {
		if name == "test_provider" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected test_provider to be listed")
	}

	if _, err := NewProvider("missing", ProviderOptions{}); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}
