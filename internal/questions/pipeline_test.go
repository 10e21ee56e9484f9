package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"text/template"

	"go.uber.org/zap"

	"careerquiz/backend/internal/llm"
	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/prompts"
	"careerquiz/backend/internal/ratelimit"
)

type mockProvider struct {
	completeFn func(ctx context.Context, prompt string, opts llm.GenerationOptions) (*models.GenerationResponse, error)
	prompts    []string
	opts       []llm.GenerationOptions
}

func (m *mockProvider) Complete(ctx context.Context, prompt string, opts llm.GenerationOptions) (*models.GenerationResponse, error) {
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	return m.completeFn(ctx, prompt, opts)
}

func (m *mockProvider) GetProviderName() string { return "mock" }

type failingPrompts struct{}

func (failingPrompts) BuildPrompt(string, string, interface{}) (string, error) {
	return "", errors.New("no templates")
}

func (failingPrompts) GetTemplates() map[string]map[string]*template.Template { return nil }

func respondWith(content string) func(context.Context, string, llm.GenerationOptions) (*models.GenerationResponse, error) {
	return func(context.Context, string, llm.GenerationOptions) (*models.GenerationResponse, error) {
		return &models.GenerationResponse{Content: content}, nil
	}
}

// records builds n valid question records cycling through the categories.
func records(n int) []map[string]interface{} {
	out := make([]map[string]interface{}, n)
	for i := range out {
		out[i] = map[string]interface{}{
			"question":       fmt.Sprintf("Generated question %d?", i),
			"options":        []string{"w", "x", "y", "z"},
			"correct_answer": i % 4,
			"category":       models.Categories[i%len(models.Categories)],
		}
	}
	return out
}

func encode(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func newTestPipeline(t *testing.T, provider llm.Provider) *Pipeline {
	t.Helper()
	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("prompt manager: %v", err)
	}
	return NewPipeline(provider, pm, ratelimit.New(0, nil), zap.NewNop())
}

func assertFallback(t *testing.T, batch Batch, language string) {
	t.Helper()
	if batch.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %q", batch.Source)
	}
	want := Fallback(language)
	if len(batch.Questions) != len(want) {
		t.Fatalf("expected %d questions, got %d", len(want), len(batch.Questions))
	}
	for i := range want {
		if batch.Questions[i].ID != want[i].ID || batch.Questions[i].Question != want[i].Question {
			t.Fatalf("question %d differs from fallback: %+v", i, batch.Questions[i])
		}
	}
}

func TestGenerateAcceptsFullBatch(t *testing.T) {
	provider := &mockProvider{completeFn: respondWith(encode(t, records(32)))}
	batch := newTestPipeline(t, provider).Generate(context.Background(), GenerateParams{
		Difficulty: "moderate", Language: "java", SupportsOOP: true,
	})

	if batch.Source != SourceAI {
		t.Fatalf("expected ai source, got %q", batch.Source)
	}
	if len(batch.Questions) != BatchSize {
		t.Fatalf("expected %d questions, got %d", BatchSize, len(batch.Questions))
	}
	if batch.Questions[0].ID != "os_1" || batch.Questions[6].ID != "os_2" {
		t.Fatalf("unexpected ids: %s, %s", batch.Questions[0].ID, batch.Questions[6].ID)
	}
	if batch.Questions[29].Question != "Generated question 29?" {
		t.Fatalf("expected first 30 records in order, got %q", batch.Questions[29].Question)
	}
}

func TestGenerateSendsSamplingAndPrompt(t *testing.T) {
	provider := &mockProvider{completeFn: respondWith(encode(t, records(30)))}
	newTestPipeline(t, provider).Generate(context.Background(), GenerateParams{
		Difficulty: "moderate", Language: "java", SupportsOOP: true,
	})

	if len(provider.opts) != 1 {
		t.Fatalf("expected one model call, got %d", len(provider.opts))
	}
	opts := provider.opts[0]
	if opts.Temperature != 0.9 || opts.TopP != 0.95 || opts.MaxOutputTokens != 8192 {
		t.Fatalf("unexpected sampling options: %+v", opts)
	}
	prompt := provider.prompts[0]
	for _, want := range []string{"30 medium difficulty", "java Programming", "Include 2 OOP questions."} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestGenerateOmitsOOPWhenUnsupported(t *testing.T) {
	provider := &mockProvider{completeFn: respondWith(encode(t, records(30)))}
	newTestPipeline(t, provider).Generate(context.Background(), GenerateParams{Difficulty: "hard", Language: "c"})

	if strings.Contains(provider.prompts[0], "OOP") {
		t.Fatalf("prompt should not mention OOP:\n%s", provider.prompts[0])
	}
	if !strings.Contains(provider.prompts[0], "30 hard difficulty") {
		t.Fatalf("prompt missing difficulty:\n%s", provider.prompts[0])
	}
}

func TestGenerateStripsFencesAndRepairsTruncation(t *testing.T) {
	body := encode(t, records(31))
	// cut inside the last record
	truncated := "```json\n" + body[:len(body)-20]
	provider := &mockProvider{completeFn: respondWith(truncated)}

	batch := newTestPipeline(t, provider).Generate(context.Background(), GenerateParams{Language: "python"})
	if batch.Source != SourceAI || len(batch.Questions) != BatchSize {
		t.Fatalf("expected repaired ai batch, got %s with %d", batch.Source, len(batch.Questions))
	}
}

func TestGenerateSkipsProsePreamble(t *testing.T) {
	reply := "Here are the questions:\n```json\n" + encode(t, records(30)) + "\n```\nGood luck!"
	provider := &mockProvider{completeFn: respondWith(reply)}

	batch := newTestPipeline(t, provider).Generate(context.Background(), GenerateParams{Language: "go"})
	if batch.Source != SourceAI || len(batch.Questions) != BatchSize {
		t.Fatalf("expected ai batch despite surrounding prose, got %s with %d", batch.Source, len(batch.Questions))
	}
	if batch.Questions[0].Question != "Generated question 0?" {
		t.Fatalf("unexpected first question %q", batch.Questions[0].Question)
	}
}

func TestGeneratePadsNearMissBatch(t *testing.T) {
	// 25 valid records plus one with a bad answer index
	recs := records(25)
	bad := records(1)[0]
	bad["correct_answer"] = 7
	recs = append(recs, bad)

	provider := &mockProvider{completeFn: respondWith(encode(t, recs))}
	batch := newTestPipeline(t, provider).Generate(context.Background(), GenerateParams{Language: "go"})

	if batch.Source != SourcePadded {
		t.Fatalf("expected padded source, got %q", batch.Source)
	}
	if len(batch.Questions) != BatchSize {
		t.Fatalf("expected %d questions, got %d", BatchSize, len(batch.Questions))
	}

	// records(25) yields os_1..os_5 already, so padding continues at os_6
	padded := batch.Questions[25:]
	fb := Fallback("go")
	for i, q := range padded {
		if q.Question != fb[i].Question {
			t.Fatalf("padding %d should come from the front of the catalog, got %q", i, q.Question)
		}
	}
	if padded[0].ID != "os_6" {
		t.Fatalf("expected padding to continue counters, got %s", padded[0].ID)
	}

	seen := map[string]bool{}
	for _, q := range batch.Questions {
		if seen[q.ID] {
			t.Fatalf("duplicate id %s in padded batch", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestGenerateFallsBackOnInsufficientYield(t *testing.T) {
	provider := &mockProvider{completeFn: respondWith(encode(t, records(24)))}
	batch := newTestPipeline(t, provider).Generate(context.Background(), GenerateParams{Language: "ruby"})
	assertFallback(t, batch, "ruby")
}

func TestGenerateFallsBackOnMalformedPayload(t *testing.T) {
	provider := &mockProvider{completeFn: respondWith("I'm sorry, I can't produce that.")}
	batch := newTestPipeline(t, provider).Generate(context.Background(), GenerateParams{Language: "python"})
	assertFallback(t, batch, "python")
}

func TestGenerateFallsBackOnProviderError(t *testing.T) {
	codes := []string{llm.ErrCodeServiceDown, llm.ErrCodeTimeout, llm.ErrCodeAPIKey, llm.ErrCodeRateLimit}
	for _, code := range codes {
		provider := &mockProvider{completeFn: func(context.Context, string, llm.GenerationOptions) (*models.GenerationResponse, error) {
			return nil, &llm.ProviderError{Provider: "mock", Code: code, Message: "boom"}
		}}
		batch := newTestPipeline(t, provider).Generate(context.Background(), GenerateParams{Language: "python"})
		assertFallback(t, batch, "python")
	}
}

func TestGenerateFallsBackOnPromptError(t *testing.T) {
	provider := &mockProvider{completeFn: respondWith(encode(t, records(30)))}
	p := NewPipeline(provider, failingPrompts{}, nil, zap.NewNop())

	batch := p.Generate(context.Background(), GenerateParams{})
	assertFallback(t, batch, models.DefaultLanguage)
	if len(provider.prompts) != 0 {
		t.Fatal("provider should not be called without a prompt")
	}
}

func TestGenerateFallsBackWhenCancelledBeforeCall(t *testing.T) {
	provider := &mockProvider{completeFn: respondWith(encode(t, records(30)))}
	p := newTestPipeline(t, provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	batch := p.Generate(ctx, GenerateParams{Language: "python"})

	assertFallback(t, batch, "python")
	if len(provider.prompts) != 0 {
		t.Fatal("provider should not be called after cancellation")
	}
}

func TestPromptDifficulty(t *testing.T) {
	cases := map[string]string{
		"easy":     "easy",
		"Moderate": "medium",
		"HARD":     "hard",
		"":         "medium",
		"extreme":  "medium",
	}
	for in, want := range cases {
		if got := promptDifficulty(in); got != want {
			t.Fatalf("promptDifficulty(%q) = %q, want %q", in, got, want)
		}
	}
}
