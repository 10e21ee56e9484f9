// Package questions turns model output into a fixed-size, validated quiz
// batch, falling back to a static catalog when the model cannot deliver.
package questions

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"careerquiz/backend/internal/jsonrepair"
	"careerquiz/backend/internal/llm"
	"careerquiz/backend/internal/metrics"
	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/prompts"
	"careerquiz/backend/internal/ratelimit"
	"careerquiz/backend/internal/utils"
)

const (
	// BatchSize is the number of questions in every quiz.
	BatchSize = 30
	// MinUsable is the smallest valid yield that is padded rather than discarded.
	MinUsable = 25
	// PerCategory is how many questions each category contributes.
	PerCategory = 5
)

// batch sources
const (
	SourceAI       = "ai"
	SourcePadded   = "padded"
	SourceFallback = "fallback"
)

// batch outcomes, used as metric labels
const (
	OutcomeAccepted      = "accepted"
	OutcomePadded        = "padded"
	OutcomeInsufficient  = "insufficient"
	OutcomeMalformed     = "malformed"
	OutcomeProviderError = "provider_error"
	OutcomePromptError   = "prompt_error"
)

const pipelineName = "questions"

var generationOptions = llm.GenerationOptions{
	Temperature:     0.9,
	TopP:            0.95,
	MaxOutputTokens: 8192,
}

// GenerateParams describes the quiz being requested.
type GenerateParams struct {
	Difficulty  string
	Language    string
	SupportsOOP bool
}

// Batch is a complete quiz of BatchSize questions and where it came from.
type Batch struct {
	Questions []models.Question
	Source    string
}

type Pipeline struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	limiter  *ratelimit.Limiter
	logger   *zap.Logger
}

func NewPipeline(provider llm.Provider, promptProvider prompts.PromptProvider, limiter *ratelimit.Limiter, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		provider: provider,
		prompts:  promptProvider,
		limiter:  limiter,
		logger:   utils.LoggerOrDefault(logger),
	}
}

// Generate always returns exactly BatchSize questions. Failures along the
// way degrade to the fallback catalog instead of surfacing an error.
func (p *Pipeline) Generate(ctx context.Context, params GenerateParams) Batch {
	language := strings.TrimSpace(params.Language)
	if language == "" {
		language = models.DefaultLanguage
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			p.logger.Warn("Rate limiter wait aborted", zap.Error(err))
			return p.fallback(language, OutcomeProviderError)
		}
	}

	prompt, err := p.prompts.BuildPrompt(prompts.ModeQuestions, prompts.DefaultVariant, prompts.QuestionPromptData{
		Count:       BatchSize,
		PerCategory: PerCategory,
		Remaining:   BatchSize - 2,
		Difficulty:  promptDifficulty(params.Difficulty),
		Language:    language,
		SupportsOOP: params.SupportsOOP,
	})
	if err != nil {
		p.logger.Error("Failed to build question prompt", zap.Error(err))
		return p.fallback(language, OutcomePromptError)
	}

	start := time.Now()
	resp, err := p.provider.Complete(ctx, prompt, generationOptions)
	metrics.ObserveModelCall(pipelineName, err, time.Since(start))
	if err != nil {
		p.logger.Warn("Question generation failed, serving fallback",
			zap.String("provider", p.provider.GetProviderName()),
			zap.String("code", llm.ErrorCode(err)),
			zap.Error(err))
		return p.fallback(language, OutcomeProviderError)
	}

	elems, err := jsonrepair.RepairArray(utils.ExtractJSON(resp.Content, '['))
	if err != nil {
		p.logger.Warn("Unparseable question payload, serving fallback",
			zap.Int("response_length", len(resp.Content)),
			zap.Error(err))
		return p.fallback(language, OutcomeMalformed)
	}

	counters := make(map[string]int, len(models.Categories))
	valid := make([]models.Question, 0, BatchSize)
	for i, raw := range elems {
		verdict := Validate(raw)
		if !verdict.Valid() {
			metrics.ObserveRejectedQuestion()
			p.logger.Info("Dropping invalid question", zap.Int("index", i), zap.String("reason", verdict.Reason))
			continue
		}
		q := *verdict.Question
		counters[q.Category]++
		q.ID = syntheticID(q.Category, counters[q.Category])
		valid = append(valid, q)
	}

	count := len(valid)
	switch {
	case count >= BatchSize:
		metrics.ObserveQuestionBatch(OutcomeAccepted, count)
		p.logger.Info("Question batch accepted", zap.Int("valid", count), zap.Int("decoded", len(elems)))
		return Batch{Questions: valid[:BatchSize], Source: SourceAI}

	case count >= MinUsable:
		padded := pad(valid, counters, language)
		metrics.ObserveQuestionBatch(OutcomePadded, count)
		p.logger.Info("Question batch padded from fallback",
			zap.Int("valid", count),
			zap.Int("padded", BatchSize-count))
		return Batch{Questions: padded, Source: SourcePadded}

	default:
		metrics.ObserveQuestionBatch(OutcomeInsufficient, count)
		p.logger.Warn("Too few valid questions, serving fallback", zap.Int("valid", count), zap.Int("min_usable", MinUsable))
		return Batch{Questions: Fallback(language), Source: SourceFallback}
	}
}

func (p *Pipeline) fallback(language, outcome string) Batch {
	metrics.ObserveQuestionBatch(outcome, -1)
	return Batch{Questions: Fallback(language), Source: SourceFallback}
}

// pad tops valid up to BatchSize with catalog entries taken from the front,
// continuing the per-category counters so ids stay unique.
func pad(valid []models.Question, counters map[string]int, language string) []models.Question {
	out := make([]models.Question, 0, BatchSize)
	out = append(out, valid...)
	for _, q := range Fallback(language) {
		if len(out) == BatchSize {
			break
		}
		counters[q.Category]++
		q.ID = syntheticID(q.Category, counters[q.Category])
		out = append(out, q)
	}
	return out
}

// promptDifficulty maps client difficulty onto the wording the prompt uses.
func promptDifficulty(difficulty string) string {
	switch utils.NormalizeDifficulty(difficulty) {
	case models.DifficultyEasy:
		return "easy"
	case models.DifficultyHard:
		return "hard"
	default:
		return "medium"
	}
}
