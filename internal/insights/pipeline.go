// Package insights asks the model for a narrative career report on a scored
// quiz and substitutes a fixed report when that fails.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"careerquiz/backend/internal/llm"
	"careerquiz/backend/internal/metrics"
	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/prompts"
	"careerquiz/backend/internal/ratelimit"
	"careerquiz/backend/internal/utils"
)

// report outcomes, used as metric labels
const (
	OutcomeAI       = "ai"
	OutcomeFallback = "fallback"
)

const pipelineName = "insights"

var generationOptions = llm.GenerationOptions{
	Temperature:     0.8,
	MaxOutputTokens: 2048,
}

var errNotObject = errors.New("insight payload is not a JSON object")

// Input is the scored submission the report describes. Domain is the
// recommended domain key.
type Input struct {
	Scores         models.DomainScores
	TotalCorrect   int
	TotalQuestions int
	Domain         string
	Breakdown      models.CategoryBreakdown
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

// Generate returns the model's report, or Fallback when any step fails.
func (p *Pipeline) Generate(ctx context.Context, in Input) models.InsightReport {
	report, err := p.generate(ctx, in)
	if err != nil {
		p.logger.Warn("Insight generation failed, serving fallback",
			zap.String("domain", in.Domain),
			zap.String("code", llm.ErrorCode(err)),
			zap.Error(err))
		metrics.ObserveInsightReport(OutcomeFallback)
		return Fallback(in.Domain, in.TotalCorrect, in.TotalQuestions)
	}
	metrics.ObserveInsightReport(OutcomeAI)
	return report
}

func (p *Pipeline) generate(ctx context.Context, in Input) (models.InsightReport, error) {
	var report models.InsightReport

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return report, err
		}
	}

	scoresJSON, err := json.Marshal(in.Scores)
	if err != nil {
		return report, err
	}
	breakdown := in.Breakdown
	if breakdown == nil {
		breakdown = models.CategoryBreakdown{}
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return report, err
	}

	prompt, err := p.prompts.BuildPrompt(prompts.ModeInsights, prompts.DefaultVariant, prompts.InsightPromptData{
		TotalCorrect:   in.TotalCorrect,
		TotalQuestions: in.TotalQuestions,
		Percentage:     wholePercent(in.TotalCorrect, in.TotalQuestions),
		Domain:         in.Domain,
		ScoresJSON:     string(scoresJSON),
		BreakdownJSON:  string(breakdownJSON),
	})
	if err != nil {
		return report, err
	}

	start := time.Now()
	resp, err := p.provider.Complete(ctx, prompt, generationOptions)
	metrics.ObserveModelCall(pipelineName, err, time.Since(start))
	if err != nil {
		return report, err
	}

	return parseReport(utils.ExtractJSON(resp.Content, '{'))
}

// parseReport strictly decodes the leading object; truncated output is not
// repaired and anything after the object is ignored.
func parseReport(text string) (models.InsightReport, error) {
	var report models.InsightReport
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return report, errNotObject
	}
	if err := json.NewDecoder(bytes.NewReader(trimmed)).Decode(&report); err != nil {
		return models.InsightReport{}, err
	}
	return report, nil
}

func wholePercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
