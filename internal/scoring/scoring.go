// Package scoring grades a submitted quiz and maps category performance onto
// career domains.
package scoring

import (
	"math"

	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/utils"
)

type weights struct {
	programming float64
	analytics   float64
	testing     float64
	technical   float64
}

var (
	programmingWeights = weights{programming: 3.5, technical: 1}
	reasoningWeights   = weights{analytics: 3, testing: 1.5}
	coreCSWeights      = weights{technical: 2.5, testing: 2, programming: 1}
)

// category labels, including legacy spellings, per weight group
var categoryWeights = map[string]weights{
	"programming":        programmingWeights,
	"python programming": programmingWeights,
	"python":             programmingWeights,
	"python_programming": programmingWeights,

	"aptitude": reasoningWeights,
	"verbal":   reasoningWeights,

	"os":                coreCSWeights,
	"dbms":              coreCSWeights,
	"networks":          coreCSWeights,
	"network":           coreCSWeights,
	"computer networks": coreCSWeights,
	"computer_networks": coreCSWeights,
}

var displayNames = map[string]string{
	models.DomainProgramming: "Programmer/Developer",
	models.DomainAnalytics:   "Analytics",
	models.DomainTesting:     "Software Testing (QA)",
	models.DomainTechnical:   "Technical Support/Engineering",
}

// Evaluation is everything derived from one submission.
type Evaluation struct {
	Scores         models.DomainScores
	Breakdown      models.CategoryBreakdown
	TotalCorrect   int
	TotalQuestions int
	Percentage     float64
	Results        []models.QuestionResult
}

// Evaluate grades questions against answers keyed by question id. A missing
// answer counts as incorrect. Results follow the order of questions; every
// other field is independent of it.
func Evaluate(questions []models.Question, answers map[string]int) Evaluation {
	eval := Evaluation{
		Breakdown:      make(models.CategoryBreakdown),
		TotalQuestions: len(questions),
		Results:        make([]models.QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		category := utils.NormalizeCategory(q.Category)
		tally, ok := eval.Breakdown[category]
		if !ok {
			tally = &models.CategoryTally{}
			eval.Breakdown[category] = tally
		}
		tally.Total++

		result := models.QuestionResult{
			ID:            q.ID,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Category:      q.Category,
			Explanation:   q.Explanation,
		}

		if answer, answered := answers[q.ID]; answered {
			a := answer
			result.UserAnswer = &a
			result.IsCorrect = answer == q.CorrectAnswer
		}

		if result.IsCorrect {
			eval.TotalCorrect++
			tally.Correct++
			addWeights(&eval.Scores, categoryWeights[category])
		}
		eval.Results = append(eval.Results, result)
	}

	eval.Percentage = Percentage(eval.TotalCorrect, eval.TotalQuestions)
	return eval
}

func addWeights(scores *models.DomainScores, w weights) {
	scores.Programming += w.programming
	scores.Analytics += w.analytics
	scores.Testing += w.testing
	scores.Technical += w.technical
}

// Recommend returns the highest scoring domain. Ties go to the earlier domain
// in models.Domains, so an all-zero vector yields programming.
func Recommend(scores models.DomainScores) string {
	best := models.Domains[0]
	for _, domain := range models.Domains[1:] {
		if scores.Get(domain) > scores.Get(best) {
			best = domain
		}
	}
	return best
}

// Percentage is correct/total as a percentage rounded to two decimals.
func Percentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(correct) / float64(total) * 100)
}

// DisplayName returns the human-facing name of a domain key.
func DisplayName(domain string) string {
	if name, ok := displayNames[domain]; ok {
		return name
	}
	return domain
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
