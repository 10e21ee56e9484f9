package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerquiz/backend/internal/models"
)

func quiz() []models.Question {
	var out []models.Question
	for _, category := range models.Categories {
		for i := 0; i < 5; i++ {
			out = append(out, models.Question{
				ID:            fmt.Sprintf("%s-%d", category, i),
				Question:      "Q?",
				Options:       []string{"a", "b", "c", "d"},
				CorrectAnswer: i % 4,
				Category:      category,
			})
		}
	}
	return out
}

// answerCorrectly answers the first n questions of each listed category correctly.
func answerCorrectly(questions []models.Question, perCategory map[string]int) map[string]int {
	answers := map[string]int{}
	seen := map[string]int{}
	for _, q := range questions {
		if seen[q.Category] < perCategory[q.Category] {
			answers[q.ID] = q.CorrectAnswer
			seen[q.Category]++
		} else {
			answers[q.ID] = (q.CorrectAnswer + 1) % 4
		}
	}
	return answers
}

func TestEvaluateMixedSubmission(t *testing.T) {
	questions := quiz()
	// 20 correct: 5 programming, 5 aptitude, 5 os, 5 dbms
	answers := answerCorrectly(questions, map[string]int{
		models.CategoryProgramming: 5,
		models.CategoryAptitude:    5,
		models.CategoryOS:          5,
		models.CategoryDBMS:        5,
	})

	eval := Evaluate(questions, answers)

	assert.Equal(t, 20, eval.TotalCorrect)
	assert.Equal(t, 30, eval.TotalQuestions)
	assert.Equal(t, 66.67, eval.Percentage)
	assert.Equal(t, models.DomainScores{
		Programming: 5*3.5 + 10*1,
		Analytics:   5 * 3,
		Testing:     5*1.5 + 10*2,
		Technical:   5*1 + 10*2.5,
	}, eval.Scores)
	assert.Equal(t, models.DomainTechnical, Recommend(eval.Scores))

	assert.Equal(t, &models.CategoryTally{Correct: 5, Total: 5}, eval.Breakdown[models.CategoryOS])
	assert.Equal(t, &models.CategoryTally{Correct: 0, Total: 5}, eval.Breakdown[models.CategoryNetworks])
	assert.Len(t, eval.Results, 30)
}

func TestEvaluateProgrammingHeavyScenario(t *testing.T) {
	var questions []models.Question
	add := func(category string, n int) {
		for i := 0; i < n; i++ {
			questions = append(questions, models.Question{
				ID:            fmt.Sprintf("%s-%d", category, i),
				Options:       []string{"a", "b", "c", "d"},
				CorrectAnswer: 1,
				Category:      category,
			})
		}
	}
	add(models.CategoryProgramming, 10)
	add(models.CategoryAptitude, 5)
	add(models.CategoryOS, 5)
	add(models.CategoryDBMS, 5)
	add(models.CategoryVerbal, 5)

	answers := map[string]int{}
	for _, q := range questions[:20] {
		answers[q.ID] = 1
	}
	for _, q := range questions[20:] {
		answers[q.ID] = 2
	}

	eval := Evaluate(questions, answers)
	assert.Equal(t, 20, eval.TotalCorrect)
	assert.Equal(t, 66.67, eval.Percentage)
	assert.Equal(t, 40.0, eval.Scores.Programming)
	assert.Equal(t, 15.0, eval.Scores.Analytics)
	assert.Equal(t, 17.5, eval.Scores.Testing)
	// 5 os at 2.5 plus 10 programming at 1
	assert.Equal(t, 22.5, eval.Scores.Technical)
	assert.Equal(t, models.DomainProgramming, Recommend(eval.Scores))
}

func TestEvaluateSpreadScenario(t *testing.T) {
	// 20 correct spread as 5 programming, 5 aptitude, 5 verbal, and 5 networks.
	questions := quiz()
	answers := answerCorrectly(questions, map[string]int{
		models.CategoryProgramming: 5,
		models.CategoryAptitude:    5,
		models.CategoryVerbal:      5,
		models.CategoryNetworks:    5,
	})

	eval := Evaluate(questions, answers)
	assert.Equal(t, 66.67, eval.Percentage)
	assert.Equal(t, 22.5, eval.Scores.Programming)
	assert.Equal(t, 30.0, eval.Scores.Analytics)
	assert.Equal(t, 25.0, eval.Scores.Testing)
	assert.Equal(t, 17.5, eval.Scores.Technical)
	assert.Equal(t, models.DomainAnalytics, Recommend(eval.Scores))
}

func TestEvaluateMissingAnswersAreIncorrect(t *testing.T) {
	questions := quiz()
	eval := Evaluate(questions, map[string]int{})

	assert.Zero(t, eval.TotalCorrect)
	assert.Zero(t, eval.Percentage)
	assert.Equal(t, models.DomainScores{}, eval.Scores)
	for _, r := range eval.Results {
		assert.Nil(t, r.UserAnswer)
		assert.False(t, r.IsCorrect)
	}
	assert.Equal(t, models.DomainProgramming, Recommend(eval.Scores))
}

func TestEvaluateRecordsUserAnswer(t *testing.T) {
	questions := quiz()[:1]
	eval := Evaluate(questions, map[string]int{questions[0].ID: 3})

	require.Len(t, eval.Results, 1)
	require.NotNil(t, eval.Results[0].UserAnswer)
	assert.Equal(t, 3, *eval.Results[0].UserAnswer)
	assert.False(t, eval.Results[0].IsCorrect)
	assert.Equal(t, questions[0].ID, eval.Results[0].ID)
}

func TestEvaluateIsOrderIndependent(t *testing.T) {
	questions := quiz()
	answers := answerCorrectly(questions, map[string]int{
		models.CategoryProgramming: 3,
		models.CategoryVerbal:      2,
		models.CategoryNetworks:    4,
		models.CategoryDBMS:        1,
	})

	reversed := make([]models.Question, len(questions))
	for i, q := range questions {
		reversed[len(questions)-1-i] = q
	}

	first := Evaluate(questions, answers)
	again := Evaluate(questions, answers)
	flipped := Evaluate(reversed, answers)

	assert.Equal(t, first.Scores, again.Scores)
	assert.Equal(t, first.Scores, flipped.Scores)
	assert.Equal(t, first.Breakdown, flipped.Breakdown)
	assert.Equal(t, first.TotalCorrect, flipped.TotalCorrect)
	assert.Equal(t, questions[0].ID, first.Results[0].ID)
	assert.Equal(t, reversed[0].ID, flipped.Results[0].ID)
}

func TestEvaluateLegacyCategorySpellings(t *testing.T) {
	questions := []models.Question{
		{ID: "1", Category: "Python Programming", CorrectAnswer: 0},
		{ID: "2", Category: "computer_networks", CorrectAnswer: 0},
		{ID: "3", Category: "history", CorrectAnswer: 0},
	}
	eval := Evaluate(questions, map[string]int{"1": 0, "2": 0, "3": 0})

	assert.Equal(t, 3, eval.TotalCorrect)
	assert.Equal(t, models.DomainScores{Programming: 4.5, Testing: 2, Technical: 3.5}, eval.Scores)
	assert.Equal(t, &models.CategoryTally{Correct: 1, Total: 1}, eval.Breakdown["history"])
}

func TestRecommendTieBreak(t *testing.T) {
	tests := []struct {
		name   string
		scores models.DomainScores
		want   string
	}{
		{"all zero", models.DomainScores{}, models.DomainProgramming},
		{"programming ties analytics", models.DomainScores{Programming: 3, Analytics: 3}, models.DomainProgramming},
		{"analytics ties testing", models.DomainScores{Analytics: 4, Testing: 4, Technical: 1}, models.DomainAnalytics},
		{"testing ties technical", models.DomainScores{Testing: 2, Technical: 2}, models.DomainTesting},
		{"technical wins", models.DomainScores{Programming: 1, Technical: 1.5}, models.DomainTechnical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(tt.scores))
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(5, 0))
	assert.Equal(t, 100.0, Percentage(30, 30))
	assert.Equal(t, 33.33, Percentage(10, 30))
	assert.Equal(t, 66.67, Percentage(20, 30))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Programmer/Developer", DisplayName(models.DomainProgramming))
	assert.Equal(t, "Analytics", DisplayName(models.DomainAnalytics))
	assert.Equal(t, "Software Testing (QA)", DisplayName(models.DomainTesting))
	assert.Equal(t, "Technical Support/Engineering", DisplayName(models.DomainTechnical))
	assert.Equal(t, "unknown", DisplayName("unknown"))
}
