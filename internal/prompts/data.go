package prompts

// template modes
const (
	ModeQuestions = "questions"
	ModeInsights  = "insights"

	DefaultVariant = "default"
)

// fields referenced by templates/questions.yaml
type QuestionPromptData struct {
	Count       int
	PerCategory int
	Remaining   int
	Difficulty  string
	Language    string
	SupportsOOP bool
}

// fields referenced by templates/insights.yaml
type InsightPromptData struct {
	TotalCorrect   int
	TotalQuestions int
	Percentage     int
	Domain         string
	ScoresJSON     string
	BreakdownJSON  string
}
