package models

import "time"

// uniform error responses
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// raw completion returned by an LLM provider
type GenerationResponse struct {
	Content  string             `json:"content"`
	Metadata GenerationMetadata `json:"metadata"`
}

type GenerationMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}

type UserResponse struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
}

type QuizResponse struct {
	QuizID    string     `json:"quiz_id"`
	Questions []Question `json:"questions"`
	Total     int        `json:"total"`
	Source    string     `json:"source"`
}

// QuestionResult is the per-question outcome of a submission.
type QuestionResult struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	UserAnswer    *int     `json:"user_answer"`
	CorrectAnswer int      `json:"correct_answer"`
	IsCorrect     bool     `json:"is_correct"`
	Category      string   `json:"category"`
	Explanation   string   `json:"explanation"`
}

type EvaluationResponse struct {
	ResultID             string            `json:"result_id"`
	TotalScore           int               `json:"total_score"`
	TotalQuestions       int               `json:"total_questions"`
	Percentage           float64           `json:"percentage"`
	DomainScores         DomainScores      `json:"domain_scores"`
	RecommendedDomain    string            `json:"recommended_domain"`
	RecommendedDomainKey string            `json:"recommended_domain_key"`
	CategoryBreakdown    CategoryBreakdown `json:"category_breakdown"`
	QuestionResults      []QuestionResult  `json:"question_results"`
	Insights             InsightReport     `json:"ai_insights"`
}

// SharedResult is the public view of a result.
type SharedResult struct {
	ResultID          string         `json:"result_id"`
	UserName          string         `json:"user_name"`
	QuizID            string         `json:"quiz_id"`
	TotalScore        int            `json:"total_score"`
	TotalQuestions    int            `json:"total_questions"`
	Percentage        float64        `json:"percentage"`
	DomainScores      DomainScores   `json:"domain_scores"`
	RecommendedDomain string         `json:"recommended_domain"`
	Insights          *InsightReport `json:"ai_insights"`
	CreatedAt         time.Time      `json:"created_at"`
}

type ProfileUser struct {
	ID          string    `json:"id"`
	AuthID      string    `json:"auth_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Degree      string    `json:"degree"`
	MemberSince time.Time `json:"member_since"`
}

type ProfileStats struct {
	TotalAttempts      int            `json:"total_attempts"`
	CompletedQuizzes   int            `json:"completed_quizzes"`
	AverageScore       float64        `json:"average_score"`
	BestScore          int            `json:"best_score"`
	LatestDomain       *string        `json:"latest_domain"`
	LastAttempt        *time.Time     `json:"last_attempt"`
	DomainDistribution map[string]int `json:"domain_distribution"`
}

type RecentResult struct {
	ID                string         `json:"id"`
	TotalScore        int            `json:"total_score"`
	Percentage        float64        `json:"percentage"`
	RecommendedDomain string         `json:"recommended_domain"`
	CompletedAt       time.Time      `json:"completed_at"`
	Insights          *InsightReport `json:"ai_insights"`
}

type ProfileResponse struct {
	User          ProfileUser    `json:"user"`
	Stats         ProfileStats   `json:"stats"`
	RecentResults []RecentResult `json:"recent_results"`
}

type Attempt struct {
	ID                string         `json:"id"`
	TotalScore        int            `json:"total_score"`
	Percentage        float64        `json:"percentage"`
	DomainScores      DomainScores   `json:"domain_scores"`
	RecommendedDomain string         `json:"recommended_domain"`
	CompletedAt       time.Time      `json:"completed_at"`
	Insights          *InsightReport `json:"ai_insights"`
	Difficulty        string         `json:"difficulty"`
	Language          string         `json:"language"`
}

type AttemptsResponse struct {
	Attempts []Attempt `json:"attempts"`
}

type ImprovementPoint struct {
	Attempt     int       `json:"attempt"`
	Date        time.Time `json:"date"`
	Total       int       `json:"total"`
	Programming float64   `json:"programming"`
	Analytics   float64   `json:"analytics"`
	Testing     float64   `json:"testing"`
	Technical   float64   `json:"technical"`
}

type ImprovementResponse struct {
	Data []ImprovementPoint `json:"data"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
