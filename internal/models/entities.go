package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is a quiz taker, keyed externally by the auth provider's subject.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	AuthID    string    `gorm:"uniqueIndex;not null" json:"auth_id"`
	Email     string    `gorm:"not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	Degree    string    `gorm:"not null;default:'B.Tech'" json:"degree"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// QuizSession is one generated quiz awaiting or holding a submission.
type QuizSession struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	UserID      string         `gorm:"size:36;not null;index" json:"user_id"`
	Difficulty  string         `gorm:"not null" json:"difficulty"`
	Language    string         `gorm:"not null" json:"language"`
	SupportsOOP bool           `gorm:"not null;default:false" json:"supports_oop"`
	Status      string         `gorm:"not null;default:'in_progress';index" json:"status"`
	Source      string         `gorm:"not null" json:"source"`
	Questions   []QuizQuestion `gorm:"foreignKey:QuizID" json:"-"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

func (s *QuizSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// QuizQuestion is a persisted Question belonging to a session.
type QuizQuestion struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	QuizID        string         `gorm:"size:36;not null;index" json:"quiz_id"`
	Position      int            `gorm:"not null" json:"position"`
	Question      string         `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSON `gorm:"not null" json:"options"`
	CorrectAnswer int            `gorm:"not null" json:"correct_answer"`
	Category      string         `gorm:"not null" json:"category"`
	Explanation   string         `gorm:"type:text" json:"explanation"`
}

func (q *QuizQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// NewQuizQuestion converts a generated question into a row. The synthetic
// id is dropped; the row gets its own id on insert.
func NewQuizQuestion(q Question) (QuizQuestion, error) {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return QuizQuestion{}, err
	}
	return QuizQuestion{
		Question:      q.Question,
		Options:       datatypes.JSON(options),
		CorrectAnswer: q.CorrectAnswer,
		Category:      q.Category,
		Explanation:   q.Explanation,
	}, nil
}

// ToQuestion converts a stored row back into a Question keyed by the row id.
func (q *QuizQuestion) ToQuestion() (Question, error) {
	var options []string
	if len(q.Options) > 0 {
		if err := json.Unmarshal(q.Options, &options); err != nil {
			return Question{}, err
		}
	}
	return Question{
		ID:            q.ID,
		Question:      q.Question,
		Options:       options,
		CorrectAnswer: q.CorrectAnswer,
		Category:      q.Category,
		Explanation:   q.Explanation,
	}, nil
}

// Result is the scored outcome of a submitted quiz.
type Result struct {
	ID                string         `gorm:"primaryKey;size:36" json:"id"`
	UserID            string         `gorm:"size:36;not null;index" json:"user_id"`
	QuizID            string         `gorm:"size:36;not null;uniqueIndex" json:"quiz_id"`
	TotalScore        int            `gorm:"not null" json:"total_score"`
	TotalQuestions    int            `gorm:"not null" json:"total_questions"`
	ProgrammingScore  float64        `gorm:"not null;default:0" json:"programming_score"`
	AnalyticsScore    float64        `gorm:"not null;default:0" json:"analytics_score"`
	TestingScore      float64        `gorm:"not null;default:0" json:"testing_score"`
	TechnicalScore    float64        `gorm:"not null;default:0" json:"technical_score"`
	RecommendedDomain string         `gorm:"not null;index" json:"recommended_domain"`
	Insights          datatypes.JSON `json:"ai_insights"`
	CategoryBreakdown datatypes.JSON `json:"category_breakdown"`
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`
}

func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// DomainScores returns the per-domain weights stored on the result.
func (r *Result) DomainScores() DomainScores {
	return DomainScores{
		Programming: r.ProgrammingScore,
		Analytics:   r.AnalyticsScore,
		Testing:     r.TestingScore,
		Technical:   r.TechnicalScore,
	}
}

// AllEntities lists every table for AutoMigrate.
func AllEntities() []interface{} {
	return []interface{}{&User{}, &QuizSession{}, &QuizQuestion{}, &Result{}}
}
