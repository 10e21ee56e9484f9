package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"careerquiz/backend/internal/insights"
	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/questions"
	"careerquiz/backend/internal/repositories"
	"careerquiz/backend/internal/scoring"
	"careerquiz/backend/internal/utils"
)

// ErrQuizAlreadySubmitted is returned when a quiz already has a result.
var ErrQuizAlreadySubmitted = errors.New("quiz already submitted")

// QuestionGenerator produces a complete question batch.
type QuestionGenerator interface {
	Generate(ctx context.Context, params questions.GenerateParams) questions.Batch
}

// InsightGenerator produces a career report for a scored submission.
type InsightGenerator interface {
	Generate(ctx context.Context, in insights.Input) models.InsightReport
}

type QuizService struct {
	questions QuestionGenerator
	insights  InsightGenerator
	users     *repositories.UserRepository
	quizzes   *repositories.QuizRepository
	results   *repositories.ResultRepository
	logger    *zap.Logger
}

func NewQuizService(
	questionGen QuestionGenerator,
	insightGen InsightGenerator,
	users *repositories.UserRepository,
	quizzes *repositories.QuizRepository,
	results *repositories.ResultRepository,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		questions: questionGen,
		insights:  insightGen,
		users:     users,
		quizzes:   quizzes,
		results:   results,
		logger:    utils.LoggerOrDefault(logger),
	}
}

// Generate builds a quiz for the user and persists it. Returned question ids
// are the stored ids that answers must be keyed by.
func (s *QuizService) Generate(ctx context.Context, authID string, req *models.GenerateQuizRequest) (*models.QuizResponse, error) {
	user, err := s.users.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}

	supportsOOP := models.SupportsOOP(req.Language)
	batch := s.questions.Generate(ctx, questions.GenerateParams{
		Difficulty:  req.Difficulty,
		Language:    req.Language,
		SupportsOOP: supportsOOP,
	})

	rows := make([]models.QuizQuestion, 0, len(batch.Questions))
	for _, q := range batch.Questions {
		row, err := models.NewQuizQuestion(q)
		if err != nil {
			return nil, fmt.Errorf("encode question %s: %w", q.ID, err)
		}
		rows = append(rows, row)
	}

	session := &models.QuizSession{
		UserID:      user.ID,
		Difficulty:  req.Difficulty,
		Language:    req.Language,
		SupportsOOP: supportsOOP,
		Source:      batch.Source,
	}
	if err := s.quizzes.Create(ctx, session, rows); err != nil {
		return nil, fmt.Errorf("store quiz: %w", err)
	}

	out := make([]models.Question, 0, len(rows))
	for i := range rows {
		q, err := rows[i].ToQuestion()
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}

	s.logger.Info("Quiz created",
		zap.String("quiz_id", session.ID),
		zap.String("user_id", user.ID),
		zap.String("source", batch.Source),
		zap.Int("questions", len(out)))

	return &models.QuizResponse{
		QuizID:    session.ID,
		Questions: out,
		Total:     len(out),
		Source:    batch.Source,
	}, nil
}

// Submit scores the caller's answers, attaches insights, and stores the
// result. A quiz can be submitted once.
func (s *QuizService) Submit(ctx context.Context, authID string, req *models.SubmitQuizRequest) (*models.EvaluationResponse, error) {
	user, err := s.users.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}

	session, err := s.quizzes.GetForUser(ctx, req.QuizID, user.ID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionCompleted {
		return nil, ErrQuizAlreadySubmitted
	}

	stored := make([]models.Question, 0, len(session.Questions))
	for i := range session.Questions {
		q, err := session.Questions[i].ToQuestion()
		if err != nil {
			return nil, fmt.Errorf("decode question %s: %w", session.Questions[i].ID, err)
		}
		stored = append(stored, q)
	}

	eval := scoring.Evaluate(stored, req.Answers)
	domain := scoring.Recommend(eval.Scores)

	report := s.insights.Generate(ctx, insights.Input{
		Scores:         eval.Scores,
		TotalCorrect:   eval.TotalCorrect,
		TotalQuestions: eval.TotalQuestions,
		Domain:         domain,
		Breakdown:      eval.Breakdown,
	})

	insightsJSON, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	breakdownJSON, err := json.Marshal(eval.Breakdown)
	if err != nil {
		return nil, err
	}

	result := &models.Result{
		UserID:            user.ID,
		QuizID:            session.ID,
		TotalScore:        eval.TotalCorrect,
		TotalQuestions:    eval.TotalQuestions,
		ProgrammingScore:  eval.Scores.Programming,
		AnalyticsScore:    eval.Scores.Analytics,
		TestingScore:      eval.Scores.Testing,
		TechnicalScore:    eval.Scores.Technical,
		RecommendedDomain: domain,
		Insights:          datatypes.JSON(insightsJSON),
		CategoryBreakdown: datatypes.JSON(breakdownJSON),
	}
	if err := s.results.Complete(ctx, result); err != nil {
		if errors.Is(err, repositories.ErrQuizCompleted) {
			return nil, ErrQuizAlreadySubmitted
		}
		return nil, fmt.Errorf("store result: %w", err)
	}

	s.logger.Info("Quiz evaluated",
		zap.String("quiz_id", session.ID),
		zap.String("result_id", result.ID),
		zap.Int("total_correct", eval.TotalCorrect),
		zap.String("domain", domain))

	return &models.EvaluationResponse{
		ResultID:             result.ID,
		TotalScore:           eval.TotalCorrect,
		TotalQuestions:       eval.TotalQuestions,
		Percentage:           eval.Percentage,
		DomainScores:         eval.Scores,
		RecommendedDomain:    scoring.DisplayName(domain),
		RecommendedDomainKey: domain,
		CategoryBreakdown:    eval.Breakdown,
		QuestionResults:      eval.Results,
		Insights:             report,
	}, nil
}
