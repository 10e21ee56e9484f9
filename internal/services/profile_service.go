package services

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/repositories"
	"careerquiz/backend/internal/scoring"
	"careerquiz/backend/internal/utils"
)

const (
	recentResultsLimit = 5
	DefaultAttempts    = 10
	MaxAttempts        = 100
	improvementLimit   = 100
)

// ProfileService covers account sync and the profile pages.
type ProfileService struct {
	users   *repositories.UserRepository
	quizzes *repositories.QuizRepository
	results *repositories.ResultRepository
	shared  *ResultService
	logger  *zap.Logger
}

func NewProfileService(
	users *repositories.UserRepository,
	quizzes *repositories.QuizRepository,
	results *repositories.ResultRepository,
	shared *ResultService,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		users:   users,
		quizzes: quizzes,
		results: results,
		shared:  shared,
		logger:  utils.LoggerOrDefault(logger),
	}
}

// Sync creates or refreshes the user behind an auth id.
func (s *ProfileService) Sync(ctx context.Context, req *models.SyncUserRequest) (*models.User, error) {
	previous, err := s.users.GetByAuthID(ctx, req.AuthID)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	user, created, err := s.users.Sync(ctx, req.AuthID, req.Email, req.Name, req.Degree)
	if err != nil {
		return nil, err
	}
	if previous != nil && previous.Name != user.Name {
		s.evictSharedResults(ctx, user.ID)
	}
	s.logger.Info("User synced", zap.String("user_id", user.ID), zap.Bool("created", created))
	return user, nil
}

func (s *ProfileService) Me(ctx context.Context, authID string) (*models.User, error) {
	return s.users.GetByAuthID(ctx, authID)
}

// Profile gathers the user's stats, domain distribution and recent results
// concurrently.
func (s *ProfileService) Profile(ctx context.Context, authID string) (*models.ProfileResponse, error) {
	user, err := s.users.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}

	var (
		stats        repositories.UserStats
		attempts     int64
		distribution map[string]int
		recent       []models.Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.results.Stats(gctx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		attempts, err = s.quizzes.CountByUser(gctx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		distribution, err = s.results.DomainDistribution(gctx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.results.ListByUser(gctx, user.ID, recentResultsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profileStats := models.ProfileStats{
		TotalAttempts:      int(attempts),
		CompletedQuizzes:   int(stats.CompletedQuizzes),
		AverageScore:       round2(stats.AverageScore),
		BestScore:          stats.BestScore,
		LastAttempt:        stats.LastAttempt,
		DomainDistribution: distribution,
	}
	if len(recent) > 0 {
		latest := recent[0].RecommendedDomain
		profileStats.LatestDomain = &latest
	}

	recentResults := make([]models.RecentResult, 0, len(recent))
	for i := range recent {
		r := &recent[i]
		recentResults = append(recentResults, models.RecentResult{
			ID:                r.ID,
			TotalScore:        r.TotalScore,
			Percentage:        scoring.Percentage(r.TotalScore, r.TotalQuestions),
			RecommendedDomain: r.RecommendedDomain,
			CompletedAt:       r.CreatedAt,
			Insights:          decodeInsights(r.Insights, s.logger),
		})
	}

	return &models.ProfileResponse{
		User: models.ProfileUser{
			ID:          user.ID,
			AuthID:      user.AuthID,
			Name:        user.Name,
			Email:       user.Email,
			Degree:      user.Degree,
			MemberSince: user.CreatedAt,
		},
		Stats:         profileStats,
		RecentResults: recentResults,
	}, nil
}

func (s *ProfileService) Update(ctx context.Context, authID string, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}
	updated, err := s.users.Update(ctx, user.ID, req.Updates())
	if err != nil {
		return nil, err
	}
	if updated.Name != user.Name {
		s.evictSharedResults(ctx, user.ID)
	}
	return updated, nil
}

// evictSharedResults drops cached public views that carry the user's name.
func (s *ProfileService) evictSharedResults(ctx context.Context, userID string) {
	if s.shared == nil {
		return
	}
	ids, err := s.results.IDsByUser(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to list results for cache eviction", zap.String("user_id", userID), zap.Error(err))
		return
	}
	s.shared.Evict(ctx, ids...)
}

// Attempts lists the latest results with their quiz settings. limit is
// clamped to [1, MaxAttempts]; zero means DefaultAttempts.
func (s *ProfileService) Attempts(ctx context.Context, authID string, limit int) ([]models.Attempt, error) {
	user, err := s.users.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = DefaultAttempts
	case limit > MaxAttempts:
		limit = MaxAttempts
	}

	results, err := s.results.ListByUser(ctx, user.ID, limit)
	if err != nil {
		return nil, err
	}

	quizIDs := make([]string, len(results))
	for i, r := range results {
		quizIDs[i] = r.QuizID
	}
	sessions, err := s.quizzes.GetByIDs(ctx, quizIDs)
	if err != nil {
		return nil, err
	}

	attempts := make([]models.Attempt, 0, len(results))
	for i := range results {
		r := &results[i]
		attempt := models.Attempt{
			ID:                r.ID,
			TotalScore:        r.TotalScore,
			Percentage:        scoring.Percentage(r.TotalScore, r.TotalQuestions),
			DomainScores:      r.DomainScores(),
			RecommendedDomain: r.RecommendedDomain,
			CompletedAt:       r.CreatedAt,
			Insights:          decodeInsights(r.Insights, s.logger),
			Difficulty:        models.DefaultDifficulty,
			Language:          models.DefaultLanguage,
		}
		if session, ok := sessions[r.QuizID]; ok {
			attempt.Difficulty = session.Difficulty
			attempt.Language = session.Language
		}
		attempts = append(attempts, attempt)
	}
	return attempts, nil
}

// Improvement returns per-attempt scores oldest first.
func (s *ProfileService) Improvement(ctx context.Context, authID string) ([]models.ImprovementPoint, error) {
	user, err := s.users.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}

	results, err := s.results.ListByUser(ctx, user.ID, improvementLimit)
	if err != nil {
		return nil, err
	}

	points := make([]models.ImprovementPoint, 0, len(results))
	for i := len(results) - 1; i >= 0; i-- {
		r := &results[i]
		points = append(points, models.ImprovementPoint{
			Attempt:     len(points) + 1,
			Date:        r.CreatedAt,
			Total:       r.TotalScore,
			Programming: r.ProgrammingScore,
			Analytics:   r.AnalyticsScore,
			Testing:     r.TestingScore,
			Technical:   r.TechnicalScore,
		})
	}
	return points, nil
}

// Delete removes the account and everything it owns, then evicts the
// account's cached results.
func (s *ProfileService) Delete(ctx context.Context, authID string) error {
	user, err := s.users.GetByAuthID(ctx, authID)
	if err != nil {
		return err
	}

	resultIDs, err := s.users.Delete(ctx, user.ID)
	if err != nil {
		return err
	}
	if s.shared != nil {
		s.shared.Evict(ctx, resultIDs...)
	}

	s.logger.Info("Account deleted", zap.String("user_id", user.ID), zap.Int("results", len(resultIDs)))
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
