package services

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"careerquiz/backend/internal/cache"
	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/repositories"
	"careerquiz/backend/internal/scoring"
	"careerquiz/backend/internal/utils"
)

const anonymousName = "Anonymous"

// ResultService serves the public, shareable view of a result through the
// result cache.
type ResultService struct {
	results *repositories.ResultRepository
	users   *repositories.UserRepository
	cache   cache.Store
	logger  *zap.Logger
}

func NewResultService(results *repositories.ResultRepository, users *repositories.UserRepository, store cache.Store, logger *zap.Logger) *ResultService {
	return &ResultService{
		results: results,
		users:   users,
		cache:   store,
		logger:  utils.LoggerOrDefault(logger),
	}
}

// GetShared returns the public view of a result. Cache failures are logged
// and fall through to the database.
func (s *ResultService) GetShared(ctx context.Context, resultID string) (*models.SharedResult, error) {
	key := cache.ResultKey(resultID)

	var cached models.SharedResult
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("Result cache read failed", zap.String("result_id", resultID), zap.Error(err))
	}

	result, err := s.results.GetByID(ctx, resultID)
	if err != nil {
		return nil, err
	}

	userName := anonymousName
	user, err := s.users.GetByID(ctx, result.UserID)
	switch {
	case err == nil:
		userName = user.Name
	case !errors.Is(err, repositories.ErrUserNotFound):
		return nil, err
	}

	view := &models.SharedResult{
		ResultID:          result.ID,
		UserName:          userName,
		QuizID:            result.QuizID,
		TotalScore:        result.TotalScore,
		TotalQuestions:    result.TotalQuestions,
		Percentage:        scoring.Percentage(result.TotalScore, result.TotalQuestions),
		DomainScores:      result.DomainScores(),
		RecommendedDomain: result.RecommendedDomain,
		Insights:          decodeInsights(result.Insights, s.logger),
		CreatedAt:         result.CreatedAt,
	}

	if err := s.cache.Set(ctx, key, view); err != nil {
		s.logger.Warn("Result cache write failed", zap.String("result_id", resultID), zap.Error(err))
	}
	return view, nil
}

// Evict drops cached views for the given result ids.
func (s *ResultService) Evict(ctx context.Context, resultIDs ...string) {
	if len(resultIDs) == 0 {
		return
	}
	keys := make([]string, len(resultIDs))
	for i, id := range resultIDs {
		keys[i] = cache.ResultKey(id)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("Result cache eviction failed", zap.Int("keys", len(keys)), zap.Error(err))
	}
}

// decodeInsights parses a stored report; unreadable payloads become nil.
func decodeInsights(raw datatypes.JSON, logger *zap.Logger) *models.InsightReport {
	if len(raw) == 0 {
		return nil
	}
	var report models.InsightReport
	if err := json.Unmarshal(raw, &report); err != nil {
		logger.Warn("Stored insights are unreadable", zap.Error(err))
		return nil
	}
	return &report
}
