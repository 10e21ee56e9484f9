package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"careerquiz/backend/internal/models"
)

var (
	ErrResultNotFound = errors.New("result not found")
	// ErrQuizCompleted is returned when a session already has a result.
	ErrQuizCompleted = errors.New("quiz already completed")
)

type ResultRepository struct {
	DB *gorm.DB
}

// UserStats aggregates a user's results.
type UserStats struct {
	CompletedQuizzes int64
	AverageScore     float64
	BestScore        int
	LastAttempt      *time.Time
}

// Complete marks the result's session completed and stores the result in
// one transaction. A session that is no longer in progress yields
// ErrQuizCompleted and nothing is written.
func (r *ResultRepository) Complete(ctx context.Context, result *models.Result) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		res := tx.Model(&models.QuizSession{}).
			Where("id = ? AND status = ?", result.QuizID, models.SessionInProgress).
			Updates(map[string]interface{}{"status": models.SessionCompleted, "completed_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrQuizCompleted
		}
		return tx.Create(result).Error
	})
}

func (r *ResultRepository) GetByID(ctx context.Context, resultID string) (*models.Result, error) {
	var result models.Result
	err := r.DB.WithContext(ctx).First(&result, "id = ?", resultID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByUser returns the user's most recent results, newest first.
func (r *ResultRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Result, error) {
	var results []models.Result
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// IDsByUser returns the ids of every result the user owns.
func (r *ResultRepository) IDsByUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := r.DB.WithContext(ctx).Model(&models.Result{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ResultRepository) Stats(ctx context.Context, userID string) (UserStats, error) {
	var row struct {
		Completed int64
		Average   float64
		Best      int
	}
	err := r.DB.WithContext(ctx).Model(&models.Result{}).
		Select("COUNT(*) AS completed, COALESCE(AVG(total_score), 0) AS average, COALESCE(MAX(total_score), 0) AS best").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return UserStats{}, err
	}

	stats := UserStats{
		CompletedQuizzes: row.Completed,
		AverageScore:     row.Average,
		BestScore:        row.Best,
	}
	if row.Completed == 0 {
		return stats, nil
	}

	var latest models.Result
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").First(&latest).Error; err != nil {
		return UserStats{}, err
	}
	stats.LastAttempt = &latest.CreatedAt
	return stats, nil
}

// DomainDistribution counts results per recommended domain key.
func (r *ResultRepository) DomainDistribution(ctx context.Context, userID string) (map[string]int, error) {
	var rows []struct {
		RecommendedDomain string
		Count             int
	}
	err := r.DB.WithContext(ctx).Model(&models.Result{}).
		Select("recommended_domain, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("recommended_domain").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.RecommendedDomain] = row.Count
	}
	return out, nil
}
