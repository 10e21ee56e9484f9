package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"careerquiz/backend/internal/models"
)

var ErrQuizNotFound = errors.New("quiz not found")

type QuizRepository struct {
	DB *gorm.DB
}

// Create stores a session and its questions in one transaction. Question
// positions follow slice order.
func (r *QuizRepository) Create(ctx context.Context, session *models.QuizSession, questions []models.QuizQuestion) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if session.Status == "" {
			session.Status = models.SessionInProgress
		}
		if err := tx.Omit("Questions").Create(session).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		for i := range questions {
			questions[i].QuizID = session.ID
			questions[i].Position = i
		}
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}
		session.Questions = questions
		return nil
	})
}

// GetForUser loads a session owned by userID together with its questions.
// Sessions of other users are reported as not found.
func (r *QuizRepository) GetForUser(ctx context.Context, quizID, userID string) (*models.QuizSession, error) {
	var session models.QuizSession
	err := r.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&session, "id = ? AND user_id = ?", quizID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetByIDs returns sessions keyed by id; missing ids are simply absent.
func (r *QuizRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.QuizSession, error) {
	out := make(map[string]models.QuizSession, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var sessions []models.QuizSession
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&sessions).Error; err != nil {
		return nil, err
	}
	for _, s := range sessions {
		out[s.ID] = s
	}
	return out, nil
}

func (r *QuizRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.QuizSession{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// DeleteStale removes in-progress sessions created before cutoff, along with
// their questions, and returns how many sessions were deleted.
func (r *QuizRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&models.QuizSession{}).
			Where("status = ? AND created_at < ?", models.SessionInProgress, cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("quiz_id IN ?", ids).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.QuizSession{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}
