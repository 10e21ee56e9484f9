package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"careerquiz/backend/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	DB *gorm.DB
}

// Sync creates the user for authID or refreshes their email and name in a
// single upsert, so concurrent first logins for one auth id converge on one
// row. The returned bool reports whether a new row was created.
func (r *UserRepository) Sync(ctx context.Context, authID, email, name, degree string) (*models.User, bool, error) {
	if degree == "" {
		degree = models.DefaultDegree
	}
	candidate := models.User{ID: uuid.NewString(), AuthID: authID, Email: email, Name: name, Degree: degree}

	var user models.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "auth_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "name", "updated_at"}),
		}).Create(&candidate).Error
		if err != nil {
			return err
		}
		return tx.First(&user, "auth_id = ?", authID).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &user, user.ID == candidate.ID, nil
}

func (r *UserRepository) GetByAuthID(ctx context.Context, authID string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).First(&user, "auth_id = ?", authID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies column updates and returns the refreshed user.
func (r *UserRepository) Update(ctx context.Context, userID string, updates map[string]interface{}) (*models.User, error) {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return r.GetByID(ctx, userID)
}

// Delete removes the user with their sessions, questions and results, and
// returns the ids of the deleted results.
func (r *UserRepository) Delete(ctx context.Context, userID string) ([]string, error) {
	var resultIDs []string

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Result{}).Where("user_id = ?", userID).Pluck("id", &resultIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Result{}).Error; err != nil {
			return err
		}

		sessions := tx.Model(&models.QuizSession{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("quiz_id IN (?)", sessions).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.QuizSession{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, "id = ?", userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultIDs, nil
}
