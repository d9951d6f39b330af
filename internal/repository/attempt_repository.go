package repository

import (
	"time"

	"github.com/kuiz-app/kuiz/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByIDAndTest(id, testID string) (*model.Attempt, error)
	FindByIDWithAnswers(id string) (*model.Attempt, error)
	FindAllByTest(testID string) ([]model.Attempt, error)
	// MarkSubmitted closes an open attempt in a single conditional update.
	// It reports false when the attempt was already submitted, which is the
	// loser's signal in a concurrent double-grade.
	MarkSubmitted(id string, score float64, at time.Time) (bool, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByIDAndTest(id, testID string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.Where("id = ? AND test_id = ?", id, testID).First(&attempt).Error
	return &attempt, err
}

func (r *attemptRepository) FindByIDWithAnswers(id string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("Test").
		Preload("Answers.Question").
		First(&attempt, "id = ?", id).Error
	return &attempt, err
}

func (r *attemptRepository) FindAllByTest(testID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Where("test_id = ?", testID).Order("started_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) MarkSubmitted(id string, score float64, at time.Time) (bool, error) {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND submitted_at IS NULL", id).
		Updates(map[string]interface{}{"submitted_at": at, "score": score})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
