package repository

import (
	"time"

	"github.com/kuiz-app/kuiz/internal/model"
	"gorm.io/gorm"
)

type ScoreEmailRepository interface {
	Create(email *model.ScoreEmail) error
	// FindDue returns up to limit queued emails whose send-after time has
	// passed and that have not been delivered yet.
	FindDue(now time.Time, limit int) ([]model.ScoreEmail, error)
	MarkSent(id string, at time.Time) error
}

type scoreEmailRepository struct {
	db *gorm.DB
}

func NewScoreEmailRepository(db *gorm.DB) ScoreEmailRepository {
	return &scoreEmailRepository{db: db}
}

func (r *scoreEmailRepository) Create(email *model.ScoreEmail) error {
	return r.db.Create(email).Error
}

func (r *scoreEmailRepository) FindDue(now time.Time, limit int) ([]model.ScoreEmail, error) {
	var emails []model.ScoreEmail
	err := r.db.
		Where("send_after <= ? AND sent_at IS NULL", now).
		Order("send_after ASC").
		Limit(limit).
		Find(&emails).Error
	return emails, err
}

func (r *scoreEmailRepository) MarkSent(id string, at time.Time) error {
	return r.db.Model(&model.ScoreEmail{}).
		Where("id = ?", id).
		Update("sent_at", at).Error
}
