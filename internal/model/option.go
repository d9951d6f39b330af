package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Option is one MCQ choice. Label is a single letter ("A".."D"); exactly one
// option per question is expected to carry IsCorrect.
type Option struct {
	ID         string         `json:"id" gorm:"type:uuid;primaryKey"`
	QuestionID string         `json:"question_id" gorm:"type:uuid;not null;index"`
	Label      string         `json:"label" gorm:"size:1;not null"`
	Text       string         `json:"text" gorm:"type:text;not null"`
	IsCorrect  bool           `json:"is_correct"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
