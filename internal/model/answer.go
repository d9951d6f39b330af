package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer is one graded selection, written once per attempt and append-only.
type Answer struct {
	ID         string         `json:"id" gorm:"type:uuid;primaryKey"`
	AttemptID  string         `json:"attempt_id" gorm:"type:uuid;not null;index"`
	QuestionID string         `json:"question_id" gorm:"type:uuid;not null;index"`
	Question   Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	OptionID   *string        `json:"option_id,omitempty" gorm:"type:uuid"`
	TextInput  *string        `json:"text_input,omitempty" gorm:"type:text"`
	IsCorrect  bool           `json:"is_correct"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
