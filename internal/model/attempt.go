package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attempt is one participant's run through a test. It is open while
// SubmittedAt is null and transitions exactly once to closed when graded;
// Score and Answers never change after that.
type Attempt struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	TestID      string         `json:"test_id" gorm:"type:uuid;not null;index"`
	Test        Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	UserID      *string        `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	StartedAt   time.Time      `json:"started_at" gorm:"autoCreateTime"`
	SubmittedAt *time.Time     `json:"submitted_at,omitempty"`
	Score       *float64       `json:"score,omitempty"`
	Answers     []Answer       `json:"answers,omitempty" gorm:"foreignKey:AttemptID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
