package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScoreEmail is a deferred result notification, queued at grading time when
// the test hides scores. SendAfter delays delivery; SentAt stays null until
// the flusher delivers it.
type ScoreEmail struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	AttemptID string         `json:"attempt_id" gorm:"type:uuid;not null;index"`
	Email     string         `json:"email" gorm:"not null"`
	Subject   string         `json:"subject" gorm:"not null"`
	HTML      string         `json:"html" gorm:"column:html;type:text;not null"`
	SendAfter time.Time      `json:"send_after" gorm:"index"`
	SentAt    *time.Time     `json:"sent_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (e *ScoreEmail) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
