package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/kuiz-app/kuiz/internal/scoring"
	"gorm.io/gorm"
)

// Test is a quiz owned by its creator. ShowScore controls whether the
// participant sees the score immediately; when false the result goes out as a
// queued score email instead.
type Test struct {
	ID              string         `json:"id" gorm:"type:uuid;primaryKey"`
	Title           string         `json:"title" gorm:"not null"`
	ScoringPolicy   scoring.Policy `json:"scoring_policy" gorm:"type:jsonb;serializer:json"`
	ShowScore       bool           `json:"show_score" gorm:"default:true"`
	DurationMinutes int            `json:"duration_minutes"`
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
