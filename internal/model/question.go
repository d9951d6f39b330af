package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/kuiz-app/kuiz/internal/scoring"
	"gorm.io/gorm"
)

// Question belongs to a test. Type is "mcq" or "text". TextPolicy, when set,
// overrides the test-level text acceptance rule for this question only.
type Question struct {
	ID         string            `json:"id" gorm:"type:uuid;primaryKey"`
	TestID     string            `json:"test_id" gorm:"type:uuid;not null;index"`
	Type       string            `json:"type" gorm:"not null"`
	Body       string            `json:"body" gorm:"type:text;not null"`
	Points     float64           `json:"points" gorm:"default:1"`
	Position   int               `json:"position" gorm:"not null"`
	TextPolicy *scoring.TextRule `json:"text_policy,omitempty" gorm:"type:jsonb;serializer:json"`
	Options    []Option          `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	DeletedAt  gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
