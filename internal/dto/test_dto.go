package dto

import (
	"time"

	"github.com/kuiz-app/kuiz/internal/scoring"
)

// OptionCreateDTO is one MCQ choice within a test creation request.
type OptionCreateDTO struct {
	Label     string `json:"label" binding:"required,len=1"`
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionCreateDTO is one question within a test creation request.
type QuestionCreateDTO struct {
	Type       string            `json:"type" binding:"required,oneof=mcq text"`
	Body       string            `json:"body" binding:"required"`
	Points     float64           `json:"points"`
	Position   int               `json:"position"`
	TextPolicy *scoring.TextRule `json:"text_policy,omitempty"`
	Options    []OptionCreateDTO `json:"options,omitempty" binding:"omitempty,dive"`
}

// TestCreateDTO is the admin payload for creating a test with its questions.
type TestCreateDTO struct {
	Title           string              `json:"title" binding:"required"`
	ScoringPolicy   scoring.Policy      `json:"scoring_policy"`
	ShowScore       *bool               `json:"show_score"`
	DurationMinutes int                 `json:"duration_minutes"`
	Questions       []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// OptionResponseDTO is the admin view of an option, correctness included.
type OptionResponseDTO struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionResponseDTO is the admin view of a question.
type QuestionResponseDTO struct {
	ID         string              `json:"id"`
	TestID     string              `json:"test_id"`
	Type       string              `json:"type"`
	Body       string              `json:"body"`
	Points     float64             `json:"points"`
	Position   int                 `json:"position"`
	TextPolicy *scoring.TextRule   `json:"text_policy,omitempty"`
	Options    []OptionResponseDTO `json:"options,omitempty"`
}

// TestResponseDTO is the admin view of a full test.
type TestResponseDTO struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	ScoringPolicy   scoring.Policy        `json:"scoring_policy"`
	ShowScore       bool                  `json:"show_score"`
	DurationMinutes int                   `json:"duration_minutes"`
	Questions       []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// TestSummaryDTO is a catalog listing entry.
type TestSummaryDTO struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ShowScore       bool      `json:"show_score"`
	DurationMinutes int       `json:"duration_minutes"`
	QuestionCount   int       `json:"question_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// TakeOptionDTO is the participant view of an option: no correctness flag.
type TakeOptionDTO struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// TakeQuestionDTO is the participant view of a question: no answer key.
type TakeQuestionDTO struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Body     string          `json:"body"`
	Points   float64         `json:"points"`
	Position int             `json:"position"`
	Options  []TakeOptionDTO `json:"options,omitempty"`
}

// TakeTestDTO is what a participant sees when starting a test.
type TakeTestDTO struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	ShowScore       bool              `json:"show_score"`
	DurationMinutes int               `json:"duration_minutes"`
	Questions       []TakeQuestionDTO `json:"questions"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Message string   `json:"error"`
	Details []string `json:"details,omitempty"`
}
