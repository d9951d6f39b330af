package dto

import "time"

// AttemptStartDTO opens a new attempt for a test.
type AttemptStartDTO struct {
	Name   string  `json:"name"`
	Email  string  `json:"email" binding:"omitempty,email"`
	UserID *string `json:"user_id,omitempty"`
}

// AttemptResponseDTO is returned when an attempt is opened.
type AttemptResponseDTO struct {
	ID        string    `json:"id"`
	TestID    string    `json:"test_id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// AttemptSummaryDTO is one row in the admin results listing.
type AttemptSummaryDTO struct {
	ID          string     `json:"id"`
	TestID      string     `json:"test_id"`
	Name        string     `json:"name,omitempty"`
	Email       string     `json:"email,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	Score       *float64   `json:"score,omitempty"`
}

// AnswerResponseDTO is one graded answer in the admin review view.
type AnswerResponseDTO struct {
	ID         string              `json:"id"`
	QuestionID string              `json:"question_id"`
	Question   QuestionResponseDTO `json:"question,omitempty"`
	OptionID   *string             `json:"option_id,omitempty"`
	TextInput  *string             `json:"text_input,omitempty"`
	IsCorrect  bool                `json:"is_correct"`
}

// AttemptDetailDTO is the full admin review of one attempt.
type AttemptDetailDTO struct {
	ID          string              `json:"id"`
	TestID      string              `json:"test_id"`
	TestTitle   string              `json:"test_title,omitempty"`
	Name        string              `json:"name,omitempty"`
	Email       string              `json:"email,omitempty"`
	StartedAt   time.Time           `json:"started_at"`
	SubmittedAt *time.Time          `json:"submitted_at,omitempty"`
	Score       *float64            `json:"score,omitempty"`
	Answers     []AnswerResponseDTO `json:"answers,omitempty"`
}
