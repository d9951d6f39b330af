package dto

// GenerateQuestionsDTO asks the AI drafting endpoint for question drafts.
// Mix selects the type distribution: "mcq_only", "text_only", or "mcq_text".
type GenerateQuestionsDTO struct {
	Topic        string `json:"topic" binding:"required"`
	Audience     string `json:"audience"`
	NumQuestions int    `json:"numQuestions"`
	Mix          string `json:"mix" binding:"omitempty,oneof=mcq_only text_only mcq_text"`
}

// DraftOptionDTO is one generated MCQ choice.
type DraftOptionDTO struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// DraftQuestionDTO is one generated question, normalized but not persisted;
// the creator reviews drafts before they become part of a test.
type DraftQuestionDTO struct {
	Type         string           `json:"type"`
	Body         string           `json:"body"`
	Options      []DraftOptionDTO `json:"options,omitempty"`
	CorrectLabel *string          `json:"correct_label,omitempty"`
	Points       float64          `json:"points"`
}

// DraftQuestionsDTO is the drafting endpoint's success payload.
type DraftQuestionsDTO struct {
	Questions []DraftQuestionDTO `json:"questions"`
}
