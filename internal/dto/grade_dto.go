package dto

// SelectionDTO is one submitted answer within a grading request. OptionID is
// set for MCQ questions, TextInput for text questions; both absent means the
// question was left unanswered.
type SelectionDTO struct {
	QuestionID string  `json:"questionId" binding:"required"`
	OptionID   *string `json:"optionId,omitempty"`
	TextInput  *string `json:"textInput,omitempty"`
}

// GradeRequestDTO mirrors the grading endpoint's wire contract.
type GradeRequestDTO struct {
	AttemptID  string         `json:"attemptId"`
	TestID     string         `json:"testId"`
	Selections []SelectionDTO `json:"selections"`
}

// GradeResultDTO is the grading endpoint's success payload.
type GradeResultDTO struct {
	Score     float64 `json:"score"`
	ShowScore bool    `json:"showScore"`
	WillEmail bool    `json:"willEmail"`
}
