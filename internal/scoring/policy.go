package scoring

import (
	"fmt"
	"regexp"
)

// Question types understood by the engine.
const (
	TypeMCQ  = "mcq"
	TypeText = "text"
)

// MCQRule configures point deltas for multiple-choice answers. Nil fields fall
// back to the question's own point value (correct) or zero (negative).
type MCQRule struct {
	Correct  *float64 `json:"correct,omitempty"`
	Negative *float64 `json:"negative,omitempty"`
}

// TextRule configures acceptance and point deltas for free-text answers.
// A TextRule also appears per question, where only the acceptance fields
// (Accepted, Regex, Normalize, CaseSensitive) are meaningful.
type TextRule struct {
	Correct       *float64 `json:"correct,omitempty"`
	Negative      *float64 `json:"negative,omitempty"`
	Accepted      []string `json:"accepted,omitempty"`
	Regex         []string `json:"regex,omitempty"`
	Normalize     *bool    `json:"normalize,omitempty"`
	CaseSensitive bool     `json:"case_sensitive,omitempty"`
}

// Policy is a test's scoring configuration.
type Policy struct {
	MCQ  *MCQRule  `json:"mcq,omitempty"`
	Text *TextRule `json:"text,omitempty"`
}

// Validate compiles every configured regex pattern so misconfigured tests are
// rejected when loaded rather than silently failing to match at grading time.
func (p Policy) Validate() error {
	if p.Text == nil {
		return nil
	}
	return p.Text.Validate()
}

func (r TextRule) Validate() error {
	for _, pattern := range r.Regex {
		if _, err := regexp.Compile(r.compilable(pattern)); err != nil {
			return fmt.Errorf("invalid text regex pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// compilable applies the rule's case sensitivity to a raw pattern.
func (r TextRule) compilable(pattern string) string {
	if r.CaseSensitive {
		return pattern
	}
	return "(?i)" + pattern
}
