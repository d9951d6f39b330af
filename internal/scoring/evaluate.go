// Package scoring evaluates quiz selections against a test's scoring policy.
// It is pure computation: all rows are loaded by the caller and no I/O happens
// here, which keeps the policy semantics directly testable.
package scoring

// Selection is one submitted answer: an option choice for MCQ questions or a
// text input for free-text questions. A selection carrying neither is treated
// as unanswered and scores as incorrect.
type Selection struct {
	QuestionID string
	OptionID   string
	TextInput  *string
}

// Key is the grading view of a single question.
type Key struct {
	Type            string
	Points          float64   // per-question value, loader applies the default of 1
	CorrectOptionID string    // empty when the question has no correct option
	Text            *TextRule // per-question override of the test's text acceptance rule
}

// Answered reports whether the selection carries a usable answer.
func (s Selection) Answered() bool {
	return s.OptionID != "" || s.TextInput != nil
}

// Evaluate returns correctness and the score delta for one selection.
func Evaluate(sel Selection, key Key, pol Policy) (correct bool, delta float64) {
	if !sel.Answered() {
		if key.Type == TypeText {
			return false, textDelta(false, key.Points, pol.Text)
		}
		return false, mcqDelta(false, key.Points, pol.MCQ)
	}
	if sel.OptionID != "" {
		ok := key.CorrectOptionID != "" && sel.OptionID == key.CorrectOptionID
		return ok, mcqDelta(ok, key.Points, pol.MCQ)
	}
	ok := MatchText(*sel.TextInput, acceptance(key, pol))
	return ok, textDelta(ok, key.Points, pol.Text)
}

// acceptance builds the text acceptance rule for a question. The question's
// own rule governs the switches and regex patterns, but the accepted list
// falls back per field: a question rule without its own list inherits the
// test's.
func acceptance(key Key, pol Policy) TextRule {
	if key.Text == nil {
		if pol.Text != nil {
			return *pol.Text
		}
		return TextRule{}
	}
	rule := *key.Text
	if rule.Accepted == nil && pol.Text != nil {
		rule.Accepted = pol.Text.Accepted
	}
	return rule
}

func mcqDelta(correct bool, points float64, rule *MCQRule) float64 {
	if correct {
		if rule != nil && rule.Correct != nil {
			return *rule.Correct
		}
		return points
	}
	if rule != nil && rule.Negative != nil {
		return *rule.Negative
	}
	return 0
}

func textDelta(correct bool, points float64, rule *TextRule) float64 {
	if correct {
		if rule != nil && rule.Correct != nil {
			return *rule.Correct
		}
		return points
	}
	if rule != nil && rule.Negative != nil {
		return *rule.Negative
	}
	return 0
}
