// Package mailer renders and delivers score emails.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// scoreEmailTmpl is the fixed body for deferred score notifications. Fields
// are escaped by html/template, so participant-supplied names cannot inject
// markup.
var scoreEmailTmpl = template.Must(template.New("score_email").Parse(`<div style="font-family:system-ui,Segoe UI,Arial">
  <h2>Hi {{.Recipient}},</h2>
  <p>Thanks for completing <b>{{.TestTitle}}</b>.</p>
  <p>Your score: <b>{{.Score}}</b></p>
  <p>— Kuiz</p>
</div>`))

// ScoreEmailData feeds the score email template.
type ScoreEmailData struct {
	Recipient string // participant name, or the address when no name was given
	TestTitle string
	Score     float64
}

// RenderScoreEmail produces the subject and HTML body for a score email.
func RenderScoreEmail(data ScoreEmailData) (subject, html string, err error) {
	var body bytes.Buffer
	if err := scoreEmailTmpl.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to render score email: %w", err)
	}
	return fmt.Sprintf("Your %s score", data.TestTitle), body.String(), nil
}
