package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/kuiz-app/kuiz/config"
	"github.com/kuiz-app/kuiz/internal/dto"
	"github.com/kuiz-app/kuiz/internal/scoring"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const defaultDraftCount = 5

// GeminiQuestionService drafts quiz questions with the Gemini API. Drafts are
// returned to the creator for review; nothing is persisted here.
type GeminiQuestionService interface {
	GenerateQuestions(ctx context.Context, req dto.GenerateQuestionsDTO) ([]dto.DraftQuestionDTO, error)
}

type geminiQuestionService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiQuestionService(cfg *config.Config) (GeminiQuestionService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiQuestionService will be non-functional.")
		return &geminiQuestionService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-2.0-flash")
	model.ResponseMIMEType = "application/json"
	return &geminiQuestionService{client: model, cfg: cfg}, nil
}

const draftSchemaPrompt = `You generate exam questions. Output STRICT JSON only, matching this schema:
{
  "questions": [
    {
      "type": "mcq" | "text",
      "body": "string (one clear question, no numbering)",
      "options": [{"label":"A","text":"..."},{"label":"B","text":"..."},{"label":"C","text":"..."},{"label":"D","text":"..."}] | null,
      "correct_label": "A"|"B"|"C"|"D" | null,
      "points": 1
    }
  ]
}
Rules:
- If type="mcq": exactly 4 options with concise, distinct distractors; set correct_label.
- If type="text": options=null and correct_label=null.
- Use simple English, avoid explanations. No markdown.
`

func (s *geminiQuestionService) GenerateQuestions(ctx context.Context, req dto.GenerateQuestionsDTO) ([]dto.DraftQuestionDTO, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	count := req.NumQuestions
	if count <= 0 {
		count = defaultDraftCount
	}

	var types string
	switch req.Mix {
	case "mcq_only":
		types = "MCQ only"
	case "text_only":
		types = "Text only"
	default:
		types = "Mixed"
	}

	prompt := fmt.Sprintf("%s\nTopic: %s\nAudience: %s\nQuestion count: %d\nTypes: %s\n",
		draftSchemaPrompt, req.Topic, req.Audience, count, types)

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("topic", req.Topic).Msg("Gemini API error during question drafting")
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	raw := responseText(resp)
	if raw == "" {
		log.Warn().Msg("Gemini returned no text content for question drafting")
		return nil, ErrBadAIResponse
	}

	parsed, err := parseDraftQuestions(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse Gemini question drafts")
		return nil, ErrBadAIResponse
	}
	if len(parsed) > count {
		parsed = parsed[:count]
	}
	return parsed, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// rawDraft is the loosely-shaped model output before normalization.
type rawDraft struct {
	Type    string `json:"type"`
	Body    string `json:"body"`
	Options []struct {
		Label string `json:"label"`
		Text  string `json:"text"`
	} `json:"options"`
	CorrectLabel *string  `json:"correct_label"`
	Points       *float64 `json:"points"`
}

// parseDraftQuestions decodes the model output, tolerating markdown fences,
// and normalizes each draft's shape.
func parseDraftQuestions(raw string) ([]dto.DraftQuestionDTO, error) {
	var payload struct {
		Questions []rawDraft `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		stripped := strings.TrimSpace(strings.NewReplacer("```json", "", "```", "").Replace(raw))
		if err := json.Unmarshal([]byte(stripped), &payload); err != nil {
			return nil, fmt.Errorf("response is not valid JSON: %w", err)
		}
	}
	if payload.Questions == nil {
		return nil, fmt.Errorf("response has no questions array")
	}

	drafts := make([]dto.DraftQuestionDTO, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		draft := dto.DraftQuestionDTO{
			Type:   scoring.TypeMCQ,
			Body:   strings.TrimSpace(q.Body),
			Points: 1,
		}
		if q.Type == scoring.TypeText {
			draft.Type = scoring.TypeText
		}
		if q.Points != nil && *q.Points > 0 {
			draft.Points = *q.Points
		}
		for _, o := range q.Options {
			draft.Options = append(draft.Options, dto.DraftOptionDTO{
				Label: normalizeLabel(o.Label),
				Text:  strings.TrimSpace(o.Text),
			})
		}
		if q.CorrectLabel != nil {
			label := normalizeLabel(*q.CorrectLabel)
			if label != "" {
				draft.CorrectLabel = &label
			}
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// normalizeLabel keeps the first rune of a label, upper-cased.
func normalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	return strings.ToUpper(string([]rune(label)[0]))
}
