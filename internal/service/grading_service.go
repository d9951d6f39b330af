package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/kuiz-app/kuiz/internal/dto"
	"github.com/kuiz-app/kuiz/internal/mailer"
	"github.com/kuiz-app/kuiz/internal/model"
	"github.com/kuiz-app/kuiz/internal/repository"
	"github.com/kuiz-app/kuiz/internal/scoring"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// scoreEmailDelay is how long after grading a queued score email becomes due.
const scoreEmailDelay = 10 * time.Minute

// GradingService grades a quiz attempt: it evaluates the submitted selections
// against the test's scoring policy, persists the answer rows, closes the
// attempt, and queues a score email when the test hides scores.
type GradingService interface {
	GradeAttempt(req dto.GradeRequestDTO) (*dto.GradeResultDTO, error)
}

type gradingService struct {
	testRepo       repository.TestRepository
	questionRepo   repository.QuestionRepository
	optionRepo     repository.OptionRepository
	attemptRepo    repository.AttemptRepository
	answerRepo     repository.AnswerRepository
	scoreEmailRepo repository.ScoreEmailRepository
	now            func() time.Time
}

func NewGradingService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	scoreEmailRepo repository.ScoreEmailRepository,
) GradingService {
	return &gradingService{
		testRepo:       testRepo,
		questionRepo:   questionRepo,
		optionRepo:     optionRepo,
		attemptRepo:    attemptRepo,
		answerRepo:     answerRepo,
		scoreEmailRepo: scoreEmailRepo,
		now:            time.Now,
	}
}

// GradeAttempt is single-shot: a second call for the same attempt fails with
// ErrAttemptSubmitted and writes nothing. All reads happen before any write;
// the attempt transition is an atomic conditional update, so two concurrent
// grading calls cannot both get through.
func (s *gradingService) GradeAttempt(req dto.GradeRequestDTO) (*dto.GradeResultDTO, error) {
	attempt, err := s.attemptRepo.FindByIDAndTest(req.AttemptID, req.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		log.Error().Err(err).Str("attemptID", req.AttemptID).Msg("GradeAttempt: failed to load attempt")
		return nil, fmt.Errorf("failed to load attempt %s: %w", req.AttemptID, err)
	}
	if attempt.SubmittedAt != nil {
		return nil, ErrAttemptSubmitted
	}

	test, err := s.testRepo.FindByID(req.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		log.Error().Err(err).Str("testID", req.TestID).Msg("GradeAttempt: failed to load test")
		return nil, fmt.Errorf("failed to load test %s: %w", req.TestID, err)
	}
	if err := test.ScoringPolicy.Validate(); err != nil {
		log.Error().Err(err).Str("testID", test.ID).Msg("GradeAttempt: test has an invalid scoring policy")
		return nil, fmt.Errorf("test %s has an invalid scoring policy: %w", test.ID, err)
	}

	keys, err := s.loadKeys(req.Selections)
	if err != nil {
		return nil, err
	}

	// Evaluate every selection before any write happens.
	var total float64
	answers := make([]model.Answer, 0, len(req.Selections))
	for _, sel := range req.Selections {
		selection := scoring.Selection{
			QuestionID: sel.QuestionID,
			TextInput:  sel.TextInput,
		}
		if sel.OptionID != nil {
			selection.OptionID = *sel.OptionID
		}

		correct, delta := scoring.Evaluate(selection, keys[sel.QuestionID], test.ScoringPolicy)
		total += delta

		answers = append(answers, model.Answer{
			AttemptID:  attempt.ID,
			QuestionID: sel.QuestionID,
			OptionID:   sel.OptionID,
			TextInput:  sel.TextInput,
			IsCorrect:  correct,
		})
	}

	// Atomic open->closed transition. Losing a concurrent race surfaces the
	// same way as grading an already submitted attempt.
	now := s.now()
	claimed, err := s.attemptRepo.MarkSubmitted(attempt.ID, total, now)
	if err != nil {
		log.Error().Err(err).Str("attemptID", attempt.ID).Msg("GradeAttempt: failed to close attempt")
		return nil, fmt.Errorf("failed to close attempt %s: %w", attempt.ID, err)
	}
	if !claimed {
		return nil, ErrAttemptSubmitted
	}

	if err := s.answerRepo.CreateBatch(answers); err != nil {
		log.Error().Err(err).Str("attemptID", attempt.ID).Int("answers", len(answers)).Msg("GradeAttempt: failed to persist answers")
		return nil, fmt.Errorf("failed to persist answers for attempt %s: %w", attempt.ID, err)
	}

	willEmail := false
	if !test.ShowScore && attempt.Email != "" {
		willEmail = s.queueScoreEmail(attempt, test, total, now)
	}

	log.Info().
		Str("attemptID", attempt.ID).
		Str("testID", test.ID).
		Float64("score", total).
		Bool("willEmail", willEmail).
		Msg("Attempt graded")

	return &dto.GradeResultDTO{
		Score:     total,
		ShowScore: test.ShowScore,
		WillEmail: willEmail,
	}, nil
}

// loadKeys fetches the questions and options referenced by the selections and
// builds the grading key per question. Questions that do not exist get a zero
// key and grade as incorrect, mirroring how unknown ids behave elsewhere.
func (s *gradingService) loadKeys(selections []dto.SelectionDTO) (map[string]scoring.Key, error) {
	seen := make(map[string]struct{}, len(selections))
	qIDs := make([]string, 0, len(selections))
	for _, sel := range selections {
		if _, ok := seen[sel.QuestionID]; ok {
			continue
		}
		seen[sel.QuestionID] = struct{}{}
		qIDs = append(qIDs, sel.QuestionID)
	}

	questions, err := s.questionRepo.FindByIDs(qIDs)
	if err != nil {
		log.Error().Err(err).Msg("GradeAttempt: failed to load questions")
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	options, err := s.optionRepo.FindByQuestionIDs(qIDs)
	if err != nil {
		log.Error().Err(err).Msg("GradeAttempt: failed to load options")
		return nil, fmt.Errorf("failed to load options: %w", err)
	}

	keys := make(map[string]scoring.Key, len(questions))
	for _, q := range questions {
		points := q.Points
		if points == 0 {
			points = 1
		}
		if q.TextPolicy != nil {
			if err := q.TextPolicy.Validate(); err != nil {
				log.Error().Err(err).Str("questionID", q.ID).Msg("GradeAttempt: question has an invalid text policy")
				return nil, fmt.Errorf("question %s has an invalid text policy: %w", q.ID, err)
			}
		}
		keys[q.ID] = scoring.Key{
			Type:   q.Type,
			Points: points,
			Text:   q.TextPolicy,
		}
	}

	// Options arrive ordered by label, so the first correct one per question
	// wins the tie-break when a question is misconfigured with several.
	for _, opt := range options {
		if !opt.IsCorrect {
			continue
		}
		key, ok := keys[opt.QuestionID]
		if !ok || key.CorrectOptionID != "" {
			continue
		}
		key.CorrectOptionID = opt.ID
		keys[opt.QuestionID] = key
	}

	return keys, nil
}

// queueScoreEmail renders and enqueues the deferred notification. Enqueue
// failures do not fail the grading call; the attempt is already closed and the
// score stands.
func (s *gradingService) queueScoreEmail(attempt *model.Attempt, test *model.Test, score float64, now time.Time) bool {
	recipient := attempt.Name
	if recipient == "" {
		recipient = attempt.Email
	}

	subject, html, err := mailer.RenderScoreEmail(mailer.ScoreEmailData{
		Recipient: recipient,
		TestTitle: test.Title,
		Score:     score,
	})
	if err != nil {
		log.Error().Err(err).Str("attemptID", attempt.ID).Msg("GradeAttempt: failed to render score email")
		return false
	}

	email := model.ScoreEmail{
		AttemptID: attempt.ID,
		Email:     attempt.Email,
		Subject:   subject,
		HTML:      html,
		SendAfter: now.Add(scoreEmailDelay),
	}
	if err := s.scoreEmailRepo.Create(&email); err != nil {
		log.Error().Err(err).Str("attemptID", attempt.ID).Msg("GradeAttempt: failed to queue score email")
		return false
	}
	return true
}
