package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/kuiz-app/kuiz/internal/dto"
	"github.com/kuiz-app/kuiz/internal/model"
	"github.com/kuiz-app/kuiz/internal/repository"
	"github.com/kuiz-app/kuiz/internal/scoring"
	"github.com/rs/zerolog/log"
)

// AdminTestService manages tests on behalf of their creators.
type AdminTestService interface {
	CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
}

type adminTestService struct {
	testRepo repository.TestRepository
}

func NewAdminTestService(testRepo repository.TestRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo}
}

func (s *adminTestService) CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	if err := req.ScoringPolicy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring policy: %w", err)
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for i, qDto := range req.Questions {
		if err := validateQuestion(i, qDto); err != nil {
			return nil, err
		}

		question := model.Question{
			Type:       qDto.Type,
			Body:       qDto.Body,
			Points:     qDto.Points,
			Position:   qDto.Position,
			TextPolicy: qDto.TextPolicy,
		}
		if question.Points == 0 {
			question.Points = 1
		}
		if question.Position == 0 {
			question.Position = i + 1
		}
		for _, oDto := range qDto.Options {
			question.Options = append(question.Options, model.Option{
				Label:     oDto.Label,
				Text:      oDto.Text,
				IsCorrect: oDto.IsCorrect,
			})
		}
		questions = append(questions, question)
	}

	showScore := true
	if req.ShowScore != nil {
		showScore = *req.ShowScore
	}
	test := model.Test{
		Title:           req.Title,
		ScoringPolicy:   req.ScoringPolicy,
		ShowScore:       showScore,
		DurationMinutes: req.DurationMinutes,
		Questions:       questions,
	}

	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}

	created, err := s.testRepo.FindByIDWithQuestions(test.ID)
	if err != nil {
		log.Error().Err(err).Str("testID", test.ID).Msg("Failed to reload created test for response")
		created = &test
	}

	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, created); err != nil {
		log.Error().Err(err).Msg("Failed to copy created test to response DTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func validateQuestion(idx int, q dto.QuestionCreateDTO) error {
	switch q.Type {
	case scoring.TypeMCQ:
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: an mcq question needs at least 2 options, got %d", idx+1, len(q.Options))
		}
		correct := 0
		labels := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if labels[o.Label] {
				return fmt.Errorf("question %d: duplicate option label %q", idx+1, o.Label)
			}
			labels[o.Label] = true
			if o.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("question %d: an mcq question needs exactly one correct option, got %d", idx+1, correct)
		}
	case scoring.TypeText:
		if len(q.Options) != 0 {
			return fmt.Errorf("question %d: a text question cannot have options", idx+1)
		}
		if q.TextPolicy != nil {
			if err := q.TextPolicy.Validate(); err != nil {
				return fmt.Errorf("question %d: %w", idx+1, err)
			}
		}
	}
	return nil
}
