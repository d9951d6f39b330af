package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/kuiz-app/kuiz/internal/dto"
	"github.com/kuiz-app/kuiz/internal/model"
	"github.com/kuiz-app/kuiz/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService opens attempts and serves the review views used by test
// owners.
type AttemptService interface {
	StartAttempt(testID string, req dto.AttemptStartDTO) (*dto.AttemptResponseDTO, error)
	ListTestAttempts(testID string) ([]dto.AttemptSummaryDTO, error)
	GetAttemptDetail(attemptID string) (*dto.AttemptDetailDTO, error)
}

type attemptService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.AttemptRepository
}

func NewAttemptService(testRepo repository.TestRepository, attemptRepo repository.AttemptRepository) AttemptService {
	return &attemptService{testRepo: testRepo, attemptRepo: attemptRepo}
}

func (s *attemptService) StartAttempt(testID string, req dto.AttemptStartDTO) (*dto.AttemptResponseDTO, error) {
	if _, err := s.testRepo.FindByID(testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		log.Error().Err(err).Str("testID", testID).Msg("StartAttempt: failed to load test")
		return nil, fmt.Errorf("error fetching test %s: %w", testID, err)
	}

	attempt := model.Attempt{
		TestID: testID,
		UserID: req.UserID,
		Name:   req.Name,
		Email:  req.Email,
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Str("testID", testID).Msg("StartAttempt: failed to create attempt")
		return nil, fmt.Errorf("error creating attempt: %w", err)
	}

	log.Info().Str("attemptID", attempt.ID).Str("testID", testID).Msg("Attempt started")
	return &dto.AttemptResponseDTO{
		ID:        attempt.ID,
		TestID:    attempt.TestID,
		Name:      attempt.Name,
		Email:     attempt.Email,
		StartedAt: attempt.StartedAt,
	}, nil
}

func (s *attemptService) ListTestAttempts(testID string) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByTest(testID)
	if err != nil {
		log.Error().Err(err).Str("testID", testID).Msg("Failed to list attempts for test")
		return nil, fmt.Errorf("error fetching attempts for test %s: %w", testID, err)
	}

	dtos := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for _, attempt := range attempts {
		var summary dto.AttemptSummaryDTO
		if err := copier.Copy(&summary, &attempt); err != nil {
			log.Error().Err(err).Str("attemptID", attempt.ID).Msg("Failed to copy attempt to summary DTO")
			continue
		}
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

func (s *attemptService) GetAttemptDetail(attemptID string) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		log.Error().Err(err).Str("attemptID", attemptID).Msg("Failed to load attempt detail")
		return nil, fmt.Errorf("error fetching attempt %s: %w", attemptID, err)
	}

	var resp dto.AttemptDetailDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Str("attemptID", attemptID).Msg("Failed to copy attempt to detail DTO")
		return nil, fmt.Errorf("error preparing attempt detail: %w", err)
	}
	resp.TestTitle = attempt.Test.Title

	resp.Answers = make([]dto.AnswerResponseDTO, 0, len(attempt.Answers))
	for _, answer := range attempt.Answers {
		var aDto dto.AnswerResponseDTO
		if err := copier.Copy(&aDto, &answer); err != nil {
			log.Error().Err(err).Str("answerID", answer.ID).Msg("Failed to copy answer to DTO")
			continue
		}
		resp.Answers = append(resp.Answers, aDto)
	}
	return &resp, nil
}
