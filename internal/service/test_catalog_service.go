package service

import (
	"errors"
	"fmt"

	"github.com/kuiz-app/kuiz/internal/dto"
	"github.com/kuiz-app/kuiz/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TestCatalogService serves the participant-facing views of tests. Answer
// keys (correct options, accepted text answers) never leave this layer.
type TestCatalogService interface {
	GetAllTests() ([]dto.TestSummaryDTO, error)
	GetTestForTaking(testID string) (*dto.TakeTestDTO, error)
}

type testCatalogService struct {
	testRepo repository.TestRepository
}

func NewTestCatalogService(testRepo repository.TestRepository) TestCatalogService {
	return &testCatalogService{testRepo: testRepo}
}

func (s *testCatalogService) GetAllTests() ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tests with question count")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	dtos := make([]dto.TestSummaryDTO, 0, len(testsWithCount))
	for _, twc := range testsWithCount {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:              twc.Test.ID,
			Title:           twc.Test.Title,
			ShowScore:       twc.Test.ShowScore,
			DurationMinutes: twc.Test.DurationMinutes,
			QuestionCount:   twc.QuestionCount,
			CreatedAt:       twc.Test.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *testCatalogService) GetTestForTaking(testID string) (*dto.TakeTestDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		log.Error().Err(err).Str("testID", testID).Msg("Failed to load test for taking")
		return nil, fmt.Errorf("error fetching test %s: %w", testID, err)
	}

	resp := dto.TakeTestDTO{
		ID:              test.ID,
		Title:           test.Title,
		ShowScore:       test.ShowScore,
		DurationMinutes: test.DurationMinutes,
		Questions:       make([]dto.TakeQuestionDTO, 0, len(test.Questions)),
	}
	for _, q := range test.Questions {
		qDto := dto.TakeQuestionDTO{
			ID:       q.ID,
			Type:     q.Type,
			Body:     q.Body,
			Points:   q.Points,
			Position: q.Position,
		}
		for _, o := range q.Options {
			// participant view: the is_correct flag stays server-side
			qDto.Options = append(qDto.Options, dto.TakeOptionDTO{
				ID:    o.ID,
				Label: o.Label,
				Text:  o.Text,
			})
		}
		resp.Questions = append(resp.Questions, qDto)
	}
	return &resp, nil
}
