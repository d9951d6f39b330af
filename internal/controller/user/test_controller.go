package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kuiz-app/kuiz/internal/dto"
	"github.com/kuiz-app/kuiz/internal/service"
	"github.com/rs/zerolog/log"
)

// TestController serves the participant-facing routes: browsing tests,
// starting attempts, and submitting them for grading.
type TestController struct {
	catalogService service.TestCatalogService
	attemptService service.AttemptService
	gradingService service.GradingService
}

func NewTestController(
	catalogService service.TestCatalogService,
	attemptService service.AttemptService,
	gradingService service.GradingService,
) *TestController {
	return &TestController{
		catalogService: catalogService,
		attemptService: attemptService,
		gradingService: gradingService,
	}
}

// GetAllTests godoc
// @Summary List all available tests
// @Description Get the catalog of tests a participant can take.
// @Tags Tests & Attempts
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *TestController) GetAllTests(ctx *gin.Context) {
	tests, err := c.catalogService.GetAllTests()
	if err != nil {
		log.Error().Err(err).Msg("GetAllTests: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve tests", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary Get a test for taking
// @Description Get a test with its questions and options. Correct answers are not included.
// @Tags Tests & Attempts
// @Produce json
// @Param test_id path string true "Test ID"
// @Success 200 {object} dto.TakeTestDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id} [get]
func (c *TestController) GetTestDetails(ctx *gin.Context) {
	test, err := c.catalogService.GetTestForTaking(ctx.Param("test_id"))
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Test not found"})
			return
		}
		log.Error().Err(err).Str("testID", ctx.Param("test_id")).Msg("GetTestDetails: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve test", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// StartAttempt godoc
// @Summary Start an attempt
// @Description Open a new attempt on a test for a participant.
// @Tags Tests & Attempts
// @Accept json
// @Produce json
// @Param test_id path string true "Test ID"
// @Param attempt_data body dto.AttemptStartDTO true "Participant identity"
// @Success 201 {object} dto.AttemptResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id}/attempts [post]
func (c *TestController) StartAttempt(ctx *gin.Context) {
	var req dto.AttemptStartDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	attempt, err := c.attemptService.StartAttempt(ctx.Param("test_id"), req)
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Test not found"})
			return
		}
		log.Error().Err(err).Str("testID", ctx.Param("test_id")).Msg("StartAttempt: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to start attempt", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, attempt)
}

// GradeAttempt godoc
// @Summary Grade an attempt
// @Description Submit an attempt's selections for grading. Grading is single-shot: an already submitted attempt is rejected.
// @Tags Tests & Attempts
// @Accept json
// @Produce json
// @Param grade_request body dto.GradeRequestDTO true "Attempt, test, and selections"
// @Success 200 {object} dto.GradeResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid JSON, missing ids, or already submitted"
// @Failure 404 {object} dto.ErrorResponse "Attempt or test not found"
// @Failure 500 {object} dto.ErrorResponse "Downstream store failure"
// @Router /grade [post]
func (c *TestController) GradeAttempt(ctx *gin.Context) {
	var req dto.GradeRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid JSON"})
		return
	}
	if req.AttemptID == "" || req.TestID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing attemptId/testId"})
		return
	}

	result, err := c.gradingService.GradeAttempt(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttemptNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Attempt not found"})
		case errors.Is(err, service.ErrTestNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Test not found"})
		case errors.Is(err, service.ErrAttemptSubmitted):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Already submitted"})
		default:
			log.Error().Err(err).Str("attemptID", req.AttemptID).Msg("GradeAttempt: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		}
		return
	}
	ctx.JSON(http.StatusOK, result)
}
