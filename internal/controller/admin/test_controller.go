package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kuiz-app/kuiz/internal/dto"
	"github.com/kuiz-app/kuiz/internal/service"
	"github.com/rs/zerolog/log"
)

// TestController serves the creator-facing routes: test authoring, AI
// question drafting, and result review.
type TestController struct {
	adminTestService service.AdminTestService
	attemptService   service.AttemptService
	questionService  service.GeminiQuestionService
}

func NewTestController(
	adminTestService service.AdminTestService,
	attemptService service.AttemptService,
	questionService service.GeminiQuestionService,
) *TestController {
	return &TestController{
		adminTestService: adminTestService,
		attemptService:   attemptService,
		questionService:  questionService,
	}
}

// CreateTest godoc
// @Summary Create a test
// @Description Create a test with its questions, options, and scoring policy.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param test_data body dto.TestCreateDTO true "Test with questions and scoring policy"
// @Success 201 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateTest: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	test, err := c.adminTestService.CreateTest(req)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateTest: service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to create test", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, test)
}

// ListTestAttempts godoc
// @Summary List attempts for a test
// @Description Get all attempts on a test with scores and submission times.
// @Tags Admin - Results
// @Produce json
// @Param test_id path string true "Test ID"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests/{test_id}/attempts [get]
func (c *TestController) ListTestAttempts(ctx *gin.Context) {
	attempts, err := c.attemptService.ListTestAttempts(ctx.Param("test_id"))
	if err != nil {
		log.Error().Err(err).Str("testID", ctx.Param("test_id")).Msg("ListTestAttempts: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve attempts", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetAttemptDetail godoc
// @Summary Get one attempt with its answers
// @Description Review a single attempt, including per-answer correctness.
// @Tags Admin - Results
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/attempts/{attempt_id} [get]
func (c *TestController) GetAttemptDetail(ctx *gin.Context) {
	detail, err := c.attemptService.GetAttemptDetail(ctx.Param("attempt_id"))
	if err != nil {
		if errors.Is(err, service.ErrAttemptNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Attempt not found"})
			return
		}
		log.Error().Err(err).Str("attemptID", ctx.Param("attempt_id")).Msg("GetAttemptDetail: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve attempt", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// GenerateQuestions godoc
// @Summary Draft questions with AI
// @Description Generate draft questions for a topic. Drafts are returned for review, nothing is persisted.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param generation_request body dto.GenerateQuestionsDTO true "Topic, audience, count, and type mix"
// @Success 200 {object} dto.DraftQuestionsDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 502 {object} dto.ErrorResponse "Unusable AI response"
// @Failure 500 {object} dto.ErrorResponse "AI transport error"
// @Router /admin/questions/generate [post]
func (c *TestController) GenerateQuestions(ctx *gin.Context) {
	var req dto.GenerateQuestionsDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	questions, err := c.questionService.GenerateQuestions(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrBadAIResponse) {
			ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "Bad AI response"})
			return
		}
		log.Error().Err(err).Str("topic", req.Topic).Msg("GenerateQuestions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to generate questions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dto.DraftQuestionsDTO{Questions: questions})
}
