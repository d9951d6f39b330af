package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kuiz-app/kuiz/internal/dto"
	"github.com/kuiz-app/kuiz/internal/service"
)

type stubAdminTestService struct {
	created *dto.TestResponseDTO
	err     error
}

func (s *stubAdminTestService) CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

type stubAttemptService struct {
	summaries []dto.AttemptSummaryDTO
	detail    *dto.AttemptDetailDTO
	err       error
}

func (s *stubAttemptService) StartAttempt(testID string, req dto.AttemptStartDTO) (*dto.AttemptResponseDTO, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAttemptService) ListTestAttempts(testID string) ([]dto.AttemptSummaryDTO, error) {
	return s.summaries, s.err
}

func (s *stubAttemptService) GetAttemptDetail(attemptID string) (*dto.AttemptDetailDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

type stubQuestionService struct {
	drafts []dto.DraftQuestionDTO
	err    error
}

func (s *stubQuestionService) GenerateQuestions(ctx context.Context, req dto.GenerateQuestionsDTO) ([]dto.DraftQuestionDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.drafts, nil
}

func newAdminRouter(tests service.AdminTestService, attempts service.AttemptService, questions service.GeminiQuestionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewTestController(tests, attempts, questions)

	r := gin.New()
	adminGroup := r.Group("/api/v1/admin")
	{
		adminGroup.POST("/tests", controller.CreateTest)
		adminGroup.GET("/tests/:test_id/attempts", controller.ListTestAttempts)
		adminGroup.GET("/attempts/:attempt_id", controller.GetAttemptDetail)
		adminGroup.POST("/questions/generate", controller.GenerateQuestions)
	}
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTestEndpoint(t *testing.T) {
	r := newAdminRouter(
		&stubAdminTestService{created: &dto.TestResponseDTO{ID: "test-1", Title: "Geography Basics"}},
		&stubAttemptService{}, &stubQuestionService{})

	w := doJSON(r, http.MethodPost, "/api/v1/admin/tests",
		`{"title":"Geography Basics","questions":[{"type":"mcq","body":"Q","options":[
			{"label":"A","text":"x","is_correct":true},{"label":"B","text":"y"}]}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got dto.TestResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if got.ID != "test-1" {
		t.Errorf("body = %+v", got)
	}
}

func TestCreateTestEndpointRejectsInvalidBody(t *testing.T) {
	r := newAdminRouter(&stubAdminTestService{}, &stubAttemptService{}, &stubQuestionService{})

	// questions are required and must not be empty
	w := doJSON(r, http.MethodPost, "/api/v1/admin/tests", `{"title":"T","questions":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGenerateQuestionsEndpoint(t *testing.T) {
	label := "A"
	r := newAdminRouter(&stubAdminTestService{}, &stubAttemptService{},
		&stubQuestionService{drafts: []dto.DraftQuestionDTO{{
			Type:         "mcq",
			Body:         "Capital of France?",
			CorrectLabel: &label,
			Points:       1,
		}}})

	w := doJSON(r, http.MethodPost, "/api/v1/admin/questions/generate", `{"topic":"Geography"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got dto.DraftQuestionsDTO
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(got.Questions) != 1 || got.Questions[0].Body != "Capital of France?" {
		t.Errorf("body = %+v", got)
	}
}

func TestGenerateQuestionsEndpointErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{"missing topic", `{}`, nil, http.StatusBadRequest},
		{"bad mix value", `{"topic":"T","mix":"essay_only"}`, nil, http.StatusBadRequest},
		{"unusable ai output", `{"topic":"T"}`, service.ErrBadAIResponse, http.StatusBadGateway},
		{"transport failure", `{"topic":"T"}`, errors.New("deadline exceeded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAdminRouter(&stubAdminTestService{}, &stubAttemptService{},
				&stubQuestionService{err: tt.serviceErr})
			w := doJSON(r, http.MethodPost, "/api/v1/admin/questions/generate", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestListTestAttemptsEndpoint(t *testing.T) {
	r := newAdminRouter(&stubAdminTestService{},
		&stubAttemptService{summaries: []dto.AttemptSummaryDTO{{ID: "attempt-1", TestID: "test-1"}}},
		&stubQuestionService{})

	w := doJSON(r, http.MethodGet, "/api/v1/admin/tests/test-1/attempts", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got []dto.AttemptSummaryDTO
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(got) != 1 || got[0].ID != "attempt-1" {
		t.Errorf("body = %+v", got)
	}
}

func TestGetAttemptDetailNotFound(t *testing.T) {
	r := newAdminRouter(&stubAdminTestService{},
		&stubAttemptService{err: service.ErrAttemptNotFound}, &stubQuestionService{})

	w := doJSON(r, http.MethodGet, "/api/v1/admin/attempts/missing", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
