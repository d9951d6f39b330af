package user

import (
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

type stubCatalogService struct {
	summaries []dto.TestSummaryDTO
	take      *dto.TakeTestDTO
	err       error
}

func (s *stubCatalogService) GetAllTests() ([]dto.TestSummaryDTO, error) {
	return s.summaries, s.err
}

func (s *stubCatalogService) GetTestForTaking(testID string) (*dto.TakeTestDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.take, nil
}

type stubAttemptService struct {
	started *dto.AttemptResponseDTO
	err     error
}

func (s *stubAttemptService) StartAttempt(testID string, req dto.AttemptStartDTO) (*dto.AttemptResponseDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.started, nil
}

func (s *stubAttemptService) ListTestAttempts(testID string) ([]dto.AttemptSummaryDTO, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAttemptService) GetAttemptDetail(attemptID string) (*dto.AttemptDetailDTO, error) {
	return nil, errors.New("not implemented")
}

type stubGradingService struct {
	result  *dto.GradeResultDTO
	err     error
	lastReq dto.GradeRequestDTO
}

func (s *stubGradingService) GradeAttempt(req dto.GradeRequestDTO) (*dto.GradeResultDTO, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestRouter(grading service.GradingService) (*gin.Engine, *stubCatalogService, *stubAttemptService) {
	gin.SetMode(gin.TestMode)
	catalog := &stubCatalogService{}
	attempts := &stubAttemptService{}
	controller := NewTestController(catalog, attempts, grading)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	api := r.Group("/api/v1")
	{
		api.GET("/tests", controller.GetAllTests)
		api.GET("/tests/:test_id", controller.GetTestDetails)
		api.POST("/tests/:test_id/attempts", controller.StartAttempt)
		api.POST("/grade", controller.GradeAttempt)
	}
	return r, catalog, attempts
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGradeEndpoint(t *testing.T) {
	grading := &stubGradingService{result: &dto.GradeResultDTO{Score: 4, ShowScore: true}}
	r, _, _ := newTestRouter(grading)

	w := doJSON(r, http.MethodPost, "/api/v1/grade",
		`{"attemptId":"attempt-1","testId":"test-1","selections":[{"questionId":"q1","optionId":"opt-b"}]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var result dto.GradeResultDTO
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if result.Score != 4 || !result.ShowScore || result.WillEmail {
		t.Errorf("result = %+v", result)
	}

	if grading.lastReq.AttemptID != "attempt-1" || grading.lastReq.TestID != "test-1" {
		t.Errorf("service got %+v", grading.lastReq)
	}
	if len(grading.lastReq.Selections) != 1 || grading.lastReq.Selections[0].QuestionID != "q1" {
		t.Errorf("selections = %+v", grading.lastReq.Selections)
	}
}

func TestGradeEndpointResponseFieldNames(t *testing.T) {
	grading := &stubGradingService{result: &dto.GradeResultDTO{Score: 2, ShowScore: false, WillEmail: true}}
	r, _, _ := newTestRouter(grading)

	w := doJSON(r, http.MethodPost, "/api/v1/grade", `{"attemptId":"a","testId":"t","selections":[]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	for _, field := range []string{"score", "showScore", "willEmail"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("response missing %q: %s", field, w.Body.String())
		}
	}
}

func TestGradeEndpointErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{
			name:       "malformed json",
			body:       `{"attemptId":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid JSON",
		},
		{
			name:       "missing attempt id",
			body:       `{"testId":"t","selections":[]}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing attemptId/testId",
		},
		{
			name:       "missing test id",
			body:       `{"attemptId":"a","selections":[]}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing attemptId/testId",
		},
		{
			name:       "attempt not found",
			body:       `{"attemptId":"a","testId":"t","selections":[]}`,
			serviceErr: service.ErrAttemptNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "Attempt not found",
		},
		{
			name:       "test not found",
			body:       `{"attemptId":"a","testId":"t","selections":[]}`,
			serviceErr: service.ErrTestNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "Test not found",
		},
		{
			name:       "already submitted",
			body:       `{"attemptId":"a","testId":"t","selections":[]}`,
			serviceErr: service.ErrAttemptSubmitted,
			wantStatus: http.StatusBadRequest,
			wantError:  "Already submitted",
		},
		{
			name:       "store failure",
			body:       `{"attemptId":"a","testId":"t","selections":[]}`,
			serviceErr: errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "connection refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRouter(&stubGradingService{err: tt.serviceErr})
			w := doJSON(r, http.MethodPost, "/api/v1/grade", tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
			var resp dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("bad error body: %v", err)
			}
			if resp.Message != tt.wantError {
				t.Errorf("error = %q, want %q", resp.Message, tt.wantError)
			}
		})
	}
}

func TestGradeEndpointMethodNotAllowed(t *testing.T) {
	r, _, _ := newTestRouter(&stubGradingService{})

	w := doJSON(r, http.MethodGet, "/api/v1/grade", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestGetAllTestsEndpoint(t *testing.T) {
	r, catalog, _ := newTestRouter(&stubGradingService{})
	catalog.summaries = []dto.TestSummaryDTO{{ID: "test-1", Title: "Geography Basics", QuestionCount: 2}}

	w := doJSON(r, http.MethodGet, "/api/v1/tests", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got []dto.TestSummaryDTO
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Geography Basics" {
		t.Errorf("body = %+v", got)
	}
}

func TestGetTestDetailsNotFound(t *testing.T) {
	r, catalog, _ := newTestRouter(&stubGradingService{})
	catalog.err = service.ErrTestNotFound

	w := doJSON(r, http.MethodGet, "/api/v1/tests/missing", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestStartAttemptEndpoint(t *testing.T) {
	r, _, attempts := newTestRouter(&stubGradingService{})
	attempts.started = &dto.AttemptResponseDTO{ID: "attempt-1", TestID: "test-1", Name: "Ada"}

	w := doJSON(r, http.MethodPost, "/api/v1/tests/test-1/attempts", `{"name":"Ada","email":"ada@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got dto.AttemptResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if got.ID != "attempt-1" {
		t.Errorf("body = %+v", got)
	}
}

func TestStartAttemptRejectsBadEmail(t *testing.T) {
	r, _, _ := newTestRouter(&stubGradingService{})

	w := doJSON(r, http.MethodPost, "/api/v1/tests/test-1/attempts", `{"name":"Ada","email":"not-an-email"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
