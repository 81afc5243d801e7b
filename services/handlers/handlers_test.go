package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/english_api/dto"
	"github.com/lac-hong-legacy/english_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int                   `json:"code"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []dto.ValidationError `json:"errors"`
}

// newTestApp mounts routes behind a fake auth step that trusts the
// X-User-Id and X-User-Role headers.
func newTestApp(register func(app *fiber.App)) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if appErr, ok := shared.GetAppError(err); ok {
				return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
			}
			return shared.ResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(shared.UserID, c.Get("X-User-Id"))
		c.Locals(shared.UserRole, c.Get("X-User-Role"))
		return c.Next()
	})
	register(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set("X-User-Id", "user-1")
	req.Header.Set("X-User-Role", shared.RoleTeacher)

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, sonic.Unmarshal(raw, &env))
	}
	return resp, env
}

type fakeProgressService struct {
	ProgressServiceInterface

	gotUser string
	gotReq  dto.CompleteLessonRequest
	err     error
}

func (f *fakeProgressService) RecordCompletion(userID string, req dto.CompleteLessonRequest) (*dto.CompleteLessonResponse, error) {
	f.gotUser = userID
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.CompleteLessonResponse{NewAchievements: []string{"first_lesson"}}, nil
}

func TestCompleteLesson(t *testing.T) {
	svc := &fakeProgressService{}
	app := newTestApp(func(app *fiber.App) {
		app.Post("/complete", NewProgressHandler(svc).CompleteLesson)
	})

	resp, env := doRequest(t, app, fiber.MethodPost, "/complete", `{"lessonId":"l1","score":80,"timeSpent":10,"skill":"grammar"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lesson completed", env.Message)
	assert.Equal(t, "user-1", svc.gotUser)
	require.NotNil(t, svc.gotReq.Score)
	assert.Equal(t, 80, *svc.gotReq.Score)

	var data dto.CompleteLessonResponse
	require.NoError(t, sonic.Unmarshal(env.Data, &data))
	assert.Equal(t, []string{"first_lesson"}, data.NewAchievements)
}

func TestCompleteLesson_RejectsBadInput(t *testing.T) {
	svc := &fakeProgressService{}
	app := newTestApp(func(app *fiber.App) {
		app.Post("/complete", NewProgressHandler(svc).CompleteLesson)
	})

	resp, env := doRequest(t, app, fiber.MethodPost, "/complete", `{"lessonId":"l1","score":101,"timeSpent":10}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "score", env.Errors[0].Field)

	resp, env = doRequest(t, app, fiber.MethodPost, "/complete", `{"lessonId":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request", env.Message)

	assert.Empty(t, svc.gotUser, "the service is never reached")
}

func TestCompleteLesson_ServiceErrorStatus(t *testing.T) {
	svc := &fakeProgressService{err: shared.NewConflictError(nil, "Progress was updated by another request, please retry")}
	app := newTestApp(func(app *fiber.App) {
		app.Post("/complete", NewProgressHandler(svc).CompleteLesson)
	})

	resp, env := doRequest(t, app, fiber.MethodPost, "/complete", `{"lessonId":"l1","score":0,"timeSpent":1}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, 409, env.Code)
}

func (f *fakeProgressService) UpdateWeeklyGoal(userID string, goal int) (*dto.WeeklyGoalResponse, error) {
	f.gotUser = userID
	return &dto.WeeklyGoalResponse{WeeklyGoal: goal}, nil
}

func TestUpdateWeeklyGoal_Bounds(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{body: `{"weeklyGoal":1}`, want: fiber.StatusOK},
		{body: `{"weeklyGoal":20}`, want: fiber.StatusOK},
		{body: `{"weeklyGoal":0}`, want: fiber.StatusBadRequest},
		{body: `{"weeklyGoal":-1}`, want: fiber.StatusBadRequest},
		{body: `{"weeklyGoal":21}`, want: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		svc := &fakeProgressService{}
		app := newTestApp(func(app *fiber.App) {
			app.Put("/weekly-goal", NewProgressHandler(svc).UpdateWeeklyGoal)
		})

		resp, env := doRequest(t, app, fiber.MethodPut, "/weekly-goal", tt.body)
		assert.Equal(t, tt.want, resp.StatusCode, tt.body)
		if tt.want == fiber.StatusBadRequest {
			require.Len(t, env.Errors, 1, tt.body)
			assert.Equal(t, "weeklyGoal", env.Errors[0].Field)
			assert.Empty(t, svc.gotUser, "the service is never reached")
		}
	}
}

type fakeTeacherService struct {
	TeacherServiceInterface
	report []byte
}

func (f *fakeTeacherService) ExportStudents(string) ([]byte, error) {
	return f.report, nil
}

func (f *fakeTeacherService) UnlinkStudent(_, studentID string) error {
	if studentID != "s1" {
		return shared.NewNotFoundError(nil, "Student is not linked to you")
	}
	return nil
}

func TestExportStudents(t *testing.T) {
	app := newTestApp(func(app *fiber.App) {
		app.Get("/export", NewTeacherHandler(&fakeTeacherService{report: []byte("xlsx-bytes")}).ExportStudents)
	})

	resp, _ := doRequest(t, app, fiber.MethodGet, "/export", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="students-`)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "xlsx-bytes", string(body))
}

func TestUnlinkStudent(t *testing.T) {
	app := newTestApp(func(app *fiber.App) {
		app.Delete("/students/:studentId", NewTeacherHandler(&fakeTeacherService{}).UnlinkStudent)
	})

	resp, _ := doRequest(t, app, fiber.MethodDelete, "/students/s1", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, env := doRequest(t, app, fiber.MethodDelete, "/students/s2", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Student is not linked to you", env.Message)
}

type fakeAIService struct {
	AIServiceInterface

	gotLimit  int
	gotViewer shared.Viewer
}

func (f *fakeAIService) History(_ string, limit int) (*dto.AIHistoryResponse, error) {
	f.gotLimit = limit
	return &dto.AIHistoryResponse{}, nil
}

func (f *fakeAIService) GenerateLesson(_ context.Context, viewer shared.Viewer, _ dto.GenerateLessonRequest) (*dto.GenerateLessonResponse, error) {
	f.gotViewer = viewer
	return nil, shared.NewPaymentRequiredError(errors.New("insufficient credits"), "Not enough AI credits")
}

func TestAIHistory_DefaultLimit(t *testing.T) {
	svc := &fakeAIService{}
	app := newTestApp(func(app *fiber.App) {
		app.Get("/history", NewAIHandler(svc).History)
	})

	resp, _ := doRequest(t, app, fiber.MethodGet, "/history", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, defaultHistoryLimit, svc.gotLimit)

	_, _ = doRequest(t, app, fiber.MethodGet, "/history?limit=5", "")
	assert.Equal(t, 5, svc.gotLimit)
}

func TestGenerateLesson_PaymentRequired(t *testing.T) {
	svc := &fakeAIService{}
	app := newTestApp(func(app *fiber.App) {
		app.Post("/generate", NewAIHandler(svc).GenerateLesson)
	})

	resp, env := doRequest(t, app, fiber.MethodPost, "/generate", `{"topic":"Travel","skill":"speaking","level":"beginner"}`)
	assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)
	assert.Equal(t, "Not enough AI credits", env.Message)
	assert.Equal(t, shared.Viewer{UserID: "user-1", Role: shared.RoleTeacher}, svc.gotViewer)
}
