package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasknag-backend/internal/task/domain"
	"tasknag-backend/internal/task/repository"
	"tasknag-backend/internal/task/usecase"
)

// stubUsecase returns canned values; each test overrides what it needs.
type stubUsecase struct {
	usecase.TaskUsecase

	task *domain.Task
	list []*domain.Task
	err  error
}

func (s *stubUsecase) CreateTask(context.Context, usecase.CreateTaskRequest) (*domain.Task, error) {
	return s.task, s.err
}

func (s *stubUsecase) GetTask(context.Context, string) (*domain.Task, error) {
	return s.task, s.err
}

func (s *stubUsecase) ListBoard(context.Context) ([]*domain.Task, error) {
	return s.list, s.err
}

func (s *stubUsecase) UpdateProgress(context.Context, string, int) (*domain.Task, error) {
	return s.task, s.err
}

func (s *stubUsecase) MoveTask(context.Context, string, string) (*domain.Task, error) {
	return s.task, s.err
}

func (s *stubUsecase) DeleteTask(context.Context, string) error {
	return s.err
}

func newTestRouter(uc usecase.TaskUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTaskHandler(uc)

	r := gin.New()
	r.GET("/api/tasks", h.GetTasks)
	r.POST("/api/tasks", h.CreateTask)
	r.GET("/api/tasks/:id", h.GetTaskByID)
	r.DELETE("/api/tasks/:id", h.DeleteTask)
	r.PATCH("/api/tasks/:id/move", h.MoveTask)
	r.PATCH("/api/tasks/:id/progress", h.UpdateProgress)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetTasks_OK(t *testing.T) {
	r := newTestRouter(&stubUsecase{list: []*domain.Task{{ID: "t1", Title: "Buy milk"}}})

	w := doJSON(t, r, http.MethodGet, "/api/tasks", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Buy milk")
}

func TestCreateTask_Created(t *testing.T) {
	r := newTestRouter(&stubUsecase{task: &domain.Task{ID: "t1", Title: "New"}})

	w := doJSON(t, r, http.MethodPost, "/api/tasks", map[string]string{"title": "New"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetTaskByID_NotFound(t *testing.T) {
	r := newTestRouter(&stubUsecase{err: repository.ErrNotFound})

	w := doJSON(t, r, http.MethodGet, "/api/tasks/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProgress_DerivedConflict(t *testing.T) {
	r := newTestRouter(&stubUsecase{err: usecase.ErrProgressDerived})

	w := doJSON(t, r, http.MethodPatch, "/api/tasks/t1/progress", map[string]int{"progress": 50})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateProgress_RequiresBody(t *testing.T) {
	r := newTestRouter(&stubUsecase{task: &domain.Task{ID: "t1"}})

	w := doJSON(t, r, http.MethodPatch, "/api/tasks/t1/progress", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoveTask_OK(t *testing.T) {
	r := newTestRouter(&stubUsecase{task: &domain.Task{ID: "t1", Status: domain.TaskStatusTodo}})

	w := doJSON(t, r, http.MethodPatch, "/api/tasks/t1/move", map[string]string{"status": "todo"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteTask_OK(t *testing.T) {
	r := newTestRouter(&stubUsecase{})

	w := doJSON(t, r, http.MethodDelete, "/api/tasks/t1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
