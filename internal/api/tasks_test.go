package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
	"github.com/tcp_snm/lcbot/internal/service"
	"github.com/tcp_snm/lcbot/internal/service/scheduler_service"
)

type fakeTasks struct {
	known     uuid.UUID
	state     scheduler_service.TaskState
	triggered int
	err       error
}

func (f *fakeTasks) lookup(taskID uuid.UUID) error {
	if taskID != f.known {
		return fmt.Errorf("%w, task %s", bot_errors.ErrNotFound, taskID)
	}
	return nil
}

func (f *fakeTasks) GetTaskState(taskID uuid.UUID) (scheduler_service.TaskState, error) {
	if err := f.lookup(taskID); err != nil {
		return scheduler_service.StateUnknown, err
	}
	return f.state, nil
}

func (f *fakeTasks) TriggerTask(taskID uuid.UUID) error {
	if err := f.lookup(taskID); err != nil {
		return err
	}
	if f.err != nil {
		return f.err
	}
	f.triggered++
	return nil
}

func (f *fakeTasks) KillTask(taskID uuid.UUID) error {
	if err := f.lookup(taskID); err != nil {
		return err
	}
	f.state = scheduler_service.StateKilled
	return nil
}

func TestHandlerWeeklyTask(t *testing.T) {
	t.Setenv(service.KeyJWTSecret, "test-secret")
	taskID := uuid.New()
	tasks := &fakeTasks{known: taskID, state: scheduler_service.StateWaiting}
	router := newTestRouter(&Api{Scheduler: tasks, WeeklyTaskID: taskID})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks/weekly", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var response taskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, taskID, response.TaskID)
	assert.Equal(t, scheduler_service.StateWaiting.String(), response.State)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tasks/weekly/trigger", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, tasks.triggered)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(t, httptest.NewRequest(http.MethodPost, "/tasks/weekly/trigger", nil)))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, tasks.triggered)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(t, httptest.NewRequest(http.MethodPost, "/tasks/weekly/kill", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, scheduler_service.StateKilled.String(), response.State)

	// a killed task refuses triggers
	tasks.err = fmt.Errorf("%w, task is not active", bot_errors.ErrInvalidRequest)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authorized(t, httptest.NewRequest(http.MethodPost, "/tasks/weekly/trigger", nil)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, tasks.triggered)
}

func TestHandlerWeeklyTaskNotScheduled(t *testing.T) {
	router := newTestRouter(&Api{Scheduler: &fakeTasks{known: uuid.New()}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks/weekly", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
