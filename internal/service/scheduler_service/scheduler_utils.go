package scheduler_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
)

// Next returns the first occurrence strictly after the given time
func (w Weekly) Next(after time.Time) time.Time {
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	after = after.In(loc)

	candidate := time.Date(after.Year(), after.Month(), after.Day(), w.Hour, w.Minute, 0, 0, loc)
	days := (int(w.Weekday) - int(candidate.Weekday()) + 7) % 7
	candidate = candidate.AddDate(0, 0, days)
	if !candidate.After(after) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

func (w Weekly) String() string {
	loc := "UTC"
	if w.Location != nil {
		loc = w.Location.String()
	}
	return fmt.Sprintf("every %s at %02d:%02d %s", w.Weekday, w.Hour, w.Minute, loc)
}

func (w Weekly) validate() error {
	if w.Weekday < time.Sunday || w.Weekday > time.Saturday {
		return fmt.Errorf("%w, invalid weekday %d", bot_errors.ErrInvalidRequest, w.Weekday)
	}
	if w.Hour < 0 || w.Hour > 23 {
		return fmt.Errorf("%w, hour must be within 0-23", bot_errors.ErrInvalidRequest)
	}
	if w.Minute < 0 || w.Minute > 59 {
		return fmt.Errorf("%w, minute must be within 0-59", bot_errors.ErrInvalidRequest)
	}
	return nil
}

func getTaskStateFromError(err error) TaskState {
	if err == nil {
		return StateCompleted
	}
	if errors.Is(err, context.Canceled) {
		return StateKilled
	}
	return StateFailed
}

func (s *Scheduler) getTask(taskID uuid.UUID) (*Task, error) {
	s.taskMapLock.RLock()
	defer s.taskMapLock.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf(
			"%w, no task with id %v",
			bot_errors.ErrNotFound,
			taskID,
		)
	}
	return task, nil
}

func (t *Task) getState() TaskState {
	t.Lock()
	defer t.Unlock()
	return t.State
}

func (t *Task) setState(state TaskState) {
	t.Lock()
	defer t.Unlock()
	t.State = state
}

func (t *Task) getLogger(prefix string) *logrus.Entry {
	return logrus.WithFields(
		logrus.Fields{
			"task_id":   t.TaskID,
			"task_name": t.Name,
			"from":      prefix + "task",
		},
	)
}
