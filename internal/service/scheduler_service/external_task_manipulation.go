package scheduler_service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
)

func (s *Scheduler) GetTaskState(taskID uuid.UUID) (TaskState, error) {
	task, err := s.getTask(taskID)
	if err != nil {
		return StateUnknown, err
	}

	return task.getState(), nil
}

// TriggerTask runs the task now without moving its weekly slot. A trigger
// arriving while a run is pending is dropped.
func (s *Scheduler) TriggerTask(taskID uuid.UUID) error {
	task, err := s.getTask(taskID)
	if err != nil {
		return err
	}

	state := task.getState()
	if state == StateQueued || state == StateKilled {
		return fmt.Errorf(
			"%w, task %s is not active, state %s",
			bot_errors.ErrInvalidRequest,
			taskID,
			state,
		)
	}

	select {
	case task.trigger <- struct{}{}:
	default:
	}
	return nil
}

func (s *Scheduler) KillTask(taskID uuid.UUID) error {
	task, err := s.getTask(taskID)
	if err != nil {
		return err
	}

	task.Lock()
	cancel := task.cancel
	task.Unlock()

	if cancel == nil {
		// never started, it will not start either
		task.setState(StateKilled)
		return nil
	}
	cancel()

	return nil
}
