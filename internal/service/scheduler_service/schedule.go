package scheduler_service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
)

func (s *Scheduler) ScheduleTask(req TaskRequest) (uuid.UUID, error) {
	// validate first
	err := validateTaskRequest(req)
	if err != nil {
		return uuid.Nil, err
	}
	if req.RunTimeout <= 0 {
		req.RunTimeout = DefaultRunTimeout
	}

	// generate a random taskID
	taskID := uuid.New()

	task := Task{
		TaskRequest: req,
		TaskID:      taskID,
		State:       StateQueued,
		trigger:     make(chan struct{}, 1),
	}

	logrus.WithFields(
		logrus.Fields{
			"task_id":   task.TaskID,
			"task_name": task.Name,
		},
	).Infof("scheduling task %s", req.Schedule)

	s.taskMapLock.Lock()
	defer s.taskMapLock.Unlock()

	s.tasks[taskID] = &task
	if s.ctx != nil {
		s.startTask(&task)
	}

	return taskID, nil
}

func validateTaskRequest(req TaskRequest) error {
	if req.Name == "" {
		return fmt.Errorf(
			"%w, task name cannot be empty",
			bot_errors.ErrInvalidRequest,
		)
	}

	if req.Run == nil {
		return fmt.Errorf(
			"%w, Run callback cannot be nil",
			bot_errors.ErrInvalidRequest,
		)
	}

	return req.Schedule.validate()
}
