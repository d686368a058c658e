package scheduler_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
)

func NewScheduler() *Scheduler {
	logrus.Info("initializing scheduler's tasks map")
	return &Scheduler{
		tasks: make(map[uuid.UUID]*Task),
		now:   time.Now,
	}
}

// Start launches a goroutine per scheduled task. Tasks scheduled afterwards
// are launched immediately. All of them stop once ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.taskMapLock.Lock()
	defer s.taskMapLock.Unlock()

	if s.ctx != nil {
		return fmt.Errorf("%w, scheduler already started", bot_errors.ErrComponentStart)
	}
	s.ctx = ctx

	logrus.Infof("starting scheduler with %d tasks", len(s.tasks))
	for _, task := range s.tasks {
		s.startTask(task)
	}
	return nil
}

// Wait blocks until every task goroutine has returned
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
