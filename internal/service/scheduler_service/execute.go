package scheduler_service

import (
	"context"
	"fmt"
	"time"

	"github.com/tcp_snm/lcbot/internal/bot_errors"
)

func (s *Scheduler) execute(ctx context.Context, task *Task) {
	executeLogger := task.getLogger("executable_")
	executeLogger.Info("executing task")

	task.Lock()
	task.State = StateRunning
	task.LastRun = s.now()
	task.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, task.RunTimeout)
	err := runSafely(runCtx, task.Run)
	cancel()

	task.Lock()
	task.Runs++
	task.LastError = err
	task.State = getTaskStateFromError(err)
	task.Unlock()

	taskRuns.WithLabelValues(task.Name, task.getState().String()).Inc()

	if err != nil {
		executeLogger.Errorf("task run failed, %v", err)
	} else {
		executeLogger.Info("task run completed")
	}

	// inform
	if task.OnTaskComplete != nil {
		executeLogger.Debug("launching a gor calling OnTaskComplete")
		go task.OnTaskComplete(task.TaskID, err)
	}
}

// a panicking task must not take the scheduler down
func runSafely(ctx context.Context, run func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w, task panicked: %v", bot_errors.ErrInternal, r)
		}
	}()
	startedAt := time.Now()
	err = run(ctx)
	taskDuration.Observe(time.Since(startedAt).Seconds())
	return
}
