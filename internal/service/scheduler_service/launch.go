package scheduler_service

import (
	"context"
	"time"
)

// must be called with taskMapLock held
func (s *Scheduler) startTask(task *Task) {
	task.Lock()
	if task.State == StateKilled {
		task.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(s.ctx)
	task.cancel = cancel
	task.State = StateWaiting
	task.Unlock()

	s.wg.Add(1)
	go s.launch(ctx, task)
}

func (s *Scheduler) launch(ctx context.Context, task *Task) {
	defer s.wg.Done()

	launchLogger := task.getLogger("launchable_")

	for {
		next := task.Schedule.Next(s.now())
		task.Lock()
		task.NextRun = next
		task.Unlock()

		launchLogger.Debugf("next run at %s", next)

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			task.setState(StateKilled)
			launchLogger.Info("task stopped")
			return
		case <-task.trigger:
			timer.Stop()
			launchLogger.Info("task triggered manually")
		case <-timer.C:
		}

		s.execute(ctx, task)
	}
}
