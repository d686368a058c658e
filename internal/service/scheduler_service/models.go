package scheduler_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultRunTimeout = 10 * time.Minute
)

type TaskState int

const (
	StateQueued TaskState = iota // waiting for the scheduler to start
	StateWaiting
	StateRunning
	StateCompleted // last run succeeded, waiting for the next one
	StateFailed    // last run failed, waiting for the next one
	StateKilled

	// Use with caution
	StateUnknown
)

func (s TaskState) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateWaiting:
		return "waiting"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateKilled:
		return "killed"
	default:
		return "unknown"
	}
}

// Weekly fires once a week at the given local wall clock time
type Weekly struct {
	Weekday  time.Weekday
	Hour     int
	Minute   int
	Location *time.Location // nil means UTC
}

type Scheduler struct {
	tasks map[uuid.UUID]*Task
	// the tasks map and the started context use the below lock
	taskMapLock sync.RWMutex
	ctx         context.Context
	wg          sync.WaitGroup
	now         func() time.Time
}

type TaskRequest struct {
	Name           string
	Schedule       Weekly
	Run            func(ctx context.Context) error
	RunTimeout     time.Duration
	OnTaskComplete func(taskID uuid.UUID, err error) // optional, called after every run
}

type Task struct {
	TaskRequest
	sync.Mutex
	TaskID    uuid.UUID
	State     TaskState
	NextRun   time.Time
	LastRun   time.Time
	LastError error
	Runs      int
	trigger   chan struct{}
	cancel    context.CancelFunc
}

func (t *Task) String() string {
	return fmt.Sprintf(
		"[TaskID=%s Name=%s NextRun=%s LastRun=%s State=%v Runs=%d]",
		t.TaskID, t.Name, t.NextRun, t.LastRun, t.State, t.Runs,
	)
}
