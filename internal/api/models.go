package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/tcp_snm/lcbot/internal/service/problem_service"
	"github.com/tcp_snm/lcbot/internal/service/scheduler_service"
	"github.com/tcp_snm/lcbot/internal/service/solve_service"
	"github.com/tcp_snm/lcbot/internal/service/user_service"
)

type ReactionApplier interface {
	ApplyReaction(ctx context.Context, event solve_service.ReactionEvent) (solve_service.Outcome, error)
}

type ProblemPublisher interface {
	PublishUnsolved(ctx context.Context, weekly bool) (problem_service.Problem, error)
}

type StatsReader interface {
	GetLeaderboard(ctx context.Context, limit int) ([]user_service.LeaderboardEntry, error)
	GetUserProfile(ctx context.Context, userID string, recentLimit int) (user_service.UserProfile, error)
	GetRecentlySolved(ctx context.Context, limit int) ([]user_service.RecentSolve, error)
	RebuildUserStats(ctx context.Context, userID string) (user_service.User, error)
}

// ChannelPoster shares stats with the community channel
type ChannelPoster interface {
	PostLeaderboard(ctx context.Context, entries []user_service.LeaderboardEntry, community string) error
	PostStats(ctx context.Context, profile user_service.UserProfile, avatarURL string) error
}

type TaskController interface {
	GetTaskState(taskID uuid.UUID) (scheduler_service.TaskState, error)
	TriggerTask(taskID uuid.UUID) error
	KillTask(taskID uuid.UUID) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Api struct {
	SolveServiceConfig   ReactionApplier
	ProblemServiceConfig ProblemPublisher
	UserServiceConfig    StatsReader
	Poster               ChannelPoster
	CommunityName        string
	Scheduler            TaskController
	WeeklyTaskID         uuid.UUID
	DB                   Pinger
}

type reactionUser struct {
	ID       string `json:"id" validate:"required,max=32"`
	Username string `json:"username" validate:"max=64"`
	Bot      bool   `json:"bot"`
}

type reactionMessage struct {
	AuthorID string                `json:"author_id" validate:"required,max=32"`
	Embeds   []solve_service.Embed `json:"embeds" validate:"max=10"`
}

type reactionRequest struct {
	Kind    string          `json:"kind" validate:"required,oneof=add remove"`
	Emoji   string          `json:"emoji" validate:"required"`
	User    reactionUser    `json:"user"`
	Message reactionMessage `json:"message"`
}

type reactionResponse struct {
	Result       string `json:"outcome"`
	Confirmation string `json:"confirmation,omitempty"`
	solve_service.Outcome
}

type publishRequest struct {
	Weekly bool `json:"weekly"`
}

type postStatsRequest struct {
	AvatarURL string `json:"avatar_url" validate:"omitempty,url,max=512"`
}

type taskResponse struct {
	TaskID uuid.UUID `json:"task_id"`
	State  string    `json:"state"`
}
