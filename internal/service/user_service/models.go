package user_service

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/tcp_snm/lcbot/internal/database"
	"github.com/tcp_snm/lcbot/internal/service/problem_service"
)

const (
	DefaultStatsCacheSize = 512
	DefaultStatsCacheTTL  = 5 * time.Minute
	profileScanWindow     = 5
	defaultProfileRecent  = 3
	maxRecentlySolved     = 50
)

var (
	// used for conversion of db error codes to user understandable messages
	errMsgs = map[string]map[string]string{}
)

type StatsQuerier interface {
	GetUserByID(ctx context.Context, userid string) (database.User, error)
	GetLeaderboard(ctx context.Context, limit int32) ([]database.User, error)
	GetRecentlySolved(ctx context.Context, limit int32) ([]database.GetRecentlySolvedRow, error)
	RebuildUserStats(ctx context.Context, userid string) (database.User, error)
}

type UserService struct {
	DB StatsQuerier
	// optional, nil disables caching
	StatsCache *expirable.LRU[string, User]

	// bumped by every invalidation, a db read that overlaps one is not cached
	cacheMu    sync.Mutex
	cacheEpoch uint64
}

type User struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	TotalSolved  int32     `json:"total_solved"`
	EasySolved   int32     `json:"easy_solved"`
	MediumSolved int32     `json:"medium_solved"`
	HardSolved   int32     `json:"hard_solved"`
	LastActive   time.Time `json:"last_active"`
}

type LeaderboardEntry struct {
	Position int `json:"position"`
	User
}

type RecentSolve struct {
	UserID   string                  `json:"user_id"`
	Username string                  `json:"username"`
	Problem  problem_service.Problem `json:"problem"`
	SolvedAt time.Time               `json:"solved_at"`
}

type UserProfile struct {
	Stats  User          `json:"stats"`
	Recent []RecentSolve `json:"recent"`
}
