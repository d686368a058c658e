package user_service

import (
	"cmp"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/tcp_snm/lcbot/internal/database"
	"github.com/tcp_snm/lcbot/internal/service/problem_service"
)

func NewStatsCache(size int, ttl time.Duration) *expirable.LRU[string, User] {
	if size <= 0 {
		size = DefaultStatsCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultStatsCacheTTL
	}
	return expirable.NewLRU[string, User](size, nil, ttl)
}

func dbUserToServiceUser(dbUser database.User) User {
	return User{
		UserID:       dbUser.UserID,
		Username:     dbUser.Username,
		TotalSolved:  dbUser.TotalSolved,
		EasySolved:   dbUser.EasySolved,
		MediumSolved: dbUser.MediumSolved,
		HardSolved:   dbUser.HardSolved,
		LastActive:   dbUser.LastActive,
	}
}

func dbRowToRecentSolve(row database.GetRecentlySolvedRow) RecentSolve {
	return RecentSolve{
		UserID:   row.UserID,
		Username: row.Username,
		Problem: problem_service.Problem{
			ID:         row.ProblemID,
			Title:      row.Title,
			Difficulty: problem_service.ParseDifficulty(row.Difficulty),
			URL:        row.URL,
		},
		SolvedAt: row.SolvedAt,
	}
}

// compareStanding orders by total, hard and medium solves descending and
// falls back to the user id so equal standings have a stable order
func compareStanding(a, b User) int {
	return cmp.Or(
		cmp.Compare(b.TotalSolved, a.TotalSolved),
		cmp.Compare(b.HardSolved, a.HardSolved),
		cmp.Compare(b.MediumSolved, a.MediumSolved),
		cmp.Compare(a.UserID, b.UserID),
	)
}

func rankUsers(users []User) []LeaderboardEntry {
	slices.SortStableFunc(users, compareStanding)
	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{Position: i + 1, User: u})
	}
	return entries
}

func (u *UserService) currentEpoch() uint64 {
	u.cacheMu.Lock()
	defer u.cacheMu.Unlock()
	return u.cacheEpoch
}

// stores user only if no invalidation happened since epoch was read
func (u *UserService) cacheIfUnchanged(epoch uint64, userID string, user User) {
	u.cacheMu.Lock()
	defer u.cacheMu.Unlock()
	if u.cacheEpoch != epoch {
		return
	}
	u.StatsCache.Add(userID, user)
}
