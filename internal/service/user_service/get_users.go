package user_service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
	"github.com/tcp_snm/lcbot/internal/service"
)

func (u *UserService) GetLeaderboard(
	ctx context.Context,
	limit int,
) ([]LeaderboardEntry, error) {
	// validate
	size, err := service.ClampLimit(limit, service.DefaultLeaderboardSz, service.MaxLeaderboardSz)
	if err != nil {
		return nil, err
	}

	// fetch top users
	dbUsers, err := u.DB.GetLeaderboard(ctx, size)
	if err != nil {
		err = bot_errors.HandleDBErrors(
			err,
			errMsgs,
			"cannot fetch leaderboard from db",
		)
		return nil, err
	}

	users := make([]User, 0, len(dbUsers))
	for _, dbUser := range dbUsers {
		users = append(users, dbUserToServiceUser(dbUser))
	}
	return rankUsers(users), nil
}

func (u *UserService) GetUserStats(
	ctx context.Context,
	userID string,
) (User, error) {
	if userID == "" {
		return User{}, fmt.Errorf("%w, user id is required", bot_errors.ErrInvalidInput)
	}

	// check cache
	var epoch uint64
	if u.StatsCache != nil {
		if cached, ok := u.StatsCache.Get(userID); ok {
			return cached, nil
		}
		epoch = u.currentEpoch()
	}

	// get user from db
	dbUser, err := u.DB.GetUserByID(ctx, userID)
	if err != nil {
		err = bot_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch stats of user %s from db", userID),
		)
		return User{}, err
	}

	user := dbUserToServiceUser(dbUser)
	if u.StatsCache != nil {
		u.cacheIfUnchanged(epoch, userID, user)
	}
	return user, nil
}

// InvalidateUserStats drops the cached stats of a user, called after every
// committed solve transition
func (u *UserService) InvalidateUserStats(userID string) {
	if u.StatsCache == nil {
		return
	}
	u.cacheMu.Lock()
	defer u.cacheMu.Unlock()
	u.cacheEpoch++
	u.StatsCache.Remove(userID)
}

func (u *UserService) GetRecentlySolved(
	ctx context.Context,
	limit int,
) ([]RecentSolve, error) {
	size, err := service.ClampLimit(limit, profileScanWindow, maxRecentlySolved)
	if err != nil {
		return nil, err
	}

	rows, err := u.DB.GetRecentlySolved(ctx, size)
	if err != nil {
		err = bot_errors.HandleDBErrors(
			err,
			errMsgs,
			"cannot fetch recently solved problems from db",
		)
		return nil, err
	}

	res := make([]RecentSolve, 0, len(rows))
	for _, row := range rows {
		res = append(res, dbRowToRecentSolve(row))
	}
	return res, nil
}

// GetUserProfile returns the stats of a user together with their solves
// among the latest few solves of the whole community
func (u *UserService) GetUserProfile(
	ctx context.Context,
	userID string,
	recentLimit int,
) (UserProfile, error) {
	if recentLimit <= 0 {
		recentLimit = defaultProfileRecent
	}

	stats, err := u.GetUserStats(ctx, userID)
	if err != nil {
		return UserProfile{}, err
	}

	recent, err := u.GetRecentlySolved(ctx, profileScanWindow)
	if err != nil {
		return UserProfile{}, err
	}

	mine := make([]RecentSolve, 0, recentLimit)
	for _, solve := range recent {
		if len(mine) == recentLimit {
			break
		}
		if solve.UserID == userID {
			mine = append(mine, solve)
		}
	}

	return UserProfile{Stats: stats, Recent: mine}, nil
}

// RebuildUserStats recomputes the counters of a user from the solve records
func (u *UserService) RebuildUserStats(
	ctx context.Context,
	userID string,
) (User, error) {
	if userID == "" {
		return User{}, fmt.Errorf("%w, user id is required", bot_errors.ErrInvalidInput)
	}

	dbUser, err := u.DB.RebuildUserStats(ctx, userID)
	if err != nil {
		err = bot_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot rebuild stats of user %s", userID),
		)
		return User{}, err
	}
	u.InvalidateUserStats(userID)

	user := dbUserToServiceUser(dbUser)
	log.WithField("user_id", userID).Infof(
		"rebuilt stats, total %d (easy %d, medium %d, hard %d)",
		user.TotalSolved,
		user.EasySolved,
		user.MediumSolved,
		user.HardSolved,
	)
	return user, nil
}
