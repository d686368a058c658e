package user_service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
	"github.com/tcp_snm/lcbot/internal/database"
)

func TestMain(m *testing.M) {
	log.SetLevel(log.ErrorLevel)
	os.Exit(m.Run())
}

type fakeStatsDB struct {
	users       map[string]database.User
	recent      []database.GetRecentlySolvedRow
	lookups     int
	lastLimit   int32
	rebuildWith database.User
	err         error
	// runs after the row is read, before it is returned
	onRead func()
}

func (f *fakeStatsDB) GetUserByID(_ context.Context, id string) (database.User, error) {
	f.lookups++
	if f.err != nil {
		return database.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return database.User{}, pgx.ErrNoRows
	}
	if f.onRead != nil {
		f.onRead()
	}
	return u, nil
}

// returns users in map order so the service has to rank them itself
func (f *fakeStatsDB) GetLeaderboard(_ context.Context, limit int32) ([]database.User, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	res := make([]database.User, 0, len(f.users))
	for _, u := range f.users {
		res = append(res, u)
	}
	return res, nil
}

func (f *fakeStatsDB) GetRecentlySolved(_ context.Context, limit int32) ([]database.GetRecentlySolvedRow, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.recent[:min(int(limit), len(f.recent))], nil
}

func (f *fakeStatsDB) RebuildUserStats(_ context.Context, id string) (database.User, error) {
	if f.err != nil {
		return database.User{}, f.err
	}
	f.users[id] = f.rebuildWith
	return f.rebuildWith, nil
}

func dbUser(id string, total, easy, medium, hard int32) database.User {
	return database.User{
		UserID:       id,
		Username:     id + "-name",
		TotalSolved:  total,
		EasySolved:   easy,
		MediumSolved: medium,
		HardSolved:   hard,
	}
}

func TestGetLeaderboardOrdering(t *testing.T) {
	db := &fakeStatsDB{users: map[string]database.User{
		"a": dbUser("a", 10, 8, 0, 2),
		"b": dbUser("b", 10, 5, 0, 5),
		"c": dbUser("c", 7, 0, 0, 7),
		"d": dbUser("d", 10, 4, 1, 5),
		"e": dbUser("e", 10, 4, 1, 5),
	}}
	u := &UserService{DB: db}

	entries, err := u.GetLeaderboard(context.Background(), 0)
	require.NoError(t, err)
	assert.EqualValues(t, 10, db.lastLimit)

	ids := make([]string, 0, len(entries))
	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
		ids = append(ids, e.UserID)
	}
	assert.Equal(t, []string{"d", "e", "b", "a", "c"}, ids)
}

func TestGetLeaderboardLimit(t *testing.T) {
	db := &fakeStatsDB{users: map[string]database.User{}}
	u := &UserService{DB: db}

	_, err := u.GetLeaderboard(context.Background(), 51)
	assert.ErrorIs(t, err, bot_errors.ErrInvalidRequest)

	entries, err := u.GetLeaderboard(context.Background(), 50)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.EqualValues(t, 50, db.lastLimit)
}

func TestGetLeaderboardStoreFailure(t *testing.T) {
	u := &UserService{DB: &fakeStatsDB{err: errors.New("conn refused")}}
	_, err := u.GetLeaderboard(context.Background(), 5)
	assert.ErrorIs(t, err, bot_errors.ErrPersistenceFailed)
}

func TestGetUserStatsNotFound(t *testing.T) {
	u := &UserService{DB: &fakeStatsDB{users: map[string]database.User{}}}
	_, err := u.GetUserStats(context.Background(), "ghost")
	assert.ErrorIs(t, err, bot_errors.ErrNotFound)

	_, err = u.GetUserStats(context.Background(), "")
	assert.ErrorIs(t, err, bot_errors.ErrInvalidInput)
}

func TestGetUserStatsCached(t *testing.T) {
	db := &fakeStatsDB{users: map[string]database.User{"a": dbUser("a", 3, 1, 1, 1)}}
	u := &UserService{DB: db, StatsCache: NewStatsCache(8, time.Minute)}
	ctx := context.Background()

	first, err := u.GetUserStats(ctx, "a")
	require.NoError(t, err)
	second, err := u.GetUserStats(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, db.lookups)

	db.users["a"] = dbUser("a", 4, 2, 1, 1)
	u.InvalidateUserStats("a")
	third, err := u.GetUserStats(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 4, third.TotalSolved)
	assert.Equal(t, 2, db.lookups)
}

func TestGetUserStatsSkipsCacheWhenInvalidatedDuringRead(t *testing.T) {
	db := &fakeStatsDB{users: map[string]database.User{"a": dbUser("a", 1, 1, 0, 0)}}
	u := &UserService{DB: db, StatsCache: NewStatsCache(8, time.Minute)}
	ctx := context.Background()

	// a solve commits while the old row is in flight
	db.onRead = func() {
		db.users["a"] = dbUser("a", 2, 2, 0, 0)
		u.InvalidateUserStats("a")
	}
	stale, err := u.GetUserStats(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, stale.TotalSolved)
	db.onRead = nil

	_, cached := u.StatsCache.Get("a")
	assert.False(t, cached, "a read overlapping an invalidation must not be cached")

	fresh, err := u.GetUserStats(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 2, fresh.TotalSolved)
	assert.Equal(t, 2, db.lookups)

	// the next quiet read is cached again
	_, err = u.GetUserStats(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, db.lookups)
}

func TestGetUserProfileFiltersRecent(t *testing.T) {
	now := time.Now()
	row := func(user, problem string, ago time.Duration) database.GetRecentlySolvedRow {
		return database.GetRecentlySolvedRow{
			SolvedAt:   now.Add(-ago),
			UserID:     user,
			Username:   user + "-name",
			ProblemID:  problem,
			Title:      "Problem " + problem,
			Difficulty: "Medium",
			URL:        "https://leetcode.com/problems/p" + problem,
		}
	}
	db := &fakeStatsDB{
		users: map[string]database.User{"a": dbUser("a", 5, 1, 3, 1)},
		recent: []database.GetRecentlySolvedRow{
			row("a", "1", time.Minute),
			row("b", "2", 2*time.Minute),
			row("a", "3", 3*time.Minute),
			row("a", "4", 4*time.Minute),
			row("a", "5", 5*time.Minute),
			row("a", "6", 6*time.Minute),
		},
	}
	u := &UserService{DB: db}

	profile, err := u.GetUserProfile(context.Background(), "a", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, profile.Stats.TotalSolved)
	require.Len(t, profile.Recent, 3)
	assert.Equal(t, "1", profile.Recent[0].Problem.ID)
	assert.Equal(t, "4", profile.Recent[2].Problem.ID)
	assert.EqualValues(t, profileScanWindow, db.lastLimit)

	profile, err = u.GetUserProfile(context.Background(), "a", 10)
	require.NoError(t, err)
	assert.Len(t, profile.Recent, 4, "only the latest five solves are scanned")
}

func TestRebuildUserStatsInvalidatesCache(t *testing.T) {
	db := &fakeStatsDB{
		users:       map[string]database.User{"a": dbUser("a", 9, 9, 0, 0)},
		rebuildWith: dbUser("a", 2, 1, 1, 0),
	}
	u := &UserService{DB: db, StatsCache: NewStatsCache(0, 0)}
	ctx := context.Background()

	_, err := u.GetUserStats(ctx, "a")
	require.NoError(t, err)

	rebuilt, err := u.RebuildUserStats(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 2, rebuilt.TotalSolved)

	stats, err := u.GetUserStats(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, rebuilt, stats)
}
