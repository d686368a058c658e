package problem_service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tcp_snm/lcbot/internal/database"
)

type fakeProblemDB struct {
	problems map[string]database.Problem
	listErr  error
	inserts  int
}

func newFakeProblemDB(ids ...string) *fakeProblemDB {
	db := &fakeProblemDB{problems: make(map[string]database.Problem)}
	for _, id := range ids {
		db.problems[id] = database.Problem{
			ProblemID:  id,
			Title:      "problem " + id,
			Difficulty: "Easy",
			URL:        ProblemURL("problem-" + id),
			PostedAt:   time.Now(),
		}
	}
	return db
}

func (f *fakeProblemDB) InsertProblem(_ context.Context, arg database.InsertProblemParams) (int64, error) {
	f.inserts++
	if _, ok := f.problems[arg.ProblemID]; ok {
		return 0, nil
	}
	f.problems[arg.ProblemID] = database.Problem(arg)
	return 1, nil
}

func (f *fakeProblemDB) GetProblemByID(_ context.Context, id string) (database.Problem, error) {
	p, ok := f.problems[id]
	if !ok {
		return database.Problem{}, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakeProblemDB) ListProblemIDs(context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]string, 0, len(f.problems))
	for id := range f.problems {
		ids = append(ids, id)
	}
	return ids, nil
}

// sequenceCatalog returns candidates with the given ids in order
type sequenceCatalog struct {
	ids   []string
	calls int
	err   error
}

func (c *sequenceCatalog) RandomCandidate(context.Context) (Candidate, error) {
	if c.err != nil {
		return Candidate{}, c.err
	}
	id := c.ids[c.calls%len(c.ids)]
	c.calls++
	return Candidate{
		ID:         id,
		Title:      "problem " + id,
		TitleSlug:  "problem-" + id,
		Difficulty: DifficultyMedium,
	}, nil
}

type recordingPoster struct {
	posted []Candidate
	weekly []bool
	err    error
}

func (r *recordingPoster) PostProblem(_ context.Context, c Candidate, weekly bool) error {
	if r.err != nil {
		return r.err
	}
	r.posted = append(r.posted, c)
	r.weekly = append(r.weekly, weekly)
	return nil
}

var errFake = errors.New("boom")
