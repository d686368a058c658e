package problem_service

import (
	"context"
	"time"

	"github.com/tcp_snm/lcbot/internal/database"
)

const (
	DefaultSelectAttempts = 5
	problemURLPrefix      = "https://leetcode.com/problems/"
)

var (
	// used for conversion of db error codes to user understandable messages
	errMsgs = map[string]map[string]string{}
)

type Difficulty string

const (
	DifficultyEasy    Difficulty = "Easy"
	DifficultyMedium  Difficulty = "Medium"
	DifficultyHard    Difficulty = "Hard"
	DifficultyUnknown Difficulty = "Unknown"
)

type ProblemQuerier interface {
	InsertProblem(ctx context.Context, arg database.InsertProblemParams) (int64, error)
	GetProblemByID(ctx context.Context, problemid string) (database.Problem, error)
	ListProblemIDs(ctx context.Context) ([]string, error)
}

// Catalog draws problems from the external problem source
type Catalog interface {
	RandomCandidate(ctx context.Context) (Candidate, error)
}

// Poster publishes a problem to the chat channel
type Poster interface {
	PostProblem(ctx context.Context, candidate Candidate, weekly bool) error
}

type ProblemService struct {
	DB          ProblemQuerier
	Catalog     Catalog
	Poster      Poster
	MaxAttempts int
}

type Problem struct {
	ID         string     `json:"problem_id" validate:"required,max=16"`
	Title      string     `json:"title" validate:"required,max=200"`
	Difficulty Difficulty `json:"difficulty" validate:"required"`
	URL        string     `json:"url" validate:"required,url"`
	PostedAt   time.Time  `json:"posted_at"`
}

// Candidate is a catalog entry that has not been posted yet
type Candidate struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	TitleSlug  string     `json:"title_slug"`
	Difficulty Difficulty `json:"difficulty"`
	PaidOnly   bool       `json:"paid_only"`
	AcRate     float64    `json:"ac_rate"`
	Tags       []string   `json:"tags"`
}
