package solve_service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/service/problem_service"
)

const (
	DefaultSolvedEmoji  = "✅"
	DefaultStoreTimeout = 10 * time.Second
)

var (
	// used for conversion of db error codes to user understandable messages
	errMsgs = map[string]map[string]string{
		"23503": {
			"solved_userid_fkey":    "solve record references an unknown user",
			"solved_problemid_fkey": "solve record references an unknown problem",
		},
	}
	// returned from inside a ledger transaction to roll back outcomes that
	// must not leave any trace
	errNoChange = errors.New("no change")
)

type ReactionKind int

const (
	ReactionAdd ReactionKind = iota
	ReactionRemove
)

func (k ReactionKind) String() string {
	switch k {
	case ReactionAdd:
		return "add"
	case ReactionRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Embed is the structured payload of a message the bot posted
type Embed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type ReactedMessage struct {
	AuthorID string  `json:"author_id"`
	Embeds   []Embed `json:"embeds"`
}

type ReactionEvent struct {
	Kind            ReactionKind
	Emoji           string
	ReactorID       string
	ReactorUsername string
	IsBot           bool
	Message         ReactedMessage
}

type OutcomeKind int

const (
	OutcomeIgnored OutcomeKind = iota
	OutcomeSolved
	OutcomeAlreadySolved
	OutcomeUnsolved
	OutcomeNotSolved
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeSolved:
		return "solved"
	case OutcomeAlreadySolved:
		return "already_solved"
	case OutcomeUnsolved:
		return "unsolved"
	case OutcomeNotSolved:
		return "not_solved"
	default:
		return "unknown"
	}
}

type IgnoreReason string

const (
	IgnoredBotReactor     IgnoreReason = "bot_reactor"
	IgnoredOtherEmoji     IgnoreReason = "not_solved_marker"
	IgnoredForeignMessage IgnoreReason = "foreign_message"
	IgnoredNoProblemRef   IgnoreReason = "no_problem_reference"
	IgnoredNoReactor      IgnoreReason = "missing_reactor"
)

type Counters struct {
	Total  int32 `json:"total_solved"`
	Easy   int32 `json:"easy_solved"`
	Medium int32 `json:"medium_solved"`
	Hard   int32 `json:"hard_solved"`
}

type Outcome struct {
	Kind         OutcomeKind             `json:"-"`
	IgnoreReason IgnoreReason            `json:"ignore_reason,omitempty"`
	UserID       string                  `json:"user_id,omitempty"`
	Username     string                  `json:"username,omitempty"`
	Problem      problem_service.Problem `json:"problem"`
	SolvedAt     time.Time               `json:"solved_at"`
	Stats        *Counters               `json:"stats,omitempty"`
}

type SolveRecord struct {
	UserID    string
	ProblemID string
	SolvedAt  time.Time
}

// Ledger runs solve transitions atomically
type Ledger interface {
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

type LedgerTx interface {
	// EnsureProblem inserts the problem if absent and returns the stored row
	EnsureProblem(ctx context.Context, problem problem_service.Problem) (problem_service.Problem, error)
	UpsertUser(ctx context.Context, userID, username string, at time.Time) error
	GetSolved(ctx context.Context, userID, problemID string) (SolveRecord, bool, error)
	// InsertSolved reports false when the record already exists
	InsertSolved(ctx context.Context, record SolveRecord) (bool, error)
	// DeleteSolved reports false when there was nothing to delete
	DeleteSolved(ctx context.Context, userID, problemID string) (bool, error)
	// ApplyDelta moves the total and the difficulty bucket by delta, clamped at 0
	ApplyDelta(ctx context.Context, userID string, difficulty problem_service.Difficulty, delta int32, at time.Time) (Counters, error)
}

type StatsInvalidator interface {
	InvalidateUserStats(userID string)
}

type SolveService struct {
	Ledger       Ledger
	Stats        StatsInvalidator
	BotUserID    string
	SolvedEmoji  string
	StoreTimeout time.Duration
	now          func() time.Time
	logger       *logrus.Entry
}
