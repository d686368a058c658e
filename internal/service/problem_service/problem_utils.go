package problem_service

import (
	"strings"
	"time"

	"github.com/tcp_snm/lcbot/internal/database"
)

// ParseDifficulty matches case-insensitively against Easy, Medium and Hard.
// Anything else is Unknown.
func ParseDifficulty(raw string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyUnknown
	}
}

// Bucket names the per-difficulty counter a solve lands in. Unknown
// difficulties have no bucket.
func (d Difficulty) Bucket() string {
	switch ParseDifficulty(string(d)) {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return ""
	}
}

func ProblemURL(titleSlug string) string {
	return problemURLPrefix + titleSlug
}

func (c Candidate) URL() string {
	return ProblemURL(c.TitleSlug)
}

func (c Candidate) Problem(postedAt time.Time) Problem {
	return Problem{
		ID:         c.ID,
		Title:      c.Title,
		Difficulty: c.Difficulty,
		URL:        c.URL(),
		PostedAt:   postedAt,
	}
}

// FromDBProblem converts a stored problem row
func FromDBProblem(dbProblem database.Problem) Problem {
	return Problem{
		ID:         dbProblem.ProblemID,
		Title:      dbProblem.Title,
		Difficulty: ParseDifficulty(dbProblem.Difficulty),
		URL:        dbProblem.URL,
		PostedAt:   dbProblem.PostedAt,
	}
}
