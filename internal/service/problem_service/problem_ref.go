package problem_service

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/tcp_snm/lcbot/internal/bot_errors"
)

var (
	titleRefRegex      = regexp.MustCompile(`#([^\s:]+):\s*(.+)$`)
	difficultyRefRegex = regexp.MustCompile(`(?i)\*\*Difficulty:\*\*\s*(Easy|Medium|Hard)\b`)
)

func FormatProblemTitle(id, title string) string {
	return fmt.Sprintf("LeetCode Problem #%s: %s", id, title)
}

func FormatProblemDescription(difficulty Difficulty, acRate float64) string {
	return fmt.Sprintf(
		"**Difficulty:** %s\n**Acceptance Rate:** %v%%",
		difficulty,
		math.Round(acRate*10)/10,
	)
}

// ParseProblemRef reads a problem back out of a posted embed. The id and title
// come from "#<id>: <title>" in the title, the difficulty from the
// "**Difficulty:**" line of the description and the url is taken as is.
// A missing difficulty line is tolerated and yields DifficultyUnknown.
func ParseProblemRef(title, description, rawURL string) (Problem, error) {
	match := titleRefRegex.FindStringSubmatch(strings.TrimSpace(title))
	if match == nil {
		return Problem{}, fmt.Errorf(
			"%w, title %q carries no problem reference",
			bot_errors.ErrInvalidInput,
			title,
		)
	}
	id, problemTitle := match[1], strings.TrimSpace(match[2])
	if problemTitle == "" {
		return Problem{}, fmt.Errorf(
			"%w, title %q has an empty problem title",
			bot_errors.ErrInvalidInput,
			title,
		)
	}

	parsedURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsedURL.Host == "" ||
		(parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		return Problem{}, fmt.Errorf(
			"%w, invalid problem url %q",
			bot_errors.ErrInvalidInput,
			rawURL,
		)
	}

	difficulty := DifficultyUnknown
	if m := difficultyRefRegex.FindStringSubmatch(description); m != nil {
		difficulty = ParseDifficulty(m[1])
	}

	return Problem{
		ID:         id,
		Title:      problemTitle,
		Difficulty: difficulty,
		URL:        parsedURL.String(),
	}, nil
}
