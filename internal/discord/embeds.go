package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/tcp_snm/lcbot/internal/service/problem_service"
	"github.com/tcp_snm/lcbot/internal/service/user_service"
)

func DifficultyColor(d problem_service.Difficulty) int {
	switch problem_service.ParseDifficulty(string(d)) {
	case problem_service.DifficultyEasy:
		return ColorEasy
	case problem_service.DifficultyMedium:
		return ColorMedium
	case problem_service.DifficultyHard:
		return ColorHard
	default:
		return ColorDefault
	}
}

func DifficultyEmoji(d problem_service.Difficulty) string {
	switch problem_service.ParseDifficulty(string(d)) {
	case problem_service.DifficultyEasy:
		return "🟢"
	case problem_service.DifficultyMedium:
		return "🟡"
	default:
		return "🔴"
	}
}

// Medal for a 0 based leaderboard position
func Medal(position int) string {
	switch position {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", position+1)
	}
}

func FormatDifficultyCounts(u user_service.User) string {
	return fmt.Sprintf("🟢 %d | 🟡 %d | 🔴 %d", u.EasySolved, u.MediumSolved, u.HardSolved)
}

// NewProblemEmbed renders a problem the way ParseProblemRef reads it back
func NewProblemEmbed(c problem_service.Candidate, at time.Time) Embed {
	embed := Embed{
		Title:       problem_service.FormatProblemTitle(c.ID, c.Title),
		Description: problem_service.FormatProblemDescription(c.Difficulty, c.AcRate),
		URL:         c.URL(),
		Color:       DifficultyColor(c.Difficulty),
		Footer:      &EmbedFooter{Text: problemFooter},
		Timestamp:   at.UTC().Format(time.RFC3339),
	}

	if len(c.Tags) > 0 {
		embed.Fields = append(embed.Fields, EmbedField{
			Name:  "Topics",
			Value: strings.Join(c.Tags[:min(len(c.Tags), maxTopics)], ", "),
		})
	}
	return embed
}

func NewLeaderboardEmbed(entries []user_service.LeaderboardEntry, community string, at time.Time) Embed {
	rankings := make([]string, 0, len(entries))
	for i, e := range entries {
		rankings = append(rankings, fmt.Sprintf(
			"%s **%s**: %d solved\n%s",
			Medal(i), e.Username, e.TotalSolved, FormatDifficultyCounts(e.User),
		))
	}

	embed := Embed{
		Title:     "🏆 LeetCode Leaderboard 🏆",
		Color:     ColorDefault,
		Footer:    &EmbedFooter{Text: leaderboardFooter},
		Timestamp: at.UTC().Format(time.RFC3339),
	}
	if community != "" {
		embed.Description = "Top problem solvers in " + community
	}
	if len(rankings) == 0 {
		embed.Description = "No one has solved any problems yet! Be the first by reacting with ✅ to a LeetCode problem."
		return embed
	}
	embed.Fields = []EmbedField{{Name: "Rankings", Value: strings.Join(rankings, "\n\n")}}
	return embed
}

func NewStatsEmbed(profile user_service.UserProfile, avatarURL string, at time.Time) Embed {
	stats := profile.Stats
	embed := Embed{
		Title: stats.Username + "'s LeetCode Stats",
		Color: ColorDefault,
		Fields: []EmbedField{
			{Name: "Total Problems Solved", Value: fmt.Sprint(stats.TotalSolved), Inline: true},
			{Name: "Breakdown by Difficulty", Value: FormatDifficultyCounts(stats), Inline: true},
			{Name: "Last Active", Value: stats.LastActive.Format("Jan 2, 2006"), Inline: true},
		},
		Timestamp: at.UTC().Format(time.RFC3339),
	}
	if avatarURL != "" {
		embed.Thumbnail = &EmbedThumbnail{URL: avatarURL}
	}

	if len(profile.Recent) > 0 {
		recent := make([]string, 0, len(profile.Recent))
		for _, solve := range profile.Recent {
			recent = append(recent, fmt.Sprintf(
				"%s [%s](%s)",
				DifficultyEmoji(solve.Problem.Difficulty), solve.Problem.Title, solve.Problem.URL,
			))
		}
		embed.Fields = append(embed.Fields, EmbedField{
			Name:  "Recently Solved",
			Value: strings.Join(recent, "\n"),
		})
	}
	return embed
}
