package discord

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	ColorEasy    = 0x00b8a3
	ColorMedium  = 0xffc01e
	ColorHard    = 0xff375f
	ColorDefault = 0x0088cc

	DefaultBotName    = "LeetCode Bot"
	problemFooter     = "🧠 Weekly LeetCode Challenge! 🧠"
	leaderboardFooter = "React with ✅ to problems to get on the leaderboard!"
	maxTopics         = 5
)

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

type EmbedThumbnail struct {
	URL string `json:"url"`
}

type Embed struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	URL         string          `json:"url,omitempty"`
	Color       int             `json:"color,omitempty"`
	Fields      []EmbedField    `json:"fields,omitempty"`
	Footer      *EmbedFooter    `json:"footer,omitempty"`
	Thumbnail   *EmbedThumbnail `json:"thumbnail,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
}

type AllowedMentions struct {
	Parse []string `json:"parse"`
	Roles []string `json:"roles,omitempty"`
}

type WebhookMessage struct {
	Content         string           `json:"content,omitempty"`
	Username        string           `json:"username,omitempty"`
	Embeds          []Embed          `json:"embeds,omitempty"`
	AllowedMentions *AllowedMentions `json:"allowed_mentions,omitempty"`
}

type Config struct {
	WebhookURL string `json:"webhook_url" validate:"required,url"`
	// role pinged by weekly posts, empty disables the mention
	RoleID    string        `json:"role_id" validate:"omitempty,numeric"`
	Username  string        `json:"username"`
	Timeout   time.Duration `json:"timeout"`
	RateLimit rate.Limit    `json:"rate_limit"`
	RateBurst int           `json:"rate_burst"`
}

// WebhookClient posts messages to a single channel through an incoming webhook
type WebhookClient struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
	now        func() time.Time
	logger     *logrus.Entry
}
