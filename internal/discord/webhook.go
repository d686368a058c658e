package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
	"github.com/tcp_snm/lcbot/internal/service"
	"github.com/tcp_snm/lcbot/internal/service/problem_service"
	"github.com/tcp_snm/lcbot/internal/service/user_service"
	"golang.org/x/time/rate"
)

func NewWebhookClient(config Config) (*WebhookClient, error) {
	if err := service.ValidateInput(config); err != nil {
		return nil, err
	}
	if config.Username == "" {
		config.Username = DefaultBotName
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RateBurst <= 0 {
		config.RateBurst = 1
	}
	if config.RateLimit <= 0 {
		config.RateLimit = rate.Inf
	}

	return &WebhookClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(config.RateLimit, config.RateBurst),
		now:        time.Now,
		logger: logrus.WithFields(logrus.Fields{
			"from": "discord-webhook",
		}),
	}, nil
}

// PostProblem announces a problem. Weekly posts ping the configured role.
func (w *WebhookClient) PostProblem(
	ctx context.Context,
	candidate problem_service.Candidate,
	weekly bool,
) error {
	msg := WebhookMessage{
		Content: "Here's a random LeetCode problem:",
		Embeds:  []Embed{NewProblemEmbed(candidate, w.now())},
		AllowedMentions: &AllowedMentions{
			Parse: []string{},
		},
	}
	if weekly {
		mention := ""
		if w.config.RoleID != "" {
			mention = fmt.Sprintf("<@&%s> ", w.config.RoleID)
			msg.AllowedMentions.Roles = []string{w.config.RoleID}
		}
		msg.Content = mention + "📝 **It's LeetCode Friday!** Here's your problem for this week:"
	}

	if err := w.Send(ctx, msg); err != nil {
		return err
	}
	w.logger.Infof("posted problem %q", candidate.Title)
	return nil
}

func (w *WebhookClient) PostLeaderboard(
	ctx context.Context,
	entries []user_service.LeaderboardEntry,
	community string,
) error {
	return w.Send(ctx, WebhookMessage{
		Embeds: []Embed{NewLeaderboardEmbed(entries, community, w.now())},
	})
}

// PostStats shares the profile of one member with the channel
func (w *WebhookClient) PostStats(
	ctx context.Context,
	profile user_service.UserProfile,
	avatarURL string,
) error {
	if err := w.Send(ctx, WebhookMessage{
		Embeds: []Embed{NewStatsEmbed(profile, avatarURL, w.now())},
	}); err != nil {
		return err
	}
	w.logger.Infof("posted stats of %s", profile.Stats.UserID)
	return nil
}

func (w *WebhookClient) PostText(ctx context.Context, content string) error {
	return w.Send(ctx, WebhookMessage{
		Content:         content,
		AllowedMentions: &AllowedMentions{Parse: []string{}},
	})
}

func (w *WebhookClient) Send(ctx context.Context, msg WebhookMessage) error {
	if msg.Username == "" {
		msg.Username = w.config.Username
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w, webhook rate limiter, %w", bot_errors.ErrHttpResponse, err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		err = fmt.Errorf("%w, cannot marshal webhook message, %w", bot_errors.ErrInternal, err)
		w.logger.Error(err)
		return err
	}

	request, err := http.NewRequestWithContext(
		ctx, http.MethodPost, w.config.WebhookURL, bytes.NewReader(body),
	)
	if err != nil {
		err = fmt.Errorf("%w, cannot create webhook request, %w", bot_errors.ErrInternal, err)
		w.logger.Error(err)
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := w.httpClient.Do(request)
	if err != nil {
		err = fmt.Errorf("%w, webhook request failed, %w", bot_errors.ErrHttpResponse, err)
		w.logger.Error(err)
		return err
	}
	defer response.Body.Close()

	// discord answers 204 unless ?wait=true is set
	if response.StatusCode < 200 || response.StatusCode > 299 {
		responseBody, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		err = fmt.Errorf(
			"%w, webhook returned %s",
			bot_errors.ErrHttpResponse,
			response.Status,
		)
		w.logger.WithField("body", string(responseBody)).Error(err)
		return err
	}
	return nil
}
