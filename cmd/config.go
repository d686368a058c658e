package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/service"
	"github.com/tcp_snm/lcbot/internal/service/catalog_service"
)

type config struct {
	DBURL         string `json:"DB_URL" validate:"required"`
	Port          string `json:"PORT" validate:"required,numeric"`
	APIURL        string `json:"API_URL"`
	LogLevel      string `json:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	JWTSecret     string `json:"JWT_SECRET" validate:"required,min=16"`
	BotUserID     string `json:"BOT_USER_ID" validate:"required,numeric"`
	SolvedEmoji   string `json:"SOLVED_EMOJI" validate:"required"`
	WebhookURL    string `json:"DISCORD_WEBHOOK_URL" validate:"required,url"`
	RoleID        string `json:"DISCORD_ROLE_ID" validate:"omitempty,numeric"`
	CommunityName string `json:"COMMUNITY_NAME"`
	LeetCodeAPI   string `json:"LEETCODE_API" validate:"required,url"`
	LeetCodeSkip  int    `json:"LEETCODE_SKIP" validate:"gte=0"`
	WeeklyDay     string `json:"WEEKLY_DAY" validate:"oneof=sunday monday tuesday wednesday thursday friday saturday"`
	WeeklyHour    int    `json:"WEEKLY_HOUR" validate:"gte=0,lte=23"`
	WeeklyMinute  int    `json:"WEEKLY_MINUTE" validate:"gte=0,lte=59"`
	Timezone      string `json:"TIMEZONE" validate:"required"`
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return value, nil
}

func loadConfig() (config, error) {
	cfg := config{
		DBURL:         os.Getenv("DB_URL"),
		Port:          getEnv("PORT", "8080"),
		APIURL:        os.Getenv("API_URL"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		JWTSecret:     os.Getenv(service.KeyJWTSecret),
		BotUserID:     os.Getenv("BOT_USER_ID"),
		SolvedEmoji:   getEnv("SOLVED_EMOJI", "✅"),
		WebhookURL:    os.Getenv("DISCORD_WEBHOOK_URL"),
		RoleID:        os.Getenv("DISCORD_ROLE_ID"),
		CommunityName: os.Getenv("COMMUNITY_NAME"),
		LeetCodeAPI:   getEnv("LEETCODE_API", catalog_service.DefaultEndpoint),
		WeeklyDay:     strings.ToLower(getEnv("WEEKLY_DAY", "friday")),
		Timezone:      getEnv("TIMEZONE", "UTC"),
	}

	var err error
	if cfg.LeetCodeSkip, err = getEnvInt("LEETCODE_SKIP", 0); err != nil {
		return config{}, err
	}
	if cfg.WeeklyHour, err = getEnvInt("WEEKLY_HOUR", 17); err != nil {
		return config{}, err
	}
	if cfg.WeeklyMinute, err = getEnvInt("WEEKLY_MINUTE", 0); err != nil {
		return config{}, err
	}

	if err = service.ValidateInput(cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) weekday() time.Weekday {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), c.WeeklyDay) {
			return day
		}
	}
	return time.Friday
}

func (c config) location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warnf("unknown timezone %q, falling back to UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

func setLogLevel(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("invalid LOG_LEVEL %q, using info", level)
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
