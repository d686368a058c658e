package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/tcp_snm/lcbot/internal/api"
	"github.com/tcp_snm/lcbot/middleware"
)

func NewV1Router(apiConfig *api.Api) *chi.Mux {
	v1 := chi.NewRouter()

	// configure all endpoints
	v1.Get("/healthz", apiConfig.HandlerReadiness)

	// relay layer
	v1.Post("/events/reactions", middleware.JWTMiddleware(apiConfig.HandlerReaction))
	v1.Post("/problems/random", middleware.JWTMiddleware(apiConfig.HandlerPublishProblem))

	// stats layer
	v1.Get("/leaderboard", apiConfig.HandlerGetLeaderboard)
	v1.Get("/solved/recent", apiConfig.HandlerGetRecentlySolved)
	v1.Get("/users/{user_id}/stats", apiConfig.HandlerGetUserStats)
	v1.Post("/users/{user_id}/stats/rebuild", middleware.JWTMiddleware(apiConfig.HandlerRebuildUserStats))
	v1.Post("/users/{user_id}/stats/post", middleware.JWTMiddleware(apiConfig.HandlerPostUserStats))
	v1.Post("/leaderboard/post", middleware.JWTMiddleware(apiConfig.HandlerPostLeaderboard))

	// weekly task control
	v1.Get("/tasks/weekly", apiConfig.HandlerGetWeeklyTask)
	v1.Post("/tasks/weekly/trigger", middleware.JWTMiddleware(apiConfig.HandlerTriggerWeeklyTask))
	v1.Post("/tasks/weekly/kill", middleware.JWTMiddleware(apiConfig.HandlerKillWeeklyTask))

	return v1
}
