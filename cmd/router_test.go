package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tcp_snm/lcbot/internal/api"
)

func TestRouterMountsRoutes(t *testing.T) {
	router := newRouter(&api.Api{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, path := range []string{
		"/v1/events/reactions",
		"/v1/users/u-1/stats/post",
		"/v1/leaderboard/post",
		"/v1/tasks/weekly/trigger",
		"/v1/tasks/weekly/kill",
	} {
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
