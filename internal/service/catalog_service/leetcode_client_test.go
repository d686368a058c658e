package catalog_service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
	"github.com/tcp_snm/lcbot/internal/service/problem_service"
)

const pageResponse = `{
  "data": {
    "problemsetQuestionList": {
      "total": 3,
      "questions": [
        {"acRate": 53.2, "difficulty": "Easy", "frontendQuestionId": "1", "paidOnly": false,
         "title": "Two Sum", "titleSlug": "two-sum",
         "topicTags": [{"name": "Array", "id": "1", "slug": "array"}, {"name": "Hash Table", "id": "2", "slug": "hash-table"}]},
        {"acRate": 40.1, "difficulty": "Medium", "frontendQuestionId": "156", "paidOnly": true,
         "title": "Binary Tree Upside Down", "titleSlug": "binary-tree-upside-down", "topicTags": []},
        {"acRate": 38.5, "difficulty": "Hard", "frontendQuestionId": "4", "paidOnly": false,
         "title": "Median of Two Sorted Arrays", "titleSlug": "median-of-two-sorted-arrays", "topicTags": []}
      ]
    }
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, ttl time.Duration) *LeetCodeClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := DefaultConfig()
	config.Endpoint = server.URL
	config.PageTTL = ttl
	config.RateLimit = 0

	client, err := NewLeetCodeClient(config)
	require.NoError(t, err)
	return client
}

func TestFetchCandidatePage(t *testing.T) {
	var gotRequest graphqlRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		w.Write([]byte(pageResponse))
	}, 0)

	page, err := client.FetchCandidatePage(context.Background())
	require.NoError(t, err)
	require.Len(t, page, 3)

	assert.Equal(t, float64(DefaultPageSize), gotRequest.Variables["limit"])
	assert.Equal(t, float64(0), gotRequest.Variables["skip"])

	assert.Equal(t, problem_service.Candidate{
		ID:         "1",
		Title:      "Two Sum",
		TitleSlug:  "two-sum",
		Difficulty: problem_service.DifficultyEasy,
		AcRate:     53.2,
		Tags:       []string{"Array", "Hash Table"},
	}, page[0])
	assert.True(t, page[1].PaidOnly)
	assert.Equal(t, problem_service.DifficultyHard, page[2].Difficulty)
}

func TestRandomCandidateSkipsPaidProblems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pageResponse))
	}, time.Minute)

	var sizes []int
	client.pick = func(n int) (int, error) {
		sizes = append(sizes, n)
		return n - 1, nil
	}

	candidate, err := client.RandomCandidate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4", candidate.ID)
	assert.Equal(t, []int{2}, sizes)
}

func TestFetchCandidatePageIsCached(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(pageResponse))
	}, time.Minute)

	for range 3 {
		_, err := client.RandomCandidate(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchCandidatePageFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"http error", http.StatusTooManyRequests, `{}`},
		{"graphql error", http.StatusOK, `{"errors": [{"message": "rate limited"}]}`},
		{"missing list", http.StatusOK, `{"data": {}}`},
		{"empty list", http.StatusOK, `{"data": {"problemsetQuestionList": {"total": 0, "questions": []}}}`},
		{"bad json", http.StatusOK, `{"data":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.payload))
			}, 0)

			_, err := client.FetchCandidatePage(context.Background())
			assert.ErrorIs(t, err, bot_errors.ErrCatalogUnavailable)
		})
	}
}

func TestRandomCandidateAllPaid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"problemsetQuestionList": {"total": 1, "questions": [
			{"difficulty": "Medium", "frontendQuestionId": "156", "paidOnly": true, "title": "x", "titleSlug": "x"}
		]}}}`))
	}, 0)

	_, err := client.RandomCandidate(context.Background())
	assert.ErrorIs(t, err, bot_errors.ErrCatalogUnavailable)
}

func TestRandomCandidateUnreachable(t *testing.T) {
	config := DefaultConfig()
	config.Endpoint = "http://127.0.0.1:1"
	config.Timeout = time.Second
	client, err := NewLeetCodeClient(config)
	require.NoError(t, err)

	_, err = client.RandomCandidate(context.Background())
	assert.ErrorIs(t, err, bot_errors.ErrCatalogUnavailable)
}
