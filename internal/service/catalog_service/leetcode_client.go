package catalog_service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
	"github.com/tcp_snm/lcbot/internal/service"
	"github.com/tcp_snm/lcbot/internal/service/problem_service"
	"golang.org/x/time/rate"
)

func DefaultConfig() Config {
	return Config{
		Endpoint:  DefaultEndpoint,
		PageSize:  DefaultPageSize,
		PageTTL:   DefaultPageTTL,
		RateLimit: rate.Limit(1),
		RateBurst: 2,
		Timeout:   15 * time.Second,
	}
}

func NewLeetCodeClient(config Config) (*LeetCodeClient, error) {
	if err := service.ValidateInput(config); err != nil {
		return nil, err
	}
	if config.RateBurst <= 0 {
		config.RateBurst = 1
	}
	if config.RateLimit <= 0 {
		config.RateLimit = rate.Inf
	}

	client := &LeetCodeClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(config.RateLimit, config.RateBurst),
		pick: func(n int) (int, error) {
			return service.GenerateSecureRandomInt(0, n-1)
		},
		logger: logrus.WithFields(logrus.Fields{
			"from": "leetcode-catalog",
		}),
	}
	if config.PageTTL > 0 {
		client.pages = expirable.NewLRU[int, []problem_service.Candidate](
			defaultCacheSize, nil, config.PageTTL,
		)
	}

	client.logger.Infof("catalog client ready for %s", config.Endpoint)
	return client, nil
}

// RandomCandidate draws uniformly from the free problems of the current page
func (c *LeetCodeClient) RandomCandidate(ctx context.Context) (problem_service.Candidate, error) {
	page, err := c.FetchCandidatePage(ctx)
	if err != nil {
		return problem_service.Candidate{}, err
	}

	free := make([]problem_service.Candidate, 0, len(page))
	for _, candidate := range page {
		if !candidate.PaidOnly {
			free = append(free, candidate)
		}
	}
	if len(free) == 0 {
		err = fmt.Errorf(
			"%w, no free problems on page with skip %d",
			bot_errors.ErrCatalogUnavailable,
			c.config.Skip,
		)
		c.logger.Error(err)
		return problem_service.Candidate{}, err
	}

	idx, err := c.pick(len(free))
	if err != nil {
		return problem_service.Candidate{}, err
	}
	return free[idx], nil
}

// FetchCandidatePage returns every problem of the configured page, paid ones
// included. Pages are served from cache while fresh.
func (c *LeetCodeClient) FetchCandidatePage(ctx context.Context) ([]problem_service.Candidate, error) {
	if c.pages != nil {
		if page, ok := c.pages.Get(c.config.Skip); ok {
			return page, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, bot_errors.WrapCatalogError(err)
	}

	var data problemsetData
	err := c.sendGraphqlQuery(ctx, problemsetQuery, map[string]any{
		"categorySlug": "",
		"skip":         c.config.Skip,
		"limit":        c.config.PageSize,
		"filters":      map[string]any{},
	}, &data)
	if err != nil {
		return nil, err
	}

	if data.ProblemsetQuestionList == nil {
		err = fmt.Errorf(
			"%w, response carries no problemsetQuestionList",
			bot_errors.ErrCatalogUnavailable,
		)
		c.logger.Error(err)
		return nil, err
	}
	questions := data.ProblemsetQuestionList.Questions
	if len(questions) == 0 {
		err = fmt.Errorf("%w, no questions returned", bot_errors.ErrCatalogUnavailable)
		c.logger.Error(err)
		return nil, err
	}

	page := make([]problem_service.Candidate, 0, len(questions))
	for _, q := range questions {
		if q.FrontendQuestionID == "" || q.TitleSlug == "" {
			c.logger.Warnf("skipping malformed question %q", q.Title)
			continue
		}
		page = append(page, questionToCandidate(q))
	}

	if c.pages != nil {
		c.pages.Add(c.config.Skip, page)
	}
	c.logger.Debugf("fetched %d problems from catalog", len(page))
	return page, nil
}

func (c *LeetCodeClient) sendGraphqlQuery(
	ctx context.Context,
	query string,
	variables map[string]any,
	out any,
) error {
	requestBody, err := json.Marshal(graphqlRequest{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		err = fmt.Errorf("%w, cannot marshal graphql request, %w", bot_errors.ErrInternal, err)
		c.logger.Error(err)
		return err
	}

	request, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(requestBody),
	)
	if err != nil {
		err = fmt.Errorf("%w, cannot create catalog request, %w", bot_errors.ErrInternal, err)
		c.logger.Error(err)
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Referer", "https://leetcode.com")

	response, err := c.httpClient.Do(request)
	if err != nil {
		err = bot_errors.WrapCatalogError(err)
		c.logger.Error(err)
		return err
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		err = bot_errors.WrapCatalogError(err)
		c.logger.Error(err)
		return err
	}

	if response.StatusCode != http.StatusOK {
		err = fmt.Errorf(
			"%w, %w, catalog returned %s",
			bot_errors.ErrCatalogUnavailable,
			bot_errors.ErrHttpResponse,
			response.Status,
		)
		c.logger.WithField("body", string(responseBody)).Error(err)
		return err
	}

	var gqlResponse graphqlResponse
	if err = json.Unmarshal(responseBody, &gqlResponse); err != nil {
		err = fmt.Errorf("%w, cannot unmarshal catalog response, %w", bot_errors.ErrCatalogUnavailable, err)
		c.logger.Error(err)
		return err
	}
	if len(gqlResponse.Errors) > 0 {
		err = fmt.Errorf(
			"%w, graphql error: %s",
			bot_errors.ErrCatalogUnavailable,
			gqlResponse.Errors[0].Message,
		)
		c.logger.Error(err)
		return err
	}

	if err = json.Unmarshal(gqlResponse.Data, out); err != nil {
		err = fmt.Errorf("%w, unexpected catalog data shape, %w", bot_errors.ErrCatalogUnavailable, err)
		c.logger.Error(err)
		return err
	}
	return nil
}

func questionToCandidate(q question) problem_service.Candidate {
	tags := make([]string, 0, len(q.TopicTags))
	for _, tag := range q.TopicTags {
		tags = append(tags, tag.Name)
	}

	return problem_service.Candidate{
		ID:         q.FrontendQuestionID,
		Title:      q.Title,
		TitleSlug:  q.TitleSlug,
		Difficulty: problem_service.ParseDifficulty(q.Difficulty),
		PaidOnly:   q.PaidOnly,
		AcRate:     q.AcRate,
		Tags:       tags,
	}
}
