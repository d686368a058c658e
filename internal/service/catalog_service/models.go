package catalog_service

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/service/problem_service"
	"golang.org/x/time/rate"
)

const (
	DefaultEndpoint  = "https://leetcode.com/graphql/"
	DefaultPageSize  = 100
	DefaultPageTTL   = 10 * time.Minute
	defaultCacheSize = 16
)

const problemsetQuery = `query problemsetQuestionList($categorySlug: String, $limit: Int, $skip: Int, $filters: QuestionListFilterInput) {
  problemsetQuestionList: questionList(categorySlug: $categorySlug, limit: $limit, skip: $skip, filters: $filters) {
    total: totalNum
    questions: data {
      acRate
      difficulty
      frontendQuestionId: questionFrontendId
      paidOnly: isPaidOnly
      title
      titleSlug
      topicTags { name id slug }
    }
  }
}`

type Config struct {
	Endpoint  string        `json:"endpoint" validate:"required,url"`
	PageSize  int           `json:"page_size" validate:"gte=1,lte=100"`
	Skip      int           `json:"skip" validate:"gte=0"`
	PageTTL   time.Duration `json:"page_ttl"`
	RateLimit rate.Limit    `json:"rate_limit"`
	RateBurst int           `json:"rate_burst"`
	Timeout   time.Duration `json:"timeout"`
}

// LeetCodeClient reads the public problem list of the LeetCode GraphQL api
type LeetCodeClient struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
	pages      *expirable.LRU[int, []problem_service.Candidate]
	pick       func(n int) (int, error)
	logger     *logrus.Entry
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type topicTag struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

type question struct {
	AcRate             float64    `json:"acRate"`
	Difficulty         string     `json:"difficulty"`
	FrontendQuestionID string     `json:"frontendQuestionId"`
	PaidOnly           bool       `json:"paidOnly"`
	Title              string     `json:"title"`
	TitleSlug          string     `json:"titleSlug"`
	TopicTags          []topicTag `json:"topicTags"`
}

type problemsetData struct {
	ProblemsetQuestionList *struct {
		Total     int        `json:"total"`
		Questions []question `json:"questions"`
	} `json:"problemsetQuestionList"`
}
