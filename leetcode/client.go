// Package leetcode talks to the LeetCode GraphQL API and turns its problem
// list and submission history into contests and solve reports.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/contestsim/problem"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultEndpoint is the public GraphQL endpoint.
const DefaultEndpoint = "https://leetcode.com/graphql"

// SessionCookie is the cookie that carries a signed-in LeetCode session.
const SessionCookie = "LEETCODE_SESSION"

// DefaultSubmissionLimit is how many recent submissions a status check reads.
const DefaultSubmissionLimit = 20

const questionListQuery = `
query problemsetQuestionList {
  problemsetQuestionList: questionList(categorySlug: "", limit: 2500, filters: {}) {
    data {
      title
      titleSlug
      difficulty
      isPaidOnly
      topicTags { name slug }
      status
    }
  }
}`

const recentSubmissionsQuery = `
query recentSubmissionList($username: String!, $limit: Int!) {
  recentSubmissionList(username: $username, limit: $limit) {
    titleSlug
    timestamp
    statusDisplay
  }
}`

// StatusAccepted is the status LeetCode reports for solved problems and
// accepted submissions.
const (
	StatusAccepted     = "ac"
	SubmissionAccepted = "Accepted"
)

// Tag is a topic tag attached to a question.
type Tag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Question is one entry of the problem list.
type Question struct {
	Title      string             `json:"title"`
	TitleSlug  string             `json:"titleSlug"`
	Difficulty problem.Difficulty `json:"difficulty"`
	IsPaidOnly bool               `json:"isPaidOnly"`
	TopicTags  []Tag              `json:"topicTags"`
	// Status is "ac" for problems the signed-in user has solved. It is only
	// populated when a session cookie is sent.
	Status string `json:"status"`
}

// Problem returns the contest view of the question.
func (q Question) Problem() problem.Problem {
	return problem.Problem{Title: q.Title, TitleSlug: q.TitleSlug, Difficulty: q.Difficulty}
}

// Solved reports whether the user has an accepted solution.
func (q Question) Solved() bool {
	return q.Status == StatusAccepted
}

// HasTag reports whether the question carries any of the given tag slugs.
func (q Question) HasTag(slugs map[string]bool) bool {
	for _, tag := range q.TopicTags {
		if slugs[tag.Slug] {
			return true
		}
	}
	return false
}

// Submission is one entry of a user's recent submissions.
type Submission struct {
	TitleSlug string    `json:"titleSlug"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"statusDisplay"`
}

// Accepted reports whether the submission passed.
func (s Submission) Accepted() bool {
	return s.Status == SubmissionAccepted
}

// UnmarshalJSON decodes the unix timestamp LeetCode sends as a string.
func (s *Submission) UnmarshalJSON(data []byte) error {
	var raw struct {
		TitleSlug     string          `json:"titleSlug"`
		Timestamp     json.RawMessage `json:"timestamp"`
		StatusDisplay string          `json:"statusDisplay"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	seconds, err := parseUnix(raw.Timestamp)
	if err != nil {
		return fmt.Errorf("submission %s: %w", raw.TitleSlug, err)
	}
	s.TitleSlug = raw.TitleSlug
	s.Timestamp = time.Unix(seconds, 0).UTC()
	s.Status = raw.StatusDisplay
	return nil
}

func parseUnix(raw json.RawMessage) (int64, error) {
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if text == "" || text == "null" {
		return 0, fmt.Errorf("missing timestamp")
	}
	seconds, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", text)
	}
	return seconds, nil
}

// Options configures a Client.
type Options struct {
	Endpoint   string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *zerolog.Logger
}

// Client calls the LeetCode GraphQL API.
type Client struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// NewClient creates a client. The zero Options talk to DefaultEndpoint.
func NewClient(opts Options) *Client {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{
		endpoint: endpoint,
		client:   httpClient,
		logger:   logger.With().Str("component", "leetcode").Logger(),
	}
}

// Problems returns the free problems on the platform. With a session cookie
// each question's Status reflects the signed-in user's progress.
func (c *Client) Problems(ctx context.Context, cookie string) ([]Question, error) {
	var data struct {
		List struct {
			Data []Question `json:"data"`
		} `json:"problemsetQuestionList"`
	}
	if err := c.query(ctx, questionListQuery, nil, strings.TrimSpace(cookie), &data); err != nil {
		return nil, fmt.Errorf("fetch problems: %w", err)
	}
	questions := make([]Question, 0, len(data.List.Data))
	for _, q := range data.List.Data {
		if q.IsPaidOnly {
			continue
		}
		questions = append(questions, q)
	}
	c.logger.Debug().Int("questions", len(questions)).Msg("fetched problem list")
	return questions, nil
}

// RecentSubmissions returns the user's most recent submissions, newest first.
func (c *Client) RecentSubmissions(ctx context.Context, username string, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = DefaultSubmissionLimit
	}
	var data struct {
		List []Submission `json:"recentSubmissionList"`
	}
	vars := map[string]any{"username": username, "limit": limit}
	if err := c.query(ctx, recentSubmissionsQuery, vars, "", &data); err != nil {
		return nil, fmt.Errorf("fetch submissions for %s: %w", username, err)
	}
	return data.List, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

func (c *Client) query(ctx context.Context, query string, vars map[string]any, cookie string, dest any) error {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "https://leetcode.com")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("leetcode returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", envelope.Errors[0].Message)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("graphql response has no data")
	}
	return json.Unmarshal(envelope.Data, dest)
}
