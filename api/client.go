package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	internalstrings "github.com/amonks/contestsim/internal/strings"
	"github.com/amonks/contestsim/session"
)

// Client calls the contest service. It implements session.Service.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ session.Service = (*Client)(nil)

// NewClient creates a client for the given address or URL.
func NewClient(addr string, timeout time.Duration) *Client {
	baseURL := internalstrings.TrimTrailingSlash(strings.TrimSpace(addr))
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

// BaseURL returns the service URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateContest asks the service for a new problem set.
func (c *Client) CreateContest(ctx context.Context, req session.CreateRequest) (*session.CreateResponse, error) {
	tags := req.Topics
	if tags == nil {
		tags = []string{}
	}
	var response createContestResponse
	err := c.post(ctx, "/create-contest", createContestRequest{
		SessionCookie: req.Credential,
		SelectedTags:  tags,
		Mode:          req.Mode,
	}, &response)
	if err != nil {
		return nil, err
	}
	return &session.CreateResponse{
		Problems:   response.Contest,
		ServerTime: unixTime(response.ServerTime),
	}, nil
}

// CheckStatus asks which contest problems the user solved since the start.
func (c *Client) CheckStatus(ctx context.Context, req session.StatusRequest) (session.StatusResponse, error) {
	var response checkStatusResponse
	err := c.post(ctx, "/check-status", checkStatusRequest{
		Username:         req.Username,
		ProblemSlugs:     req.Slugs,
		ContestStartTime: req.StartedAt.Unix(),
	}, &response)
	if err != nil {
		return nil, err
	}
	solves := make(session.StatusResponse, len(response))
	for slug, entry := range response {
		at := unixTime(entry.SolvedAt)
		if at.IsZero() {
			continue
		}
		solves[slug] = session.Solve{At: at, Fails: entry.Fails}
	}
	return solves, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, dest any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readErrorResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func readErrorResponse(resp *http.Response) error {
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		for _, key := range []string{"error", "detail"} {
			if message, ok := payload[key].(string); ok && message != "" {
				return fmt.Errorf("contest service error: %s", message)
			}
		}
	}
	return fmt.Errorf("contest service error: %s", resp.Status)
}
