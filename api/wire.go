// Package api is the contest service: the HTTP server that builds contests
// and checks submissions, and the client the session controller uses to
// reach it.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amonks/contestsim/problem"
)

type createContestRequest struct {
	SessionCookie string           `json:"session_cookie"`
	SelectedTags  []string         `json:"selected_tags"`
	Mode          problem.PoolMode `json:"mode"`
}

type createContestResponse struct {
	Contest    []problem.Problem `json:"contest"`
	ServerTime int64             `json:"server_time"`
}

type checkStatusRequest struct {
	Username         string   `json:"username"`
	ProblemSlugs     []string `json:"problem_slugs"`
	ContestStartTime int64    `json:"contest_start_time"`
}

// statusEntry is one solved problem in a check-status response. It decodes
// both a bare unix timestamp and an object with solved_at and fails.
type statusEntry struct {
	SolvedAt int64 `json:"solved_at"`
	Fails    int   `json:"fails"`
}

func (e *statusEntry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		type plain statusEntry
		var entry plain
		if err := json.Unmarshal(trimmed, &entry); err != nil {
			return err
		}
		*e = statusEntry(entry)
		return nil
	}
	var seconds json.Number
	if err := json.Unmarshal(trimmed, &seconds); err != nil {
		return fmt.Errorf("status entry: %w", err)
	}
	value, err := seconds.Int64()
	if err != nil {
		return fmt.Errorf("status entry: %w", err)
	}
	*e = statusEntry{SolvedAt: value}
	return nil
}

type checkStatusResponse map[string]statusEntry

func unixTime(seconds int64) time.Time {
	if seconds <= 0 {
		return time.Time{}
	}
	return time.Unix(seconds, 0).UTC()
}
