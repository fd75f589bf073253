// Package session holds the contest lifecycle: the session state value, the
// controller that moves it between phases, and the view model rendered by
// every front end.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/amonks/contestsim/internal/validation"
	"github.com/amonks/contestsim/problem"
	"github.com/amonks/contestsim/score"
)

// Phase represents the session lifecycle state.
type Phase string

const (
	// PhaseConfiguring is the initial phase; no contest exists.
	PhaseConfiguring Phase = "configuring"
	// PhaseActive indicates the contest clock is running.
	PhaseActive Phase = "active"
	// PhaseFinished indicates the contest was submitted or ran out of time.
	PhaseFinished Phase = "finished"
)

// ValidPhases returns all valid phase values.
func ValidPhases() []Phase {
	return []Phase{PhaseConfiguring, PhaseActive, PhaseFinished}
}

// IsValid returns true if the phase is a known value.
func (p Phase) IsValid() bool {
	for _, valid := range ValidPhases() {
		if p == valid {
			return true
		}
	}
	return false
}

// State is the complete session state. It is mirrored to durable storage
// while the phase is active or finished.
type State struct {
	ID        string            `json:"id,omitempty"`
	Username  string            `json:"username,omitempty"`
	Problems  []problem.Problem `json:"contest"`
	StartedAt time.Time         `json:"startTime"`
	EndsAt    time.Time         `json:"endTime"`
	Phase     Phase             `json:"phase"`
	Progress  score.Progress    `json:"progress"`
	Mode      problem.PoolMode  `json:"mode"`
	Topics    []string          `json:"topics,omitempty"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	clone := s
	clone.Problems = append([]problem.Problem(nil), s.Problems...)
	clone.Topics = append([]string(nil), s.Topics...)
	clone.Progress = make(score.Progress, len(s.Progress))
	for slug, entry := range s.Progress {
		clone.Progress[slug] = entry
	}
	return clone
}

// Validate checks that a state is internally consistent.
func (s *State) Validate() error {
	if !s.Phase.IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidPhase, s.Phase, ValidPhases())
	}
	if s.Phase == PhaseConfiguring {
		return nil
	}
	if len(s.Problems) == 0 {
		return fmt.Errorf("%w: no problems", ErrMalformedState)
	}
	seen := make(map[string]bool, len(s.Problems))
	for _, p := range s.Problems {
		if p.TitleSlug == "" {
			return fmt.Errorf("%w: problem %q has no slug", ErrMalformedState, p.Title)
		}
		if seen[p.TitleSlug] {
			return fmt.Errorf("%w: duplicate problem %q", ErrMalformedState, p.TitleSlug)
		}
		seen[p.TitleSlug] = true
	}
	if s.StartedAt.IsZero() || !s.EndsAt.After(s.StartedAt) {
		return fmt.Errorf("%w: end %s is not after start %s", ErrMalformedState, s.EndsAt, s.StartedAt)
	}
	if s.Mode != "" && !s.Mode.IsValid() {
		return validation.FormatInvalidValueError(problem.ErrInvalidPoolMode, s.Mode, problem.ValidPoolModes())
	}
	return nil
}

// Persistence stores the durable copy of the session state.
type Persistence interface {
	// Load returns the stored state, or nil if none exists.
	Load() (*State, error)
	// Create stores a newly started contest, replacing any record.
	Create(*State) error
	// Save updates the stored contest. It returns ErrSessionGone when the
	// stored record is missing, belongs to another contest, or is already
	// finished.
	Save(*State) error
	Clear() error
}

// IdentitySaver remembers the identity and credential used to start a contest.
type IdentitySaver interface {
	SaveIdentity(identity, credential string) error
}

// CreateRequest asks the contest service for a new problem set.
type CreateRequest struct {
	Credential string
	Topics     []string
	Mode       problem.PoolMode
}

// CreateResponse is a freshly generated contest.
type CreateResponse struct {
	Problems   []problem.Problem
	ServerTime time.Time
}

// StatusRequest asks which contest problems were solved since StartedAt.
type StatusRequest struct {
	Username  string
	Slugs     []string
	StartedAt time.Time
}

// Solve is one solved problem reported by the contest service.
type Solve struct {
	At    time.Time
	Fails int
}

// StatusResponse maps problem slugs to their solve.
type StatusResponse map[string]Solve

// Service is the remote contest-generation and submission-status service.
type Service interface {
	CreateContest(ctx context.Context, req CreateRequest) (*CreateResponse, error)
	CheckStatus(ctx context.Context, req StatusRequest) (StatusResponse, error)
}

// StartConfig is the user's contest configuration.
type StartConfig struct {
	Identity   string
	Credential string
	Mode       problem.PoolMode
	Topics     []string
}
