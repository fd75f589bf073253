package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/amonks/contestsim/problem"
	"github.com/amonks/contestsim/score"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultDuration is the length of a contest.
	DefaultDuration = 90 * time.Minute
	// DefaultPollInterval is the status check cadence.
	DefaultPollInterval = 15 * time.Second
	// tickInterval drives countdown recomputation.
	tickInterval = time.Second
)

// Options configures a Controller.
type Options struct {
	Store      Persistence
	Service    Service
	Identities IdentitySaver
	// Clock defaults to the real clock. Tests inject clockwork.NewFakeClock().
	Clock        clockwork.Clock
	Duration     time.Duration
	PollInterval time.Duration
	Logger       *zerolog.Logger
}

// Controller owns the session state and drives it through
// configuring → active → finished → configuring.
//
// The durable copy is written at every transition and merge while the phase
// is active or finished. Status checks run as tasks bound to the session's
// context; finishing or resetting cancels them and bumps the generation so
// late responses are dropped instead of merged.
type Controller struct {
	store      Persistence
	service    Service
	identities IdentitySaver
	clock      clockwork.Clock
	duration   time.Duration
	pollEvery  time.Duration
	logger     zerolog.Logger

	mu            sync.Mutex
	state         State
	starting      bool
	generation    uint64
	lastPoll      int
	sessionCtx    context.Context
	cancelSession context.CancelFunc

	inflight sync.WaitGroup
	updates  chan struct{}
}

// NewController creates a controller in the configuring phase. Call Resume
// to pick up a stored contest.
func NewController(opts Options) *Controller {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	duration := opts.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	pollEvery := opts.PollInterval.Truncate(time.Second)
	if pollEvery <= 0 {
		pollEvery = DefaultPollInterval
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Controller{
		store:      opts.Store,
		service:    opts.Service,
		identities: opts.Identities,
		clock:      clock,
		duration:   duration,
		pollEvery:  pollEvery,
		logger:     logger.With().Str("component", "session").Logger(),
		state:      freshState("", nil),
		lastPoll:   -1,
		updates:    make(chan struct{}, 1),
	}
}

func freshState(mode problem.PoolMode, topics []string) State {
	if mode == "" {
		mode = problem.PoolAll
	}
	return State{
		Phase:    PhaseConfiguring,
		Progress: score.Progress{},
		Mode:     mode,
		Topics:   append([]string(nil), topics...),
	}
}

// Updates delivers a notification after every state change. Notifications
// coalesce; receivers should read Snapshot.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

func (c *Controller) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Phase
}

// Duration returns the configured contest length.
func (c *Controller) Duration() time.Duration {
	return c.duration
}

// Now returns the controller clock's current time.
func (c *Controller) Now() time.Time {
	return c.clock.Now()
}

// Remaining returns whole seconds left in the contest.
func (c *Controller) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remainingLocked()
}

func (c *Controller) remainingLocked() time.Duration {
	switch c.state.Phase {
	case PhaseActive:
		return remainingUntil(c.state.EndsAt, c.clock.Now())
	case PhaseFinished:
		return 0
	default:
		return c.duration
	}
}

func remainingUntil(end, now time.Time) time.Duration {
	left := end.Sub(now)
	if left <= 0 {
		return 0
	}
	return left.Truncate(time.Second)
}

// View returns the presentation model for the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return newView(c.state, c.remainingLocked())
}

// Resume reconstructs the session from durable storage. A stored active
// contest whose end is still in the future resumes as active, a finished one
// as finished. Anything else is discarded and the controller starts fresh.
func (c *Controller) Resume() (Phase, error) {
	stored, loadErr := c.store.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	discard := func(reason string, err error) (Phase, error) {
		event := c.logger.Info()
		if err != nil {
			event = c.logger.Warn().Err(err)
		}
		event.Str("reason", reason).Msg("discarding stored contest")
		c.state = freshState("", nil)
		if clearErr := c.store.Clear(); clearErr != nil {
			return PhaseConfiguring, fmt.Errorf("clear contest state: %w", clearErr)
		}
		return PhaseConfiguring, nil
	}

	if loadErr != nil {
		return discard("unreadable", loadErr)
	}
	if stored == nil {
		c.state = freshState("", nil)
		return PhaseConfiguring, nil
	}
	if err := stored.Validate(); err != nil {
		return discard("invalid", err)
	}
	if stored.Progress == nil {
		stored.Progress = score.Progress{}
	}

	switch stored.Phase {
	case PhaseActive:
		if !stored.EndsAt.After(c.clock.Now()) {
			return discard("expired", nil)
		}
		c.adoptLocked(*stored)
		c.logger.Info().
			Str("contest_id", stored.ID).
			Dur("remaining", c.remainingLocked()).
			Msg("resumed active contest")
	case PhaseFinished:
		c.state = stored.Clone()
		c.logger.Info().Str("contest_id", stored.ID).Msg("resumed finished contest")
	default:
		return discard("not started", nil)
	}
	c.notify()
	return c.state.Phase, nil
}

// adoptLocked installs an active state and opens a new session context.
func (c *Controller) adoptLocked(st State) {
	c.endSessionLocked()
	c.state = st.Clone()
	c.sessionCtx, c.cancelSession = context.WithCancel(context.Background())
	c.lastPoll = -1
}

// endSessionLocked cancels in-flight checks and invalidates their results.
func (c *Controller) endSessionLocked() {
	c.generation++
	if c.cancelSession != nil {
		c.cancelSession()
		c.cancelSession = nil
	}
	c.sessionCtx = nil
}

// Start creates a contest through the service and enters the active phase.
// On any failure the controller stays in configuring with no partial state.
func (c *Controller) Start(ctx context.Context, cfg StartConfig) error {
	identity := strings.TrimSpace(cfg.Identity)
	if identity == "" {
		return ErrIdentityRequired
	}
	mode, err := problem.ParsePoolMode(string(cfg.Mode))
	if err != nil {
		return err
	}
	topics := problem.NormalizeTopics(cfg.Topics)

	c.mu.Lock()
	if c.state.Phase != PhaseConfiguring || c.starting {
		c.mu.Unlock()
		return ErrSessionActive
	}
	c.starting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.starting = false
		c.mu.Unlock()
	}()

	resp, err := c.service.CreateContest(ctx, CreateRequest{
		Credential: strings.TrimSpace(cfg.Credential),
		Topics:     topics,
		Mode:       mode,
	})
	if err != nil {
		return fmt.Errorf("create contest: %w", err)
	}
	if resp == nil || len(resp.Problems) == 0 {
		return ErrEmptyContest
	}

	startedAt := resp.ServerTime
	if startedAt.IsZero() {
		startedAt = c.clock.Now()
	}
	next := State{
		ID:        uuid.NewString(),
		Username:  identity,
		Problems:  append([]problem.Problem(nil), resp.Problems...),
		StartedAt: startedAt,
		EndsAt:    startedAt.Add(c.duration),
		Phase:     PhaseActive,
		Progress:  score.Progress{},
		Mode:      mode,
		Topics:    topics,
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("create contest: %w", err)
	}

	if err := c.store.Create(&next); err != nil {
		return fmt.Errorf("save contest state: %w", err)
	}

	c.mu.Lock()
	c.adoptLocked(next)
	c.mu.Unlock()

	if c.identities != nil {
		if err := c.identities.SaveIdentity(identity, cfg.Credential); err != nil {
			c.logger.Warn().Err(err).Msg("could not save identity")
		}
	}

	c.logger.Info().
		Str("contest_id", next.ID).
		Int("problems", len(next.Problems)).
		Str("mode", string(mode)).
		Time("ends_at", next.EndsAt).
		Msg("contest started")
	c.notify()
	return nil
}

// Tick recomputes the remaining time. At zero it finishes the contest;
// whenever the remaining seconds are a multiple of the poll interval it
// dispatches one asynchronous status check. It returns the remaining time
// and the phase after the tick.
func (c *Controller) Tick() (time.Duration, Phase) {
	c.mu.Lock()
	if c.state.Phase != PhaseActive {
		phase := c.state.Phase
		c.mu.Unlock()
		return 0, phase
	}

	remaining := c.remainingLocked()
	if remaining <= 0 {
		snapshot := c.finishLocked("time expired")
		c.mu.Unlock()
		c.notify()
		if err := c.store.Save(&snapshot); err != nil {
			if errors.Is(err, ErrSessionGone) {
				c.yieldSession(snapshot.ID, err)
				return 0, c.Phase()
			}
			c.logger.Error().Err(err).Msg("could not save contest state")
		}
		return 0, PhaseFinished
	}

	seconds := int(remaining / time.Second)
	pollSeconds := int(c.pollEvery / time.Second)
	if seconds%pollSeconds == 0 && seconds != c.lastPoll {
		c.lastPoll = seconds
		c.dispatchLocked()
	}
	c.mu.Unlock()
	c.notify()
	return remaining, PhaseActive
}

// dispatchLocked issues a status check without waiting for it.
func (c *Controller) dispatchLocked() {
	if c.service == nil || c.sessionCtx == nil {
		return
	}
	gen := c.generation
	ctx := c.sessionCtx
	req := c.statusRequestLocked()

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		resp, err := c.service.CheckStatus(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Debug().Err(err).Msg("status check cancelled")
				return
			}
			c.logger.Warn().Err(err).Msg("status check failed")
			return
		}
		c.Merge(gen, resp)
	}()
}

func (c *Controller) statusRequestLocked() StatusRequest {
	return StatusRequest{
		Username:  c.state.Username,
		Slugs:     problem.Slugs(c.state.Problems),
		StartedAt: c.state.StartedAt,
	}
}

// Generation identifies the current session for Merge.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Merge records solves from a status response produced during generation
// gen. Slugs already solved keep their first recorded time and fails, slugs
// outside the contest are ignored, and responses from an earlier generation
// or arriving outside the active phase are dropped. It returns how many
// problems became solved.
func (c *Controller) Merge(gen uint64, resp StatusResponse) int {
	c.mu.Lock()
	if gen != c.generation || c.state.Phase != PhaseActive {
		c.mu.Unlock()
		c.logger.Debug().Uint64("generation", gen).Msg("dropping stale status response")
		return 0
	}

	added := mergeProgress(&c.state, resp)
	if added == 0 {
		c.mu.Unlock()
		return 0
	}
	snapshot := c.state.Clone()
	c.mu.Unlock()

	if err := c.store.Save(&snapshot); err != nil {
		if errors.Is(err, ErrSessionGone) {
			c.yieldSession(snapshot.ID, err)
			return 0
		}
		c.logger.Error().Err(err).Msg("could not save contest state")
	}
	c.logger.Info().Int("solved", added).Msg("merged status check")
	c.notify()
	return added
}

func mergeProgress(st *State, resp StatusResponse) int {
	if st.Progress == nil {
		st.Progress = score.Progress{}
	}
	inContest := make(map[string]bool, len(st.Problems))
	for _, p := range st.Problems {
		inContest[p.TitleSlug] = true
	}

	added := 0
	for slug, solve := range resp {
		if !inContest[slug] || st.Progress.Solved(slug) {
			continue
		}
		minutes := int(solve.At.Sub(st.StartedAt) / time.Minute)
		if minutes < 0 {
			minutes = 0
		}
		fails := solve.Fails
		if fails < 0 {
			fails = 0
		}
		st.Progress[slug] = score.Entry{Solved: true, TimeTaken: minutes, Fails: fails}
		added++
	}
	return added
}

// CheckNow runs one status check synchronously and merges the result.
// Unlike the periodic check, failures are returned.
func (c *Controller) CheckNow(ctx context.Context) (int, error) {
	c.mu.Lock()
	if c.state.Phase != PhaseActive {
		c.mu.Unlock()
		return 0, ErrSessionNotActive
	}
	gen := c.generation
	req := c.statusRequestLocked()
	sessionCtx := c.sessionCtx
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(sessionCtx, cancel)
	defer stop()

	resp, err := c.service.CheckStatus(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("check status: %w", err)
	}
	return c.Merge(gen, resp), nil
}

// Submit finishes an active contest.
func (c *Controller) Submit() error {
	c.mu.Lock()
	if c.state.Phase != PhaseActive {
		c.mu.Unlock()
		return ErrSessionNotActive
	}
	snapshot := c.finishLocked("submitted")
	c.mu.Unlock()
	c.notify()

	if err := c.store.Save(&snapshot); err != nil {
		if errors.Is(err, ErrSessionGone) {
			c.yieldSession(snapshot.ID, err)
		}
		return fmt.Errorf("save contest state: %w", err)
	}
	return nil
}

// yieldSession ends contest id after another process reset, replaced or
// finished its durable record. A finished record of the same contest is
// adopted; otherwise the controller returns to configuring.
func (c *Controller) yieldSession(id string, cause error) {
	stored, loadErr := c.store.Load()

	c.mu.Lock()
	if c.state.ID != id {
		c.mu.Unlock()
		return
	}
	c.endSessionLocked()
	if loadErr == nil && stored != nil && stored.ID == id &&
		stored.Phase == PhaseFinished && stored.Validate() == nil {
		c.state = stored.Clone()
		if c.state.Progress == nil {
			c.state.Progress = score.Progress{}
		}
	} else {
		c.state = freshState(c.state.Mode, c.state.Topics)
	}
	c.lastPoll = -1
	phase := c.state.Phase
	c.mu.Unlock()

	c.logger.Info().
		Err(cause).
		Str("contest_id", id).
		Str("phase", string(phase)).
		Msg("contest changed by another process")
	c.notify()
}

// finishLocked moves to finished and returns the state to persist.
func (c *Controller) finishLocked(reason string) State {
	c.endSessionLocked()
	c.state.Phase = PhaseFinished
	snapshot := c.state.Clone()
	result := score.Summarize(snapshot.Problems, snapshot.Progress)
	c.logger.Info().
		Str("contest_id", snapshot.ID).
		Str("reason", reason).
		Int("score", result.Total).
		Int("max", result.Max).
		Str("verdict", string(result.Verdict)).
		Msg("contest finished")
	return snapshot
}

// Reset discards the contest in any phase, cancels outstanding checks and
// clears the durable record. Pool mode and topics are kept for the next
// configuration.
func (c *Controller) Reset() error {
	c.mu.Lock()
	c.endSessionLocked()
	c.state = freshState(c.state.Mode, c.state.Topics)
	c.lastPoll = -1
	c.mu.Unlock()
	c.notify()

	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("clear contest state: %w", err)
	}
	c.logger.Info().Msg("contest reset")
	return nil
}

// Run ticks once per second until the contest is no longer active or ctx
// is done.
func (c *Controller) Run(ctx context.Context) error {
	ticker := c.clock.NewTicker(tickInterval)
	defer ticker.Stop()

	if _, phase := c.Tick(); phase != PhaseActive {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.Chan():
			if _, phase := c.Tick(); phase != PhaseActive {
				return nil
			}
		}
	}
}

// Wait blocks until dispatched status checks have returned.
func (c *Controller) Wait() {
	c.inflight.Wait()
}
