package session

import (
	"errors"
	"testing"
	"time"

	"github.com/amonks/contestsim/internal/state"
	"github.com/amonks/contestsim/problem"
	"github.com/amonks/contestsim/score"
)

func TestDurableStoreRoundTrip(t *testing.T) {
	store := NewDurableStore(state.NewStore(t.TempDir()))

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil state, got %+v", loaded)
	}

	st := &State{
		ID:        "c1",
		Username:  "tourist",
		Problems:  sampleProblems(),
		StartedAt: contestStart,
		EndsAt:    contestStart.Add(DefaultDuration),
		Phase:     PhaseActive,
		Progress:  score.Progress{"two-sum": {Solved: true, TimeTaken: 4}},
		Mode:      problem.PoolUnsolved,
	}
	if err := store.Create(st); err != nil {
		t.Fatalf("create: %v", err)
	}
	st.Progress["add-two-numbers"] = score.Entry{Solved: true, TimeTaken: 9}
	if err := store.Save(st); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err = store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != "c1" || loaded.Phase != PhaseActive || !loaded.EndsAt.Equal(st.EndsAt) {
		t.Fatalf("unexpected state %+v", loaded)
	}
	if !loaded.Progress.Solved("two-sum") || !loaded.Progress.Solved("add-two-numbers") || loaded.Mode != problem.PoolUnsolved {
		t.Fatalf("unexpected progress %+v", loaded.Progress)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	loaded, err = store.Load()
	if err != nil || loaded != nil {
		t.Fatalf("expected cleared state, got %+v %v", loaded, err)
	}
}

func TestControllerResumesFromDurableStore(t *testing.T) {
	backing := state.NewStore(t.TempDir())
	h := newHarness(t)
	h.controller.store = NewDurableStore(backing)

	h.start(t)
	started := h.controller.Snapshot()

	h.clock.Advance(20 * time.Minute)
	resumed := NewController(Options{
		Store:   NewDurableStore(backing),
		Service: h.service,
		Clock:   h.clock,
	})
	phase, err := resumed.Resume()
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if phase != PhaseActive {
		t.Fatalf("expected active, got %s", phase)
	}
	if resumed.Snapshot().ID != started.ID {
		t.Fatal("expected same contest after resume")
	}
	if got := resumed.Remaining(); got != 70*time.Minute {
		t.Fatalf("expected 70m remaining, got %s", got)
	}
}

func TestDurableStoreSaveRefusesReplacedRecord(t *testing.T) {
	active := func(id string) *State {
		return &State{
			ID:        id,
			Username:  "tourist",
			Problems:  sampleProblems(),
			StartedAt: contestStart,
			EndsAt:    contestStart.Add(DefaultDuration),
			Phase:     PhaseActive,
			Progress:  score.Progress{},
			Mode:      problem.PoolAll,
		}
	}

	cases := []struct {
		name   string
		stored *State
	}{
		{name: "missing", stored: nil},
		{name: "other contest", stored: active("c2")},
		{name: "finished", stored: func() *State {
			st := active("c1")
			st.Phase = PhaseFinished
			return st
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewDurableStore(state.NewStore(t.TempDir()))
			if tc.stored != nil {
				if err := store.Create(tc.stored); err != nil {
					t.Fatalf("create: %v", err)
				}
			}

			err := store.Save(active("c1"))
			if !errors.Is(err, ErrSessionGone) {
				t.Fatalf("expected ErrSessionGone, got %v", err)
			}

			loaded, err := store.Load()
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if tc.stored == nil {
				if loaded != nil {
					t.Fatalf("expected no record, got %+v", loaded)
				}
				return
			}
			if loaded.ID != tc.stored.ID || loaded.Phase != tc.stored.Phase {
				t.Fatalf("stored record was overwritten: %+v", loaded)
			}
		})
	}
}

// sharedStoreHarness starts a contest in a watching controller backed by a
// durable store in a temp dir, and returns a second controller on the same
// directory standing in for a one-shot command.
func sharedStoreHarness(t *testing.T) (*harness, *state.Store, *Controller) {
	t.Helper()
	backing := state.NewStore(t.TempDir())
	h := newHarness(t)
	h.controller.store = NewDurableStore(backing)
	h.start(t)

	h.clock.Advance(10 * time.Minute)
	other := NewController(Options{
		Store:   NewDurableStore(backing),
		Service: h.service,
		Clock:   h.clock,
	})
	phase, err := other.Resume()
	if err != nil || phase != PhaseActive {
		t.Fatalf("resume other: %s %v", phase, err)
	}
	return h, backing, other
}

func resumedPhase(t *testing.T, backing *state.Store, opts Options) Phase {
	t.Helper()
	opts.Store = NewDurableStore(backing)
	phase, err := NewController(opts).Resume()
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	return phase
}

func TestWatcherMergeAfterResetElsewhere(t *testing.T) {
	h, backing, other := sharedStoreHarness(t)
	if err := other.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	added := h.controller.Merge(h.controller.Generation(), StatusResponse{
		"two-sum": {At: contestStart.Add(5 * time.Minute)},
	})
	if added != 0 {
		t.Fatalf("expected merge to be refused, got %d added", added)
	}
	if got := h.controller.Phase(); got != PhaseConfiguring {
		t.Fatalf("expected watcher to return to configuring, got %s", got)
	}
	if got := resumedPhase(t, backing, Options{Clock: h.clock}); got != PhaseConfiguring {
		t.Fatalf("expected reset to stick, got %s", got)
	}
}

func TestWatcherMergeAfterSubmitElsewhere(t *testing.T) {
	h, backing, other := sharedStoreHarness(t)
	if err := other.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	h.controller.Merge(h.controller.Generation(), StatusResponse{
		"two-sum": {At: contestStart.Add(5 * time.Minute)},
	})
	if got := h.controller.Phase(); got != PhaseFinished {
		t.Fatalf("expected watcher to adopt finished, got %s", got)
	}
	if h.controller.Snapshot().Progress.Solved("two-sum") {
		t.Fatal("expected the submitted record, not the watcher's merge")
	}
	if got := resumedPhase(t, backing, Options{Clock: h.clock}); got != PhaseFinished {
		t.Fatalf("expected finished to stay terminal, got %s", got)
	}
}

func TestWatcherExpiryAfterResetElsewhere(t *testing.T) {
	h, backing, other := sharedStoreHarness(t)
	if err := other.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	h.clock.Advance(DefaultDuration)
	if _, phase := h.controller.Tick(); phase != PhaseConfiguring {
		t.Fatalf("expected configuring after expiry, got %s", phase)
	}
	loaded, err := NewDurableStore(backing).Load()
	if err != nil || loaded != nil {
		t.Fatalf("expected no stored contest, got %+v %v", loaded, err)
	}
}

func TestSubmitAfterResetElsewhere(t *testing.T) {
	h, _, other := sharedStoreHarness(t)
	if err := other.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if err := h.controller.Submit(); !errors.Is(err, ErrSessionGone) {
		t.Fatalf("expected ErrSessionGone, got %v", err)
	}
	if got := h.controller.Phase(); got != PhaseConfiguring {
		t.Fatalf("expected configuring, got %s", got)
	}
}
