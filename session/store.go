package session

import (
	"fmt"

	"github.com/amonks/contestsim/internal/state"
)

// DurableStore persists session state under the CONTEST_STATE key.
type DurableStore struct {
	store *state.Store
}

// NewDurableStore wraps a state store.
func NewDurableStore(store *state.Store) *DurableStore {
	return &DurableStore{store: store}
}

// Load returns the stored state or nil when there is none.
func (d *DurableStore) Load() (*State, error) {
	var st State
	found, err := d.store.Get(state.KeyContestState, &st)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &st, nil
}

// Create writes st unconditionally.
func (d *DurableStore) Create(st *State) error {
	return d.store.Update(func(s *state.Store) error {
		return s.Put(state.KeyContestState, st)
	})
}

// Save writes st only while the stored record is the same contest and not
// yet finished. Other processes sharing the state directory may reset or
// submit the contest at any time.
func (d *DurableStore) Save(st *State) error {
	return d.store.Update(func(s *state.Store) error {
		var current State
		found, err := s.Get(state.KeyContestState, &current)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSessionGone, err)
		}
		if err := checkReplace(found, &current, st); err != nil {
			return err
		}
		return s.Put(state.KeyContestState, st)
	})
}

func checkReplace(found bool, current, next *State) error {
	switch {
	case !found:
		return fmt.Errorf("%w: no stored contest", ErrSessionGone)
	case current.ID != next.ID:
		return fmt.Errorf("%w: stored contest is %q", ErrSessionGone, current.ID)
	case current.Phase == PhaseFinished:
		return fmt.Errorf("%w: contest already finished", ErrSessionGone)
	}
	return nil
}

// Clear removes the stored state.
func (d *DurableStore) Clear() error {
	return d.store.Update(func(s *state.Store) error {
		return s.Delete(state.KeyContestState)
	})
}
