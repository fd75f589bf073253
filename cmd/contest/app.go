package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/contestsim/api"
	"github.com/amonks/contestsim/internal/paths"
	"github.com/amonks/contestsim/internal/state"
	"github.com/amonks/contestsim/session"
	"github.com/rs/zerolog/log"
)

// app bundles what the contest commands share.
type app struct {
	store      *state.Store
	identities *state.IdentityStore
	client     *api.Client
	controller *session.Controller
}

func openApp() (*app, error) {
	dir, err := paths.DefaultStateDir()
	if err != nil {
		return nil, err
	}
	store := state.NewStore(dir)
	identities := state.NewIdentityStore(store, state.CredentialPolicy{
		Persist: cfg.Identity.PersistCredential,
		TTL:     cfg.Identity.CredentialTTL.Duration,
	})
	client := api.NewClient(cfg.API.URL, cfg.API.Timeout.Duration)
	controller := session.NewController(session.Options{
		Store:        session.NewDurableStore(store),
		Service:      client,
		Identities:   identities,
		Duration:     cfg.Contest.Duration.Duration,
		PollInterval: cfg.Contest.PollInterval.Duration,
		Logger:       &log.Logger,
	})
	return &app{
		store:      store,
		identities: identities,
		client:     client,
		controller: controller,
	}, nil
}

// resume opens the app and restores the stored contest.
func resume() (*app, session.Phase, error) {
	a, err := openApp()
	if err != nil {
		return nil, "", err
	}
	phase, err := a.controller.Resume()
	if err != nil {
		return nil, "", err
	}
	return a, phase, nil
}

// requirePhase returns a user-facing error unless phase is one of want.
func requirePhase(phase session.Phase, want ...session.Phase) error {
	for _, w := range want {
		if phase == w {
			return nil
		}
	}
	switch phase {
	case session.PhaseConfiguring:
		return fmt.Errorf("%w; start one with `contest start`", session.ErrNoSession)
	case session.PhaseActive:
		return fmt.Errorf("%w; finish it with `contest submit`", session.ErrSessionActive)
	case session.PhaseFinished:
		return errors.New("the contest is over; see `contest results` or `contest reset`")
	}
	return fmt.Errorf("unexpected phase %s", phase)
}

// resolveIdentity picks the username and cookie from flags, config and the
// saved identity, in that order.
func (a *app) resolveIdentity(user, cookie string) (string, string, error) {
	saved, err := a.identities.LoadIdentity()
	if err != nil {
		return "", "", err
	}
	username := firstNonBlank(user, cfg.Identity.Username, saved.Username)
	credential := firstNonBlank(cookie, saved.Credential)
	return username, credential, nil
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
