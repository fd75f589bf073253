// Package web serves the local scoreboard: a read-only page rendered from
// the durable contest record.
package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/amonks/contestsim/session"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RefreshSeconds is how often the page reloads itself.
const RefreshSeconds = 15

// Loader reads the durable contest record.
type Loader interface {
	Load() (*session.State, error)
}

// Options configures the scoreboard handler.
type Options struct {
	Store    Loader
	Clock    clockwork.Clock
	Duration time.Duration
	Logger   *zerolog.Logger
}

// Handler serves the scoreboard page and its JSON feed.
type Handler struct {
	store     Loader
	clock     clockwork.Clock
	duration  time.Duration
	logger    zerolog.Logger
	mux       *http.ServeMux
	templates *template.Template
}

// NewHandler creates a scoreboard handler.
func NewHandler(opts Options) *Handler {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	duration := opts.Duration
	if duration <= 0 {
		duration = session.DefaultDuration
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	handler := &Handler{
		store:     opts.Store,
		clock:     clock,
		duration:  duration,
		logger:    logger.With().Str("component", "board").Logger(),
		templates: newTemplates(),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", handler.handlePage)
	mux.HandleFunc("/state.json", handler.handleState)
	handler.mux = mux
	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type pageData struct {
	View    session.View
	Refresh int
	Error   string
}

// currentView renders the stored record as of now. A missing, unreadable or
// expired record shows the configuring view.
func (h *Handler) currentView() (session.View, error) {
	now := h.clock.Now()
	var st session.State
	stored, err := h.store.Load()
	if err == nil && stored != nil {
		st = *stored
	}
	if err != nil || stored == nil || stored.Validate() != nil || expired(stored, now) {
		st = session.State{Phase: session.PhaseConfiguring}
	}
	return session.NewView(st, now, h.duration), err
}

// expired reports an active record whose end has passed. Nothing watched it
// finish, so it is treated as discarded.
func expired(st *session.State, now time.Time) bool {
	return st.Phase == session.PhaseActive && !st.EndsAt.After(now)
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	view, err := h.currentView()
	data := pageData{View: view, Refresh: RefreshSeconds}
	if err != nil {
		h.logger.Warn().Err(err).Msg("could not read contest state")
		data.Error = "The stored contest could not be read."
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "page", data); err != nil {
		h.logger.Error().Err(err).Msg("render scoreboard")
	}
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	view, err := h.currentView()
	if err != nil {
		h.logger.Warn().Err(err).Msg("could not read contest state")
	}
	writeJSON(w, http.StatusOK, view)
}
