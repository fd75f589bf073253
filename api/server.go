package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/amonks/contestsim/leetcode"
	"github.com/amonks/contestsim/problem"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Platform is the problem platform the server draws contests from.
type Platform interface {
	Problems(ctx context.Context, cookie string) ([]leetcode.Question, error)
	RecentSubmissions(ctx context.Context, username string, limit int) ([]leetcode.Submission, error)
}

// ServerOptions configures a contest server.
type ServerOptions struct {
	Platform Platform
	Clock    clockwork.Clock
	// Rand draws problems; it defaults to a time-seeded source.
	Rand            *rand.Rand
	SubmissionLimit int
	Logger          *zerolog.Logger
}

// Server handles the contest service endpoints.
type Server struct {
	platform        Platform
	clock           clockwork.Clock
	submissionLimit int
	logger          zerolog.Logger

	randMu sync.Mutex
	rng    *rand.Rand
}

const shutdownTimeout = 5 * time.Second

// NewServer creates a contest server.
func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Platform == nil {
		return nil, fmt.Errorf("platform is required")
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(clock.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	limit := opts.SubmissionLimit
	if limit <= 0 {
		limit = leetcode.DefaultSubmissionLimit
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Server{
		platform:        opts.Platform,
		clock:           clock,
		submissionLimit: limit,
		logger:          logger.With().Str("component", "api").Logger(),
		rng:             rng,
	}, nil
}

// Handler returns the HTTP handler for the contest service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/create-contest", s.handleCreateContest)
	mux.HandleFunc("/check-status", s.handleCheckStatus)
	mux.HandleFunc("/healthz", s.handleHealth)

	withCORS := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return s.recoverHandler(withCORS.Handler(mux))
}

// Serve runs the server on addr until an interrupt arrives.
func (s *Server) Serve(addr string) error {
	return ServeHTTP(addr, s.Handler(), s.logger)
}

// ServeHTTP runs handler on addr and shuts it down gracefully on interrupt.
func ServeHTTP(addr string, handler http.Handler, logger zerolog.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listenErrs := make(chan error, 1)
	go func() {
		listenErrs <- server.ListenAndServe()
	}()
	logger.Info().Str("addr", addr).Msg("listening")

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	select {
	case err := <-listenErrs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server stopped")
			return err
		}
		return nil
	case <-interrupts:
		logger.Info().Msg("interrupt received, shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		shutdownErr := server.Shutdown(shutdownCtx)
		cancel()
		listenErr := <-listenErrs
		if errors.Is(listenErr, http.ErrServerClosed) {
			listenErr = nil
		}
		return errors.Join(shutdownErr, listenErr)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateContest(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var req createContestRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	mode, err := problem.ParsePoolMode(string(req.Mode))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	questions, err := s.platform.Problems(r.Context(), req.SessionCookie)
	if err != nil {
		s.writeError(w, r, http.StatusBadGateway, err)
		return
	}
	if len(questions) == 0 {
		s.writeError(w, r, http.StatusBadGateway, errors.New("failed to fetch problems"))
		return
	}

	s.randMu.Lock()
	contest := leetcode.Generate(questions, leetcode.Filters{Tags: req.SelectedTags, Mode: mode}, s.rng)
	s.randMu.Unlock()

	s.logger.Info().
		Int("problems", len(contest)).
		Str("mode", string(mode)).
		Strs("tags", req.SelectedTags).
		Msg("contest created")
	writeJSON(w, http.StatusOK, createContestResponse{
		Contest:    contest,
		ServerTime: s.clock.Now().Unix(),
	})
}

func (s *Server) handleCheckStatus(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var req checkStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	response := checkStatusResponse{}
	username := strings.TrimSpace(req.Username)
	if username == "" || len(req.ProblemSlugs) == 0 {
		writeJSON(w, http.StatusOK, response)
		return
	}

	subs, err := s.platform.RecentSubmissions(r.Context(), username, s.submissionLimit)
	if err != nil {
		s.writeError(w, r, http.StatusBadGateway, err)
		return
	}
	start := time.Unix(req.ContestStartTime, 0)
	for slug, solve := range leetcode.CheckSubmissions(subs, req.ProblemSlugs, start) {
		response[slug] = statusEntry{SolvedAt: solve.SolvedAt.Unix(), Fails: solve.Fails}
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) recoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writer := &responseTracker{ResponseWriter: w}
		defer func() {
			if recovered := recover(); recovered != nil {
				s.logger.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", recovered).
					Bytes("stack", debug.Stack()).
					Msg("panic handling request")
				if writer.wroteHeader {
					return
				}
				writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(writer, r)
	})
}

func (s *Server) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	s.writeError(w, r, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	return false
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	if decoder.More() {
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Warn().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("request failed")
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type responseTracker struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *responseTracker) WriteHeader(status int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseTracker) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(data)
}
