package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amonks/contestsim/internal/state"
	"github.com/amonks/contestsim/problem"
	"github.com/amonks/contestsim/score"
	"github.com/amonks/contestsim/session"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

var boardStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type staticLoader struct {
	state *session.State
	err   error
}

func (l staticLoader) Load() (*session.State, error) {
	return l.state, l.err
}

func activeState() *session.State {
	return &session.State{
		ID:       "c1",
		Username: "tourist",
		Problems: []problem.Problem{
			{Title: "Two Sum", TitleSlug: "two-sum", Difficulty: problem.Easy},
			{Title: "Add Two Numbers", TitleSlug: "add-two-numbers", Difficulty: problem.Medium},
		},
		StartedAt: boardStart,
		EndsAt:    boardStart.Add(session.DefaultDuration),
		Phase:     session.PhaseActive,
		Mode:      problem.PoolAll,
		Progress:  score.Progress{"add-two-numbers": {Solved: true, TimeTaken: 9}},
	}
}

func newBoard(t *testing.T, loader Loader, elapsed time.Duration) *httptest.Server {
	t.Helper()
	logger := zerolog.Nop()
	handler := NewHandler(Options{
		Store:  loader,
		Clock:  clockwork.NewFakeClockAt(boardStart.Add(elapsed)),
		Logger: &logger,
	})
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func getBody(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(data)
}

func TestPageShowsActiveContest(t *testing.T) {
	server := newBoard(t, staticLoader{state: activeState()}, 82*time.Minute)

	status, body := getBody(t, server.URL+"/")

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	for _, want := range []string{
		`<meta http-equiv="refresh" content="15">`,
		`countdown urgent`,
		`8:00`,
		`5 / 8 pts`,
		`href="https://leetcode.com/problems/two-sum/"`,
		`<span class="solved">Add Two Numbers</span>`,
		`9m`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page:\n%s", want, body)
		}
	}
}

func TestPageWithoutContest(t *testing.T) {
	server := newBoard(t, staticLoader{}, 0)

	_, body := getBody(t, server.URL+"/")

	if !strings.Contains(body, "No contest in progress") {
		t.Fatalf("expected empty state, got:\n%s", body)
	}
	if strings.Contains(body, "http-equiv") {
		t.Fatal("expected no auto refresh without an active contest")
	}
}

func TestPageReportsUnreadableState(t *testing.T) {
	server := newBoard(t, staticLoader{err: errors.New("invalid character")}, 0)

	status, body := getBody(t, server.URL+"/")

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, "could not be read") {
		t.Fatalf("expected error banner, got:\n%s", body)
	}
}

func TestPageUnknownPath(t *testing.T) {
	server := newBoard(t, staticLoader{}, 0)

	status, _ := getBody(t, server.URL+"/nope")

	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestStateJSON(t *testing.T) {
	st := activeState()
	st.Phase = session.PhaseFinished
	server := newBoard(t, staticLoader{state: st}, 2*time.Hour)

	status, body := getBody(t, server.URL+"/state.json")

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var view session.View
	if err := json.Unmarshal([]byte(body), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Phase != session.PhaseFinished || view.Score != 5 || view.MaxScore != 8 {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.Verdict != score.TierSpecialist {
		t.Fatalf("expected Specialist, got %s", view.Verdict)
	}
}

func TestExpiredContestShowsConfiguring(t *testing.T) {
	server := newBoard(t, staticLoader{state: activeState()}, session.DefaultDuration+time.Minute)

	_, body := getBody(t, server.URL+"/state.json")
	var view session.View
	if err := json.Unmarshal([]byte(body), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Phase != session.PhaseConfiguring || len(view.Rows) != 0 {
		t.Fatalf("expected expired contest to be discarded, got %+v", view)
	}

	_, page := getBody(t, server.URL+"/")
	if !strings.Contains(page, "No contest in progress") {
		t.Fatalf("expected empty state, got:\n%s", page)
	}
}

func TestBoardReadsDurableStore(t *testing.T) {
	store := session.NewDurableStore(state.NewStore(t.TempDir()))
	if err := store.Create(activeState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	server := newBoard(t, store, 30*time.Minute)

	_, body := getBody(t, server.URL+"/state.json")

	if !strings.Contains(body, `"countdown":"60:00"`) {
		t.Fatalf("expected countdown from durable record, got %s", body)
	}
}
