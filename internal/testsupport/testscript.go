package testsupport

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amonks/contestsim/api"
	"github.com/amonks/contestsim/leetcode"
	"github.com/amonks/contestsim/problem"
	"github.com/rogpeppe/go-internal/testscript"
	"github.com/rs/zerolog"
)

var (
	buildOnce   sync.Once
	contestPath string
	buildErr    error
)

// BuildContest builds the contest binary once and returns its path.
func BuildContest(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "contest-bin-")
		if err != nil {
			buildErr = err
			return
		}

		contestPath = filepath.Join(binDir, "contest")
		cmd := exec.Command("go", "build", "-o", contestPath, "./cmd/contest")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build contest: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return contestPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("CONTEST", BuildContest(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("CONTESTSIM_STATE_DIR", filepath.Join(homeDir, ".local", "state", "contestsim"))
	env.Setenv("NO_COLOR", "1")
	return nil
}

// ScriptPlatform is an in-memory problem platform for CLI scripts.
type ScriptPlatform struct {
	mu          sync.Mutex
	questions   []leetcode.Question
	submissions []leetcode.Submission
}

// NewScriptPlatform returns a platform with exactly one contest's worth of
// problems, so every generated contest holds the same four.
func NewScriptPlatform() *ScriptPlatform {
	return &ScriptPlatform{questions: []leetcode.Question{
		{Title: "Two Sum", TitleSlug: "two-sum", Difficulty: problem.Easy, TopicTags: []leetcode.Tag{{Name: "Array", Slug: "array"}}},
		{Title: "Add Two Numbers", TitleSlug: "add-two-numbers", Difficulty: problem.Medium},
		{Title: "LRU Cache", TitleSlug: "lru-cache", Difficulty: problem.Medium},
		{Title: "Median of Two Sorted Arrays", TitleSlug: "median-of-two-sorted-arrays", Difficulty: problem.Hard},
	}}
}

// Problems implements api.Platform.
func (p *ScriptPlatform) Problems(ctx context.Context, cookie string) ([]leetcode.Question, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]leetcode.Question(nil), p.questions...), nil
}

// RecentSubmissions implements api.Platform.
func (p *ScriptPlatform) RecentSubmissions(ctx context.Context, username string, limit int) ([]leetcode.Submission, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]leetcode.Submission(nil), p.submissions...), nil
}

// Solve records fails rejected submissions followed by an accepted one,
// timestamped a couple of minutes from now.
func (p *ScriptPlatform) Solve(slug string, fails int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	at := time.Now().Add(2 * time.Minute).Truncate(time.Second)
	for i := range fails {
		p.submissions = append(p.submissions, leetcode.Submission{
			TitleSlug: slug,
			Timestamp: at.Add(-time.Duration(fails-i) * time.Second),
			Status:    "Wrong Answer",
		})
	}
	p.submissions = append(p.submissions, leetcode.Submission{
		TitleSlug: slug,
		Timestamp: at,
		Status:    leetcode.SubmissionAccepted,
	})
}

var (
	platformsMu sync.Mutex
	platforms   = map[*testscript.TestScript]*ScriptPlatform{}
)

// CmdFakeAPI starts an in-process contest service for the script and points
// CONTESTSIM_API_URL at it.
func CmdFakeAPI(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("fakeapi does not support negation")
	}
	platform := NewScriptPlatform()
	logger := zerolog.Nop()
	server, err := api.NewServer(api.ServerOptions{
		Platform: platform,
		Rand:     rand.New(rand.NewPCG(1, 2)),
		Logger:   &logger,
	})
	if err != nil {
		ts.Fatalf("start fake api: %v", err)
	}
	httpServer := httptest.NewServer(server.Handler())

	platformsMu.Lock()
	platforms[ts] = platform
	platformsMu.Unlock()
	ts.Defer(func() {
		httpServer.Close()
		platformsMu.Lock()
		delete(platforms, ts)
		platformsMu.Unlock()
	})
	ts.Setenv("CONTESTSIM_API_URL", httpServer.URL)
}

// CmdSolve marks a problem solved on the script's fake platform.
func CmdSolve(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("solve does not support negation")
	}
	if len(args) < 1 || len(args) > 2 {
		ts.Fatalf("usage: solve SLUG [FAILS]")
	}
	fails := 0
	if len(args) == 2 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			ts.Fatalf("invalid fails %q", args[1])
		}
		fails = parsed
	}

	platformsMu.Lock()
	platform := platforms[ts]
	platformsMu.Unlock()
	if platform == nil {
		ts.Fatalf("solve requires fakeapi")
	}
	platform.Solve(args[0], fails)
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// ScriptCommands returns the custom commands available to contest scripts.
func ScriptCommands() map[string]func(ts *testscript.TestScript, neg bool, args []string) {
	return map[string]func(ts *testscript.TestScript, neg bool, args []string){
		"fakeapi": CmdFakeAPI,
		"solve":   CmdSolve,
		"envset":  CmdEnvSet,
	}
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
