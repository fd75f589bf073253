package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{" WARN ", zerolog.WarnLevel, false},
		{"chatty", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v", tt.input, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSetupFile(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "logs", "contest.log")
	closeLog, err := Setup(Options{Level: "info", File: path})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	log.Info().Str("slug", "two-sum").Msg("status check merged")
	log.Debug().Msg("hidden")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"slug":"two-sum"`) {
		t.Errorf("expected structured field in log, got %q", text)
	}
	if strings.Contains(text, "hidden") {
		t.Errorf("debug line should be filtered, got %q", text)
	}
}

func TestSetupConsole(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	if _, err := Setup(Options{Level: "debug", Console: &buf}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	log.Debug().Msg("listening")
	if !strings.Contains(buf.String(), "listening") {
		t.Errorf("expected console output, got %q", buf.String())
	}
}
