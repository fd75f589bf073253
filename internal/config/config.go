// Package config handles loading contestsim.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/amonks/contestsim/internal/paths"
)

// ProjectFile is the per-directory config file name.
const ProjectFile = "contestsim.toml"

const (
	DefaultAPIURL            = "http://127.0.0.1:8089"
	DefaultAPITimeout        = 15 * time.Second
	DefaultContestDuration   = 90 * time.Minute
	DefaultPollInterval      = 15 * time.Second
	DefaultCredentialTTL     = 30 * 24 * time.Hour
	DefaultLogLevel          = "info"
	DefaultServerAddr        = "127.0.0.1:8089"
	DefaultBoardAddr         = "127.0.0.1:8090"
	DefaultPersistCredential = true
)

// Config represents the contestsim.toml configuration file.
type Config struct {
	API      API      `toml:"api"`
	Contest  Contest  `toml:"contest"`
	Identity Identity `toml:"identity"`
	Log      Log      `toml:"log"`
	Server   Server   `toml:"server"`
	Board    Board    `toml:"board"`
}

// API configures the contest service the client talks to.
type API struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
}

// Contest configures new contests.
type Contest struct {
	// Duration is how long a contest runs.
	Duration Duration `toml:"duration"`
	// PollInterval is the status check cadence while a contest is active.
	PollInterval Duration `toml:"poll-interval"`
	// Mode is the default pool mode (all, solved, unsolved).
	Mode string `toml:"mode"`
	// Topics are default topic slugs.
	Topics []string `toml:"topics"`
}

// Identity configures the platform identity and credential policy.
type Identity struct {
	Username string `toml:"username"`
	// PersistCredential stores the session cookie between runs.
	PersistCredential bool `toml:"persist-credential"`
	// CredentialTTL drops a stored cookie after this long. Zero keeps it.
	CredentialTTL Duration `toml:"credential-ttl"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// Server configures `contest serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// Board configures `contest board`.
type Board struct {
	Addr string `toml:"addr"`
}

// Duration decodes TOML strings like "90m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: API{URL: DefaultAPIURL, Timeout: Duration{DefaultAPITimeout}},
		Contest: Contest{
			Duration:     Duration{DefaultContestDuration},
			PollInterval: Duration{DefaultPollInterval},
			Mode:         "all",
		},
		Identity: Identity{
			PersistCredential: DefaultPersistCredential,
			CredentialTTL:     Duration{DefaultCredentialTTL},
		},
		Log:    Log{Level: DefaultLogLevel},
		Server: Server{Addr: DefaultServerAddr},
		Board:  Board{Addr: DefaultBoardAddr},
	}
}

// Load loads configuration from the given directory and the global config
// file, on top of the defaults. Environment overrides apply last.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := Default()
	apply(merged, globalCfg, globalMeta)
	apply(merged, projectCfg, projectMeta)
	applyEnv(merged)
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

// apply overlays every key defined in meta from layer onto dst.
func apply(dst, layer *Config, meta toml.MetaData) {
	if layer == nil {
		return
	}
	mergeString(&dst.API.URL, meta.IsDefined("api", "url"), layer.API.URL)
	mergeDuration(&dst.API.Timeout, meta.IsDefined("api", "timeout"), layer.API.Timeout)
	mergeDuration(&dst.Contest.Duration, meta.IsDefined("contest", "duration"), layer.Contest.Duration)
	mergeDuration(&dst.Contest.PollInterval, meta.IsDefined("contest", "poll-interval"), layer.Contest.PollInterval)
	mergeString(&dst.Contest.Mode, meta.IsDefined("contest", "mode"), layer.Contest.Mode)
	if meta.IsDefined("contest", "topics") {
		dst.Contest.Topics = append([]string(nil), layer.Contest.Topics...)
	}
	mergeString(&dst.Identity.Username, meta.IsDefined("identity", "username"), layer.Identity.Username)
	if meta.IsDefined("identity", "persist-credential") {
		dst.Identity.PersistCredential = layer.Identity.PersistCredential
	}
	mergeDuration(&dst.Identity.CredentialTTL, meta.IsDefined("identity", "credential-ttl"), layer.Identity.CredentialTTL)
	mergeString(&dst.Log.Level, meta.IsDefined("log", "level"), layer.Log.Level)
	mergeString(&dst.Server.Addr, meta.IsDefined("server", "addr"), layer.Server.Addr)
	mergeString(&dst.Board.Addr, meta.IsDefined("board", "addr"), layer.Board.Addr)
}

func applyEnv(cfg *Config) {
	if value := strings.TrimSpace(os.Getenv("CONTESTSIM_API_URL")); value != "" {
		cfg.API.URL = value
	}
	if value := strings.TrimSpace(os.Getenv("CONTESTSIM_LOG_LEVEL")); value != "" {
		cfg.Log.Level = value
	}
	if value := strings.TrimSpace(os.Getenv("CONTESTSIM_USERNAME")); value != "" {
		cfg.Identity.Username = value
	}
}

func mergeString(dst *string, defined bool, value string) {
	if defined {
		*dst = strings.TrimSpace(value)
	}
}

func mergeDuration(dst *Duration, defined bool, value Duration) {
	if defined {
		*dst = value
	}
}
