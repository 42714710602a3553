// Package config handles workbench directory discovery and configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/taskbench/taskbench/internal/clierr"
	"github.com/taskbench/taskbench/internal/rank"
)

const fileMode = 0o600

const (
	// DefaultDir is the workbench directory name looked up from the
	// working directory upward.
	DefaultDir = ".taskbench"
	// ConfigFileName is the config file within the workbench directory.
	ConfigFileName = "config.yml"
	// DefaultTasksFile is the working-set file within the workbench directory.
	DefaultTasksFile = "tasks.json"
	// DefaultServerURL points at a locally running scoring service.
	DefaultServerURL = "http://localhost:8000"
	// DefaultTimeout is the analysis request timeout as a duration string.
	DefaultTimeout = "30s"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no workbench found (run 'taskbench init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the workbench configuration.
type Config struct {
	Version   int          `yaml:"version"`
	Server    ServerConfig `yaml:"server"`
	TasksFile string       `yaml:"tasks_file"`
	Strategy  string       `yaml:"strategy,omitempty"`

	// dir is the absolute path to the workbench directory (not serialized).
	dir string `yaml:"-"`
}

// ServerConfig holds scoring-service connection settings.
type ServerConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout,omitempty"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:   CurrentVersion,
		Server:    ServerConfig{URL: DefaultServerURL, Timeout: DefaultTimeout},
		TasksFile: DefaultTasksFile,
		Strategy:  string(rank.Smart),
	}
}

// Dir returns the absolute path to the workbench directory.
func (c *Config) Dir() string { return c.dir }

// SetDir sets the workbench directory path on the config.
func (c *Config) SetDir(dir string) { c.dir = dir }

// TasksPath returns the absolute path to the working-set file.
func (c *Config) TasksPath() string {
	return filepath.Join(c.dir, c.TasksFile)
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// LockPath returns the advisory lock file guarding working-set writes.
func (c *Config) LockPath() string {
	return filepath.Join(c.dir, ".lock")
}

// TimeoutDuration returns the parsed request timeout, or zero when
// unset (callers substitute their own default).
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Server.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// DefaultStrategy returns the configured ranking strategy, falling
// back to smart for unset or unrecognized values.
func (c *Config) DefaultStrategy() rank.Strategy {
	return rank.Parse(c.Strategy)
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Server.URL == "" {
		return fmt.Errorf("%w: server.url is required", ErrInvalid)
	}
	if c.TasksFile == "" {
		return fmt.Errorf("%w: tasks_file is required", ErrInvalid)
	}
	if c.Server.Timeout != "" {
		if _, err := time.ParseDuration(c.Server.Timeout); err != nil {
			return fmt.Errorf("%w: invalid server.timeout %q: %w", ErrInvalid, c.Server.Timeout, err)
		}
	}
	return nil
}

// Save writes the config to its directory.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates the config in the given directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Init creates a new workbench directory with a default config and an
// empty working set. Fails if one already exists there.
func Init(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if _, err := os.Stat(filepath.Join(absDir, ConfigFileName)); err == nil {
		return nil, clierr.Newf(clierr.WorkbenchExists,
			"workbench already exists at %s", absDir)
	}

	if err := os.MkdirAll(absDir, 0o755); err != nil { //nolint:mnd // standard directory mode
		return nil, fmt.Errorf("creating workbench directory: %w", err)
	}

	cfg := NewDefault()
	cfg.dir = absDir
	if err := cfg.Save(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindDir walks from startDir upward looking for a workbench
// directory, either as a .taskbench child or the directory itself.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the workbench directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.NoWorkbench,
				"no workbench found (run 'taskbench init' to create one)")
		}
		dir = parent
	}
}
