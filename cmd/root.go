// Package cmd implements the taskbench CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taskbench/taskbench/internal/analyze"
	"github.com/taskbench/taskbench/internal/clierr"
	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/filelock"
	"github.com/taskbench/taskbench/internal/output"
	"github.com/taskbench/taskbench/internal/store"
	"github.com/taskbench/taskbench/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON     bool
	flagTable    bool
	flagCompact  bool
	flagDir      string
	flagNoColor  bool
	flagServer   string
	flagLogLevel string
)

// log is the process-wide logger, configured in PersistentPreRun.
var log = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:   "taskbench",
	Short: "Terminal workbench for prioritizing tasks",
	Long: `taskbench maintains a working set of tasks, scores it against an external
analysis service, and shows the results ranked by strategy. Run taskbench
without arguments to open the interactive workbench.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || termenv.EnvNoColor() {
			output.DisableColor()
		}
		log = newLogger(flagLogLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to workbench directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "scoring service URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError — exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("TASKBENCH_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error — wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}

// defaultHomeDir returns the path to ~/.config/taskbench.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config/taskbench"), nil
}

// resolveDir returns the absolute path to the workbench directory.
// Falls back to ~/.config/taskbench if no workbench is found in the
// current directory tree.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	return defaultHomeDir()
}

// loadConfig finds and loads the workbench config. If the resolved
// directory is ~/.config/taskbench and it doesn't exist yet, it is
// auto-created with defaults.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		applyServerFlag(cfg)
		return cfg, nil
	}

	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		return nil, err
	}

	cfg, err = config.Init(homeDir)
	if err != nil {
		return nil, err
	}
	applyServerFlag(cfg)
	return cfg, nil
}

// applyServerFlag lets --server or TASKBENCH_SERVER override the
// configured scoring service URL for this invocation.
func applyServerFlag(cfg *config.Config) {
	if flagServer != "" {
		cfg.Server.URL = flagServer
		return
	}
	if env := os.Getenv("TASKBENCH_SERVER"); env != "" {
		cfg.Server.URL = env
	}
}

// newClient builds the scoring-service client from the config.
func newClient(cfg *config.Config) *analyze.Client {
	return analyze.New(cfg.Server.URL, cfg.TimeoutDuration(), log)
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// mutateWorkingSet loads the working set, applies fn, and writes the
// result back, all under the workbench lock so concurrent invocations
// cannot interleave their read-modify-write cycles.
func mutateWorkingSet(cfg *config.Config, fn func(*store.Session) error) error {
	unlock, err := filelock.Lock(cfg.LockPath())
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit

	tasks, err := store.LoadFile(cfg.TasksPath())
	if err != nil {
		return err
	}

	session := store.NewWith(tasks)
	if err := fn(session); err != nil {
		return err
	}

	return store.SaveFile(cfg.TasksPath(), session.Snapshot())
}

// loadWorkingSet reads the working set without taking the lock.
func loadWorkingSet(cfg *config.Config) ([]task.Task, error) {
	return store.LoadFile(cfg.TasksPath())
}
