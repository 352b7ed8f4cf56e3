package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/qlsh/quick-launcher/internal/app"
)

// Config captures runtime configuration for the launcher.
type Config struct {
	App         app.Config
	Logging     Logging
	ShowVersion bool
	Flags       map[string]string
	Args        []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envDataDir = "QL_DATA_DIR"
	envWidth   = "QL_WIDTH"
	envHeight  = "QL_HEIGHT"
	envFooter  = "QL_FOOTER"
	envPreview = "QL_PREVIEW"
	envVerbose = "QL_VERBOSE"
	envTrace   = "QL_TRACE"
	envLogFile = "QL_LOG_FILE"
	envConfig  = "QL_CONFIG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// settings file, then environment, then flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	settings := loadSettings(settingsPath(env))

	fs := flag.NewFlagSet("ql", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	dataDir := fs.String("data-dir", envOrDefault(env, envDataDir, settings.stringOr("data_dir", defaultDataDir(env))), "directory holding entries and usage statistics")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envFooter, settings.boolOr("footer", false)), "enable the footer hint row")
	preview := fs.Bool("preview", envOrBool(env, envPreview, settings.boolOr("preview", true)), "start with the entry preview visible")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	dryRun := fs.Bool("dry-run", false, "resolve and print the command without spawning anything (direct mode)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, settings.stringOr("log_file", "")), "path to the log file")
	version := fs.Bool("version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	logPath := *logFile
	if strings.TrimSpace(logPath) == "" {
		logPath = filepath.Join(*dataDir, "quick-launcher.log")
	}

	cfg := Config{
		App: app.Config{
			DataDir:        *dataDir,
			Width:          *width,
			Height:         *height,
			ShowFooter:     *footer,
			Preview:        *preview,
			Verbose:        *verbose,
			DryRun:         *dryRun,
			DangerPatterns: settings.DangerPatterns,
		},
		Logging: Logging{
			FilePath: logPath,
			Trace:    *trace,
		},
		ShowVersion: *version,
		Flags: map[string]string{
			"dataDir": *dataDir,
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"footer":  strconv.FormatBool(*footer),
			"preview": strconv.FormatBool(*preview),
			"verbose": strconv.FormatBool(*verbose),
			"dryRun":  strconv.FormatBool(*dryRun),
			"trace":   strconv.FormatBool(*trace),
			"logFile": logPath,
		},
		Args: append([]string(nil), fs.Args()...),
	}

	return cfg, nil
}

const usageText = `Usage: ql [flags] [alias]

Run without arguments to open the interactive launcher. Pass an alias to
execute that entry directly.

Flags:
  -data-dir DIR   directory holding entries and usage statistics
  -width N        desired viewport width in cells (0 uses terminal width)
  -height N       desired viewport height in rows (0 uses terminal height)
  -footer         enable the footer hint row
  -preview        start with the entry preview visible (default true)
  -verbose        print success messages for actions
  -dry-run        resolve and print the command without spawning (direct mode)
  -trace          enable verbose JSON trace logging
  -log-file PATH  path to the log file
  -version        print the version and exit
`

// MustLoad returns configuration or exits. Help requests print usage and
// exit cleanly.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Print(usageText)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.DataDir) == "" {
		return fmt.Errorf("data directory must not be empty")
	}
	if len(cfg.Args) > 1 {
		return fmt.Errorf("at most one alias argument is accepted (got %d)", len(cfg.Args))
	}
	return nil
}

func defaultDataDir(env map[string]string) string {
	base := env["XDG_DATA_HOME"]
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ".quick-launcher"
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "quick-launcher")
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
