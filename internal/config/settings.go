package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/qlsh/quick-launcher/internal/logging"
)

// settings holds the optional YAML settings file. Everything in it is a
// default that flags and environment variables may override.
type settings struct {
	DataDir        string   `yaml:"data_dir"`
	LogFile        string   `yaml:"log_file"`
	Footer         *bool    `yaml:"footer"`
	Preview        *bool    `yaml:"preview"`
	DangerPatterns []string `yaml:"danger_patterns"`
}

func settingsPath(env map[string]string) string {
	if p, ok := env[envConfig]; ok && p != "" {
		return p
	}
	base := env["XDG_CONFIG_HOME"]
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "quick-launcher", "config.yaml")
}

// loadSettings reads the settings file if present. A malformed file is
// logged and treated as absent.
func loadSettings(path string) settings {
	var s settings
	if path == "" {
		return s
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		logging.Error(err)
		return settings{}
	}
	return s
}

func (s settings) stringOr(key, fallback string) string {
	switch key {
	case "data_dir":
		if s.DataDir != "" {
			return s.DataDir
		}
	case "log_file":
		if s.LogFile != "" {
			return s.LogFile
		}
	}
	return fallback
}

func (s settings) boolOr(key string, fallback bool) bool {
	switch key {
	case "footer":
		if s.Footer != nil {
			return *s.Footer
		}
	case "preview":
		if s.Preview != nil {
			return *s.Preview
		}
	}
	return fallback
}
