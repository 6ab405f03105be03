package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config represents the weightlens configuration.
type Config struct {
	Threshold         float64      `json:"threshold"`
	Format            string       `json:"format"`
	FailOnSignificant bool         `json:"failOnSignificant"`
	GitHub            GitHubConfig `json:"github"`
}

// GitHubConfig controls how PR diffs are fetched.
type GitHubConfig struct {
	APIURL string `json:"apiUrl,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Threshold: 50.0,
		Format:    "text",
	}
}

// ConfigDir returns the platform-appropriate config directory for weightlens.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "weightlens"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "weightlens"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "weightlens"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "weightlens"), nil
	default:
		return filepath.Join(home, ".config", "weightlens"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and
// nil error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Threshold > 0 {
		dst.Threshold = src.Threshold
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	// JSON zero value for bool is false, so an unset field and an
	// explicit false merge the same way.
	dst.FailOnSignificant = src.FailOnSignificant || dst.FailOnSignificant
	if src.GitHub.APIURL != "" {
		dst.GitHub.APIURL = src.GitHub.APIURL
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("WEIGHTLENS_THRESHOLD"); v != "" {
		// 0 is a valid explicit threshold (flag every change).
		if t, err := strconv.ParseFloat(v, 64); err == nil && t >= 0 {
			cfg.Threshold = t
		}
	}
	if v := os.Getenv("WEIGHTLENS_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("WEIGHTLENS_FAIL_ON_SIGNIFICANT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.FailOnSignificant = b
		}
	}
	if v := os.Getenv("WEIGHTLENS_GITHUB_API_URL"); v != "" {
		cfg.GitHub.APIURL = v
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["threshold"]; ok && v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil && t >= 0 {
			cfg.Threshold = t
		}
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["failOnSignificant"]; ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.FailOnSignificant = b
		}
	}
}

// SetField sets a single config field by key name. Returns error if
// key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "threshold":
		t, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("threshold must be a number: %w", err)
		}
		cfg.Threshold = t
	case "format":
		cfg.Format = value
	case "failOnSignificant":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("failOnSignificant must be a boolean: %w", err)
		}
		cfg.FailOnSignificant = b
	case "github.apiUrl":
		cfg.GitHub.APIURL = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
