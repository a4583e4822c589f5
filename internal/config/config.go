package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvBank         = "QUIZDECK_BANK"
	EnvDB           = "QUIZDECK_DB"
	EnvLogFile      = "QUIZDECK_LOG_FILE"
	EnvLogLevel     = "QUIZDECK_LOG_LEVEL"
	EnvFetchTimeout = "QUIZDECK_FETCH_TIMEOUT"
)

// DefaultBank is the question bank used when none is configured.
const DefaultBank = "questions.json"

// Duration is a time.Duration that decodes from a Go duration string.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds the settings shared by every command.
type Config struct {
	Bank         string   `toml:"bank"`
	DB           string   `toml:"db"`
	LogFile      string   `toml:"log_file"`
	LogLevel     string   `toml:"log_level"`
	FetchTimeout Duration `toml:"fetch_timeout"`
}

// Default returns the built-in configuration. An empty DB or LogFile means
// "use the platform default".
func Default() Config {
	return Config{
		Bank:         DefaultBank,
		LogLevel:     "info",
		FetchTimeout: Duration{10 * time.Second},
	}
}

// DefaultPath returns the config file location, honouring
// XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "quizdeck", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "quizdeck", "config.toml"), nil
}

// Load builds a Config from the defaults, the TOML file at path, a .env
// file in the working directory and the environment, in that order. A
// missing file is not an error when path is the default location.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return cfg, err
			}
		}
	}

	// .env values never override variables already set in the process.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks settings that cannot be caught by decoding.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Bank) == "" {
		return errors.New("bank must not be empty")
	}
	if c.FetchTimeout.Duration <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	return nil
}

func decodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return fmt.Errorf("read config %s: unknown key %q", path, undec[0].String())
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvBank); ok && v != "" {
		cfg.Bank = v
	}
	if v, ok := os.LookupEnv(EnvDB); ok && v != "" {
		cfg.DB = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok && v != "" {
		cfg.LogFile = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvFetchTimeout); ok && v != "" {
		if err := cfg.FetchTimeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvFetchTimeout, err)
		}
	}
	return nil
}
