// Package config loads codereview settings from the user config file, a .env
// file and the process environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/irahardianto/codereview/internal/engine/llm"
	"github.com/irahardianto/codereview/internal/platform/logger"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvAPIKey  = "GEMINI_API_KEY"
	EnvModel   = "CODEREVIEW_MODEL"
	EnvTimeout = "CODEREVIEW_TIMEOUT"
	EnvNoColor = "CODEREVIEW_NO_COLOR"
	EnvAddr    = "CODEREVIEW_ADDR"
)

const (
	defaultRequestTimeout = 2 * time.Minute
	defaultAddr           = ":8080"
)

// Config holds user-level settings.
type Config struct {
	GeminiAPIKey   SecretString  `yaml:"gemini_api_key"`
	Model          string        `yaml:"model"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Server         ServerConfig  `yaml:"server"`
	Output         OutputConfig  `yaml:"output"`
	OutputColor    bool          `yaml:"-"` // derived from Output.Color
	OutputVerbose  bool          `yaml:"-"` // derived from Output.Verbose
}

// ServerConfig holds settings for the HTTP shell.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// OutputConfig holds output-related user preferences.
type OutputConfig struct {
	Color   *bool `yaml:"color"`
	Verbose *bool `yaml:"verbose"`
}

// Loader handles loading configuration from the file system.
type Loader struct {
	fs     FileSystem
	getenv func(string) string
}

// NewLoader creates a new Loader with the given file system.
// Uses os.Getenv for environment variable lookups by default.
func NewLoader(fs FileSystem) *Loader {
	return &Loader{fs: fs, getenv: os.Getenv}
}

// NewLoaderWithEnv creates a Loader with a custom getenv function for testability.
func NewLoaderWithEnv(fs FileSystem, getenv func(string) string) *Loader {
	return &Loader{fs: fs, getenv: getenv}
}

// DefaultPath returns ~/.config/codereview/config.yaml.
func (l *Loader) DefaultPath() (string, error) {
	home, err := l.fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, ".config", "codereview", "config.yaml"), nil
}

// Load reads configuration from the default path.
// If the home directory cannot be determined, defaults plus environment are used.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	path, err := l.DefaultPath()
	if err != nil {
		cfg := defaultConfig()
		applyEnvOverrides(cfg, l.getenv, logger.FromContext(ctx))
		return cfg, nil
	}
	return l.LoadFrom(ctx, path)
}

// LoadFrom reads configuration from a specific path.
// If the file does not exist, default values are returned (not an error).
// Environment variables override file values.
func (l *Loader) LoadFrom(ctx context.Context, path string) (*Config, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading config", "path", path)
	cfg := defaultConfig()

	// [SEC] Clean path
	path = filepath.Clean(path)

	data, err := l.fs.ReadFile(path)
	if err != nil && !l.fs.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if cfg.Output.Color != nil {
		cfg.OutputColor = *cfg.Output.Color
	}
	if cfg.Output.Verbose != nil {
		cfg.OutputVerbose = *cfg.Output.Verbose
	}

	applyEnvOverrides(cfg, l.getenv, log)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration from the default path using the real file system.
func Load(ctx context.Context) (*Config, error) {
	return NewLoader(&RealFileSystem{}).Load(ctx)
}

// LoadFrom reads configuration from a specific path using the real file system.
func LoadFrom(ctx context.Context, path string) (*Config, error) {
	return NewLoader(&RealFileSystem{}).LoadFrom(ctx, path)
}

func defaultConfig() *Config {
	return &Config{
		Model:          llm.DefaultModel,
		RequestTimeout: defaultRequestTimeout,
		Server:         ServerConfig{Addr: defaultAddr},
		OutputColor:    true,
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
// The getenv parameter abstracts os.Getenv for testability.
func applyEnvOverrides(cfg *Config, getenv func(string) string, log *slog.Logger) {
	if key := getenv(EnvAPIKey); key != "" {
		cfg.GeminiAPIKey = SecretString(strings.TrimSpace(key))
	}

	if model := getenv(EnvModel); model != "" {
		cfg.Model = model
	}

	if timeout := getenv(EnvTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			log.Warn("invalid "+EnvTimeout+" value, using default", "value", timeout, "error", err)
		} else {
			cfg.RequestTimeout = d
		}
	}

	if addr := getenv(EnvAddr); addr != "" {
		cfg.Server.Addr = addr
	}

	if isTruthy(getenv(EnvNoColor)) || getenv("NO_COLOR") != "" {
		cfg.OutputColor = false
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// validate checks field values. Returns a joined error so users can fix all at once.
func validate(cfg *Config) error {
	var errs []error
	if strings.TrimSpace(cfg.Model) == "" {
		errs = append(errs, errors.New("model must not be empty"))
	} else if strings.ContainsAny(cfg.Model, " \t\n") {
		errs = append(errs, fmt.Errorf("model %q must not contain whitespace", cfg.Model))
	}
	if cfg.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request_timeout must not be negative, got %v", cfg.RequestTimeout))
	}
	if cfg.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	return errors.Join(errs...)
}
