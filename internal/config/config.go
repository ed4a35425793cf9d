// Package config loads settings for the sentiment service and CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Lexicon LexiconConfig `yaml:"lexicon"`
	Demo    DemoConfig    `yaml:"demo"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadBodyMaxBytes  int64         `yaml:"read_body_max_bytes"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

type LexiconConfig struct {
	// Path to a JSON or YAML file merged onto the built-in lexicon. Empty
	// means the built-in lexicon only.
	Path string `yaml:"path"`
}

type DemoConfig struct {
	// Delay paces responses for interactive demos. Zero disables it.
	Delay time.Duration `yaml:"delay"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadBodyMaxBytes:  64 << 10,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Server.Addr = getenvDefault("SENTIMENT_HTTP_ADDR", cfg.Server.Addr)
	cfg.Lexicon.Path = getenvDefault("SENTIMENT_LEXICON", cfg.Lexicon.Path)
	cfg.Log.Level = getenvDefault("SENTIMENT_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getenvDefault("SENTIMENT_LOG_FORMAT", cfg.Log.Format)

	if v, ok := lookupEnv("SENTIMENT_DEMO_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: SENTIMENT_DEMO_DELAY: %v", ErrInvalidConfig, err)
		}
		cfg.Demo.Delay = d
	}
	if v, ok := lookupEnv("SENTIMENT_READ_BODY_MAX_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: SENTIMENT_READ_BODY_MAX_BYTES: %v", ErrInvalidConfig, err)
		}
		cfg.Server.ReadBodyMaxBytes = n
	}
	return nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidConfig)
	}
	if c.Server.ReadBodyMaxBytes <= 0 {
		return fmt.Errorf("%w: server.read_body_max_bytes must be positive", ErrInvalidConfig)
	}
	if c.Server.ReadHeaderTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: server timeouts must not be negative", ErrInvalidConfig)
	}
	if c.Demo.Delay < 0 {
		return fmt.Errorf("%w: demo.delay must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// SlogLevel maps Level to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	return lvl, nil
}

// NewLogger builds the logger described by l, writing to stderr.
func (l LogConfig) NewLogger() *slog.Logger {
	lvl, err := l.SlogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func getenvDefault(key, fallback string) string {
	if v, ok := lookupEnv(key); ok {
		return v
	}
	return fallback
}
