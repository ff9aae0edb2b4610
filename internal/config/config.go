// Package config loads the ramlo application configuration used by the
// command line and the MCP server.
//
// Values come, in increasing priority, from built-in defaults, an optional
// YAML config file and RAMLO_* environment variables (for example
// RAMLO_OUTPUT_FORMAT=yaml or RAMLO_MCP_CACHE_TTL=5m).
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ramlo/ramlo/ramlerrors"
)

// EnvPrefix is the prefix of environment variables overriding config keys.
const EnvPrefix = "RAMLO"

// Config represents the application configuration
type Config struct {
	Output   OutputConfig   `mapstructure:"output"`
	Markdown MarkdownConfig `mapstructure:"markdown"`
	Log      LogConfig      `mapstructure:"log"`
	MCP      MCPConfig      `mapstructure:"mcp"`
}

// OutputConfig controls how view models are written
type OutputConfig struct {
	Format string `mapstructure:"format"` // json or yaml
	Indent int    `mapstructure:"indent"` // spaces per level, 0 for compact JSON
}

// MarkdownConfig controls description rendering
type MarkdownConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LogConfig controls the structured logger
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn or error
	Format string `mapstructure:"format"` // text or json
}

// MCPConfig holds the MCP server defaults
type MCPConfig struct {
	CacheEnabled       bool          `mapstructure:"cache_enabled"`
	CacheMaxSize       int           `mapstructure:"cache_max_size"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
	CacheSweepInterval time.Duration `mapstructure:"cache_sweep_interval"`
	ListLimit          int           `mapstructure:"list_limit"`
	MaxLimit           int           `mapstructure:"max_limit"`
	MaxInlineSize      int64         `mapstructure:"max_inline_size"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return cfg
}

// Load reads the configuration. An empty path uses defaults and environment
// variables only; a non-empty path must name a readable YAML file.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, &ramlerrors.ConfigError{Option: "config", Value: path, Message: "failed to read config file", Cause: err}
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("output.format", "json")
	v.SetDefault("output.indent", 2)

	v.SetDefault("markdown.enabled", true)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("mcp.cache_enabled", true)
	v.SetDefault("mcp.cache_max_size", 10)
	v.SetDefault("mcp.cache_ttl", 15*time.Minute)
	v.SetDefault("mcp.cache_sweep_interval", 60*time.Second)
	v.SetDefault("mcp.list_limit", 100)
	v.SetDefault("mcp.max_limit", 1000)
	v.SetDefault("mcp.max_inline_size", int64(10*1024*1024))
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ramlerrors.ConfigError{Option: "config", Message: "failed to decode configuration", Cause: err}
	}
	return &cfg, nil
}

// Validate checks enumerated and numeric settings.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "json", "yaml":
	default:
		return &ramlerrors.ConfigError{Option: "output.format", Value: c.Output.Format, Message: "must be json or yaml"}
	}
	if c.Output.Indent < 0 {
		return &ramlerrors.ConfigError{Option: "output.indent", Value: c.Output.Indent, Message: "must not be negative"}
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return &ramlerrors.ConfigError{Option: "log.level", Value: c.Log.Level, Message: err.Error()}
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return &ramlerrors.ConfigError{Option: "log.format", Value: c.Log.Format, Message: "must be text or json"}
	}
	if c.MCP.CacheMaxSize <= 0 {
		return &ramlerrors.ConfigError{Option: "mcp.cache_max_size", Value: c.MCP.CacheMaxSize, Message: "must be positive"}
	}
	if c.MCP.CacheTTL <= 0 {
		return &ramlerrors.ConfigError{Option: "mcp.cache_ttl", Value: c.MCP.CacheTTL, Message: "must be positive"}
	}
	if c.MCP.ListLimit <= 0 || c.MCP.MaxLimit < c.MCP.ListLimit {
		return &ramlerrors.ConfigError{Option: "mcp.list_limit", Value: c.MCP.ListLimit, Message: "must be positive and not exceed mcp.max_limit"}
	}
	if c.MCP.MaxInlineSize <= 0 {
		return &ramlerrors.ConfigError{Option: "mcp.max_inline_size", Value: c.MCP.MaxInlineSize, Message: "must be positive"}
	}
	return nil
}

// NewLogger builds an slog logger writing to w with the configured level and
// format.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
