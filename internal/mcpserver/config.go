package mcpserver

import (
	"time"

	"github.com/ramlo/ramlo/internal/config"
)

// serverConfig holds all configurable MCP server defaults.
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// List tool defaults.
	ListLimit int
	MaxLimit  int

	// Input limits.
	MaxInlineSize int64

	// Build tool defaults.
	Markdown bool
}

// cfg is the active server configuration. It starts from the built-in
// defaults and is replaced by Configure before the server runs.
var cfg = fromConfig(config.Default())

// fromConfig maps the application configuration onto server settings.
func fromConfig(c *config.Config) *serverConfig {
	return &serverConfig{
		CacheEnabled:       c.MCP.CacheEnabled,
		CacheMaxSize:       c.MCP.CacheMaxSize,
		CacheFileTTL:       c.MCP.CacheTTL,
		CacheContentTTL:    c.MCP.CacheTTL,
		CacheSweepInterval: c.MCP.CacheSweepInterval,
		ListLimit:          c.MCP.ListLimit,
		MaxLimit:           c.MCP.MaxLimit,
		MaxInlineSize:      c.MCP.MaxInlineSize,
		Markdown:           c.Markdown.Enabled,
	}
}

// Configure applies c to the server. It must be called before Run.
func Configure(c *config.Config) {
	if c == nil {
		return
	}
	cfg = fromConfig(c)
	specCache.resize(cfg.CacheMaxSize)
}
