// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes ramlo capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ramlo/ramlo"
)

const serverInstructions = `ramlo MCP server: builds documentation view models from RAML 1.0 API descriptions and lists their resources, endpoints and types.

Configuration: defaults come from the ramlo config file (--config) and RAMLO_* environment variables set in your MCP client config.

Key settings:
- RAMLO_MCP_CACHE_TTL (default: 15m): cache TTL for loaded documents
- RAMLO_MCP_CACHE_ENABLED (default: true): disable document caching entirely
- RAMLO_MCP_LIST_LIMIT (default: 100): default result limit for list tools
- RAMLO_MARKDOWN_ENABLED (default: true): render descriptions to HTML in build

Caching: loaded documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "ramlo", Version: ramlo.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "build",
		Description: "Build the documentation view model of a RAML 1.0 API: metadata, resources with flattened endpoints, parameter tables, response examples, types, schemas and security schemes. Returns a summary with warnings by default; use full=true to include the whole view model. Markdown rendering defaults to RAMLO_MARKDOWN_ENABLED.",
	}, handleBuild)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_resources",
		Description: "List the top-level resources of a RAML 1.0 API with their display names and the number of endpoints in each subtree. Use offset/limit to paginate.",
	}, handleListResources)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_endpoints",
		Description: "List the endpoints (method + complete URI) of a RAML 1.0 API in depth-first order. Filter by method or URI pattern; * matches one path segment and ** any number of segments. Use group_by=method to get counts instead of items. Default limit is configurable via RAMLO_MCP_LIST_LIMIT.",
	}, handleListEndpoints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_types",
		Description: "List the named types of a RAML 1.0 API: root types, root schemas and library types qualified by their alias (lib.Name). Filter by library alias or name glob. Use group_by=library to get counts per library.",
	}, handleListTypes)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is one of the allowed values.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call this once before a filter loop so matchGlobName never encounters an
// invalid pattern at match time.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchGlobName reports whether name matches pattern. Patterns without glob
// characters match exactly.
func matchGlobName(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return name == pattern
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}
