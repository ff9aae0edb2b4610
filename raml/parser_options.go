package raml

import (
	"fmt"
	"io"

	"github.com/ramlo/ramlo/internal/options"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	baseDir string
	logger  Logger

	// Resource limits (0 means use default)
	maxFileSize     int64
	maxIncludeDepth int

	// Source identification
	sourceName *string
}

// ParseWithOptions loads a RAML 1.0 document using functional options.
// This provides a flexible, extensible API that combines input source selection
// and configuration in a single function call.
//
// Example:
//
//	result, err := raml.ParseWithOptions(
//	    raml.WithFilePath("api.raml"),
//	    raml.WithLogger(raml.NewSlogAdapter(slog.Default())),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("raml: invalid options: %w", err)
	}

	p := &Parser{
		BaseDir:         cfg.baseDir,
		Logger:          cfg.logger,
		MaxFileSize:     cfg.maxFileSize,
		MaxIncludeDepth: cfg.maxIncludeDepth,
	}

	var result *ParseResult
	var parseErr error
	switch {
	case cfg.filePath != nil:
		result, parseErr = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		result, parseErr = p.ParseReader(cfg.reader)
	case cfg.bytes != nil:
		result, parseErr = p.ParseBytes(cfg.bytes)
	default:
		return nil, fmt.Errorf("raml: no input source specified")
	}
	if parseErr != nil {
		return result, parseErr
	}

	if result != nil && cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"raml: must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		"raml: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("raml: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("raml: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithBaseDir sets the directory !include and uses paths are resolved against.
// It is mostly useful with WithReader and WithBytes; file inputs default to
// the file's own directory.
func WithBaseDir(dir string) Option {
	return func(cfg *parseConfig) error {
		cfg.baseDir = dir
		return nil
	}
}

// WithLogger sets a structured logger for debug output during parsing.
// By default, no logging is performed (nil logger).
//
// Use NewSlogAdapter to wrap a *slog.Logger.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxFileSize sets the maximum size in bytes of the document and of every
// included file. A value of 0 means use the default (10MB).
// Returns an error if size is negative.
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size < 0 {
			return fmt.Errorf("raml: maxFileSize cannot be negative")
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithMaxIncludeDepth sets the maximum nesting of !include chains.
// A value of 0 means use the default (16).
// Returns an error if depth is negative.
func WithMaxIncludeDepth(depth int) Option {
	return func(cfg *parseConfig) error {
		if depth < 0 {
			return fmt.Errorf("raml: maxIncludeDepth cannot be negative")
		}
		cfg.maxIncludeDepth = depth
		return nil
	}
}

// WithSourceName overrides SourcePath in the result. Useful with WithBytes and
// WithReader, whose default names are "ParseBytes.raml" and "ParseReader.raml".
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
