package viewmodel

import (
	"fmt"
	"io"

	"github.com/ramlo/ramlo/internal/markdown"
	"github.com/ramlo/ramlo/internal/options"
	"github.com/ramlo/ramlo/raml"
)

// Option is a function that configures a build operation
type Option func(*buildConfig) error

// buildConfig holds configuration for a build operation
type buildConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte
	document *raml.Document
	parsed   *raml.ParseResult

	baseDir  string
	logger   raml.Logger
	markdown MarkdownRenderer
}

// BuildWithOptions loads a RAML document if needed and builds its view model
// using functional options.
//
// Example:
//
//	result, err := viewmodel.BuildWithOptions(
//	    viewmodel.WithFilePath("api.raml"),
//	    viewmodel.WithMarkdown(false),
//	)
//
// Loader warnings are included in Result.Warnings ahead of build warnings.
func BuildWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("viewmodel: invalid options: %w", err)
	}

	parsed := cfg.parsed
	if cfg.document != nil {
		parsed = &raml.ParseResult{Document: cfg.document}
	}
	if parsed == nil {
		parseOpts := []raml.Option{raml.WithLogger(cfg.logger), raml.WithBaseDir(cfg.baseDir)}
		switch {
		case cfg.filePath != nil:
			parseOpts = append(parseOpts, raml.WithFilePath(*cfg.filePath))
		case cfg.reader != nil:
			parseOpts = append(parseOpts, raml.WithReader(cfg.reader))
		default:
			parseOpts = append(parseOpts, raml.WithBytes(cfg.bytes))
		}
		parsed, err = raml.ParseWithOptions(parseOpts...)
		if err != nil {
			return nil, err
		}
	}

	b := &Builder{Logger: cfg.logger, Markdown: cfg.markdown}
	result, err := b.Build(parsed.Document)
	if err != nil {
		return nil, err
	}
	result.SourcePath = parsed.SourcePath
	if len(parsed.Warnings) > 0 {
		result.Warnings = append(append([]string{}, parsed.Warnings...), result.Warnings...)
	}
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*buildConfig, error) {
	cfg := &buildConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"viewmodel: must specify an input source (use WithFilePath, WithReader, WithBytes, WithDocument or WithParsed)",
		"viewmodel: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil, cfg.document != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a RAML file as the input source
func WithFilePath(path string) Option {
	return func(cfg *buildConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *buildConfig) error {
		if r == nil {
			return fmt.Errorf("viewmodel: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *buildConfig) error {
		if data == nil {
			return fmt.Errorf("viewmodel: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithDocument specifies an already loaded document as the input source
func WithDocument(doc *raml.Document) Option {
	return func(cfg *buildConfig) error {
		if doc == nil {
			return fmt.Errorf("viewmodel: document cannot be nil")
		}
		cfg.document = doc
		return nil
	}
}

// WithParsed specifies a loader result as the input source. Its warnings and
// source path are carried into the build result.
func WithParsed(result *raml.ParseResult) Option {
	return func(cfg *buildConfig) error {
		if result == nil {
			return fmt.Errorf("viewmodel: parse result cannot be nil")
		}
		cfg.parsed = result
		return nil
	}
}

// WithBaseDir sets the directory includes and libraries are resolved against
// when loading from a reader or bytes.
func WithBaseDir(dir string) Option {
	return func(cfg *buildConfig) error {
		cfg.baseDir = dir
		return nil
	}
}

// WithLogger sets a structured logger used by both the loader and the builder.
// By default, no logging is performed.
func WithLogger(l raml.Logger) Option {
	return func(cfg *buildConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMarkdown enables or disables Markdown-to-HTML rendering of descriptions.
// Default: true
func WithMarkdown(enabled bool) Option {
	return func(cfg *buildConfig) error {
		if enabled {
			cfg.markdown = markdown.ToHTML
		} else {
			cfg.markdown = markdown.Passthrough
		}
		return nil
	}
}

// WithMarkdownRenderer sets a custom description renderer.
func WithMarkdownRenderer(render MarkdownRenderer) Option {
	return func(cfg *buildConfig) error {
		if render == nil {
			return fmt.Errorf("viewmodel: markdown renderer cannot be nil")
		}
		cfg.markdown = render
		return nil
	}
}
