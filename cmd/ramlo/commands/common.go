// Package commands provides CLI command handlers for ramlo.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/ramlo/ramlo/internal/config"
	"github.com/ramlo/ramlo/raml"
	"github.com/ramlo/ramlo/ramlerrors"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// NotRAMLMessage is printed when the input cannot be loaded as RAML.
const NotRAMLMessage = "provided file is not a correct RAML file!"

// IsNotRAML reports whether err means the input could not be loaded or
// serialised as a RAML document.
func IsNotRAML(err error) bool {
	return errors.Is(err, ramlerrors.ErrParse) || errors.Is(err, ramlerrors.ErrInclude)
}

// ValidateOutputFormat validates a structured output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatJSON, FormatYAML)
	}
	return nil
}

// MarshalStructured marshals data as JSON or YAML. indent applies to JSON
// only; 0 produces compact JSON.
func MarshalStructured(data any, format string, indent int) ([]byte, error) {
	switch format {
	case FormatJSON:
		var out []byte
		var err error
		if indent > 0 {
			out, err = json.MarshalIndent(data, "", strings.Repeat(" ", indent))
		} else {
			out, err = json.Marshal(data)
		}
		if err != nil {
			return nil, fmt.Errorf("marshaling to %s: %w", format, err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshaling to %s: %w", format, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid format for structured output: %s", format)
	}
}

// OutputStructured writes data in the specified format (json or yaml) to w.
func OutputStructured(w io.Writer, data any, format string, indent int) error {
	out, err := MarshalStructured(data, format, indent)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// ValidateOutputPath checks if the output path is safe to write to
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	// Check if output file would overwrite any input files
	for _, inputPath := range inputPaths {
		if inputPath == StdinFilePath {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}
	return RejectSymlinkOutput(filepath.Clean(outputPath))
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		// Nothing to follow yet.
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// FormatSpecPath returns a display-friendly path for the RAML source.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// loadConfig loads the application configuration from path (may be empty).
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the structured logger for a command writing to stderr.
// verbose forces debug level.
func newLogger(cfg *config.Config, verbose bool) raml.Logger {
	logCfg := cfg.Log
	if verbose {
		logCfg.Level = "debug"
	}
	return raml.NewSlogAdapter(logCfg.NewLogger(os.Stderr))
}

// loadDocument loads a RAML document from a file or, for "-", from stdin.
func loadDocument(specPath string, logger raml.Logger) (*raml.ParseResult, error) {
	opts := []raml.Option{raml.WithLogger(logger)}
	if specPath == StdinFilePath {
		opts = append(opts, raml.WithReader(os.Stdin))
	} else {
		opts = append(opts, raml.WithFilePath(specPath))
	}
	return raml.ParseWithOptions(opts...)
}
