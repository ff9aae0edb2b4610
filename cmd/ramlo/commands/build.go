package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ramlo/ramlo"
	"github.com/ramlo/ramlo/internal/fileutil"
	"github.com/ramlo/ramlo/viewmodel"
)

// BuildFlags contains flags for the build command
type BuildFlags struct {
	Output     string
	Format     string
	Indent     int
	Config     string
	NoMarkdown bool
	Quiet      bool
	Verbose    bool
}

// SetupBuildFlags creates and configures a FlagSet for the build command.
// Returns the FlagSet and a BuildFlags struct with bound flag variables.
func SetupBuildFlags() (*flag.FlagSet, *BuildFlags) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	flags := &BuildFlags{Indent: -1}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default from config: json)")
	fs.IntVar(&flags.Indent, "indent", -1, "JSON indentation width, 0 for compact output (default from config: 2)")
	fs.StringVar(&flags.Config, "config", "", "path to a ramlo YAML config file")
	fs.BoolVar(&flags.NoMarkdown, "no-markdown", false, "keep descriptions as Markdown instead of rendering HTML")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the view model, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the view model, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log debug messages to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: ramlo build [flags] <file|->\n\n")
		Writef(output, "Build the documentation view model of a RAML 1.0 API.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  ramlo build api.raml\n")
		Writef(output, "  ramlo build --format yaml -o model.yaml api.raml\n")
		Writef(output, "  cat api.raml | ramlo build -q -\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    View model built (warnings are printed to stderr)\n")
		Writef(output, "  1    The input is not a correct RAML file or the flags are invalid\n")
	}

	return fs, flags
}

// HandleBuild executes the build command
func HandleBuild(args []string) error {
	fs, flags := SetupBuildFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("build command requires exactly one file path or '-' for stdin")
	}
	specPath := fs.Arg(0)

	cfg, err := loadConfig(flags.Config)
	if err != nil {
		return err
	}
	format := cfg.Output.Format
	if flags.Format != "" {
		format = flags.Format
	}
	if err := ValidateOutputFormat(format); err != nil {
		return err
	}
	indent := cfg.Output.Indent
	if flags.Indent >= 0 {
		indent = flags.Indent
	}
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, []string{specPath}); err != nil {
			return err
		}
	}

	logger := newLogger(cfg, flags.Verbose)
	parsed, err := loadDocument(specPath, logger)
	if err != nil {
		return fmt.Errorf("loading %s: %w", FormatSpecPath(specPath), err)
	}

	result, err := viewmodel.BuildWithOptions(
		viewmodel.WithParsed(parsed),
		viewmodel.WithLogger(logger),
		viewmodel.WithMarkdown(cfg.Markdown.Enabled && !flags.NoMarkdown),
	)
	if err != nil {
		return fmt.Errorf("building %s: %w", FormatSpecPath(specPath), err)
	}

	if !flags.Quiet {
		Writef(os.Stderr, "ramlo version: %s\n", ramlo.Version())
		Writef(os.Stderr, "Source: %s\n", FormatSpecPath(specPath))
		Writef(os.Stderr, "Resources: %d\n", result.Stats.ResourceCount)
		Writef(os.Stderr, "Endpoints: %d\n", result.Stats.EndpointCount)
		Writef(os.Stderr, "Types: %d\n", result.Stats.TypeCount)
		Writef(os.Stderr, "Build Time: %v\n", result.BuildTime)
		if result.HasWarnings() {
			Writef(os.Stderr, "\nWarnings:\n")
			for _, w := range result.Warnings {
				Writef(os.Stderr, "  - %s\n", w)
			}
		}
		Writef(os.Stderr, "\n")
	}

	data, err := MarshalStructured(result.Document, format, indent)
	if err != nil {
		return err
	}
	if flags.Output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flags.Output, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if !flags.Quiet {
		Writef(os.Stderr, "Output written to: %s\n", flags.Output)
	}
	return nil
}
