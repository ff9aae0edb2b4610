package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ramlo/ramlo/viewmodel"
)

// ResourcesFlags contains flags for the resources command
type ResourcesFlags struct {
	Config  string
	Verbose bool
}

// SetupResourcesFlags creates and configures a FlagSet for the resources command.
func SetupResourcesFlags() (*flag.FlagSet, *ResourcesFlags) {
	fs := flag.NewFlagSet("resources", flag.ContinueOnError)
	flags := &ResourcesFlags{}

	fs.StringVar(&flags.Config, "config", "", "path to a ramlo YAML config file")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log debug messages to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: ramlo resources [flags] <file|->\n\n")
		Writef(output, "Print the resources of a RAML 1.0 API and their endpoints.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  ramlo resources api.raml\n")
	}

	return fs, flags
}

// HandleResources executes the resources command
func HandleResources(args []string) error {
	fs, flags := SetupResourcesFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("resources command requires exactly one file path or '-' for stdin")
	}
	specPath := fs.Arg(0)

	cfg, err := loadConfig(flags.Config)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, flags.Verbose)
	parsed, err := loadDocument(specPath, logger)
	if err != nil {
		return fmt.Errorf("loading %s: %w", FormatSpecPath(specPath), err)
	}

	result, err := viewmodel.BuildWithOptions(
		viewmodel.WithParsed(parsed),
		viewmodel.WithLogger(logger),
		viewmodel.WithMarkdown(false),
	)
	if err != nil {
		return fmt.Errorf("building %s: %w", FormatSpecPath(specPath), err)
	}

	WriteResources(os.Stdout, result.Document)
	return nil
}

// WriteResources prints one block per resource: its name and URI followed by
// its endpoints.
func WriteResources(w io.Writer, api *viewmodel.APIDocument) {
	Writef(w, "%s", api.Title)
	if api.Version != "" {
		Writef(w, " (%s)", api.Version)
	}
	Writef(w, "\n")
	if api.BaseURI != "" {
		Writef(w, "%s\n", api.BaseURI)
	}
	for _, res := range api.Resources {
		Writef(w, "\n%s  %s\n", res.Name, res.URI)
		for _, e := range res.Endpoints {
			Writef(w, "  %-7s %s", strings.ToUpper(e.Method), e.URI)
			if e.SecuredBy != "" {
				Writef(w, "  [%s]", e.SecuredBy)
			}
			Writef(w, "\n")
		}
	}
}
