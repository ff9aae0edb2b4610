package viewmodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ramlo/ramlo/internal/markdown"
	"github.com/ramlo/ramlo/raml"
	"github.com/ramlo/ramlo/ramlerrors"
)

// MarkdownRenderer converts a Markdown description into the text stored in
// the view model, usually HTML.
type MarkdownRenderer func(text string) string

// Builder turns RAML documents into documentation view models.
//
// A Builder holds configuration only. Every Build call works on its own state
// and returns a new Result, so one Builder may be shared across goroutines.
type Builder struct {
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger raml.Logger
	// Markdown renders descriptions. If nil, markdown.ToHTML is used.
	Markdown MarkdownRenderer
}

// New creates a new Builder instance with default settings
func New() *Builder {
	return &Builder{}
}

// Stats summarises the size of a built view model.
type Stats struct {
	ResourceCount       int `json:"resourceCount" yaml:"resourceCount"`
	EndpointCount       int `json:"endpointCount" yaml:"endpointCount"`
	TypeCount           int `json:"typeCount" yaml:"typeCount"`
	SecuritySchemeCount int `json:"securitySchemeCount" yaml:"securitySchemeCount"`
}

// Result contains a view model and build metadata.
type Result struct {
	// Document is the view model
	Document *APIDocument
	// Warnings lists information the view model could not represent, such as
	// unresolved type references or invalid JSON schemas
	Warnings []string
	// Stats summarises the view model
	Stats Stats
	// SourcePath is the path of the RAML source, when known
	SourcePath string
	// BuildTime is the time taken to build the view model (loading excluded)
	BuildTime time.Duration
}

// HasWarnings returns true if the build recorded any warnings
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func (b *Builder) log() raml.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return raml.NopLogger{}
}

func (b *Builder) renderer() MarkdownRenderer {
	if b.Markdown != nil {
		return b.Markdown
	}
	return markdown.ToHTML
}

// buildState is the per-call state of one Build.
type buildState struct {
	log      raml.Logger
	markdown MarkdownRenderer
	doc      *raml.Document
	registry *typeRegistry
	warnings []string
	warned   map[string]bool
}

// warn records a warning once per build.
func (st *buildState) warn(msg string) {
	if st.warned[msg] {
		return
	}
	st.warned[msg] = true
	st.warnings = append(st.warnings, msg)
	st.log.Warn(msg)
}

func (st *buildState) warnf(format string, args ...any) {
	st.warn(fmt.Sprintf(format, args...))
}

// Build produces the view model of doc.
//
// Build fails only when doc is nil or cannot be serialised; the error is a
// *ramlerrors.ParseError. Every other gap degrades to an empty value and is
// reported in Result.Warnings.
func (b *Builder) Build(doc *raml.Document) (*Result, error) {
	start := time.Now()
	if doc == nil {
		return nil, &ramlerrors.ParseError{Message: "not a correct RAML file", Cause: errors.New("nil document")}
	}
	if _, err := json.Marshal(doc.Raw); err != nil {
		return nil, &ramlerrors.ParseError{Message: "not a correct RAML file", Cause: err}
	}

	st := &buildState{
		log:      b.log(),
		markdown: b.renderer(),
		doc:      doc,
		warned:   make(map[string]bool),
	}
	st.registry = newTypeRegistry(doc)

	api := &APIDocument{
		Title:             doc.Title,
		RAMLVersion:       doc.RAMLVersion,
		Version:           doc.Version,
		Protocol:          protocolSummary(doc.Protocols),
		BaseURI:           baseURI(doc),
		BaseURIParameters: baseURIParameters(doc),
		Description:       st.html(doc.Description),
		Documentations:    st.documentations(doc),
		SecuritySchemes:   securitySchemes(doc),
		SecuredBy:         securedBy(doc),
	}
	api.AllTypes, api.TypeNames = allTypes(doc)
	api.AllSchemas = st.allSchemas(doc)
	api.Resources = st.resources(doc)

	result := &Result{
		Document: api,
		Warnings: st.warnings,
		Stats: Stats{
			ResourceCount:       len(api.Resources),
			TypeCount:           len(api.TypeNames),
			SecuritySchemeCount: len(api.SecuritySchemes),
		},
		BuildTime: time.Since(start),
	}
	for _, res := range api.Resources {
		result.Stats.EndpointCount += len(res.Endpoints)
	}
	b.log().Debug("built view model",
		"resources", result.Stats.ResourceCount,
		"endpoints", result.Stats.EndpointCount,
		"warnings", len(result.Warnings))
	return result, nil
}

// html renders a Markdown description, mapping absent text to "".
func (st *buildState) html(text string) string {
	if text == "" {
		return ""
	}
	return st.markdown(text)
}
