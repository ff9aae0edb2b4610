package walker

import (
	"context"
	"fmt"

	"github.com/ramlo/ramlo/internal/options"
	"github.com/ramlo/ramlo/raml"
)

// WithFilePath specifies a RAML file to load and walk.
func WithFilePath(path string) Option {
	return func(w *Walker) {
		w.filePath = &path
	}
}

// WithParsed specifies a loaded result to walk.
func WithParsed(result *raml.ParseResult) Option {
	return func(w *Walker) {
		w.parsed = result
	}
}

// WithDocument specifies a document to walk.
func WithDocument(doc *raml.Document) Option {
	return func(w *Walker) {
		w.doc = doc
	}
}

// WithUserContext sets the context for cancellation and deadline propagation.
// The context is available to handlers via wc.Context().
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		if w.state == nil {
			w.state = &walkState{}
		}
		w.state.ctx = ctx
	}
}

// WalkWithOptions walks a document using functional options for input, handlers, and configuration.
//
// Example:
//
//	walker.WalkWithOptions(
//	    walker.WithFilePath("api.raml"),
//	    walker.WithMethodHandler(func(wc *walker.WalkContext, m *raml.Method) walker.Action {
//	        fmt.Println(m.Method, wc.URI)
//	        return walker.Continue
//	    }),
//	)
func WalkWithOptions(opts ...Option) error {
	w := New()
	for _, opt := range opts {
		opt(w)
	}

	if err := options.ValidateSingleInputSource(
		"walker: no input source specified: use WithFilePath, WithParsed or WithDocument",
		"walker: multiple input sources specified: use only one",
		w.filePath != nil, w.parsed != nil, w.doc != nil,
	); err != nil {
		return err
	}

	doc := w.doc
	switch {
	case w.parsed != nil:
		doc = w.parsed.Document
	case w.filePath != nil:
		result, err := raml.New().Parse(*w.filePath)
		if err != nil {
			return fmt.Errorf("walker: failed to parse: %w", err)
		}
		doc = result.Document
	}
	if doc == nil {
		return fmt.Errorf("walker: nil Document")
	}
	return w.walk(doc)
}
