package walker

import (
	"fmt"

	"github.com/ramlo/ramlo/raml"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Parameter locations reported in WalkContext.In.
const (
	InBaseURI = "baseUri"
	InURI     = "uri"
	InQuery   = "query"
	InHeader  = "header"
)

// DocumentHandler is called once for the root document.
type DocumentHandler func(wc *WalkContext, doc *raml.Document) Action

// ResourceHandler is called for each resource, parents before children.
type ResourceHandler func(wc *WalkContext, res *raml.Resource) Action

// MethodHandler is called for each method declared on a resource.
type MethodHandler func(wc *WalkContext, m *raml.Method) Action

// ParameterHandler is called for base URI, URI and query parameters and for
// headers. WalkContext.In tells them apart.
type ParameterHandler func(wc *WalkContext, param *raml.TypeDeclaration) Action

// ResponseHandler is called for each response of a method.
type ResponseHandler func(wc *WalkContext, resp *raml.Response) Action

// TypeHandler is called for each root type and schema declaration, each
// library type, and recursively for their inline properties.
type TypeHandler func(wc *WalkContext, decl *raml.TypeDeclaration) Action

// Walker traverses RAML documents and calls handlers for each node type.
type Walker struct {
	onDocument  DocumentHandler
	onResource  ResourceHandler
	onMethod    MethodHandler
	onParameter ParameterHandler
	onResponse  ResponseHandler
	onType      TypeHandler

	maxDepth int

	// Input sources for WalkWithOptions
	filePath *string
	parsed   *raml.ParseResult
	doc      *raml.Document

	state   *walkState
	stopped bool
}

// New creates a new Walker with default settings.
func New() *Walker {
	return &Walker{
		maxDepth: 100,
	}
}

// Option configures the Walker.
type Option func(*Walker)

// WithDocumentHandler sets the handler for the root document.
func WithDocumentHandler(fn DocumentHandler) Option {
	return func(w *Walker) { w.onDocument = fn }
}

// WithResourceHandler sets the handler for resources.
func WithResourceHandler(fn ResourceHandler) Option {
	return func(w *Walker) { w.onResource = fn }
}

// WithMethodHandler sets the handler for methods.
func WithMethodHandler(fn MethodHandler) Option {
	return func(w *Walker) { w.onMethod = fn }
}

// WithParameterHandler sets the handler for parameters and headers.
func WithParameterHandler(fn ParameterHandler) Option {
	return func(w *Walker) { w.onParameter = fn }
}

// WithResponseHandler sets the handler for responses.
func WithResponseHandler(fn ResponseHandler) Option {
	return func(w *Walker) { w.onResponse = fn }
}

// WithTypeHandler sets the handler for type declarations.
func WithTypeHandler(fn TypeHandler) Option {
	return func(w *Walker) { w.onType = fn }
}

// WithMaxDepth sets the maximum nesting depth for resources and inline
// properties. Default is 100. If depth is <= 0, the default is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// Walk traverses the loaded document and calls registered handlers for each node.
func Walk(result *raml.ParseResult, opts ...Option) error {
	if result == nil {
		return fmt.Errorf("walker: nil ParseResult")
	}
	return WalkDocument(result.Document, opts...)
}

// WalkDocument traverses doc and calls registered handlers for each node.
func WalkDocument(doc *raml.Document, opts ...Option) error {
	if doc == nil {
		return fmt.Errorf("walker: nil Document")
	}
	w := New()
	for _, opt := range opts {
		opt(w)
	}
	return w.walk(doc)
}

// walk performs the actual traversal: document, base URI parameters, type
// declarations, then the resource tree depth-first.
func (w *Walker) walk(doc *raml.Document) error {
	if w.state == nil {
		w.state = &walkState{}
	}
	w.stopped = false

	if w.onDocument != nil && !w.handleAction(w.onDocument(w.state.buildContext(), doc)) {
		return nil
	}

	w.walkParameters(w.state, InBaseURI, doc.BaseURIParameters)
	if w.stopped {
		return nil
	}

	w.walkTypes(w.state, "", doc.Types)
	w.walkTypes(w.state, "", doc.Schemas)
	for _, lib := range doc.Uses {
		if w.stopped {
			return nil
		}
		if lib != nil {
			w.walkTypes(w.state, lib.Key, lib.Types)
		}
	}

	for _, res := range doc.Resources {
		if w.stopped {
			break
		}
		w.walkResource(w.state, res, 0)
	}
	return nil
}

func (w *Walker) walkResource(parent *walkState, res *raml.Resource, depth int) {
	if res == nil || w.stopped || depth >= w.maxDepth {
		return
	}
	state := parent.clone()
	state.uri = res.CompleteRelativeURI
	state.depth = depth

	if w.onResource != nil && !w.handleAction(w.onResource(state.buildContext(), res)) {
		return
	}

	w.walkParameters(state, InURI, res.URIParameters)
	for _, m := range res.Methods {
		if w.stopped {
			return
		}
		w.walkMethod(state, m)
	}
	for _, child := range res.Resources {
		if w.stopped {
			return
		}
		w.walkResource(state, child, depth+1)
	}
}

func (w *Walker) walkMethod(parent *walkState, m *raml.Method) {
	if m == nil {
		return
	}
	state := parent.clone()
	state.method = m.Method

	if w.onMethod != nil && !w.handleAction(w.onMethod(state.buildContext(), m)) {
		return
	}

	w.walkParameters(state, InQuery, m.QueryParameters)
	w.walkParameters(state, InHeader, m.Headers)
	for _, resp := range m.Responses {
		if w.stopped || resp == nil {
			return
		}
		if w.onResponse == nil {
			continue
		}
		rs := state.clone()
		rs.statusCode = resp.Code
		w.handleAction(w.onResponse(rs.buildContext(), resp))
	}
}

func (w *Walker) walkParameters(parent *walkState, in string, params []*raml.TypeDeclaration) {
	if w.onParameter == nil {
		return
	}
	for _, p := range params {
		if w.stopped {
			return
		}
		if p == nil {
			continue
		}
		state := parent.clone()
		state.in = in
		state.name = p.Name
		w.handleAction(w.onParameter(state.buildContext(), p))
	}
}

func (w *Walker) walkTypes(parent *walkState, library string, decls []*raml.TypeDeclaration) {
	if w.onType == nil {
		return
	}
	for _, decl := range decls {
		if w.stopped {
			return
		}
		state := parent.clone()
		state.library = library
		w.walkType(state, decl, "", 0)
	}
}

func (w *Walker) walkType(state *walkState, decl *raml.TypeDeclaration, prefix string, depth int) {
	if decl == nil || w.stopped || depth >= w.maxDepth {
		return
	}
	state.name = decl.Name
	state.typePath = decl.Name
	if prefix != "" {
		state.typePath = prefix + "." + decl.Name
	}
	if !w.handleAction(w.onType(state.buildContext(), decl)) {
		return
	}
	for _, prop := range decl.Properties {
		if w.stopped {
			return
		}
		w.walkType(state.clone(), prop, state.typePath, depth+1)
	}
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}
