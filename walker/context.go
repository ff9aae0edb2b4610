package walker

import "context"

// WalkContext provides contextual information about the current node being visited.
// It follows the http.Request pattern for context access.
type WalkContext struct {
	// URI is the complete relative URI of the enclosing resource.
	// Empty outside the resource tree. Example: "/users/{id}"
	URI string

	// Depth is the nesting level of the enclosing resource; top-level
	// resources have depth 0.
	Depth int

	// Method is the HTTP method when walking within a method scope.
	// Empty when not in method scope. Example: "get", "post"
	Method string

	// StatusCode is the HTTP status code when walking within a response.
	// Example: "200"
	StatusCode string

	// Name is the declared name of a parameter or type declaration.
	Name string

	// TypePath is the dotted path of a type declaration, e.g. "User.address".
	TypePath string

	// Library is the alias of the library a type belongs to, empty for root types.
	Library string

	// In is the parameter location: InBaseURI, InURI, InQuery or InHeader.
	In string

	ctx context.Context
}

// Context returns the context.Context for cancellation and deadline propagation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// WithContext returns a shallow copy of WalkContext with the new context.
func (wc *WalkContext) WithContext(ctx context.Context) *WalkContext {
	wc2 := *wc
	wc2.ctx = ctx
	return &wc2
}

// InResourceScope returns true if currently walking within a resource.
func (wc *WalkContext) InResourceScope() bool {
	return wc.URI != ""
}

// InMethodScope returns true if currently walking within a method.
func (wc *WalkContext) InMethodScope() bool {
	return wc.Method != ""
}

// InResponseScope returns true if currently walking within a response.
func (wc *WalkContext) InResponseScope() bool {
	return wc.StatusCode != ""
}

// walkState tracks context as we descend through the document.
type walkState struct {
	uri        string
	depth      int
	method     string
	statusCode string
	name       string
	typePath   string
	library    string
	in         string
	ctx        context.Context
}

// buildContext creates a WalkContext from the current walk state.
func (s *walkState) buildContext() *WalkContext {
	return &WalkContext{
		URI:        s.uri,
		Depth:      s.depth,
		Method:     s.method,
		StatusCode: s.statusCode,
		Name:       s.name,
		TypePath:   s.typePath,
		Library:    s.library,
		In:         s.in,
		ctx:        s.ctx,
	}
}

// clone creates a copy of the walk state for child traversal.
func (s *walkState) clone() *walkState {
	c := *s
	return &c
}
