// Package walker provides a document traversal API for RAML 1.0 documents.
//
// The walker visits a loaded document in a single depth-first pass: the root,
// the base URI parameters, the type and schema declarations of the root and of
// every library, and then the resource tree with its methods, parameters and
// responses. A resource is visited before its own methods, and its methods
// before its nested resources.
//
// # Quick Start
//
// Walk a document and list its endpoints:
//
//	result, _ := raml.ParseWithOptions(raml.WithFilePath("api.raml"))
//
//	err := walker.Walk(result,
//	    walker.WithMethodHandler(func(wc *walker.WalkContext, m *raml.Method) walker.Action {
//	        fmt.Println(strings.ToUpper(m.Method), wc.URI)
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// # Handler Types
//
//   - [DocumentHandler]: the root document
//   - [ResourceHandler]: resources, parents before children
//   - [MethodHandler]: methods declared directly on a resource
//   - [ParameterHandler]: base URI, URI and query parameters and headers
//   - [ResponseHandler]: method responses
//   - [TypeHandler]: type declarations and their inline properties
//
// # Collectors
//
// [CollectEndpoints] and [CollectTypes] cover the common "flatten the
// document" cases without writing handlers.
package walker
