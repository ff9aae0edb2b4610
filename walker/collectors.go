package walker

import (
	"math"

	"github.com/ramlo/ramlo/raml"
)

// EndpointInfo describes one method on one resource.
type EndpointInfo struct {
	// Method is the method node.
	Method *raml.Method

	// Resource is the resource declaring the method.
	Resource *raml.Resource

	// URI is the complete relative URI of the resource.
	URI string

	// Depth is the nesting level of the resource.
	Depth int
}

// EndpointCollector holds endpoints collected during a walk.
type EndpointCollector struct {
	// All contains all endpoints in traversal order.
	All []*EndpointInfo

	// ByMethod groups endpoints by lower-case HTTP method.
	ByMethod map[string][]*EndpointInfo
}

// CollectEndpoints walks the resource tree rooted at the given resources and
// collects every method, a resource's own methods before those of its
// nested resources.
func CollectEndpoints(resources ...*raml.Resource) *EndpointCollector {
	collector := &EndpointCollector{
		All:      make([]*EndpointInfo, 0),
		ByMethod: make(map[string][]*EndpointInfo),
	}

	var current *raml.Resource
	w := New()
	// Every endpoint is collected, however deeply its resource is nested.
	w.maxDepth = math.MaxInt
	w.state = &walkState{}
	w.onResource = func(_ *WalkContext, res *raml.Resource) Action {
		current = res
		return Continue
	}
	w.onMethod = func(wc *WalkContext, m *raml.Method) Action {
		info := &EndpointInfo{
			Method:   m,
			Resource: current,
			URI:      wc.URI,
			Depth:    wc.Depth,
		}
		collector.All = append(collector.All, info)
		collector.ByMethod[m.Method] = append(collector.ByMethod[m.Method], info)
		return SkipChildren
	}
	for _, res := range resources {
		w.walkResource(w.state, res, 0)
	}
	return collector
}

// TypeInfo describes a collected type declaration.
type TypeInfo struct {
	// Type is the declaration.
	Type *raml.TypeDeclaration

	// Name is the declared name.
	Name string

	// Library is the library alias, empty for root declarations.
	Library string
}

// QualifiedName returns "library.Name" for library types and Name otherwise.
func (ti *TypeInfo) QualifiedName() string {
	if ti.Library == "" {
		return ti.Name
	}
	return ti.Library + "." + ti.Name
}

// CollectTypes walks the document and collects the top-level type and schema
// declarations of the root and of every library, without their properties.
func CollectTypes(doc *raml.Document) ([]*TypeInfo, error) {
	types := make([]*TypeInfo, 0)
	err := WalkDocument(doc,
		WithTypeHandler(func(wc *WalkContext, decl *raml.TypeDeclaration) Action {
			types = append(types, &TypeInfo{Type: decl, Name: decl.Name, Library: wc.Library})
			return SkipChildren
		}),
	)
	if err != nil {
		return nil, err
	}
	return types, nil
}
