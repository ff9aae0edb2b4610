package viewmodel

import (
	"github.com/ramlo/ramlo/internal/naming"
	"github.com/ramlo/ramlo/raml"
	"github.com/ramlo/ramlo/walker"
)

// resources flattens the resource tree into one entry per top-level resource
// carrying the endpoints of its whole subtree. A resource whose name was
// already used is dropped.
func (st *buildState) resources(doc *raml.Document) []Resource {
	out := make([]Resource, 0, len(doc.Resources))
	seen := make(map[string]bool)
	for _, res := range doc.Resources {
		if res == nil {
			continue
		}
		name := resourceName(res)
		if seen[name] {
			st.log.Debug("skipping duplicate resource", "name", name, "uri", res.CompleteRelativeURI)
			continue
		}
		seen[name] = true

		out = append(out, Resource{
			URI:         res.CompleteRelativeURI,
			Name:        name,
			Description: res.Description,
			Endpoints:   st.endpoints(res),
			Annotations: annotations(res.Annotations),
		})
	}
	return out
}

// resourceName returns the display name, or the URI with its first "/"
// removed and the first letter capitalised.
func resourceName(res *raml.Resource) string {
	if res.DisplayName != "" {
		return res.DisplayName
	}
	return naming.ResourceName(res.CompleteRelativeURI)
}

// endpoints builds the endpoints of res and, depth-first, of its nested
// resources.
func (st *buildState) endpoints(res *raml.Resource) []Endpoint {
	collected := walker.CollectEndpoints(res)
	out := make([]Endpoint, 0, len(collected.All))
	for _, info := range collected.All {
		out = append(out, st.endpoint(info.Resource, info.Method))
	}
	return out
}
