package viewmodel

import "github.com/ramlo/ramlo/raml"

// annotations converts applied annotations into {name: {value, type}}
// entries, in declaration order.
func annotations(anns []*raml.Annotation) []Annotation {
	out := make([]Annotation, 0, len(anns))
	for _, a := range anns {
		if a == nil {
			continue
		}
		out = append(out, Annotation{a.Name: {Value: a.Value, Type: a.Type}})
	}
	return out
}
