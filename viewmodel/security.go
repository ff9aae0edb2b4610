package viewmodel

import "github.com/ramlo/ramlo/raml"

// securitySchemes returns the raw definitions of all declared schemes.
func securitySchemes(doc *raml.Document) []map[string]any {
	schemes := make([]map[string]any, 0, len(doc.SecuritySchemes))
	for _, s := range doc.SecuritySchemes {
		if s == nil {
			continue
		}
		schemes = append(schemes, stripMetadata(s.Raw))
	}
	return schemes
}

// securedBy resolves the first root securedBy reference against the declared
// schemes and returns its raw definition, or an empty map.
func securedBy(doc *raml.Document) map[string]any {
	name := firstSchemeName(doc.SecuredBy)
	if name == "" {
		return map[string]any{}
	}
	scheme := doc.SecurityScheme(name)
	if scheme == nil {
		return map[string]any{}
	}
	return stripMetadata(scheme.Raw)
}
