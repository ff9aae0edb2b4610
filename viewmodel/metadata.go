package viewmodel

import (
	"strings"

	"github.com/ramlo/ramlo/raml"
)

// protocolSummary formats the protocol list as "Protocols: HTTP, HTTPS".
func protocolSummary(protocols []string) string {
	if len(protocols) == 0 {
		return ""
	}
	return "Protocols: " + strings.Join(protocols, ", ")
}

// baseURI returns the base URI with the first {version} replaced by the API
// version.
func baseURI(doc *raml.Document) string {
	return strings.Replace(doc.BaseURI, "{version}", doc.Version, 1)
}

// baseURIParameters returns the raw base URI parameter declarations except
// the implicit version parameter, which is already folded into the base URI.
func baseURIParameters(doc *raml.Document) []map[string]any {
	params := make([]map[string]any, 0, len(doc.BaseURIParameters))
	for _, p := range doc.BaseURIParameters {
		if p == nil || p.Name == "version" {
			continue
		}
		params = append(params, rawOf(p))
	}
	return params
}

func (st *buildState) documentations(doc *raml.Document) []Documentation {
	docs := make([]Documentation, 0, len(doc.Documentation))
	for _, item := range doc.Documentation {
		if item == nil {
			continue
		}
		docs = append(docs, Documentation{Title: item.Title, Content: st.html(item.Content)})
	}
	return docs
}

// allTypes returns the root type declarations as ordered {name: raw}
// entries, and their names.
func allTypes(doc *raml.Document) ([]map[string]any, []string) {
	types := make([]map[string]any, 0, len(doc.Types))
	names := make([]string, 0, len(doc.Types))
	for _, t := range doc.Types {
		if t == nil {
			continue
		}
		types = append(types, map[string]any{t.Name: rawOf(t)})
		names = append(names, t.Name)
	}
	return types, names
}

// allSchemas returns the root schema declarations as ordered
// {name: parsed JSON schema} entries. Declarations that are not JSON schemas
// are skipped with a warning.
func (st *buildState) allSchemas(doc *raml.Document) []map[string]any {
	schemas := make([]map[string]any, 0, len(doc.Schemas))
	for _, s := range doc.Schemas {
		if s == nil {
			continue
		}
		parsed, err := decodeSchemaContent(s.SchemaContent)
		if err != nil {
			st.warnf("schema %s: %v", s.Name, err)
			continue
		}
		schemas = append(schemas, map[string]any{s.Name: plain(parsed)})
	}
	return schemas
}

// rawOf returns the raw declaration of t without provider bookkeeping keys.
func rawOf(t *raml.TypeDeclaration) map[string]any {
	return stripMetadata(t.Raw)
}

// stripMetadata returns a shallow copy of raw without raml.MetadataKey.
func stripMetadata(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if k == raml.MetadataKey {
			continue
		}
		out[k] = v
	}
	return out
}
