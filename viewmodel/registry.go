package viewmodel

import (
	"strings"

	"github.com/ramlo/ramlo/raml"
	"github.com/ramlo/ramlo/ramlerrors"
)

// rootScope is the registry alias of the document's own types.
const rootScope = ""

// builtinTypes are the RAML built-in type names. They have no declaration to
// resolve and contribute no rows.
var builtinTypes = map[string]bool{
	"any": true, "object": true, "array": true, "union": true, "string": true,
	"number": true, "integer": true, "boolean": true, "date-only": true,
	"time-only": true, "datetime-only": true, "datetime": true, "file": true,
	"nil": true,
}

// typeRegistry maps a library alias to the type declarations it provides.
// Root types are registered under rootScope.
type typeRegistry struct {
	scopes map[string][]*raml.TypeDeclaration
}

func newTypeRegistry(doc *raml.Document) *typeRegistry {
	r := &typeRegistry{scopes: make(map[string][]*raml.TypeDeclaration)}
	r.scopes[rootScope] = append(append([]*raml.TypeDeclaration{}, doc.Types...), doc.Schemas...)
	for _, lib := range doc.Uses {
		if lib != nil {
			r.scopes[lib.Key] = lib.Types
		}
	}
	return r
}

// lookup finds the declaration name in scope.
func (r *typeRegistry) lookup(scope, name string) (*raml.TypeDeclaration, bool, bool) {
	decls, ok := r.scopes[scope]
	if !ok {
		return nil, false, false
	}
	for _, decl := range decls {
		if decl != nil && decl.Name == name {
			return decl, true, true
		}
	}
	return nil, true, false
}

// splitRef splits "lib.Name" into its alias and name. Undotted references
// belong to the given scope.
func splitRef(ref, scope string) (string, string, bool) {
	parts := strings.Split(ref, ".")
	switch len(parts) {
	case 1:
		return scope, ref, true
	case 2:
		return parts[0], parts[1], true
	default:
		return "", "", false
	}
}

// isTypeName reports whether expr names a single user-defined type rather
// than a built-in, a union, an array or inline JSON.
func isTypeName(expr string) bool {
	if expr == "" || builtinTypes[expr] {
		return false
	}
	return !strings.ContainsAny(expr, "|[]{}()? ")
}

// resolveType builds the property table of a named type: the rows of its
// parents first, then its own properties. An array reference such as
// "User[]" is tabulated through its element type. Unresolvable references
// and inheritance cycles contribute nothing and are reported as warnings.
func (st *buildState) resolveType(ref string) *ParameterTable {
	ref = strings.TrimSuffix(strings.TrimSpace(ref), "[]")
	return st.resolveTypeIn(ref, rootScope, make(map[string]bool))
}

func (st *buildState) resolveTypeIn(ref, scope string, visiting map[string]bool) *ParameterTable {
	table := NewParameterTable()
	if !isTypeName(ref) {
		return table
	}
	alias, name, ok := splitRef(ref, scope)
	if !ok {
		st.warn((&ramlerrors.TypeReferenceError{Ref: ref, Message: "malformed type reference"}).Error())
		return table
	}

	key := alias + "." + name
	if visiting[key] {
		st.warn((&ramlerrors.TypeReferenceError{Ref: ref, Library: alias, IsCircular: true}).Error())
		return table
	}

	decl, scopeFound, declFound := st.registry.lookup(alias, name)
	switch {
	case !scopeFound:
		st.warn((&ramlerrors.TypeReferenceError{Ref: ref, Library: alias, Message: "unknown library " + alias}).Error())
		return table
	case !declFound:
		st.warn((&ramlerrors.TypeReferenceError{Ref: ref, Library: alias, Message: "type not found"}).Error())
		return table
	}

	visiting[key] = true
	defer delete(visiting, key)

	if decl.SchemaContent != nil && !decl.HasProperties() {
		return st.schemaTable(decl.SchemaContent, "type "+ref)
	}
	for _, parent := range decl.Type {
		table.Merge(st.resolveTypeIn(strings.TrimSpace(parent), alias, visiting))
	}
	table.Merge(st.propertyTable(decl.Properties))
	return table
}

// propertyTable tabulates inline property declarations. Descriptions are
// kept as written.
func (st *buildState) propertyTable(props []*raml.TypeDeclaration) *ParameterTable {
	table := NewParameterTable()
	for _, p := range props {
		if p == nil {
			continue
		}
		table.AddRow(ParameterRow{
			Name:        p.Name,
			Type:        firstType(p),
			Description: p.Description,
			IsRequired:  p.Required,
			Example:     exampleOf(p),
			Default:     p.Default,
			MinLength:   p.MinLength,
			MaxLength:   p.MaxLength,
			Repeat:      p.Repeat,
		})
	}
	return table
}

// firstType returns the first entry of the declaration's type list.
func firstType(t *raml.TypeDeclaration) string {
	if len(t.Type) == 0 {
		return ""
	}
	return t.Type[0]
}

// exampleOf returns the declared example, else the first named example,
// preferring structured values over text.
func exampleOf(t *raml.TypeDeclaration) any {
	if t.Example != nil {
		return t.Example.Resolved()
	}
	if len(t.Examples) > 0 {
		return t.Examples[0].Resolved()
	}
	return nil
}
