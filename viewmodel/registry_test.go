package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramlo/ramlo/internal/markdown"
	"github.com/ramlo/ramlo/raml"
)

func newTestState(doc *raml.Document) *buildState {
	return &buildState{
		log:      raml.NopLogger{},
		markdown: markdown.Passthrough,
		doc:      doc,
		registry: newTypeRegistry(doc),
		warned:   make(map[string]bool),
	}
}

func objectType(name string, parents []string, props ...string) *raml.TypeDeclaration {
	decl := &raml.TypeDeclaration{Name: name, Type: parents}
	for _, p := range props {
		decl.Properties = append(decl.Properties, &raml.TypeDeclaration{Name: p, Type: []string{"string"}})
	}
	return decl
}

func TestResolveType_MultipleInheritance(t *testing.T) {
	doc := &raml.Document{Types: []*raml.TypeDeclaration{
		objectType("A", []string{"object"}, "a1", "a2"),
		objectType("B", []string{"object"}, "b1", "b2", "b3"),
		objectType("C", []string{"A", "B"}, "c1"),
	}}
	st := newTestState(doc)

	assert.Equal(t, []string{"a1", "a2", "b1", "b2", "b3", "c1"}, rowNames(st.resolveType("C")))
	assert.Empty(t, st.warnings)
}

func TestResolveType_Diamond(t *testing.T) {
	doc := &raml.Document{Types: []*raml.TypeDeclaration{
		objectType("Root", []string{"object"}, "id"),
		objectType("Left", []string{"Root"}, "l"),
		objectType("Right", []string{"Root"}, "r"),
		objectType("Bottom", []string{"Left", "Right"}, "b"),
	}}
	st := newTestState(doc)

	table := st.resolveType("Bottom")
	assert.Equal(t, []string{"id", "l", "id", "r", "b"}, rowNames(table),
		"a shared ancestor contributes once per inheritance path")
	assert.Empty(t, st.warnings, "a diamond is not a cycle")
}

func TestResolveType_Cycle(t *testing.T) {
	doc := &raml.Document{Types: []*raml.TypeDeclaration{
		objectType("A", []string{"B"}, "a"),
		objectType("B", []string{"A"}, "b"),
		objectType("Self", []string{"Self"}, "s"),
	}}
	st := newTestState(doc)

	assert.Equal(t, []string{"b", "a"}, rowNames(st.resolveType("A")))
	assert.Equal(t, []string{"s"}, rowNames(st.resolveType("Self")))
	require.Len(t, st.warnings, 2)
	assert.Contains(t, st.warnings[0], "circular type reference")
	assert.Contains(t, st.warnings[0], "A")
	assert.Contains(t, st.warnings[1], "Self")
}

func TestResolveType_Idempotent(t *testing.T) {
	doc := &raml.Document{Types: []*raml.TypeDeclaration{
		objectType("A", []string{"B"}, "a"),
		objectType("B", []string{"A", "Missing"}, "b"),
	}}
	st := newTestState(doc)

	first := st.resolveType("A")
	warnings := len(st.warnings)
	second := st.resolveType("A")
	assert.Equal(t, first, second)
	assert.Len(t, st.warnings, warnings, "repeated warnings are reported once")
}

func TestResolveType_Unresolved(t *testing.T) {
	doc := &raml.Document{
		Types: []*raml.TypeDeclaration{objectType("Known", []string{"object"}, "k")},
		Uses:  []*raml.Library{{Key: "lib"}},
	}

	tests := []struct {
		ref     string
		warning string
	}{
		{"Nope", "Nope: type not found"},
		{"lib.Nope", "lib.Nope: type not found"},
		{"other.Known", "other.Known: unknown library other"},
		{"a.b.c", "a.b.c: malformed type reference"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			st := newTestState(doc)
			assert.True(t, st.resolveType(tt.ref).IsEmpty())
			require.Len(t, st.warnings, 1)
			assert.Contains(t, st.warnings[0], tt.warning)
		})
	}
}

func TestResolveType_NotTypeNames(t *testing.T) {
	st := newTestState(&raml.Document{})
	for _, ref := range []string{"", "string", "object", "datetime", "A | B", "string[]", "{\"type\": \"object\"}", "Maybe?"} {
		assert.True(t, st.resolveType(ref).IsEmpty(), ref)
	}
	assert.Empty(t, st.warnings)
}

func TestResolveType_LibraryScope(t *testing.T) {
	doc := &raml.Document{
		Types: []*raml.TypeDeclaration{objectType("Base", []string{"object"}, "root")},
		Uses: []*raml.Library{{
			Key: "lib",
			Types: []*raml.TypeDeclaration{
				objectType("Base", []string{"object"}, "library"),
				objectType("Child", []string{"Base"}, "own"),
			},
		}},
	}
	st := newTestState(doc)

	assert.Equal(t, []string{"library", "own"}, rowNames(st.resolveType("lib.Child")),
		"undotted parents resolve in the declaring library")
	assert.Equal(t, []string{"root"}, rowNames(st.resolveType("Base")))
}

func TestPropertyTable(t *testing.T) {
	minLen := 2
	repeat := true
	st := newTestState(&raml.Document{})
	table := st.propertyTable([]*raml.TypeDeclaration{
		{
			Name: "code", Type: []string{"string", "Other"}, Description: "Country *code*",
			Required: true, MinLength: &minLen, Default: "US", Repeat: &repeat,
			Examples: []*raml.ExampleSpec{{Name: "one", Value: "FR"}},
		},
		nil,
		{Name: "untyped"},
	})

	require.Len(t, table.Rows, 2)
	code := table.Rows[0]
	assert.Equal(t, "string", code.Type)
	assert.Equal(t, "Country *code*", code.Description, "property descriptions stay as written")
	assert.Equal(t, "FR", code.Example)
	assert.Equal(t, "US", code.Default)
	assert.Equal(t, &repeat, code.Repeat)
	assert.Equal(t, "", table.Rows[1].Type)
	assert.Equal(t, TableHead{
		Name: true, Type: true, Description: true, Example: true, Default: true, MinLength: true, Required: true,
	}, table.Head)
}
