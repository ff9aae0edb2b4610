package viewmodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"go.yaml.in/yaml/v4"
)

// schemaObject is a decoded JSON object that keeps its keys in source order,
// so that property tables list properties as declared.
type schemaObject struct {
	keys   []string
	values map[string]any
}

func (o *schemaObject) get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *schemaObject) object(key string) *schemaObject {
	v, _ := o.values[key].(*schemaObject)
	return v
}

// decodeSchemaContent decodes JSON schema content held as text or as an
// already decoded value. Objects come back as *schemaObject; keys of decoded
// maps, whose order is unknown, are sorted.
func decodeSchemaContent(content any) (any, error) {
	switch c := content.(type) {
	case nil:
		return nil, errors.New("no schema content")
	case string:
		return decodeOrderedJSON(c)
	case []byte:
		return decodeOrderedJSON(string(c))
	case *schemaObject:
		return c, nil
	case map[string]any, []any:
		return ordered(c), nil
	default:
		return nil, fmt.Errorf("unsupported schema content %T", content)
	}
}

// decodeOrderedJSON decodes a single JSON value from text. The text must be
// strict JSON; it is then read as a YAML node tree, whose mappings keep their
// keys in source order.
func decodeOrderedJSON(text string) (any, error) {
	if !json.Valid([]byte(text)) {
		return nil, errors.New("not a valid JSON document")
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(yamlEscapes(strings.TrimSpace(text))), &doc); err != nil {
		return nil, err
	}
	return fromNode(&doc)
}

// yamlEscapes rewrites the JSON string escapes YAML does not accept: \/ and
// UTF-16 surrogate pairs, which become one \U escape. Lone surrogates become
// U+FFFD.
func yamlEscapes(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != '\\' || i+1 >= len(text) {
			b.WriteByte(text[i])
			continue
		}
		switch text[i+1] {
		case '/':
			b.WriteByte('/')
			i++
		case 'u':
			hi, ok := hex4(text, i+2)
			if !ok || !utf16.IsSurrogate(hi) {
				b.WriteString(text[i : i+2])
				i++
				continue
			}
			if lo, ok := hex4(text, i+8); ok && strings.HasPrefix(text[i+6:], `\u`) {
				if r := utf16.DecodeRune(hi, lo); r != unicode.ReplacementChar {
					fmt.Fprintf(&b, `\U%08X`, r)
					i += 11
					continue
				}
			}
			b.WriteString(`\uFFFD`)
			i += 5
		default:
			b.WriteString(text[i : i+2])
			i++
		}
	}
	return b.String()
}

// hex4 parses the four hex digits at text[at:].
func hex4(text string, at int) (rune, bool) {
	if at+4 > len(text) {
		return 0, false
	}
	n, err := strconv.ParseUint(text[at:at+4], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}

// fromNode converts a YAML node into schema values. A repeated key keeps its
// first position and its last value.
func fromNode(n *yaml.Node) (any, error) {
	for n != nil && (n.Kind == yaml.DocumentNode || n.Kind == yaml.AliasNode) {
		if n.Kind == yaml.AliasNode {
			n = n.Alias
			continue
		}
		if len(n.Content) == 0 {
			return nil, nil
		}
		n = n.Content[0]
	}
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		obj := &schemaObject{values: make(map[string]any, len(n.Content)/2)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			if _, dup := obj.values[key]; !dup {
				obj.keys = append(obj.keys, key)
			}
			obj.values[key] = val
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			val, err := fromNode(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// ordered converts decoded maps into schemaObjects with sorted keys.
func ordered(v any) any {
	switch t := v.(type) {
	case map[string]any:
		obj := &schemaObject{keys: make([]string, 0, len(t)), values: make(map[string]any, len(t))}
		for k, val := range t {
			obj.keys = append(obj.keys, k)
			obj.values[k] = ordered(val)
		}
		slices.Sort(obj.keys)
		return obj
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = ordered(val)
		}
		return out
	default:
		return v
	}
}

// plain converts schemaObjects back into maps for output.
func plain(v any) any {
	switch t := v.(type) {
	case *schemaObject:
		out := make(map[string]any, len(t.values))
		for k, val := range t.values {
			out[k] = plain(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = plain(val)
		}
		return out
	default:
		return v
	}
}

// schemaTable decodes schema content and tabulates its properties. Content
// that is not valid JSON yields an empty table and a warning.
func (st *buildState) schemaTable(content any, where string) *ParameterTable {
	schema, err := decodeSchemaContent(content)
	if err != nil {
		st.warnf("%s: invalid JSON schema: %v", where, err)
		return NewParameterTable()
	}
	return schemaProperties(schema)
}

// schemaProperties tabulates the properties of a JSON schema. Array schemas
// are tabulated through their items schema, and object-valued properties
// get a nested table.
func schemaProperties(schema any) *ParameterTable {
	table := NewParameterTable()
	obj, _ := schema.(*schemaObject)
	if obj == nil {
		return table
	}
	if _, ok := obj.get("items"); ok {
		if obj = obj.object("items"); obj == nil {
			return table
		}
	}
	props := obj.object("properties")
	if props == nil {
		return table
	}

	required := requiredNames(obj)
	for _, name := range props.keys {
		value := props.object(name)
		if value == nil {
			table.AddRow(ParameterRow{Name: name, IsRequired: required[name]})
			continue
		}
		if items := value.object("items"); items != nil {
			value = items
		}
		row := ParameterRow{
			Name:        name,
			Type:        schemaType(value),
			Description: stringField(value, "description"),
			IsRequired:  required[name] || boolField(value, "required"),
			MinLength:   intField(value, "minLength"),
			MaxLength:   intField(value, "maxLength"),
		}
		if v, ok := value.get("example"); ok {
			row.Example = plain(v)
		}
		if v, ok := value.get("default"); ok {
			row.Default = plain(v)
		}
		if value.object("properties") != nil {
			row.NestedProperties = schemaProperties(value)
		}
		table.AddRow(row)
	}
	return table
}

// requiredNames returns the names listed in a draft-4 style required array.
func requiredNames(obj *schemaObject) map[string]bool {
	names := make(map[string]bool)
	list, _ := obj.values["required"].([]any)
	for _, item := range list {
		if s, ok := item.(string); ok {
			names[s] = true
		}
	}
	return names
}

// schemaType returns the type keyword; a list of types is joined as a union.
func schemaType(obj *schemaObject) string {
	switch t := obj.values["type"].(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " | ")
	}
	return ""
}

func stringField(obj *schemaObject, key string) string {
	s, _ := obj.values[key].(string)
	return s
}

// boolField reads a draft-3 style boolean keyword such as required: true.
func boolField(obj *schemaObject, key string) bool {
	b, _ := obj.values[key].(bool)
	return b
}

// intField reads an integer keyword. Fractional or out of range numbers are
// ignored.
func intField(obj *schemaObject, key string) *int {
	switch n := obj.values[key].(type) {
	case int:
		return &n
	case float64:
		if n != math.Trunc(n) || n < math.MinInt || n >= math.MaxInt {
			return nil
		}
		i := int(n)
		return &i
	}
	return nil
}
