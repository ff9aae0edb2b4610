package raml

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"go.yaml.in/yaml/v4"
)

// includeTag marks a node whose value is loaded from another file.
const includeTag = "!include"

// nodePair is one key/value entry of a YAML mapping.
type nodePair struct {
	key     string
	keyNode *yaml.Node
	value   *yaml.Node
}

// resolveNode unwraps document and alias nodes.
func resolveNode(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// isNull reports whether n is absent or an explicit YAML null.
func isNull(n *yaml.Node) bool {
	n = resolveNode(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// mappingPairs returns the entries of a mapping node in source order.
// Non-mapping nodes yield nil.
func mappingPairs(n *yaml.Node) []nodePair {
	n = resolveNode(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]nodePair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := resolveNode(n.Content[i])
		if keyNode == nil {
			continue
		}
		pairs = append(pairs, nodePair{key: keyNode.Value, keyNode: keyNode, value: n.Content[i+1]})
	}
	return pairs
}

// mappingValue returns the value stored under key in a mapping node, or nil.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for _, p := range mappingPairs(n) {
		if p.key == key {
			return p.value
		}
	}
	return nil
}

// scalarString returns the text of a scalar node.
func scalarString(n *yaml.Node) (string, bool) {
	n = resolveNode(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", false
	}
	return n.Value, true
}

// stringValue returns the text of a scalar node or of the `value` key of a
// mapping node, which RAML allows for descriptions and base URIs.
func stringValue(n *yaml.Node) string {
	if s, ok := scalarString(n); ok {
		return s
	}
	if v := mappingValue(n, "value"); v != nil {
		s, _ := scalarString(v)
		return s
	}
	return ""
}

// stringList returns a scalar as a one-element list and a sequence of scalars
// as a list. Mapping entries inside a sequence contribute their first key,
// which is how RAML writes parameterised trait and resource type references.
func stringList(n *yaml.Node) []string {
	n = resolveNode(n)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil
		}
		return []string{n.Value}
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if s, ok := scalarString(item); ok {
				out = append(out, s)
				continue
			}
			if pairs := mappingPairs(item); len(pairs) > 0 {
				out = append(out, pairs[0].key)
			}
		}
		return out
	case yaml.MappingNode:
		if pairs := mappingPairs(n); len(pairs) > 0 {
			return []string{pairs[0].key}
		}
	}
	return nil
}

// boolPtr decodes a boolean scalar, returning nil when absent or not a boolean.
func boolPtr(n *yaml.Node) *bool {
	n = resolveNode(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return nil
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return nil
	}
	return &b
}

// intPtr decodes an integer scalar, returning nil when absent or not an integer.
func intPtr(n *yaml.Node) *int {
	n = resolveNode(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return nil
	}
	var i int
	if err := n.Decode(&i); err != nil {
		return nil
	}
	return &i
}

// nodeToValue converts a YAML node into JSON-compatible Go values:
// map[string]any, []any, string, bool, int, float64 and nil. Mapping keys are
// always stringified so that status-code keys such as 200 serialise.
func nodeToValue(n *yaml.Node) (any, error) {
	n = resolveNode(n)
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for _, p := range mappingPairs(n) {
			v, err := nodeToValue(p.value)
			if err != nil {
				return nil, err
			}
			out[p.key] = v
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := nodeToValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		if isCustomTag(n.Tag) {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return jsonSafe(v, n.Value), nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %v", n.Line, n.Kind)
	}
}

// mapValue converts a mapping node into a map. Other nodes yield an empty map.
func mapValue(n *yaml.Node) map[string]any {
	v, err := nodeToValue(n)
	if err != nil {
		return map[string]any{}
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// isCustomTag reports whether tag is an application tag such as !include
// rather than a core YAML tag.
func isCustomTag(tag string) bool {
	return strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!")
}

// jsonSafe converts values that encoding/json cannot marshal into strings:
// timestamps decoded from unquoted dates, and .inf/.nan, which keep their
// YAML text.
func jsonSafe(v any, text string) any {
	switch f := v.(type) {
	case float64:
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return text
		}
		return v
	case nil, string, bool, int, int64, uint64:
		return v
	default:
		if _, err := json.Marshal(v); err != nil {
			return fmt.Sprint(v)
		}
		return v
	}
}

// looksLikeJSON reports whether s is JSON object or array text.
func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}
