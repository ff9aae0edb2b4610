package raml

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"go.yaml.in/yaml/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ramlo/ramlo/internal/httputil"
)

// maxResourceTypeDepth bounds resource type inheritance chains.
const maxResourceTypeDepth = 32

// templateRef matches a <<parameter>> reference with optional transform
// functions, e.g. <<resourcePathName | !singularize>>.
var templateRef = regexp.MustCompile(`<<\s*([^<>|\s]+)((?:\s*\|\s*![A-Za-z]+)*)\s*>>`)

// expandDocument applies resource types and traits to every resource of the
// API, in place, so that decoding and the document data see the expanded
// tree. Libraries are loaded first because they may declare traits and
// resource types referenced as alias.name.
func (st *decodeState) expandDocument(root *yaml.Node) {
	st.uses = st.decodeUses(mappingValue(root, "uses"))
	st.collectTemplates("", root)
	if len(st.traits) == 0 && len(st.resourceTypes) == 0 {
		st.warnUnknownTemplates(root)
		return
	}
	st.expandResources(root, "")
}

// collectTemplates records the trait and resource type declarations of a
// document or library, qualified with prefix.
func (st *decodeState) collectTemplates(prefix string, root *yaml.Node) {
	for _, p := range mappingPairs(mappingValue(root, "traits")) {
		st.traits[prefix+p.key] = p.value
	}
	for _, p := range mappingPairs(mappingValue(root, "resourceTypes")) {
		st.resourceTypes[prefix+p.key] = p.value
	}
}

// warnUnknownTemplates reports type/is references in a document that declares
// neither traits nor resource types.
func (st *decodeState) warnUnknownTemplates(n *yaml.Node) {
	for _, p := range mappingPairs(n) {
		if !strings.HasPrefix(p.key, "/") {
			continue
		}
		if ref := mappingValue(p.value, "type"); ref != nil {
			name, _ := st.templateRefOf(ref)
			st.warnf("resource type %q not found", name)
		}
		for _, ref := range isRefs(mappingValue(p.value, "is")) {
			name, _ := st.templateRefOf(ref)
			st.warnf("trait %q not found", name)
		}
		for _, m := range mappingPairs(p.value) {
			if httputil.IsMethod(m.key) {
				for _, ref := range isRefs(mappingValue(m.value, "is")) {
					name, _ := st.templateRefOf(ref)
					st.warnf("trait %q not found", name)
				}
			}
		}
		st.warnUnknownTemplates(p.value)
	}
}

// expandResources expands the resources declared under n, then their nested
// resources.
func (st *decodeState) expandResources(n *yaml.Node, parentURI string) {
	for _, p := range mappingPairs(n) {
		if !strings.HasPrefix(p.key, "/") {
			continue
		}
		uri := parentURI + p.key
		res := resolveNode(p.value)
		if res == nil || res.Kind != yaml.MappingNode {
			continue
		}
		expanded := st.expandResource(res, uri)
		*res = *expanded
		st.expandResources(res, uri)
	}
}

// expandResource returns a copy of res with its resource type merged in and
// traits applied to each method. The resource's own values win over both.
func (st *decodeState) expandResource(res *yaml.Node, uri string) *yaml.Node {
	out := cloneNode(res)
	params := map[string]string{
		"resourcePath":     uri,
		"resourcePathName": resourcePathName(uri),
	}

	if ref := mappingValue(out, "type"); ref != nil {
		if rt := st.resolveResourceType(ref, params, 0, map[string]bool{}); rt != nil {
			mergeResource(out, rt)
		}
	}

	// Resource-level traits are checked once, even when no method uses them.
	var resourceTraits []*yaml.Node
	for _, ref := range isRefs(mappingValue(out, "is")) {
		if name, _ := st.templateRefOf(ref); st.traits[name] == nil {
			st.warnf("trait %q not found", name)
			continue
		}
		resourceTraits = append(resourceTraits, ref)
	}
	for _, m := range mappingPairs(out) {
		if !httputil.IsMethod(m.key) {
			continue
		}
		method := resolveNode(m.value)
		if method == nil {
			continue
		}
		if isNull(method) {
			*method = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		}
		refs := append(append([]*yaml.Node(nil), resourceTraits...), isRefs(mappingValue(method, "is"))...)
		if len(refs) == 0 {
			continue
		}
		methodParams := copyParams(params)
		methodParams["methodName"] = m.key
		for _, ref := range refs {
			st.applyTrait(method, ref, methodParams)
		}
	}
	return out
}

// resolveResourceType returns the parameter-substituted declaration of the
// resource type referenced by ref, merged with the types it inherits from.
func (st *decodeState) resolveResourceType(ref *yaml.Node, params map[string]string, depth int, seen map[string]bool) *yaml.Node {
	name, args := st.templateRefOf(ref)
	decl, ok := st.resourceTypes[name]
	switch {
	case !ok:
		st.warnf("resource type %q not found", name)
		return nil
	case seen[name] || depth >= maxResourceTypeDepth:
		st.warnf("resource type %q inherits from itself", name)
		return nil
	}
	seen[name] = true

	all := copyParams(params)
	for k, v := range args {
		all[k] = v
	}
	rt := st.substitute(decl, all, "resource type "+name)
	if rt.Kind != yaml.MappingNode {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
	if parent := mappingValue(rt, "type"); parent != nil {
		if base := st.resolveResourceType(parent, params, depth+1, seen); base != nil {
			// Optional methods stay marked until merged into the resource.
			mergeMapping(rt, base, map[string]bool{"usage": true, "type": true})
		}
	}
	return rt
}

// applyTrait merges the trait referenced by ref into method. Values already
// present on the method win.
func (st *decodeState) applyTrait(method *yaml.Node, ref *yaml.Node, params map[string]string) {
	name, args := st.templateRefOf(ref)
	decl, ok := st.traits[name]
	if !ok {
		st.warnf("trait %q not found", name)
		return
	}
	all := copyParams(params)
	for k, v := range args {
		all[k] = v
	}
	trait := resolveNode(st.substitute(decl, all, "trait "+name))
	if trait == nil || trait.Kind != yaml.MappingNode {
		return
	}
	mergeMapping(method, trait, map[string]bool{"usage": true, "displayName": true})
}

// templateRefOf splits a trait or resource type reference into its name and
// parameters. References are a plain name or a single-entry mapping from the
// name to its parameters.
func (st *decodeState) templateRefOf(ref *yaml.Node) (string, map[string]string) {
	ref = resolveNode(ref)
	if s, ok := scalarString(ref); ok {
		return s, nil
	}
	pairs := mappingPairs(ref)
	if len(pairs) == 0 {
		return "", nil
	}
	args := make(map[string]string)
	for _, p := range mappingPairs(pairs[0].value) {
		if s, ok := scalarString(p.value); ok {
			args[p.key] = s
			continue
		}
		if v, err := nodeToValue(p.value); err == nil && v != nil {
			args[p.key] = fmt.Sprint(v)
		}
	}
	return pairs[0].key, args
}

// isRefs returns the entries of an `is` list; a single reference counts as a
// one-entry list.
func isRefs(n *yaml.Node) []*yaml.Node {
	n = resolveNode(n)
	switch {
	case isNull(n):
		return nil
	case n.Kind == yaml.SequenceNode:
		return n.Content
	default:
		return []*yaml.Node{n}
	}
}

// mergeResource merges a resolved resource type into res. Methods marked
// optional with a trailing "?" only apply when res declares the method, and
// `is` lists are concatenated.
func mergeResource(res, rt *yaml.Node) {
	for _, p := range mappingPairs(rt) {
		key := p.key
		switch {
		case key == "usage" || key == "type":
			continue
		case strings.HasSuffix(key, "?") && httputil.IsMethod(strings.TrimSuffix(key, "?")):
			key = strings.TrimSuffix(key, "?")
			if mappingValue(res, key) == nil {
				continue
			}
		}
		mergeEntry(res, key, p.value)
	}
}

// mergeMapping merges every entry of src into dst, skipping the keys in skip.
func mergeMapping(dst, src *yaml.Node, skip map[string]bool) {
	for _, p := range mappingPairs(src) {
		if skip[p.key] {
			continue
		}
		mergeEntry(dst, p.key, p.value)
	}
}

// mergeEntry merges value into dst[key]. Missing keys are added, mappings are
// merged recursively, `is` lists are concatenated and any other existing
// value is kept.
func mergeEntry(dst *yaml.Node, key string, value *yaml.Node) {
	existing := resolveNode(mappingValue(dst, key))
	if existing == nil {
		dst.Content = append(dst.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			cloneNode(value))
		return
	}
	src := resolveNode(value)
	if src == nil {
		return
	}
	switch {
	case isNull(existing) && src.Kind == yaml.MappingNode:
		*existing = *cloneNode(src)
	case key == "is":
		merged := append(append([]*yaml.Node(nil), isRefs(existing)...), isRefs(src)...)
		*existing = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: cloneNodes(merged)}
	case existing.Kind == yaml.MappingNode && src.Kind == yaml.MappingNode:
		mergeMapping(existing, src, nil)
	}
}

// substitute returns a copy of decl with every <<parameter>> replaced in keys
// and values. Missing parameters are reported once and replaced with "".
func (st *decodeState) substitute(decl *yaml.Node, params map[string]string, owner string) *yaml.Node {
	out := cloneNode(decl)
	missing := make(map[string]bool)
	var walk func(n *yaml.Node)
	walk = func(n *yaml.Node) {
		if n == nil {
			return
		}
		if n.Kind == yaml.ScalarNode && strings.Contains(n.Value, "<<") {
			n.Value = templateRef.ReplaceAllStringFunc(n.Value, func(m string) string {
				sub := templateRef.FindStringSubmatch(m)
				value, ok := params[sub[1]]
				if !ok {
					if !missing[sub[1]] {
						missing[sub[1]] = true
						st.warnf("%s: parameter %q not provided", owner, sub[1])
					}
					return ""
				}
				return transform(value, sub[2])
			})
			if n.Style&(yaml.TaggedStyle|yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) == 0 {
				// Plain scalars are re-resolved so that <<max>> can become a number.
				retag(n)
			}
		}
		for _, child := range n.Content {
			walk(child)
		}
	}
	walk(out)
	return out
}

// retag sets the resolved core tag of a plain scalar from its value.
func retag(n *yaml.Node) {
	n.Tag = ""
	var v any
	if err := n.Decode(&v); err != nil {
		n.Tag = "!!str"
		return
	}
	switch v.(type) {
	case nil:
		n.Tag = "!!null"
	case bool:
		n.Tag = "!!bool"
	case int, int64, uint64:
		n.Tag = "!!int"
	case float64:
		n.Tag = "!!float"
	case time.Time:
		n.Tag = "!!timestamp"
	default:
		n.Tag = "!!str"
	}
}

// transform applies the !function chain of a parameter reference.
func transform(value, chain string) string {
	for _, fn := range strings.Split(chain, "|") {
		switch strings.TrimSpace(fn) {
		case "!singularize":
			value = singularize(value)
		case "!pluralize":
			value = pluralize(value)
		case "!uppercase":
			value = cases.Upper(language.Und).String(value)
		case "!lowercase":
			value = cases.Lower(language.Und).String(value)
		case "!lowercamelcase":
			value = camelCase(splitWords(value), false)
		case "!uppercamelcase":
			value = camelCase(splitWords(value), true)
		case "!lowerunderscorecase":
			value = cases.Lower(language.Und).String(strings.Join(splitWords(value), "_"))
		case "!upperunderscorecase":
			value = cases.Upper(language.Und).String(strings.Join(splitWords(value), "_"))
		case "!lowerhyphencase":
			value = cases.Lower(language.Und).String(strings.Join(splitWords(value), "-"))
		case "!upperhyphencase":
			value = cases.Upper(language.Und).String(strings.Join(splitWords(value), "-"))
		}
	}
	return value
}

// splitWords splits s at separators and lower-to-upper case changes.
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	var prev rune
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return words
}

func camelCase(words []string, upperFirst bool) string {
	var b strings.Builder
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)
	for i, w := range words {
		if i == 0 && !upperFirst {
			b.WriteString(lower.String(w))
			continue
		}
		b.WriteString(title.String(w))
	}
	return b.String()
}

func singularize(s string) string {
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "ies") && len(s) > 3:
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(lower, "sses"), strings.HasSuffix(lower, "xes"),
		strings.HasSuffix(lower, "ches"), strings.HasSuffix(lower, "shes"):
		return s[:len(s)-2]
	case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss"):
		return s[:len(s)-1]
	}
	return s
}

func pluralize(s string) string {
	lower := strings.ToLower(s)
	switch {
	case len(s) > 1 && strings.HasSuffix(lower, "y") && !strings.ContainsRune("aeiou", rune(lower[len(lower)-2])):
		return s[:len(s)-1] + "ies"
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"), strings.HasSuffix(lower, "z"),
		strings.HasSuffix(lower, "ch"), strings.HasSuffix(lower, "sh"):
		return s + "es"
	}
	return s + "s"
}

// resourcePathName returns the rightmost segment of uri that is not a URI
// parameter.
func resourcePathName(uri string) string {
	segments := strings.Split(uri, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if seg := segments[i]; seg != "" && !strings.Contains(seg, "{") {
			return seg
		}
	}
	return ""
}

func copyParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+2)
	for k, v := range params {
		out[k] = v
	}
	return out
}

// cloneNode deep-copies n, replacing aliases by copies of their targets.
func cloneNode(n *yaml.Node) *yaml.Node {
	n = resolveNode(n)
	if n == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	c := *n
	c.Anchor = ""
	c.Content = cloneNodes(n.Content)
	return &c
}

func cloneNodes(nodes []*yaml.Node) []*yaml.Node {
	if nodes == nil {
		return nil
	}
	out := make([]*yaml.Node, len(nodes))
	for i, child := range nodes {
		out[i] = cloneNode(child)
	}
	return out
}
