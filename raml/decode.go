package raml

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/ramlo/ramlo/internal/httputil"
	"github.com/ramlo/ramlo/ramlerrors"
)

// exampleFacets are the keys allowed next to `value` in an expanded example.
var exampleFacets = map[string]bool{
	"value": true, "strict": true, "displayName": true, "description": true,
}

var templateParam = regexp.MustCompile(`\{([^{}]+)\}`)

// decodeState carries the per-document context the decoder needs: declared
// types for schema lookups, annotation types and collected warnings.
type decodeState struct {
	parser          *Parser
	baseDir         string
	mediaTypes      []string
	schemaTypes     map[string]any
	annotationTypes map[string]string
	uses            []*Library
	traits          map[string]*yaml.Node
	resourceTypes   map[string]*yaml.Node
	warnings        []string
}

func newDecodeState(p *Parser, baseDir string) *decodeState {
	return &decodeState{
		parser:          p,
		baseDir:         baseDir,
		schemaTypes:     make(map[string]any),
		annotationTypes: make(map[string]string),
		traits:          make(map[string]*yaml.Node),
		resourceTypes:   make(map[string]*yaml.Node),
	}
}

func (st *decodeState) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	st.warnings = append(st.warnings, msg)
	st.parser.log().Warn(msg)
}

// decodeDocument builds the Document from the API root mapping.
func (st *decodeState) decodeDocument(root *yaml.Node) *Document {
	doc := &Document{RAMLVersion: RAML10}

	// Declarations other nodes refer to are decoded first.
	st.mediaTypes = stringList(mappingValue(root, "mediaType"))
	doc.MediaType = st.mediaTypes
	doc.AnnotationTypes = st.decodeAnnotationTypes(mappingValue(root, "annotationTypes"))
	st.collectSchemaTypes(mappingValue(root, "schemas"))
	st.collectSchemaTypes(mappingValue(root, "types"))

	for _, p := range mappingPairs(root) {
		switch {
		case p.key == "title":
			doc.Title = stringValue(p.value)
		case p.key == "version":
			doc.Version, _ = scalarString(p.value)
		case p.key == "baseUri":
			doc.BaseURI = stringValue(p.value)
		case p.key == "baseUriParameters":
			doc.BaseURIParameters = st.decodeParameters(p.value)
		case p.key == "protocols":
			for _, proto := range stringList(p.value) {
				doc.Protocols = append(doc.Protocols, strings.ToUpper(proto))
			}
		case p.key == "description":
			doc.Description = stringValue(p.value)
		case p.key == "documentation":
			doc.Documentation = decodeDocumentation(p.value)
		case p.key == "securedBy":
			doc.SecuredBy = decodeSecuredBy(p.value)
		case p.key == "securitySchemes":
			doc.SecuritySchemes = decodeSecuritySchemes(p.value)
		case p.key == "types":
			doc.Types = st.decodeTypes(p.value)
		case p.key == "schemas":
			doc.Schemas = st.decodeTypes(p.value)
		case p.key == "uses":
			// Loaded by expandDocument.
			doc.Uses = st.uses
		case isAnnotationKey(p.key):
			doc.Annotations = append(doc.Annotations, st.decodeAnnotation(p.key, p.value))
		case strings.HasPrefix(p.key, "/"):
			doc.Resources = append(doc.Resources, st.decodeResource(p.key, p.value, ""))
		}
	}

	doc.BaseURIParameters = withImplicitParameters(doc.BaseURI, doc.BaseURIParameters)
	if len(doc.Protocols) == 0 {
		if u, err := url.Parse(doc.BaseURI); err == nil && u.Scheme != "" {
			doc.Protocols = []string{strings.ToUpper(u.Scheme)}
		}
	}
	return doc
}

// collectSchemaTypes records declarations whose value is JSON Schema text so
// that bodies referring to them by name expose the schema content.
func (st *decodeState) collectSchemaTypes(n *yaml.Node) {
	for _, p := range mappingPairs(n) {
		if content := schemaContentOf(p.value); content != nil {
			st.schemaTypes[p.key] = content
		}
	}
}

// schemaContentOf returns JSON Schema text held directly by n or by its
// type/schema facet, or nil.
func schemaContentOf(n *yaml.Node) any {
	if s, ok := scalarString(n); ok {
		if looksLikeJSON(s) {
			return s
		}
		return nil
	}
	for _, key := range []string{"type", "schema"} {
		if s, ok := scalarString(mappingValue(n, key)); ok && looksLikeJSON(s) {
			return s
		}
	}
	return nil
}

func (st *decodeState) decodeAnnotationTypes(n *yaml.Node) []*TypeDeclaration {
	decls := st.decodeTypes(n)
	for _, decl := range decls {
		if len(decl.Type) > 0 {
			st.annotationTypes[decl.Name] = decl.Type[0]
		} else {
			st.annotationTypes[decl.Name] = ""
		}
	}
	return decls
}

func isAnnotationKey(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "(") && strings.HasSuffix(key, ")")
}

func (st *decodeState) decodeAnnotation(key string, value *yaml.Node) *Annotation {
	name := strings.TrimSuffix(strings.TrimPrefix(key, "("), ")")
	v, err := nodeToValue(value)
	if err != nil {
		st.warnf("annotation %s: %v", name, err)
	}
	return &Annotation{Name: name, Value: v, Type: st.annotationTypes[name]}
}

func decodeDocumentation(n *yaml.Node) []*DocumentationItem {
	n = resolveNode(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	items := make([]*DocumentationItem, 0, len(n.Content))
	for _, item := range n.Content {
		items = append(items, &DocumentationItem{
			Title:   stringValue(mappingValue(item, "title")),
			Content: stringValue(mappingValue(item, "content")),
		})
	}
	return items
}

// decodeSecuredBy accepts a single reference or a list. A null entry means
// anonymous access and is reported under the name "null".
func decodeSecuredBy(n *yaml.Node) []*SecuritySchemeRef {
	n = resolveNode(n)
	if n == nil {
		return nil
	}
	items := []*yaml.Node{n}
	if n.Kind == yaml.SequenceNode {
		items = n.Content
	}
	refs := make([]*SecuritySchemeRef, 0, len(items))
	for _, item := range items {
		item = resolveNode(item)
		switch {
		case isNull(item):
			refs = append(refs, &SecuritySchemeRef{Name: "null"})
		case item.Kind == yaml.ScalarNode:
			refs = append(refs, &SecuritySchemeRef{Name: item.Value})
		case item.Kind == yaml.MappingNode:
			for _, p := range mappingPairs(item) {
				refs = append(refs, &SecuritySchemeRef{Name: p.key, Settings: mapValue(mappingValue(p.value, "settings"))})
			}
		}
	}
	return refs
}

func decodeSecuritySchemes(n *yaml.Node) []*SecurityScheme {
	var schemes []*SecurityScheme
	for _, p := range mappingPairs(n) {
		raw := mapValue(p.value)
		raw["name"] = p.key
		scheme := &SecurityScheme{
			Name:        p.key,
			Description: stringValue(mappingValue(p.value, "description")),
			DescribedBy: mapValue(mappingValue(p.value, "describedBy")),
			Settings:    mapValue(mappingValue(p.value, "settings")),
			Raw:         raw,
		}
		scheme.Type, _ = scalarString(mappingValue(p.value, "type"))
		schemes = append(schemes, scheme)
	}
	return schemes
}

// decodeTypes decodes a `types`/`schemas` style mapping of named declarations.
func (st *decodeState) decodeTypes(n *yaml.Node) []*TypeDeclaration {
	var decls []*TypeDeclaration
	for _, p := range mappingPairs(n) {
		decls = append(decls, st.decodeTypeDeclaration(p.key, p.value, false))
	}
	return decls
}

// decodeParameters decodes a parameter mapping. RAML 1.0 parameters are
// required unless declared otherwise.
func (st *decodeState) decodeParameters(n *yaml.Node) []*TypeDeclaration {
	var params []*TypeDeclaration
	for _, p := range mappingPairs(n) {
		params = append(params, st.decodeTypeDeclaration(p.key, p.value, true))
	}
	return params
}

// decodeTypeDeclaration decodes one type declaration in any of its RAML
// forms: a type expression scalar, a list of parent types, or a mapping of
// facets. A trailing "?" on the name marks an optional property.
func (st *decodeState) decodeTypeDeclaration(name string, n *yaml.Node, defaultRequired bool) *TypeDeclaration {
	decl := &TypeDeclaration{Name: name, Required: defaultRequired}
	if defaultRequired && strings.HasSuffix(name, "?") {
		decl.Name = strings.TrimSuffix(name, "?")
		decl.Required = false
	}

	n = resolveNode(n)
	raw := map[string]any{}
	switch {
	case isNull(n):
	case n.Kind == yaml.ScalarNode:
		st.applyTypeExpression(decl, n.Value)
	case n.Kind == yaml.SequenceNode:
		decl.Type = stringList(n)
	case n.Kind == yaml.MappingNode:
		raw = mapValue(n)
		st.decodeFacets(decl, n)
	}

	if decl.SchemaContent == nil && len(decl.Type) == 0 {
		if decl.HasProperties() {
			decl.Type = []string{"object"}
		} else {
			decl.Type = []string{"string"}
		}
	}

	raw["name"] = decl.Name
	if _, ok := raw["type"]; !ok && len(decl.Type) > 0 {
		raw["type"] = toAnySlice(decl.Type)
	}
	if _, ok := raw["required"]; !ok && defaultRequired {
		raw["required"] = decl.Required
	}
	decl.Raw = raw
	return decl
}

// applyTypeExpression sets the type of decl from a type expression, detecting
// inline JSON Schema and references to schema declarations.
func (st *decodeState) applyTypeExpression(decl *TypeDeclaration, expr string) {
	switch {
	case looksLikeJSON(expr):
		decl.SchemaContent = expr
	case st.schemaTypes[expr] != nil:
		decl.SchemaContent = st.schemaTypes[expr]
		decl.Type = []string{expr}
	default:
		decl.Type = []string{expr}
	}
}

func (st *decodeState) decodeFacets(decl *TypeDeclaration, n *yaml.Node) {
	explicitRequired := false
	for _, p := range mappingPairs(n) {
		switch {
		case p.key == "type" || p.key == "schema":
			st.decodeTypeFacet(decl, p.value)
		case p.key == "properties":
			for _, prop := range mappingPairs(p.value) {
				decl.Properties = append(decl.Properties, st.decodeTypeDeclaration(prop.key, prop.value, true))
			}
		case p.key == "required":
			if b := boolPtr(p.value); b != nil {
				decl.Required = *b
				explicitRequired = true
			}
		case p.key == "displayName":
			decl.DisplayName = stringValue(p.value)
		case p.key == "description":
			decl.Description = stringValue(p.value)
		case p.key == "default":
			decl.Default, _ = nodeToValue(p.value)
		case p.key == "example":
			decl.Example = st.decodeExample("", p.value)
		case p.key == "examples":
			for _, ex := range mappingPairs(p.value) {
				decl.Examples = append(decl.Examples, st.decodeExample(ex.key, ex.value))
			}
		case p.key == "minLength":
			decl.MinLength = intPtr(p.value)
		case p.key == "maxLength":
			decl.MaxLength = intPtr(p.value)
		case p.key == "repeat":
			decl.Repeat = boolPtr(p.value)
		case p.key == "enum":
			if v, err := nodeToValue(p.value); err == nil {
				decl.Enum, _ = v.([]any)
			}
		case isAnnotationKey(p.key):
			decl.Annotations = append(decl.Annotations, st.decodeAnnotation(p.key, p.value))
		}
	}
	// An explicit required facet overrides the "name?" shorthand.
	if explicitRequired && strings.HasSuffix(decl.Name, "?") {
		decl.Name = strings.TrimSuffix(decl.Name, "?")
	}
}

// decodeTypeFacet handles the value of a type/schema facet, which may be a
// type expression, a list of parents, or an inline declaration.
func (st *decodeState) decodeTypeFacet(decl *TypeDeclaration, n *yaml.Node) {
	n = resolveNode(n)
	switch {
	case isNull(n):
	case n.Kind == yaml.ScalarNode:
		st.applyTypeExpression(decl, n.Value)
	case n.Kind == yaml.SequenceNode:
		decl.Type = stringList(n)
	case n.Kind == yaml.MappingNode:
		inline := st.decodeTypeDeclaration(decl.Name, n, false)
		decl.Type = inline.Type
		decl.SchemaContent = inline.SchemaContent
		if !decl.HasProperties() {
			decl.Properties = inline.Properties
		}
	}
}

// decodeExample decodes an example value, unwrapping the expanded
// {value: ..., strict: ...} form.
func (st *decodeState) decodeExample(name string, n *yaml.Node) *ExampleSpec {
	n = resolveNode(n)
	if v := mappingValue(n, "value"); v != nil && isExpandedExample(n) {
		n = resolveNode(v)
	}
	ex := &ExampleSpec{Name: name}
	if isNull(n) {
		return ex
	}

	if n.Kind == yaml.ScalarNode && (n.Tag == "!!str" || isCustomTag(n.Tag)) {
		ex.Value = n.Value
		if looksLikeJSON(n.Value) {
			var structured any
			if err := json.Unmarshal([]byte(n.Value), &structured); err == nil {
				ex.StructuredValue = structured
			}
		}
		return ex
	}

	v, err := nodeToValue(n)
	if err != nil {
		st.warnf("example %q: %v", name, err)
		return ex
	}
	ex.StructuredValue = v
	if text, err := json.Marshal(v); err == nil {
		ex.Value = string(text)
	}
	return ex
}

func isExpandedExample(n *yaml.Node) bool {
	for _, p := range mappingPairs(n) {
		if !exampleFacets[p.key] && !isAnnotationKey(p.key) {
			return false
		}
	}
	return true
}

// decodeUses loads every library imported by the document. Libraries that
// cannot be loaded are kept without types and reported as warnings.
func (st *decodeState) decodeUses(n *yaml.Node) []*Library {
	var libs []*Library
	for _, p := range mappingPairs(n) {
		path, _ := scalarString(p.value)
		lib, err := st.loadLibrary(p.key, path)
		if err != nil {
			st.warnf("%v", err)
			lib = &Library{Key: p.key, Path: path, Raw: map[string]any{}}
		}
		libs = append(libs, lib)
	}
	return libs
}

func (st *decodeState) loadLibrary(key, path string) (*Library, error) {
	if path == "" {
		return nil, &ramlerrors.IncludeError{Alias: key, Message: "missing library path"}
	}
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(st.baseDir, path)
	}
	data, err := st.parser.readFile(full)
	if err != nil {
		return nil, &ramlerrors.IncludeError{Alias: key, Target: path, Cause: err}
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &ramlerrors.IncludeError{Alias: key, Target: path, Message: "invalid YAML", Cause: err}
	}
	root := resolveNode(&node)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, &ramlerrors.IncludeError{Alias: key, Target: path, Message: "library root must be a mapping"}
	}
	if err := st.parser.resolveIncludes(root, filepath.Dir(full), 0); err != nil {
		return nil, &ramlerrors.IncludeError{Alias: key, Target: path, Cause: err}
	}

	libState := newDecodeState(st.parser, filepath.Dir(full))
	libState.annotationTypes = st.annotationTypes
	libState.collectSchemaTypes(mappingValue(root, "schemas"))
	libState.collectSchemaTypes(mappingValue(root, "types"))

	lib := &Library{
		Key:   key,
		Path:  path,
		Usage: stringValue(mappingValue(root, "usage")),
		Types: libState.decodeTypes(mappingValue(root, "types")),
		Raw:   mapValue(root),
	}
	lib.Types = append(lib.Types, libState.decodeTypes(mappingValue(root, "schemas"))...)
	st.collectTemplates(key+".", root)
	st.warnings = append(st.warnings, libState.warnings...)
	st.parser.log().Debug("loaded library", "alias", key, "path", path, "types", len(lib.Types))
	return lib, nil
}

// decodeResource decodes a resource and, recursively, its nested resources.
func (st *decodeState) decodeResource(relativeURI string, n *yaml.Node, parentURI string) *Resource {
	res := &Resource{
		RelativeURI:         relativeURI,
		CompleteRelativeURI: parentURI + relativeURI,
	}
	for _, p := range mappingPairs(n) {
		switch {
		case p.key == "displayName":
			res.DisplayName = stringValue(p.value)
		case p.key == "description":
			res.Description = stringValue(p.value)
		case p.key == "type":
			if types := stringList(p.value); len(types) > 0 {
				res.Type = types[0]
			}
		case p.key == "is":
			res.Is = stringList(p.value)
		case p.key == "securedBy":
			res.SecuredBy = decodeSecuredBy(p.value)
		case p.key == "uriParameters":
			res.URIParameters = st.decodeParameters(p.value)
		case httputil.IsMethod(p.key):
			res.Methods = append(res.Methods, st.decodeMethod(p.key, p.value))
		case isAnnotationKey(p.key):
			res.Annotations = append(res.Annotations, st.decodeAnnotation(p.key, p.value))
		case strings.HasPrefix(p.key, "/"):
			res.Resources = append(res.Resources, st.decodeResource(p.key, p.value, res.CompleteRelativeURI))
		}
	}
	res.URIParameters = withImplicitParameters(relativeURI, res.URIParameters)
	return res
}

func (st *decodeState) decodeMethod(name string, n *yaml.Node) *Method {
	m := &Method{Method: strings.ToLower(name)}
	for _, p := range mappingPairs(n) {
		switch {
		case p.key == "displayName":
			m.DisplayName = stringValue(p.value)
		case p.key == "description":
			m.Description = stringValue(p.value)
		case p.key == "is":
			m.Is = stringList(p.value)
		case p.key == "securedBy":
			m.SecuredBy = decodeSecuredBy(p.value)
		case p.key == "queryParameters":
			m.QueryParameters = st.decodeParameters(p.value)
		case p.key == "headers":
			m.Headers = st.decodeParameters(p.value)
		case p.key == "body":
			m.Body = st.decodeBodies(p.value)
		case p.key == "responses":
			m.Responses = st.decodeResponses(p.value)
		case isAnnotationKey(p.key):
			m.Annotations = append(m.Annotations, st.decodeAnnotation(p.key, p.value))
		}
	}
	return m
}

func (st *decodeState) decodeResponses(n *yaml.Node) []*Response {
	var responses []*Response
	for _, p := range mappingPairs(n) {
		if !httputil.ValidateStatusCode(p.key) {
			st.warnf("response %q is not an HTTP status code", p.key)
		}
		resp := &Response{Code: p.key}
		for _, f := range mappingPairs(p.value) {
			switch {
			case f.key == "description":
				resp.Description = stringValue(f.value)
			case f.key == "headers":
				resp.Headers = st.decodeParameters(f.value)
			case f.key == "body":
				resp.Body = st.decodeBodies(f.value)
			case isAnnotationKey(f.key):
				resp.Annotations = append(resp.Annotations, st.decodeAnnotation(f.key, f.value))
			}
		}
		responses = append(responses, resp)
	}
	return responses
}

// decodeBodies decodes a body node. A mapping keyed by media types yields one
// declaration per media type; any other form is a single declaration named
// after the default media type.
func (st *decodeState) decodeBodies(n *yaml.Node) []*TypeDeclaration {
	n = resolveNode(n)
	if isNull(n) {
		return nil
	}
	pairs := mappingPairs(n)
	byMediaType := len(pairs) > 0
	for _, p := range pairs {
		if !strings.Contains(p.key, "/") {
			byMediaType = false
			break
		}
	}
	if byMediaType {
		bodies := make([]*TypeDeclaration, 0, len(pairs))
		for _, p := range pairs {
			if !httputil.IsValidMediaType(p.key) {
				st.warnf("body %q is not a valid media type", p.key)
			}
			bodies = append(bodies, st.decodeTypeDeclaration(p.key, p.value, false))
		}
		return bodies
	}

	name := "body"
	if len(st.mediaTypes) > 0 {
		name = st.mediaTypes[0]
	}
	return []*TypeDeclaration{st.decodeTypeDeclaration(name, n, false)}
}

// withImplicitParameters appends a string parameter for every {template}
// variable of uri that has no declaration.
func withImplicitParameters(uri string, declared []*TypeDeclaration) []*TypeDeclaration {
	names := make(map[string]bool, len(declared))
	for _, d := range declared {
		names[d.Name] = true
	}
	params := declared
	for _, match := range templateParam.FindAllStringSubmatch(uri, -1) {
		name := match[1]
		if names[name] {
			continue
		}
		names[name] = true
		params = append(params, &TypeDeclaration{
			Name:     name,
			Type:     []string{"string"},
			Required: true,
			Raw:      map[string]any{"name": name, "type": []any{"string"}, "required": true},
		})
	}
	return params
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
