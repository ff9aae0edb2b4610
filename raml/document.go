package raml

// RAML10 is the RAMLVersion value reported for RAML 1.0 documents.
const RAML10 = "RAML10"

// MetadataKey is the bookkeeping key some AST providers insert into
// serialised nodes. Consumers strip it before exposing raw JSON.
const MetadataKey = "__METADATA__"

// Document is the root of a loaded RAML 1.0 API description.
//
// All facets are optional. Absent strings are empty, absent lists are nil and
// absent numeric or boolean facets are nil pointers. Callers must treat a
// Document as read-only once it has been loaded.
type Document struct {
	// Title is the API title
	Title string
	// Version is the API version (the value substituted for {version} in BaseURI)
	Version string
	// RAMLVersion is the RAML dialect tag, e.g. "RAML10"
	RAMLVersion string
	// BaseURI is the base URI template as written
	BaseURI string
	// BaseURIParameters holds declared and implicit base URI template parameters
	BaseURIParameters []*TypeDeclaration
	// Protocols lists the supported protocols, upper-cased
	Protocols []string
	// MediaType lists the default media types for bodies
	MediaType []string
	// Description is the Markdown description of the API
	Description string
	// Documentation holds the user documentation sections
	Documentation []*DocumentationItem
	// SecuredBy lists the security schemes applied to every method by default
	SecuredBy []*SecuritySchemeRef
	// SecuritySchemes holds the declared security schemes in declaration order
	SecuritySchemes []*SecurityScheme
	// Resources holds the top-level resources in declaration order
	Resources []*Resource
	// Uses holds the imported libraries in declaration order
	Uses []*Library
	// Types holds the root-level type declarations
	Types []*TypeDeclaration
	// Schemas holds the root-level schema declarations (deprecated alias of types)
	Schemas []*TypeDeclaration
	// AnnotationTypes holds the declared annotation types
	AnnotationTypes []*TypeDeclaration
	// Annotations holds the annotations applied to the API root
	Annotations []*Annotation
	// Raw is the JSON-compatible representation of the whole document
	Raw map[string]any
}

// Library returns the library imported under key, or nil.
func (d *Document) Library(key string) *Library {
	if d == nil {
		return nil
	}
	for _, lib := range d.Uses {
		if lib != nil && lib.Key == key {
			return lib
		}
	}
	return nil
}

// SecurityScheme returns the declared security scheme with the given name, or nil.
func (d *Document) SecurityScheme(name string) *SecurityScheme {
	if d == nil {
		return nil
	}
	for _, scheme := range d.SecuritySchemes {
		if scheme != nil && scheme.Name == name {
			return scheme
		}
	}
	return nil
}

// Resource is a URI-addressable node owning HTTP methods and nested resources.
type Resource struct {
	// RelativeURI is the URI relative to the parent resource, e.g. "/{id}"
	RelativeURI string
	// CompleteRelativeURI is the URI relative to the API root, e.g. "/users/{id}"
	CompleteRelativeURI string
	// DisplayName is the explicitly declared display name (empty when absent)
	DisplayName string
	// Description is the Markdown description
	Description string
	// Type is the name of the applied resource type. Its declaration is
	// already merged into the resource.
	Type string
	// Is lists the applied trait names. Their declarations are already
	// merged into the methods.
	Is []string
	// SecuredBy lists the security schemes applied to this resource
	SecuredBy []*SecuritySchemeRef
	// URIParameters holds declared and implicit URI template parameters
	URIParameters []*TypeDeclaration
	// Methods holds the methods declared directly on this resource
	Methods []*Method
	// Resources holds the nested resources in declaration order
	Resources []*Resource
	// Annotations holds the annotations applied to this resource
	Annotations []*Annotation
}

// Method is one HTTP method declared on a resource.
type Method struct {
	// Method is the lower-case HTTP method token
	Method string
	// DisplayName is the explicitly declared display name
	DisplayName string
	// Description is the Markdown description
	Description string
	// Is lists the applied trait names. Their declarations are already
	// merged into the method.
	Is []string
	// SecuredBy lists the security schemes applied to this method
	SecuredBy []*SecuritySchemeRef
	// QueryParameters holds the query parameters in declaration order
	QueryParameters []*TypeDeclaration
	// Headers holds the request headers in declaration order
	Headers []*TypeDeclaration
	// Body holds one declaration per request media type
	Body []*TypeDeclaration
	// Responses holds the responses in declaration order
	Responses []*Response
	// Annotations holds the annotations applied to this method
	Annotations []*Annotation
}

// Response is a declared response for one status code.
type Response struct {
	// Code is the HTTP status code as written, e.g. "200"
	Code string
	// Description is the Markdown description
	Description string
	// Headers holds the response headers in declaration order
	Headers []*TypeDeclaration
	// Body holds one declaration per response media type
	Body []*TypeDeclaration
	// Annotations holds the annotations applied to this response
	Annotations []*Annotation
}

// TypeDeclaration is a RAML data type declaration. RAML 1.0 uses the same
// shape for named types, properties, parameters, headers and bodies.
type TypeDeclaration struct {
	// Name is the declared name (property, parameter or type name, or body media type)
	Name string
	// DisplayName is the explicitly declared display name
	DisplayName string
	// Type lists the parent type expressions. A single entry may contain
	// "|"-joined union alternatives; several entries mean multiple inheritance.
	Type []string
	// SchemaContent holds JSON Schema content when the declaration is a schema.
	// It is either the schema text or an already decoded object (nil when absent).
	SchemaContent any
	// Properties holds the inline property declarations in declaration order
	Properties []*TypeDeclaration
	// Required reports whether the property or parameter is required
	Required bool
	// Description is the Markdown description
	Description string
	// Default is the default value, nil when absent
	Default any
	// Example is the single declared example, nil when absent
	Example *ExampleSpec
	// Examples holds the named examples in declaration order
	Examples []*ExampleSpec
	// MinLength is the minLength facet, nil when absent
	MinLength *int
	// MaxLength is the maxLength facet, nil when absent
	MaxLength *int
	// Repeat is the RAML 0.8 style repeat facet, nil when absent
	Repeat *bool
	// Enum holds the enumerated values
	Enum []any
	// Annotations holds the annotations applied to this declaration
	Annotations []*Annotation
	// Raw is the JSON-compatible representation of the declaration
	Raw map[string]any
}

// HasProperties reports whether the declaration declares inline properties.
func (t *TypeDeclaration) HasProperties() bool {
	return t != nil && len(t.Properties) > 0
}

// ExampleSpec is one example value, kept both as source text and as a
// structured value when the text is structured data.
type ExampleSpec struct {
	// Name is the example name (empty for a single `example`)
	Name string
	// Value is the example as text
	Value string
	// StructuredValue is the decoded example, nil for plain strings
	StructuredValue any
}

// Resolved returns the structured value when present and the text otherwise.
func (e *ExampleSpec) Resolved() any {
	if e == nil {
		return nil
	}
	if e.StructuredValue != nil {
		return e.StructuredValue
	}
	return e.Value
}

// SecurityScheme is a declared security scheme.
type SecurityScheme struct {
	// Name is the scheme name used by securedBy references
	Name string
	// Type is the scheme type, e.g. "OAuth 2.0"
	Type string
	// Description is the Markdown description
	Description string
	// DescribedBy is the raw describedBy block
	DescribedBy map[string]any
	// Settings is the raw settings block
	Settings map[string]any
	// Raw is the JSON-compatible representation of the scheme, including its name
	Raw map[string]any
}

// SecuritySchemeRef is one entry of a securedBy list.
type SecuritySchemeRef struct {
	// Name is the referenced scheme name, "null" for anonymous access
	Name string
	// Settings holds per-reference settings overrides
	Settings map[string]any
}

// Annotation is an annotation applied to a node, e.g. (deprecated): true.
type Annotation struct {
	// Name is the annotation name without parentheses
	Name string
	// Value is the JSON-compatible annotation value
	Value any
	// Type is the declared annotation type, empty when undeclared
	Type string
}

// DocumentationItem is one user documentation section.
type DocumentationItem struct {
	// Title is the section title
	Title string
	// Content is the Markdown content
	Content string
}

// Library is a RAML library imported with `uses`.
type Library struct {
	// Key is the alias the library is imported under
	Key string
	// Path is the library location as written
	Path string
	// Usage is the library usage statement
	Usage string
	// Types holds the library's type declarations in declaration order
	Types []*TypeDeclaration
	// Raw is the JSON-compatible representation of the library
	Raw map[string]any
}

// Type returns the library type declaration with the given name, or nil.
func (l *Library) Type(name string) *TypeDeclaration {
	if l == nil {
		return nil
	}
	for _, t := range l.Types {
		if t != nil && t.Name == name {
			return t
		}
	}
	return nil
}
