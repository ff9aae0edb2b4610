package viewmodel

// APIDocument is the documentation view model of one API. Field names in JSON
// and YAML form are a stable contract for documentation templates.
type APIDocument struct {
	Title             string           `json:"apiTitle" yaml:"apiTitle"`
	RAMLVersion       string           `json:"ramlVersion" yaml:"ramlVersion"`
	Version           string           `json:"apiVersion" yaml:"apiVersion"`
	Protocol          string           `json:"apiProtocol" yaml:"apiProtocol"`
	BaseURI           string           `json:"apiBaseUri" yaml:"apiBaseUri"`
	BaseURIParameters []map[string]any `json:"baseUriParameters" yaml:"baseUriParameters"`
	// Description is rendered to HTML
	Description     string           `json:"apiDescription" yaml:"apiDescription"`
	Documentations  []Documentation  `json:"apiDocumentations" yaml:"apiDocumentations"`
	SecuritySchemes []map[string]any `json:"apiSecuritySchemes" yaml:"apiSecuritySchemes"`
	// SecuredBy is the raw definition of the scheme securing the API by
	// default, or an empty map
	SecuredBy  map[string]any   `json:"apiSecuredBy" yaml:"apiSecuredBy"`
	Resources  []Resource       `json:"apiResources" yaml:"apiResources"`
	AllTypes   []map[string]any `json:"apiAllTypes" yaml:"apiAllTypes"`
	TypeNames  []string         `json:"typeNamesArray" yaml:"typeNamesArray"`
	AllSchemas []map[string]any `json:"apiAllSchemas" yaml:"apiAllSchemas"`
}

// Documentation is one user documentation section with HTML content.
type Documentation struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Resource is a top-level resource with the endpoints of its whole subtree.
type Resource struct {
	URI         string `json:"uri" yaml:"uri"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	// Type is always empty: applied resource types are merged into Endpoints
	Type        string       `json:"type" yaml:"type"`
	Endpoints   []Endpoint   `json:"endpoints" yaml:"endpoints"`
	Annotations []Annotation `json:"annotations" yaml:"annotations"`
}

// Endpoint is one HTTP method on one resource.
type Endpoint struct {
	URI             string          `json:"uri" yaml:"uri"`
	Method          string          `json:"method" yaml:"method"`
	SecuredBy       string          `json:"securedBy" yaml:"securedBy"`
	Description     string          `json:"description" yaml:"description"`
	URIParameters   *ParameterTable `json:"uriParameters" yaml:"uriParameters"`
	QueryParameters *ParameterTable `json:"queryParameters" yaml:"queryParameters"`
	RequestBody     *ParameterTable `json:"requestBody" yaml:"requestBody"`
	ResponseBody    *ResponseSchema `json:"responseBody" yaml:"responseBody"`
	// ResponseExample is nil when the method declares no responses
	ResponseExample []ResponseExample `json:"responseExample,omitempty" yaml:"responseExample,omitempty"`
	Annotations     []Annotation      `json:"annotations" yaml:"annotations"`
}

// ResponseSchema is the property table of the 200 response body plus the raw
// body declaration.
type ResponseSchema struct {
	ParameterTable `yaml:",inline"`
	Type           map[string]any `json:"type,omitempty" yaml:"type,omitempty"`
}

// ResponseExample is the example of one response body.
type ResponseExample struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	// Response is the example value: structured data, text, nil when the
	// body has no example, or "" when the response has no body
	Response any `json:"response" yaml:"response"`
}

// AnnotationValue is the value and declared type of an applied annotation.
type AnnotationValue struct {
	Value any    `json:"value" yaml:"value"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Annotation maps an annotation name to its value. Each Annotation holds a
// single entry.
type Annotation map[string]AnnotationValue
