package viewmodel

import (
	"strings"

	"github.com/ramlo/ramlo/raml"
)

// endpoint builds the view of one method declared on res.
func (st *buildState) endpoint(res *raml.Resource, m *raml.Method) Endpoint {
	uri := res.CompleteRelativeURI
	st.log.Debug("endpoint", "method", m.Method, "uri", uri)

	return Endpoint{
		URI:             uri,
		Method:          m.Method,
		SecuredBy:       firstSchemeName(m.SecuredBy),
		Description:     st.html(m.Description),
		URIParameters:   st.parameterTable(res.URIParameters),
		QueryParameters: st.parameterTable(m.QueryParameters),
		RequestBody:     st.requestBody(uri, m),
		ResponseBody:    st.responseBody(uri, m),
		ResponseExample: responseExamples(m),
		Annotations:     annotations(m.Annotations),
	}
}

// firstSchemeName returns the name of the first security reference, or "".
func firstSchemeName(refs []*raml.SecuritySchemeRef) string {
	for _, ref := range refs {
		if ref != nil {
			return ref.Name
		}
	}
	return ""
}

// parameterTable tabulates URI or query parameters. Descriptions are
// rendered to HTML.
func (st *buildState) parameterTable(params []*raml.TypeDeclaration) *ParameterTable {
	table := NewParameterTable()
	for _, p := range params {
		if p == nil {
			continue
		}
		table.AddRow(ParameterRow{
			Name:        p.Name,
			Type:        firstType(p),
			Description: st.html(p.Description),
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

// requestBody tabulates the request body. When the method declares several
// body variants, the last variant with properties wins.
func (st *buildState) requestBody(uri string, m *raml.Method) *ParameterTable {
	table := NewParameterTable()
	for _, body := range m.Body {
		if body == nil {
			continue
		}
		if t := st.bodyTable(body, location(m.Method, uri, "request body "+body.Name)); !t.IsEmpty() {
			table = t
		}
	}
	return table
}

// bodyTable tabulates one body declaration, trying in order its JSON schema,
// its referenced types and its inline properties.
func (st *buildState) bodyTable(body *raml.TypeDeclaration, where string) *ParameterTable {
	switch {
	case body.SchemaContent != nil:
		return st.schemaTable(body.SchemaContent, where)
	case len(body.Type) > 0 && !body.HasProperties():
		for _, expr := range body.Type {
			for _, alt := range strings.Split(expr, "|") {
				if t := st.resolveType(alt); !t.IsEmpty() {
					return t
				}
			}
		}
		return NewParameterTable()
	case body.HasProperties():
		return st.propertyTable(body.Properties)
	}
	return NewParameterTable()
}

// responseBody tabulates the body of the 200 response and attaches the raw
// body declaration as its type.
func (st *buildState) responseBody(uri string, m *raml.Method) *ResponseSchema {
	schema := &ResponseSchema{ParameterTable: *NewParameterTable()}
	for _, resp := range m.Responses {
		if resp == nil || resp.Code != "200" {
			continue
		}
		for _, body := range resp.Body {
			if body == nil {
				continue
			}
			if t := st.bodyTable(body, location(m.Method, uri, "response 200 body "+body.Name)); !t.IsEmpty() {
				schema.ParameterTable = *t
			}
			schema.Type = rawOf(body)
		}
	}
	return schema
}

// location names a body in warnings, e.g. "GET /users request body application/json".
func location(method, uri, what string) string {
	return strings.ToUpper(method) + " " + uri + " " + what
}
