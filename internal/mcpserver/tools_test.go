package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramlo/ramlo/internal/testutil"
	"github.com/ramlo/ramlo/viewmodel"
)

const libraryRAML = `#%RAML 1.0
title: Shop
types:
  Order:
    properties:
      id: integer
  OrderList:
    type: array
    items: Order
/orders:
  get:
  post:
    body:
      application/json:
        type: Order
  /{orderId}:
    get:
    delete:
    /items:
      get:
/customers:
  displayName: Clients
  get:
`

func TestBuildTool_Summary(t *testing.T) {
	specCache.reset()
	_, output, err := handleBuild(context.Background(), &mcp.CallToolRequest{}, buildInput{
		Spec: specInput{Content: testutil.UsersAPI},
	})
	require.NoError(t, err)

	assert.Equal(t, "Users API", output.Title)
	assert.Equal(t, "v1", output.Version)
	assert.Equal(t, "https://api.example.com/v1", output.BaseURI)
	assert.Equal(t, 1, output.ResourceCount)
	assert.Equal(t, 2, output.EndpointCount)
	assert.Equal(t, 1, output.TypeCount)
	assert.Equal(t, 1, output.SecuritySchemeCount)
	assert.Empty(t, output.Warnings)
	assert.Nil(t, output.Document)
}

func TestBuildTool_Full(t *testing.T) {
	specCache.reset()
	noMarkdown := false
	_, output, err := handleBuild(context.Background(), &mcp.CallToolRequest{}, buildInput{
		Spec:     specInput{Content: testutil.UsersAPI},
		Markdown: &noMarkdown,
		Full:     true,
	})
	require.NoError(t, err)

	doc, ok := output.Document.(*viewmodel.APIDocument)
	require.True(t, ok, "expected *viewmodel.APIDocument, got %T", output.Document)
	assert.Equal(t, "Manage *users*.", doc.Description)
	require.Len(t, doc.Resources, 1)
	assert.Equal(t, "Users", doc.Resources[0].Name)
}

func TestBuildTool_Error(t *testing.T) {
	result, _, err := handleBuild(context.Background(), &mcp.CallToolRequest{}, buildInput{
		Spec: specInput{Content: "#%RAML 0.8\ntitle: Old\n"},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestListResourcesTool(t *testing.T) {
	specCache.reset()
	_, output, err := handleListResources(context.Background(), &mcp.CallToolRequest{}, listResourcesInput{
		Spec: specInput{Content: libraryRAML},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, output.Total)
	assert.Equal(t, []resourceSummary{
		{Name: "Orders", URI: "/orders", EndpointCount: 5},
		{Name: "Clients", URI: "/customers", EndpointCount: 1},
	}, output.Resources)

	_, output, err = handleListResources(context.Background(), &mcp.CallToolRequest{}, listResourcesInput{
		Spec:   specInput{Content: libraryRAML},
		Offset: 1,
		Limit:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, output.Returned)
	assert.Equal(t, "Clients", output.Resources[0].Name)
}

func TestListEndpointsTool(t *testing.T) {
	specCache.reset()

	tests := []struct {
		name  string
		input listEndpointsInput
		want  []string
	}{
		{"all", listEndpointsInput{}, []string{
			"GET /orders", "POST /orders", "GET /orders/{orderId}", "DELETE /orders/{orderId}",
			"GET /orders/{orderId}/items", "GET /customers",
		}},
		{"method", listEndpointsInput{Method: "GET"}, []string{
			"GET /orders", "GET /orders/{orderId}", "GET /orders/{orderId}/items", "GET /customers",
		}},
		{"exact uri", listEndpointsInput{URI: "/customers"}, []string{"GET /customers"}},
		{"one segment", listEndpointsInput{URI: "/orders/*"}, []string{"GET /orders/{orderId}", "DELETE /orders/{orderId}"}},
		{"any segments", listEndpointsInput{URI: "/orders/**", Method: "get"}, []string{
			"GET /orders", "GET /orders/{orderId}", "GET /orders/{orderId}/items",
		}},
		{"no match", listEndpointsInput{Method: "patch"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Spec = specInput{Content: libraryRAML}
			_, output, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)

			assert.Equal(t, 6, output.Total)
			var got []string
			for _, e := range output.Endpoints {
				got = append(got, e.Method+" "+e.URI)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), output.Matched)
		})
	}
}

func TestListEndpointsTool_GroupBy(t *testing.T) {
	specCache.reset()
	_, output, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, listEndpointsInput{
		Spec:    specInput{Content: libraryRAML},
		GroupBy: "method",
	})
	require.NoError(t, err)
	assert.Empty(t, output.Endpoints)
	assert.Equal(t, []groupCount{
		{Key: "GET", Count: 4},
		{Key: "DELETE", Count: 1},
		{Key: "POST", Count: 1},
	}, output.Groups)

	result, _, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, listEndpointsInput{
		Spec:    specInput{Content: libraryRAML},
		GroupBy: "tag",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestListEndpointsTool_InvalidMethod(t *testing.T) {
	specCache.reset()
	result, _, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, listEndpointsInput{
		Spec:   specInput{Content: libraryRAML},
		Method: "fetch",
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, `invalid method "fetch"`)
}

func TestListEndpointsTool_Details(t *testing.T) {
	specCache.reset()
	_, output, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, listEndpointsInput{
		Spec:   specInput{Content: testutil.UsersAPI},
		Method: "get",
		URI:    "/users",
	})
	require.NoError(t, err)
	require.Len(t, output.Endpoints, 1)
	e := output.Endpoints[0]
	assert.Equal(t, "List users", e.Description)
	assert.Equal(t, []string{"oauth_2_0"}, e.SecuredBy)
	assert.Equal(t, []string{"200"}, e.Responses)
}

func TestListTypesTool(t *testing.T) {
	specCache.reset()
	path := testutil.WriteTempFiles(t, map[string]string{
		"api.raml": `#%RAML 1.0
title: Typed
uses:
  common: common.raml
types:
  Account:
    properties:
      id: integer
      owner: common.Person
`,
		"common.raml": `#%RAML 1.0 Library
types:
  Person:
    properties:
      name: string
  Address:
    properties:
      street: string
`,
	}, "api.raml")

	_, output, err := handleListTypes(context.Background(), &mcp.CallToolRequest{}, listTypesInput{
		Spec: specInput{File: path},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, output.Total)

	var names []string
	for _, ty := range output.Types {
		names = append(names, ty.Name)
	}
	assert.Equal(t, []string{"Account", "common.Person", "common.Address"}, names)
	assert.Equal(t, 2, output.Types[0].Properties)

	_, output, err = handleListTypes(context.Background(), &mcp.CallToolRequest{}, listTypesInput{
		Spec:    specInput{File: path},
		Library: "common",
		Name:    "P*",
	})
	require.NoError(t, err)
	require.Len(t, output.Types, 1)
	assert.Equal(t, "common.Person", output.Types[0].Name)
	assert.Equal(t, "common", output.Types[0].Library)

	_, output, err = handleListTypes(context.Background(), &mcp.CallToolRequest{}, listTypesInput{
		Spec:    specInput{File: path},
		Library: rootLibrary,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, output.Matched)

	_, output, err = handleListTypes(context.Background(), &mcp.CallToolRequest{}, listTypesInput{
		Spec:    specInput{File: path},
		GroupBy: "library",
	})
	require.NoError(t, err)
	assert.Equal(t, []groupCount{{Key: "common", Count: 2}, {Key: "-", Count: 1}}, output.Groups)
}

func TestListTypesTool_InvalidGlob(t *testing.T) {
	result, _, err := handleListTypes(context.Background(), &mcp.CallToolRequest{}, listTypesInput{
		Spec: specInput{Content: libraryRAML},
		Name: "Order[",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestMatchURIPattern(t *testing.T) {
	tests := []struct {
		uri     string
		pattern string
		want    bool
	}{
		{"/users", "/users", true},
		{"/users", "/orders", false},
		{"/users/{id}", "/users/*", true},
		{"/users", "/users/*", false},
		{"/users/{id}/pets", "/users/*", false},
		{"/users", "/users/**", true},
		{"/users/{id}/pets", "/users/**", true},
		{"/users/{id}/pets", "/**/pets", true},
		{"/users/{id}/pets", "/**/orders", false},
		{"/a/b/c/d", "/a/**/d", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchURIPattern(tt.uri, tt.pattern), "%s ~ %s", tt.uri, tt.pattern)
	}
}
