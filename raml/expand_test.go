package raml

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templatesAPI = `#%RAML 1.0
title: Templates
resourceTypes:
  collection:
    usage: Apply to collections
    description: Collection of <<resourcePathName>>
    get:
      description: List <<resourcePathName | !uppercase>>
      responses:
        200:
          description: all <<resourcePathName | !singularize>> items
traits:
  paged:
    usage: Adds paging
    displayName: not copied
    queryParameters:
      limit:
        type: integer
        default: <<max>>
        description: Max <<resourcePathName>> per page for <<methodName>>
/users:
  type: collection
  get:
    description: Own description
    is: [paged: {max: 50}]
/items:
  type: collection
/broken:
  type: missing
  post:
    is: [unknown]
`

func TestParse_ResourceTypesAndTraits(t *testing.T) {
	result, err := New().ParseBytes([]byte(templatesAPI))
	require.NoError(t, err)
	doc := result.Document
	require.Len(t, doc.Resources, 3)

	users := doc.Resources[0]
	assert.Equal(t, "collection", users.Type)
	assert.Equal(t, "Collection of users", users.Description)
	require.Len(t, users.Methods, 1)
	get := users.Methods[0]
	assert.Equal(t, "Own description", get.Description, "method values win over the resource type")
	assert.Equal(t, []string{"paged"}, get.Is)
	assert.Empty(t, get.DisplayName)

	require.Len(t, get.QueryParameters, 1)
	limit := get.QueryParameters[0]
	assert.Equal(t, "limit", limit.Name)
	assert.Equal(t, []string{"integer"}, limit.Type)
	assert.Equal(t, 50, limit.Default)
	assert.Equal(t, "Max users per page for get", limit.Description)

	require.Len(t, get.Responses, 1)
	assert.Equal(t, "200", get.Responses[0].Code)
	assert.Equal(t, "all user items", get.Responses[0].Description)

	items := doc.Resources[1]
	require.Len(t, items.Methods, 1, "methods declared by the resource type are added")
	assert.Equal(t, "get", items.Methods[0].Method)
	assert.Equal(t, "List ITEMS", items.Methods[0].Description)
	assert.Empty(t, items.Methods[0].QueryParameters)

	assert.Contains(t, result.Warnings, `resource type "missing" not found`)
	assert.Contains(t, result.Warnings, `trait "unknown" not found`)

	usersData, ok := result.Data["/users"].(map[string]any)
	require.True(t, ok)
	getData, ok := usersData["get"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, getData, "queryParameters", "document data reflects applied traits")
	_, err = json.Marshal(result.Data)
	assert.NoError(t, err)
}

func TestParse_ResourceTypeInheritance(t *testing.T) {
	result, err := New().ParseBytes([]byte(`#%RAML 1.0
title: Inheritance
resourceTypes:
  base:
    get?:
      description: base get
    delete:
      description: remove one <<resourcePathName | !singularize>>
  member:
    type: base
    put:
      description: update <<resourcePathName>>
  a:
    type: b
  b:
    type: a
/widgets/{id}:
  type: member
  get:
    displayName: fetch
/gadgets:
  type: member
/loop:
  type: a
`))
	require.NoError(t, err)
	doc := result.Document

	widgets := doc.Resources[0]
	require.Equal(t, []string{"get", "put", "delete"}, methodNames(widgets))
	assert.Equal(t, "fetch", widgets.Methods[0].DisplayName)
	assert.Equal(t, "base get", widgets.Methods[0].Description)
	assert.Equal(t, "update widgets", widgets.Methods[1].Description)
	assert.Equal(t, "remove one widget", widgets.Methods[2].Description)

	gadgets := doc.Resources[1]
	assert.Equal(t, []string{"put", "delete"}, methodNames(gadgets), "optional methods apply only when declared")

	var cycle bool
	for _, w := range result.Warnings {
		if w == `resource type "a" inherits from itself` {
			cycle = true
		}
	}
	assert.True(t, cycle, "warnings: %v", result.Warnings)
}

func TestParse_TraitsOnResourceAndNullMethod(t *testing.T) {
	result, err := New().ParseBytes([]byte(`#%RAML 1.0
title: Resource traits
traits:
  tracked:
    headers:
      X-Trace-<<methodName | !uppercase>>:
        type: string
  paged:
    queryParameters:
      limit:
        default: <<max>>
/things:
  is: [tracked]
  get:
  post:
    is: [paged]
    headers:
      X-Trace-POST:
        description: own
`))
	require.NoError(t, err)

	things := result.Document.Resources[0]
	require.Equal(t, []string{"get", "post"}, methodNames(things))

	get := things.Methods[0]
	require.Len(t, get.Headers, 1)
	assert.Equal(t, "X-Trace-GET", get.Headers[0].Name)

	post := things.Methods[1]
	require.Len(t, post.Headers, 1)
	assert.Equal(t, "own", post.Headers[0].Description)
	require.Len(t, post.QueryParameters, 1)
	assert.Nil(t, post.QueryParameters[0].Default)
	assert.Contains(t, result.Warnings, `trait paged: parameter "max" not provided`)
}

func TestParse_UndeclaredTemplates(t *testing.T) {
	result, err := New().ParseBytes([]byte(`#%RAML 1.0
title: Nothing declared
/x:
  type: collection
  /y:
    get:
      is: [paged]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{
		`resource type "collection" not found`,
		`trait "paged" not found`,
	}, result.Warnings)
	assert.Equal(t, "collection", result.Document.Resources[0].Type)
}

func TestParse_LibraryTemplates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "libs/common.raml", `#%RAML 1.0 Library
traits:
  secured:
    headers:
      Authorization:
        description: token for <<resourcePath>>
resourceTypes:
  item:
    get:
      description: one <<resourcePathName>>
`)
	path := writeFile(t, dir, "api.raml", `#%RAML 1.0
title: Library templates
uses:
  common: libs/common.raml
/accounts/{id}:
  type: common.item
  get:
    is: [common.secured]
`)

	result, err := New().Parse(path)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	require.NotNil(t, result.Document.Library("common"))

	accounts := result.Document.Resources[0]
	require.Len(t, accounts.Methods, 1)
	get := accounts.Methods[0]
	assert.Equal(t, "one accounts", get.Description)
	require.Len(t, get.Headers, 1)
	assert.Equal(t, "Authorization", get.Headers[0].Name)
	assert.Equal(t, "token for /accounts/{id}", get.Headers[0].Description)
}

func TestTransform(t *testing.T) {
	tests := []struct {
		value, chain, want string
	}{
		{"users", "| !singularize", "user"},
		{"categories", "| !singularize", "category"},
		{"boxes", "| !singularize", "box"},
		{"user", "| !pluralize", "users"},
		{"category", "| !pluralize", "categories"},
		{"box", "| !pluralize", "boxes"},
		{"users", "| !uppercase", "USERS"},
		{"USERS", "| !lowercase", "users"},
		{"user_accounts", "| !uppercamelcase", "UserAccounts"},
		{"user-accounts", "| !lowercamelcase", "userAccounts"},
		{"UserAccounts", "| !lowerhyphencase", "user-accounts"},
		{"userAccounts", "| !upperunderscorecase", "USER_ACCOUNTS"},
		{"UserAccounts", "| !lowerunderscorecase", "user_accounts"},
		{"user accounts", "| !upperhyphencase", "USER-ACCOUNTS"},
		{"users", "| !singularize | !uppercase", "USER"},
		{"users", "", "users"},
		{"users", "| !unknown", "users"},
	}
	for _, tt := range tests {
		t.Run(tt.value+tt.chain, func(t *testing.T) {
			assert.Equal(t, tt.want, transform(tt.value, tt.chain))
		})
	}
}

func TestResourcePathName(t *testing.T) {
	assert.Equal(t, "users", resourcePathName("/users"))
	assert.Equal(t, "users", resourcePathName("/users/{id}"))
	assert.Equal(t, "orders", resourcePathName("/users/{id}/orders"))
	assert.Equal(t, "", resourcePathName("/{id}"))
}

func methodNames(res *Resource) []string {
	names := make([]string, 0, len(res.Methods))
	for _, m := range res.Methods {
		names = append(names, m.Method)
	}
	return names
}
