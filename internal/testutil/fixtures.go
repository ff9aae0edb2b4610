// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ramlo/ramlo/raml"
)

// UsersAPI is a small RAML 1.0 API: a /users resource with a GET method
// taking an optional integer limit and returning a JSON example, and a
// nested /users/{id} resource.
const UsersAPI = `#%RAML 1.0
title: Users API
version: v1
baseUri: https://api.example.com/{version}
protocols: [HTTPS]
description: Manage *users*.
documentation:
  - title: Getting started
    content: Call **GET /users**.
securitySchemes:
  oauth_2_0:
    type: OAuth 2.0
    description: OAuth 2.0 access tokens
securedBy: [oauth_2_0]
types:
  User:
    type: object
    properties:
      id: integer
      name?: string
/users:
  get:
    securedBy: [oauth_2_0]
    description: List users
    queryParameters:
      limit:
        type: integer
        required: false
        example: 10
    responses:
      200:
        body:
          application/json:
            example: {"id": 1}
  /{id}:
    get:
      responses:
        404:
          description: Not found
`

// NewSimpleDocument creates a minimal document with a single /users resource
// declaring a GET method.
func NewSimpleDocument() *raml.Document {
	return &raml.Document{
		Title:       "Test API",
		Version:     "v1",
		RAMLVersion: raml.RAML10,
		BaseURI:     "https://api.example.com/{version}",
		Resources: []*raml.Resource{
			{
				RelativeURI:         "/users",
				CompleteRelativeURI: "/users",
				Methods:             []*raml.Method{{Method: "get"}},
			},
		},
		Raw: map[string]any{"title": "Test API"},
	}
}

// NewInheritanceDocument creates a document whose library "lib" declares
// Base (id), Named extends Base (name), and Person extends Named (email), and
// whose root declares Employee extending lib.Person through a local parent
// chain. A POST /people method takes a lib.Person body.
func NewInheritanceDocument() *raml.Document {
	prop := func(name, typ string, required bool) *raml.TypeDeclaration {
		return &raml.TypeDeclaration{Name: name, Type: []string{typ}, Required: required}
	}
	lib := &raml.Library{
		Key: "lib",
		Types: []*raml.TypeDeclaration{
			{Name: "Base", Type: []string{"object"}, Properties: []*raml.TypeDeclaration{prop("id", "integer", true)}},
			{Name: "Named", Type: []string{"Base"}, Properties: []*raml.TypeDeclaration{prop("name", "string", false)}},
			{Name: "Person", Type: []string{"Named"}, Properties: []*raml.TypeDeclaration{prop("email", "string", true)}},
		},
	}
	doc := NewSimpleDocument()
	doc.Uses = []*raml.Library{lib}
	doc.Types = []*raml.TypeDeclaration{
		{Name: "Employee", Type: []string{"lib.Person"}, Properties: []*raml.TypeDeclaration{prop("badge", "string", true)}},
	}
	doc.Resources = append(doc.Resources, &raml.Resource{
		RelativeURI:         "/people",
		CompleteRelativeURI: "/people",
		Methods: []*raml.Method{
			{
				Method: "post",
				Body:   []*raml.TypeDeclaration{{Name: "application/json", Type: []string{"lib.Person"}}},
			},
		},
	})
	return doc
}

// WriteTempRAML writes content to api.raml in a temporary directory and
// returns its path. The file is removed when the test completes.
func WriteTempRAML(t *testing.T, content string) string {
	t.Helper()
	return WriteTempFiles(t, map[string]string{"api.raml": content}, "api.raml")
}

// WriteTempFiles writes files (relative path -> content) into a temporary
// directory and returns the path of the file named main.
func WriteTempFiles(t *testing.T, files map[string]string, main string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write temporary file %s: %v", name, err)
		}
	}
	return filepath.Join(dir, main)
}
