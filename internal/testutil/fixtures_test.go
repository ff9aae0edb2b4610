package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramlo/ramlo/raml"
)

func TestUsersAPI_Parses(t *testing.T) {
	result, err := raml.New().ParseBytes([]byte(UsersAPI))
	require.NoError(t, err)
	assert.Equal(t, "Users API", result.Document.Title)
	require.Len(t, result.Document.Resources, 1)
	assert.Len(t, result.Document.Resources[0].Resources, 1)
}

func TestNewSimpleDocument(t *testing.T) {
	doc := NewSimpleDocument()
	assert.Equal(t, "Test API", doc.Title)
	assert.Equal(t, raml.RAML10, doc.RAMLVersion)
	require.Len(t, doc.Resources, 1)
	assert.Equal(t, "/users", doc.Resources[0].CompleteRelativeURI)
	require.Len(t, doc.Resources[0].Methods, 1)
}

func TestNewInheritanceDocument(t *testing.T) {
	doc := NewInheritanceDocument()
	lib := doc.Library("lib")
	require.NotNil(t, lib)
	assert.Equal(t, []string{"Named"}, lib.Type("Person").Type)
	assert.Equal(t, []string{"Base"}, lib.Type("Named").Type)
	require.Len(t, doc.Types, 1)
	assert.Len(t, doc.Resources, 2)
}

func TestWriteTempRAML(t *testing.T) {
	path := WriteTempRAML(t, UsersAPI)
	assert.Equal(t, "api.raml", filepath.Base(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, UsersAPI, string(data))
}

func TestWriteTempFiles(t *testing.T) {
	path := WriteTempFiles(t, map[string]string{
		"api.raml":        "#%RAML 1.0\ntitle: x\n",
		"libs/types.raml": "#%RAML 1.0 Library\n",
	}, "api.raml")
	_, err := os.Stat(filepath.Join(filepath.Dir(path), "libs", "types.raml"))
	assert.NoError(t, err)
}
