package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramlo/ramlo/internal/testutil"
	"github.com/ramlo/ramlo/viewmodel"
)

func TestWriteResources(t *testing.T) {
	result, err := viewmodel.BuildWithOptions(
		viewmodel.WithBytes([]byte(testutil.UsersAPI)),
		viewmodel.WithMarkdown(false),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteResources(&buf, result.Document)
	out := buf.String()

	assert.Contains(t, out, "Users API (v1)\n")
	assert.Contains(t, out, "https://api.example.com/{version}\n")
	assert.Contains(t, out, "Users  /users\n")
	assert.Contains(t, out, "  GET     /users  [oauth_2_0]\n")
	assert.Contains(t, out, "  GET     /users/{id}")
}

func TestWriteResources_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteResources(&buf, &viewmodel.APIDocument{Title: "Empty"})
	assert.Equal(t, "Empty\n", buf.String())
}

func TestHandleResources_Errors(t *testing.T) {
	t.Run("no arguments", func(t *testing.T) {
		err := HandleResources(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one file path")
	})

	t.Run("not RAML", func(t *testing.T) {
		input := testutil.WriteTempRAML(t, "swagger: '2.0'\n")
		err := HandleResources([]string{input})
		require.Error(t, err)
		assert.True(t, IsNotRAML(err))
	})

	t.Run("missing file", func(t *testing.T) {
		err := HandleResources([]string{filepath.Join(t.TempDir(), "missing.raml")})
		assert.True(t, IsNotRAML(err))
	})
}
