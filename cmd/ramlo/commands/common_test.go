package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramlo/ramlo/ramlerrors"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid json", FormatJSON, false},
		{"valid yaml", FormatYAML, false},
		{"text is not structured", FormatText, true},
		{"invalid format", "xml", true},
		{"empty format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestMarshalStructured(t *testing.T) {
	data := map[string]any{"apiTitle": "Users API", "apiResources": []any{}}

	t.Run("json indented", func(t *testing.T) {
		out, err := MarshalStructured(data, FormatJSON, 2)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"apiResources\": [],\n  \"apiTitle\": \"Users API\"\n}\n", string(out))
	})

	t.Run("json compact", func(t *testing.T) {
		out, err := MarshalStructured(data, FormatJSON, 0)
		require.NoError(t, err)
		assert.Equal(t, "{\"apiResources\":[],\"apiTitle\":\"Users API\"}\n", string(out))
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := MarshalStructured(data, FormatYAML, 2)
		require.NoError(t, err)
		assert.Contains(t, string(out), "apiTitle: Users API")
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := MarshalStructured(data, FormatText, 2)
		assert.Error(t, err)
	})

	t.Run("unmarshalable", func(t *testing.T) {
		_, err := MarshalStructured(map[string]any{"c": make(chan int)}, FormatJSON, 2)
		assert.Error(t, err)
	})
}

func TestOutputStructured(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputStructured(&buf, []string{"a"}, FormatJSON, 0))
	assert.Equal(t, "[\"a\"]\n", buf.String())
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.raml", FormatSpecPath("api.raml"))
}

func TestIsNotRAML(t *testing.T) {
	assert.True(t, IsNotRAML(&ramlerrors.ParseError{Message: "missing header"}))
	assert.True(t, IsNotRAML(fmt.Errorf("loading: %w", &ramlerrors.ParseError{Message: "x"})))
	assert.True(t, IsNotRAML(&ramlerrors.IncludeError{Target: "a.raml", Message: "x"}))
	assert.False(t, IsNotRAML(errors.New("boom")))
	assert.False(t, IsNotRAML(&ramlerrors.ConfigError{Option: "output.format"}))
}

func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "api.raml")

	t.Run("distinct output", func(t *testing.T) {
		assert.NoError(t, ValidateOutputPath(filepath.Join(dir, "out.json"), []string{input, StdinFilePath}))
	})

	t.Run("overwrites input", func(t *testing.T) {
		err := ValidateOutputPath(input, []string{input})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "would overwrite input file")
	})

	t.Run("symlink", func(t *testing.T) {
		target := filepath.Join(dir, "target.json")
		require.NoError(t, os.WriteFile(target, nil, 0o600))
		link := filepath.Join(dir, "link.json")
		require.NoError(t, os.Symlink(target, link))
		err := ValidateOutputPath(link, []string{input})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "refusing to write to symlink")
	})
}
