package commands

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramlo/ramlo/ramlerrors"
)

func TestHandleMCP_Help(t *testing.T) {
	assert.NoError(t, HandleMCP([]string{"-h"}))
}

func TestHandleMCP_ConfigErrors(t *testing.T) {
	err := HandleMCP([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ramlerrors.ErrConfig))

	err = HandleMCP([]string{"--unknown"})
	assert.Error(t, err)
}
