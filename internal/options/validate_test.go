package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		wantErr string
	}{
		{"none", []bool{false, false, false}, "no source"},
		{"no args", nil, "no source"},
		{"one", []bool{false, true, false}, ""},
		{"two", []bool{true, true, false}, "many sources"},
		{"all", []bool{true, true, true}, "many sources"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource("no source", "many sources", tt.sources...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
