package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalizeFirst(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"users", "Users"},
		{"Users", "Users"},
		{"users/{id}", "Users/{id}"},
		{"{id}", "{id}"},
		{"élan", "Élan"},
		{"a", "A"},
		{"userProfile", "UserProfile"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CapitalizeFirst(tt.input))
		})
	}
}

func TestResourceName(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{"/users", "Users"},
		{"/users/{id}", "Users/{id}"},
		{"/", ""},
		{"", ""},
		{"health", "Health"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResourceName(tt.uri))
		})
	}
}
