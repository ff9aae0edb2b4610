package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

// expectedHead computes the column flags of rows from scratch.
func expectedHead(rows []ParameterRow) TableHead {
	var h TableHead
	for _, r := range rows {
		h.Name = h.Name || r.Name != ""
		h.Type = h.Type || r.Type != ""
		h.Description = h.Description || r.Description != ""
		h.Example = h.Example || r.Example != nil
		h.Default = h.Default || r.Default != nil
		h.MinLength = h.MinLength || r.MinLength != nil
		h.MaxLength = h.MaxLength || r.MaxLength != nil
		h.Required = h.Required || r.IsRequired
	}
	return h
}

func TestParameterTable_HeadFlags(t *testing.T) {
	tests := []struct {
		name string
		rows []ParameterRow
	}{
		{"empty", nil},
		{"name only", []ParameterRow{{Name: "id"}}},
		{"typed", []ParameterRow{{Name: "id", Type: "integer"}, {Name: "q"}}},
		{"example false value", []ParameterRow{{Name: "flag", Example: false}}},
		{"zero length", []ParameterRow{{Name: "code", MinLength: intPtr(0)}}},
		{"required late", []ParameterRow{{Name: "a"}, {Name: "b", IsRequired: true}}},
		{"everything", []ParameterRow{{
			Name: "limit", Type: "integer", Description: "max", IsRequired: true,
			Example: 10, Default: 20, MinLength: intPtr(1), MaxLength: intPtr(3), Repeat: boolPtr(false),
		}}},
		{"repeat does not flag", []ParameterRow{{Name: "tags", Repeat: boolPtr(true)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewParameterTable()
			for _, r := range tt.rows {
				table.AddRow(r)
			}
			assert.Equal(t, expectedHead(tt.rows), table.Head)
			assert.Len(t, table.Rows, len(tt.rows))
		})
	}
}

func TestParameterTable_MergeIsMonotone(t *testing.T) {
	full := NewParameterTable()
	full.AddRow(ParameterRow{Name: "id", Type: "integer", Description: "identifier", IsRequired: true})

	empty := NewParameterTable()
	before := full.Head
	full.Merge(empty)
	full.Merge(nil)
	assert.Equal(t, before, full.Head, "merging empty tables never lowers flags")
	assert.Len(t, full.Rows, 1)

	sparse := NewParameterTable()
	sparse.AddRow(ParameterRow{Name: "q", Default: "x"})
	full.Merge(sparse)
	assert.True(t, full.Head.Required)
	assert.True(t, full.Head.Description)
	assert.True(t, full.Head.Default)
	assert.Equal(t, []string{"id", "q"}, rowNames(full))

	empty.Merge(full)
	assert.Equal(t, full.Head, empty.Head)
}

func TestParameterTable_IsEmpty(t *testing.T) {
	var nilTable *ParameterTable
	assert.True(t, nilTable.IsEmpty())
	assert.True(t, NewParameterTable().IsEmpty())
	assert.NotNil(t, NewParameterTable().Rows)
}

func rowNames(t *ParameterTable) []string {
	names := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		names = append(names, r.Name)
	}
	return names
}
