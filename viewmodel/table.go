package viewmodel

// TableHead records which columns of a ParameterTable hold a value in at
// least one row. Renderers use it to hide empty columns.
type TableHead struct {
	Name        bool `json:"name" yaml:"name"`
	Type        bool `json:"type" yaml:"type"`
	Description bool `json:"description" yaml:"description"`
	Example     bool `json:"example" yaml:"example"`
	Default     bool `json:"default" yaml:"default"`
	MinLength   bool `json:"minLength" yaml:"minLength"`
	MaxLength   bool `json:"maxLength" yaml:"maxLength"`
	Required    bool `json:"required" yaml:"required"`
}

// raise sets every flag that is set in other.
func (h *TableHead) raise(other TableHead) {
	h.Name = h.Name || other.Name
	h.Type = h.Type || other.Type
	h.Description = h.Description || other.Description
	h.Example = h.Example || other.Example
	h.Default = h.Default || other.Default
	h.MinLength = h.MinLength || other.MinLength
	h.MaxLength = h.MaxLength || other.MaxLength
	h.Required = h.Required || other.Required
}

// ParameterRow is one parameter or property.
type ParameterRow struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	IsRequired  bool   `json:"isRequired" yaml:"isRequired"`
	Example     any    `json:"example" yaml:"example"`
	Default     any    `json:"default" yaml:"default"`
	MinLength   *int   `json:"minLength" yaml:"minLength"`
	MaxLength   *int   `json:"maxLength" yaml:"maxLength"`
	Repeat      *bool  `json:"repeat" yaml:"repeat"`
	// NestedProperties is the property table of an object-valued property
	NestedProperties *ParameterTable `json:"nestedProperties" yaml:"nestedProperties"`
}

// head returns the column flags this row raises.
func (r ParameterRow) head() TableHead {
	return TableHead{
		Name:        r.Name != "",
		Type:        r.Type != "",
		Description: r.Description != "",
		Example:     r.Example != nil,
		Default:     r.Default != nil,
		MinLength:   r.MinLength != nil,
		MaxLength:   r.MaxLength != nil,
		Required:    r.IsRequired,
	}
}

// ParameterTable is a uniform table of parameters or properties.
//
// A head flag is set exactly when at least one row has a value for the
// column. Flags are only ever raised, by AddRow and Merge alike.
type ParameterTable struct {
	Head TableHead      `json:"thead" yaml:"thead"`
	Rows []ParameterRow `json:"tbody" yaml:"tbody"`
}

// NewParameterTable returns an empty table.
func NewParameterTable() *ParameterTable {
	return &ParameterTable{Rows: make([]ParameterRow, 0)}
}

// AddRow appends row and raises the flags it has values for.
func (t *ParameterTable) AddRow(row ParameterRow) {
	t.Rows = append(t.Rows, row)
	t.Head.raise(row.head())
}

// Merge appends the rows of other and raises its flags.
func (t *ParameterTable) Merge(other *ParameterTable) {
	if other == nil {
		return
	}
	t.Rows = append(t.Rows, other.Rows...)
	t.Head.raise(other.Head)
}

// IsEmpty reports whether the table has no rows.
func (t *ParameterTable) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}
