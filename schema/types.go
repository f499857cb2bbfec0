// Package schema reads back the table layout the ORM created: columns,
// defaults, unique indexes and foreign keys with their ON DELETE actions.
package schema

import "strings"

// Schema is the introspected layout of a set of tables.
type Schema struct {
	Tables []Table
}

// Table returns the named table, or nil.
func (s *Schema) Table(name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
	Indexes     []Index
	PrimaryKey  []string
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// ForeignKey returns the foreign key declared on column, or nil.
func (t *Table) ForeignKey(column string) *ForeignKey {
	for i := range t.ForeignKeys {
		if t.ForeignKeys[i].Column == column {
			return &t.ForeignKeys[i]
		}
	}
	return nil
}

type Column struct {
	Name         string
	Type         string
	Nullable     bool
	DefaultValue *string
	IsUnique     bool
}

// Default returns the default expression with surrounding quotes removed.
func (c Column) Default() (string, bool) {
	if c.DefaultValue == nil {
		return "", false
	}
	return strings.Trim(*c.DefaultValue, `"'`), true
}

type ForeignKey struct {
	Column       string
	TargetTable  string
	TargetColumn string
	OnDelete     string // CASCADE, SET NULL, NO ACTION, ...
}

type Index struct {
	Name     string
	Columns  []string
	IsUnique bool
}

func normalizeAction(action string) string {
	action = strings.ToUpper(strings.TrimSpace(action))
	if action == "" {
		return "NO ACTION"
	}
	return action
}
