package schema

import (
	"fmt"
	"io"
	"strings"
)

// TextFormatter writes a compact, one-line-per-column rendering of a schema.
type TextFormatter struct {
	writer io.Writer
}

func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

func (f *TextFormatter) Format(s *Schema) error {
	for i, table := range s.Tables {
		if i > 0 {
			if _, err := fmt.Fprintln(f.writer); err != nil {
				return err
			}
		}
		if err := f.formatTable(table); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatTable(table Table) error {
	var b strings.Builder

	pk := ""
	if len(table.PrimaryKey) > 0 {
		pk = fmt.Sprintf(" (PK: %s)", strings.Join(table.PrimaryKey, ", "))
	}
	fmt.Fprintf(&b, "TABLE %s%s\n", table.Name, pk)

	for _, col := range table.Columns {
		fmt.Fprintf(&b, "  %s\n", formatColumn(col))
	}

	if len(table.ForeignKeys) > 0 {
		b.WriteString("\n  FOREIGN KEYS:\n")
		for _, fk := range table.ForeignKeys {
			fmt.Fprintf(&b, "    %s → %s.%s ON DELETE %s\n", fk.Column, fk.TargetTable, fk.TargetColumn, fk.OnDelete)
		}
	}

	if len(table.Indexes) > 0 {
		b.WriteString("\n  INDEXES:\n")
		for _, idx := range table.Indexes {
			unique := ""
			if idx.IsUnique {
				unique = " UNIQUE"
			}
			fmt.Fprintf(&b, "    %s (%s)%s\n", idx.Name, strings.Join(idx.Columns, ", "), unique)
		}
	}

	_, err := io.WriteString(f.writer, b.String())
	return err
}

func formatColumn(col Column) string {
	parts := []string{col.Name + ":", col.Type}
	if col.IsUnique {
		parts = append(parts, "UNIQUE")
	}
	if !col.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if col.DefaultValue != nil {
		parts = append(parts, "DEFAULT "+*col.DefaultValue)
	}
	return strings.Join(parts, " ")
}
