package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// ErrDDLUnsupported is returned by DDL for dialects that cannot print their
// own CREATE statements.
var ErrDDLUnsupported = errors.New("ddl dump not supported for this dialect")

// Inspector extracts the live schema through an open gorm connection.
type Inspector struct {
	db *gorm.DB
}

func NewInspector(db *gorm.DB) *Inspector {
	return &Inspector{db: db}
}

func (i *Inspector) dialect() string {
	return i.db.Dialector.Name()
}

// Inspect extracts the requested tables, or every table when none are given.
func (i *Inspector) Inspect(ctx context.Context, tables []string) (*Schema, error) {
	db := i.db.WithContext(ctx)

	tableNames, err := i.tableNames(db, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	var out []Table
	for _, name := range tableNames {
		var (
			table *Table
			err   error
		)
		if i.dialect() == "sqlite" {
			table, err = extractSQLiteTable(db, name)
		} else {
			table, err = extractTable(db, i.dialect(), name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to extract table %s: %w", name, err)
		}
		out = append(out, *table)
	}
	return &Schema{Tables: out}, nil
}

func (i *Inspector) tableNames(db *gorm.DB, requested []string) ([]string, error) {
	if len(requested) > 0 {
		return requested, nil
	}

	all, err := db.Migrator().GetTables()
	if err != nil {
		return nil, err
	}
	tables := make([]string, 0, len(all))
	for _, name := range all {
		if strings.HasPrefix(name, "sqlite_") {
			continue
		}
		tables = append(tables, name)
	}
	sort.Strings(tables)
	return tables, nil
}

// DDL returns the CREATE statements the database holds for the tables, one
// per table, in the order given.
func (i *Inspector) DDL(ctx context.Context, tables []string) (string, error) {
	db := i.db.WithContext(ctx)

	tableNames, err := i.tableNames(db, tables)
	if err != nil {
		return "", fmt.Errorf("failed to get table names: %w", err)
	}

	var b strings.Builder
	for _, name := range tableNames {
		var stmts []string
		switch i.dialect() {
		case "sqlite":
			stmts, err = sqliteDDL(db, name)
		case "mysql":
			stmts, err = mysqlDDL(db, name)
		default:
			return "", fmt.Errorf("%w: %s", ErrDDLUnsupported, i.dialect())
		}
		if err != nil {
			return "", fmt.Errorf("failed to read ddl for %s: %w", name, err)
		}
		for _, stmt := range stmts {
			b.WriteString(strings.TrimSpace(stmt))
			b.WriteString(";\n")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func mysqlDDL(db *gorm.DB, table string) ([]string, error) {
	var name, ddl string
	row := db.Raw("SHOW CREATE TABLE " + quoteIdent(table, '`')).Row()
	if err := row.Scan(&name, &ddl); err != nil {
		return nil, err
	}
	return []string{ddl}, nil
}

func quoteIdent(name string, q rune) string {
	s := string(q)
	return s + strings.ReplaceAll(name, s, s+s) + s
}
