package schema

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type foreignKeyRow struct {
	ColumnName       string `gorm:"column:column_name"`
	ReferencedTable  string `gorm:"column:referenced_table"`
	ReferencedColumn string `gorm:"column:referenced_column"`
	DeleteRule       string `gorm:"column:delete_rule"`
}

const mysqlForeignKeysQuery = `
	SELECT
		k.COLUMN_NAME AS column_name,
		k.REFERENCED_TABLE_NAME AS referenced_table,
		k.REFERENCED_COLUMN_NAME AS referenced_column,
		r.DELETE_RULE AS delete_rule
	FROM information_schema.KEY_COLUMN_USAGE k
	JOIN information_schema.REFERENTIAL_CONSTRAINTS r
		ON r.CONSTRAINT_SCHEMA = k.CONSTRAINT_SCHEMA
		AND r.CONSTRAINT_NAME = k.CONSTRAINT_NAME
		AND r.TABLE_NAME = k.TABLE_NAME
	WHERE k.TABLE_SCHEMA = DATABASE()
		AND k.TABLE_NAME = ?
		AND k.REFERENCED_TABLE_NAME IS NOT NULL
	ORDER BY k.COLUMN_NAME
`

const postgresForeignKeysQuery = `
	SELECT
		kcu.column_name AS column_name,
		ccu.table_name AS referenced_table,
		ccu.column_name AS referenced_column,
		rc.delete_rule AS delete_rule
	FROM information_schema.table_constraints tc
	JOIN information_schema.key_column_usage kcu
		ON tc.constraint_name = kcu.constraint_name
		AND tc.table_schema = kcu.table_schema
	JOIN information_schema.constraint_column_usage ccu
		ON ccu.constraint_name = tc.constraint_name
		AND ccu.table_schema = tc.table_schema
	JOIN information_schema.referential_constraints rc
		ON rc.constraint_name = tc.constraint_name
		AND rc.constraint_schema = tc.table_schema
	WHERE tc.constraint_type = 'FOREIGN KEY'
		AND tc.table_schema = current_schema()
		AND tc.table_name = ?
	ORDER BY kcu.column_name
`

// extractTable reads one table through gorm's migrator (columns, indexes)
// and information_schema (foreign keys). Used for mysql and postgres.
func extractTable(db *gorm.DB, dialect, tableName string) (*Table, error) {
	table := &Table{Name: tableName}
	migrator := db.Migrator()

	columnTypes, err := migrator.ColumnTypes(tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to extract columns: %w", err)
	}
	if len(columnTypes) == 0 {
		return nil, fmt.Errorf("table %s does not exist", tableName)
	}
	for _, ct := range columnTypes {
		col := Column{
			Name: ct.Name(),
			Type: strings.ToLower(ct.DatabaseTypeName()),
		}
		if full, ok := ct.ColumnType(); ok && full != "" {
			col.Type = strings.ToLower(full)
		}
		if nullable, ok := ct.Nullable(); ok {
			col.Nullable = nullable
		}
		if unique, ok := ct.Unique(); ok {
			col.IsUnique = unique
		}
		if def, ok := ct.DefaultValue(); ok {
			col.DefaultValue = &def
		}
		if pk, ok := ct.PrimaryKey(); ok && pk {
			table.PrimaryKey = append(table.PrimaryKey, ct.Name())
			col.Nullable = false
		}
		table.Columns = append(table.Columns, col)
	}

	indexes, err := migrator.GetIndexes(tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to extract indexes: %w", err)
	}
	for _, idx := range indexes {
		if pk, _ := idx.PrimaryKey(); pk {
			continue
		}
		unique, _ := idx.Unique()
		cols := idx.Columns()
		if unique && len(cols) == 1 {
			if col := table.Column(cols[0]); col != nil {
				col.IsUnique = true
			}
		}
		table.Indexes = append(table.Indexes, Index{
			Name:     idx.Name(),
			Columns:  cols,
			IsUnique: unique,
		})
	}

	query := mysqlForeignKeysQuery
	if dialect == "postgres" {
		query = postgresForeignKeysQuery
	}
	var fks []foreignKeyRow
	if err := db.Raw(query, tableName).Scan(&fks).Error; err != nil {
		return nil, fmt.Errorf("failed to extract relations: %w", err)
	}
	for _, fk := range fks {
		table.ForeignKeys = append(table.ForeignKeys, ForeignKey{
			Column:       fk.ColumnName,
			TargetTable:  fk.ReferencedTable,
			TargetColumn: fk.ReferencedColumn,
			OnDelete:     normalizeAction(fk.DeleteRule),
		})
	}

	return table, nil
}
