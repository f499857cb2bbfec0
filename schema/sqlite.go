package schema

import (
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type sqliteColumn struct {
	CID     int            `gorm:"column:cid"`
	Name    string         `gorm:"column:name"`
	Type    string         `gorm:"column:type"`
	NotNull int            `gorm:"column:notnull"`
	Default sql.NullString `gorm:"column:dflt_value"`
	PK      int            `gorm:"column:pk"`
}

type sqliteForeignKey struct {
	ID       int    `gorm:"column:id"`
	Seq      int    `gorm:"column:seq"`
	Table    string `gorm:"column:table"`
	From     string `gorm:"column:from"`
	To       string `gorm:"column:to"`
	OnUpdate string `gorm:"column:on_update"`
	OnDelete string `gorm:"column:on_delete"`
	Match    string `gorm:"column:match"`
}

type sqliteIndex struct {
	Seq     int    `gorm:"column:seq"`
	Name    string `gorm:"column:name"`
	Unique  int    `gorm:"column:unique"`
	Origin  string `gorm:"column:origin"`
	Partial int    `gorm:"column:partial"`
}

type sqliteIndexColumn struct {
	SeqNo int            `gorm:"column:seqno"`
	CID   int            `gorm:"column:cid"`
	Name  sql.NullString `gorm:"column:name"`
}

func pragma(name, table string) string {
	return fmt.Sprintf("PRAGMA %s(%s)", name, quoteIdent(table, '"'))
}

// extractSQLiteTable reads one table through the PRAGMA interface. Every
// result set is fully read before the next query; the pool may hold a single
// connection.
func extractSQLiteTable(db *gorm.DB, tableName string) (*Table, error) {
	table := &Table{Name: tableName}

	var cols []sqliteColumn
	if err := db.Raw(pragma("table_info", tableName)).Scan(&cols).Error; err != nil {
		return nil, fmt.Errorf("failed to extract columns: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s does not exist", tableName)
	}

	for _, c := range cols {
		col := Column{
			Name:     c.Name,
			Type:     strings.ToLower(c.Type),
			Nullable: c.NotNull == 0 && c.PK == 0,
		}
		if c.Default.Valid {
			v := c.Default.String
			col.DefaultValue = &v
		}
		if c.PK > 0 {
			table.PrimaryKey = append(table.PrimaryKey, c.Name)
		}
		table.Columns = append(table.Columns, col)
	}

	var fks []sqliteForeignKey
	if err := db.Raw(pragma("foreign_key_list", tableName)).Scan(&fks).Error; err != nil {
		return nil, fmt.Errorf("failed to extract relations: %w", err)
	}
	for _, fk := range fks {
		table.ForeignKeys = append(table.ForeignKeys, ForeignKey{
			Column:       fk.From,
			TargetTable:  fk.Table,
			TargetColumn: fk.To,
			OnDelete:     normalizeAction(fk.OnDelete),
		})
	}

	var idxs []sqliteIndex
	if err := db.Raw(pragma("index_list", tableName)).Scan(&idxs).Error; err != nil {
		return nil, fmt.Errorf("failed to extract indexes: %w", err)
	}
	for _, idx := range idxs {
		var idxCols []sqliteIndexColumn
		if err := db.Raw(pragma("index_info", idx.Name)).Scan(&idxCols).Error; err != nil {
			return nil, fmt.Errorf("failed to extract index %s: %w", idx.Name, err)
		}

		var columns []string
		for _, ic := range idxCols {
			if ic.Name.Valid {
				columns = append(columns, ic.Name.String)
			}
		}
		if len(columns) == 0 {
			continue
		}

		unique := idx.Unique == 1
		if unique && len(columns) == 1 {
			if col := table.Column(columns[0]); col != nil {
				col.IsUnique = true
			}
		}
		// autoindexes back inline UNIQUE/PRIMARY KEY clauses
		if strings.HasPrefix(idx.Name, "sqlite_autoindex") {
			continue
		}
		table.Indexes = append(table.Indexes, Index{
			Name:     idx.Name,
			Columns:  columns,
			IsUnique: unique,
		})
	}

	return table, nil
}

func sqliteDDL(db *gorm.DB, table string) ([]string, error) {
	var stmts []string
	err := db.Raw(`
		SELECT sql
		FROM sqlite_master
		WHERE tbl_name = ? AND sql IS NOT NULL
		ORDER BY CASE type WHEN 'table' THEN 0 ELSE 1 END, name
	`, table).Scan(&stmts).Error
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, fmt.Errorf("table %s does not exist", table)
	}
	return stmts, nil
}
