package dialect

import (
	"strings"
)

// SQLiteDialect reads sqlite_master through the pragma table-valued functions.
// SQLite has a single schema per connection, so the schema argument is ignored.
// Foreign keys are unnamed in SQLite; they are named FK_<table>_<id>.
type SQLiteDialect struct{}

func (d *SQLiteDialect) TablesQuery(schema, pattern string) (string, []any) {
	return `SELECT name, CASE type WHEN 'view' THEN 'VIEW' ELSE 'TABLE' END
FROM sqlite_master
WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite\_%' ESCAPE '\' AND name LIKE ?
ORDER BY name`, []any{pattern}
}

func (d *SQLiteDialect) ColumnsQuery(schema string) (string, []any) {
	return `SELECT m.name, p.name, p.type, 0,
    CASE WHEN p."notnull" = 1 THEN 'NO' ELSE 'YES' END,
    CASE WHEN p.pk > 0 THEN 'PRI' ELSE '' END
FROM sqlite_master AS m
JOIN pragma_table_info(m.name) AS p
WHERE m.type IN ('table', 'view') AND m.name NOT LIKE 'sqlite\_%' ESCAPE '\'
ORDER BY m.name, p.cid`, nil
}

func (d *SQLiteDialect) ForeignKeysQuery(schema string) (string, []any) {
	return `SELECT m.name, 'FK_' || m.name || '_' || f.id, f.seq + 1, f."from", f."table", COALESCE(f."to", '')
FROM sqlite_master AS m
JOIN pragma_foreign_key_list(m.name) AS f
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite\_%' ESCAPE '\'
ORDER BY m.name, f.id, f.seq`, nil
}

func (d *SQLiteDialect) Placeholder(index int) string {
	return "?"
}

// NormalizeType splits the declared type ("VARCHAR(100)") into name and size,
// since SQLite keeps no separate length column.
func (d *SQLiteDialect) NormalizeType(sqlType string, size int) (string, int) {
	name, n := SplitTypeSize(sqlType, size)
	return strings.ToUpper(name), n
}

func (d *SQLiteDialect) TypeCode(typeName string) int {
	return DefaultTypeCode(typeName)
}

func (d *SQLiteDialect) GetSchemaName(input string) string {
	if input == "" {
		return "main"
	}
	return input
}
