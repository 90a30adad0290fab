package dialect

import (
	"fmt"
)

type PostgresDialect struct{}

func (d *PostgresDialect) TablesQuery(schema, pattern string) (string, []any) {
	return `SELECT table_name, table_type FROM information_schema.tables WHERE table_schema = $1 AND table_name LIKE $2 ORDER BY table_name`,
		[]any{d.GetSchemaName(schema), pattern}
}

func (d *PostgresDialect) ColumnsQuery(schema string) (string, []any) {
	// UDT_NAME is closer to what the JDBC driver reports than DATA_TYPE.
	// Subquery used to fetch PRIMARY KEY membership per column.
	return `SELECT
    c.table_name,
    c.column_name,
    c.udt_name,
    COALESCE(c.character_maximum_length, c.numeric_precision, c.datetime_precision, 0),
    c.is_nullable,
    COALESCE((SELECT 'PRI' FROM information_schema.table_constraints tc
     JOIN information_schema.key_column_usage kcu
       ON tc.constraint_schema = kcu.constraint_schema AND tc.constraint_name = kcu.constraint_name
     WHERE tc.constraint_type = 'PRIMARY KEY'
     AND kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name AND kcu.column_name = c.column_name LIMIT 1), '') AS column_key
FROM information_schema.columns c
WHERE c.table_schema = $1
ORDER BY c.table_name, c.ordinal_position`, []any{d.GetSchemaName(schema)}
}

// ForeignKeysQuery reads pg_constraint directly. Foreign key names are only
// unique per table in Postgres, so information_schema cannot join a key to
// its columns by name alone.
func (d *PostgresDialect) ForeignKeysQuery(schema string) (string, []any) {
	return `SELECT cl.relname, con.conname, k.ord, att.attname, rcl.relname, ratt.attname
FROM pg_catalog.pg_constraint con
JOIN pg_catalog.pg_class cl ON cl.oid = con.conrelid
JOIN pg_catalog.pg_namespace ns ON ns.oid = cl.relnamespace
JOIN pg_catalog.pg_class rcl ON rcl.oid = con.confrelid
CROSS JOIN LATERAL unnest(con.conkey, con.confkey) WITH ORDINALITY AS k(attnum, refnum, ord)
JOIN pg_catalog.pg_attribute att ON att.attrelid = con.conrelid AND att.attnum = k.attnum
JOIN pg_catalog.pg_attribute ratt ON ratt.attrelid = con.confrelid AND ratt.attnum = k.refnum
WHERE con.contype = 'f' AND ns.nspname = $1
ORDER BY cl.relname, con.conname, k.ord`, []any{d.GetSchemaName(schema)}
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) NormalizeType(sqlType string, size int) (string, int) {
	return DefaultNormalizeType(sqlType, size)
}

func (d *PostgresDialect) TypeCode(typeName string) int {
	return DefaultTypeCode(typeName)
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}
