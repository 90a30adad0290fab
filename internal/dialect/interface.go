package dialect

// Dialect abstracts database-specific catalog access.
//
// Every query method returns the SQL text together with its bind arguments so
// that dialects needing the same value twice (or none at all) can say so.
type Dialect interface {
	// Metadata Queries (Schema Introspection)
	//
	// TablesQuery yields (table name, table type) rows ordered by table name.
	TablesQuery(schema, pattern string) (string, []any)
	// ColumnsQuery yields (table, column, type, size, is_nullable, key) rows
	// ordered by table then ordinal position.
	ColumnsQuery(schema string) (string, []any)
	// ForeignKeysQuery yields (table, constraint, sequence, column,
	// referenced table, referenced column) rows.
	ForeignKeysQuery(schema string) (string, []any)

	Placeholder(index int) string // Returns ?, $1, @p1, etc.

	// Helpers
	NormalizeType(sqlType string, size int) (string, int)
	TypeCode(typeName string) int
	GetSchemaName(input string) string
}
