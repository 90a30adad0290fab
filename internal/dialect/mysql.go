package dialect

type MysqlDialect struct{}

// In MySQL the schema is the database; an empty schema means the one selected in the DSN.

func (d *MysqlDialect) TablesQuery(schema, pattern string) (string, []any) {
	return `SELECT TABLE_NAME, TABLE_TYPE FROM information_schema.TABLES WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE()) AND TABLE_NAME LIKE ? ORDER BY TABLE_NAME`,
		[]any{schema, pattern}
}

func (d *MysqlDialect) ColumnsQuery(schema string) (string, []any) {
	return `SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE, COALESCE(CHARACTER_MAXIMUM_LENGTH, NUMERIC_PRECISION, DATETIME_PRECISION, 0), IS_NULLABLE, COLUMN_KEY FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE()) ORDER BY TABLE_NAME, ORDINAL_POSITION`,
		[]any{schema}
}

func (d *MysqlDialect) ForeignKeysQuery(schema string) (string, []any) {
	return `SELECT TABLE_NAME, CONSTRAINT_NAME, ORDINAL_POSITION, COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME FROM information_schema.KEY_COLUMN_USAGE WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE()) AND REFERENCED_TABLE_NAME IS NOT NULL ORDER BY TABLE_NAME, CONSTRAINT_NAME, ORDINAL_POSITION`,
		[]any{schema}
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

func (d *MysqlDialect) NormalizeType(sqlType string, size int) (string, int) {
	return DefaultNormalizeType(sqlType, size)
}

func (d *MysqlDialect) TypeCode(typeName string) int {
	return DefaultTypeCode(typeName)
}

func (d *MysqlDialect) GetSchemaName(input string) string {
	return DefaultGetSchemaName(input)
}
