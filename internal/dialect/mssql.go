package dialect

import (
	"fmt"
	"strings"

	_ "github.com/denisenkom/go-mssqldb" // SQL Server Driver
)

type MSSQLDialect struct{}

// Helper: MSSQL Driver (go-mssqldb) prefers @p1, @p2 named parameters over ?

func (d *MSSQLDialect) TablesQuery(schema, pattern string) (string, []any) {
	return `SELECT TABLE_NAME, TABLE_TYPE FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME LIKE @p2 ORDER BY TABLE_NAME`,
		[]any{d.GetSchemaName(schema), pattern}
}

func (d *MSSQLDialect) ColumnsQuery(schema string) (string, []any) {
	return `
		SELECT
			c.TABLE_NAME,
			c.COLUMN_NAME,
			c.DATA_TYPE,
			COALESCE(c.CHARACTER_MAXIMUM_LENGTH, c.NUMERIC_PRECISION, c.DATETIME_PRECISION, 0),
			c.IS_NULLABLE,
			CASE WHEN pk.COLUMN_NAME IS NOT NULL THEN 'PRIMARY' ELSE '' END AS COLUMN_KEY
		FROM INFORMATION_SCHEMA.COLUMNS c
		LEFT JOIN (
			SELECT kcu.TABLE_NAME, kcu.COLUMN_NAME
			FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
			JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
				ON tc.CONSTRAINT_SCHEMA = kcu.CONSTRAINT_SCHEMA AND tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
			WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY' AND tc.TABLE_SCHEMA = @p1
		) pk ON c.TABLE_NAME = pk.TABLE_NAME AND c.COLUMN_NAME = pk.COLUMN_NAME
		WHERE c.TABLE_SCHEMA = @p1
		ORDER BY c.TABLE_NAME, c.ORDINAL_POSITION
	`, []any{d.GetSchemaName(schema)}
}

func (d *MSSQLDialect) ForeignKeysQuery(schema string) (string, []any) {
	return `SELECT KCU1.TABLE_NAME, KCU1.CONSTRAINT_NAME, KCU1.ORDINAL_POSITION, KCU1.COLUMN_NAME, KCU2.TABLE_NAME AS REF_TABLE, KCU2.COLUMN_NAME AS REF_COLUMN
FROM INFORMATION_SCHEMA.REFERENTIAL_CONSTRAINTS RC
JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE KCU1
  ON RC.CONSTRAINT_SCHEMA = KCU1.CONSTRAINT_SCHEMA AND RC.CONSTRAINT_NAME = KCU1.CONSTRAINT_NAME
JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE KCU2
  ON RC.UNIQUE_CONSTRAINT_SCHEMA = KCU2.CONSTRAINT_SCHEMA AND RC.UNIQUE_CONSTRAINT_NAME = KCU2.CONSTRAINT_NAME
 AND KCU1.ORDINAL_POSITION = KCU2.ORDINAL_POSITION
WHERE KCU1.TABLE_SCHEMA = @p1
ORDER BY KCU1.TABLE_NAME, KCU1.CONSTRAINT_NAME, KCU1.ORDINAL_POSITION`, []any{d.GetSchemaName(schema)}
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) NormalizeType(sqlType string, size int) (string, int) {
	// nvarchar(max) and friends report -1; copied as is.
	return strings.ToUpper(strings.TrimSpace(sqlType)), size
}

func (d *MSSQLDialect) TypeCode(typeName string) int {
	switch strings.ToUpper(typeName) {
	case "UNIQUEIDENTIFIER":
		return TypeChar
	case "TIMESTAMP", "ROWVERSION":
		// SQL Server TIMESTAMP is a row version, not a date.
		return TypeBinary
	}
	return DefaultTypeCode(typeName)
}

func (d *MSSQLDialect) GetSchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}
