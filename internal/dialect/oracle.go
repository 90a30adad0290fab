package dialect

import (
	"fmt"
	"strings"
)

type OracleDialect struct{}

// Oracle has no information_schema; the ALL_* views are filtered by OWNER.
// An empty schema binds as NULL in Oracle, so NVL(:1, USER) falls back to the
// connected user's own objects.

func (d *OracleDialect) TablesQuery(schema, pattern string) (string, []any) {
	owner := strings.ToUpper(schema)
	return `
SELECT TABLE_NAME, 'TABLE' FROM ALL_TABLES WHERE OWNER = NVL(:1, USER) AND TABLE_NAME LIKE :2
UNION ALL
SELECT VIEW_NAME, 'VIEW' FROM ALL_VIEWS WHERE OWNER = NVL(:3, USER) AND VIEW_NAME LIKE :4
ORDER BY 1`, []any{owner, pattern, owner, pattern}
}

func (d *OracleDialect) ColumnsQuery(schema string) (string, []any) {
	owner := strings.ToUpper(schema)
	return `
SELECT
    t.TABLE_NAME,
    t.COLUMN_NAME,
    t.DATA_TYPE,
    COALESCE(t.DATA_PRECISION, t.CHAR_LENGTH, t.DATA_LENGTH, 0),
    CASE WHEN t.NULLABLE = 'Y' THEN 'YES' ELSE 'NO' END,
    CASE WHEN p.CONSTRAINT_NAME IS NOT NULL THEN 'PRI' ELSE '' END
FROM ALL_TAB_COLUMNS t
LEFT JOIN (
    SELECT cc.OWNER, cc.TABLE_NAME, cc.COLUMN_NAME, cc.CONSTRAINT_NAME
    FROM ALL_CONS_COLUMNS cc
    JOIN ALL_CONSTRAINTS uc ON cc.OWNER = uc.OWNER AND cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
    WHERE uc.CONSTRAINT_TYPE = 'P'
) p ON t.OWNER = p.OWNER AND t.TABLE_NAME = p.TABLE_NAME AND t.COLUMN_NAME = p.COLUMN_NAME
WHERE t.OWNER = NVL(:1, USER)
ORDER BY t.TABLE_NAME, t.COLUMN_ID`, []any{owner}
}

func (d *OracleDialect) ForeignKeysQuery(schema string) (string, []any) {
	owner := strings.ToUpper(schema)
	return `
SELECT
    c.TABLE_NAME,
    c.CONSTRAINT_NAME,
    cc.POSITION,
    cc.COLUMN_NAME,
    r.TABLE_NAME AS REF_TABLE,
    rcc.COLUMN_NAME AS REF_COLUMN
FROM ALL_CONSTRAINTS c
JOIN ALL_CONS_COLUMNS cc
    ON c.CONSTRAINT_NAME = cc.CONSTRAINT_NAME
    AND c.OWNER = cc.OWNER
JOIN ALL_CONSTRAINTS r
    ON c.R_CONSTRAINT_NAME = r.CONSTRAINT_NAME
    AND c.R_OWNER = r.OWNER
JOIN ALL_CONS_COLUMNS rcc
    ON r.CONSTRAINT_NAME = rcc.CONSTRAINT_NAME
    AND r.OWNER = rcc.OWNER
    AND cc.POSITION = rcc.POSITION
WHERE c.CONSTRAINT_TYPE = 'R'
AND c.OWNER = NVL(:1, USER)
ORDER BY c.TABLE_NAME, c.CONSTRAINT_NAME, cc.POSITION`, []any{owner}
}

func (d *OracleDialect) Placeholder(index int) string {
	// Oracle uses :1, :2, etc. (1-based index)
	return fmt.Sprintf(":%d", index+1)
}

func (d *OracleDialect) NormalizeType(sqlType string, size int) (string, int) {
	// TIMESTAMP(6) WITH TIME ZONE keeps its qualifier, only the precision goes.
	name, _ := SplitTypeSize(strings.ToUpper(strings.TrimSpace(sqlType)), size)
	if i := strings.IndexByte(sqlType, ')'); i >= 0 && i+1 < len(sqlType) {
		name += strings.ToUpper(sqlType[i+1:])
	}
	return name, size
}

func (d *OracleDialect) TypeCode(typeName string) int {
	// The Oracle JDBC driver reports DATE columns as TIMESTAMP.
	if strings.EqualFold(typeName, "DATE") {
		return TypeTimestamp
	}
	return DefaultTypeCode(typeName)
}

func (d *OracleDialect) GetSchemaName(input string) string {
	return input
}
