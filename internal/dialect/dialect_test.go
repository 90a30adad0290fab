package dialect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDialect(t *testing.T) {
	tests := map[string]Dialect{
		"postgres":  &PostgresDialect{},
		"sqlserver": &MSSQLDialect{},
		"mssql":     &MSSQLDialect{},
		"oracle":    &OracleDialect{},
		"sqlite3":   &SQLiteDialect{},
		"sqlite":    &SQLiteDialect{},
		"mysql":     &MysqlDialect{},
		"":          &MysqlDialect{},
	}
	for driver, want := range tests {
		assert.IsType(t, want, GetDialect(driver), driver)
	}
}

func TestSplitTypeSize(t *testing.T) {
	tests := []struct {
		in       string
		fallback int
		name     string
		size     int
	}{
		{"VARCHAR(100)", 0, "VARCHAR", 100},
		{"DECIMAL(10,2)", 0, "DECIMAL", 10},
		{"DECIMAL( 12 , 4 )", 0, "DECIMAL", 12},
		{"INTEGER", 7, "INTEGER", 7},
		{"VARCHAR(MAX)", -1, "VARCHAR", -1},
		{" TEXT ", 0, "TEXT", 0},
	}
	for _, tt := range tests {
		name, size := SplitTypeSize(tt.in, tt.fallback)
		if name != tt.name || size != tt.size {
			t.Errorf("SplitTypeSize(%q, %d) = (%q, %d), want (%q, %d)", tt.in, tt.fallback, name, size, tt.name, tt.size)
		}
	}
}

func TestDefaultTypeCode(t *testing.T) {
	tests := map[string]int{
		"VARCHAR":                  TypeVarchar,
		"varchar":                  TypeVarchar,
		"INT4":                     TypeInteger,
		"BIGINT":                   TypeBigInt,
		"NUMERIC":                  TypeNumeric,
		"BOOL":                     TypeBoolean,
		"TIMESTAMPTZ":              TypeTimestampWithTimezone,
		"TIMESTAMP WITH TIME ZONE": TypeTimestampWithTimezone,
		"TIMESTAMP(6)":             TypeTimestamp,
		"_INT4":                    TypeArray,
		"TEXT[]":                   TypeArray,
		"GEOMETRY":                 TypeOther,
		"":                         TypeOther,
	}
	for name, want := range tests {
		assert.Equal(t, want, DefaultTypeCode(name), name)
	}
}

func TestTypeCodeOverrides(t *testing.T) {
	assert.Equal(t, TypeTimestamp, (&OracleDialect{}).TypeCode("DATE"))
	assert.Equal(t, TypeDate, (&PostgresDialect{}).TypeCode("DATE"))
	assert.Equal(t, TypeBinary, (&MSSQLDialect{}).TypeCode("timestamp"))
	assert.Equal(t, TypeChar, (&MSSQLDialect{}).TypeCode("UNIQUEIDENTIFIER"))
	assert.Equal(t, TypeTimestamp, (&MysqlDialect{}).TypeCode("DATETIME"))
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		d        Dialect
		in       string
		size     int
		wantName string
		wantSize int
	}{
		{&PostgresDialect{}, "varchar", 40, "VARCHAR", 40},
		{&MysqlDialect{}, " int ", 10, "INT", 10},
		{&MSSQLDialect{}, "nvarchar", -1, "NVARCHAR", -1},
		{&OracleDialect{}, "TIMESTAMP(6)", 11, "TIMESTAMP", 11},
		{&OracleDialect{}, "TIMESTAMP(6) WITH TIME ZONE", 13, "TIMESTAMP WITH TIME ZONE", 13},
		{&OracleDialect{}, "VARCHAR2", 30, "VARCHAR2", 30},
		{&SQLiteDialect{}, "varchar(255)", 0, "VARCHAR", 255},
		{&SQLiteDialect{}, "integer", 0, "INTEGER", 0},
	}
	for _, tt := range tests {
		name, size := tt.d.NormalizeType(tt.in, tt.size)
		assert.Equal(t, tt.wantName, name, tt.in)
		assert.Equal(t, tt.wantSize, size, tt.in)
	}
}

func TestGetSchemaName(t *testing.T) {
	assert.Equal(t, "public", (&PostgresDialect{}).GetSchemaName(""))
	assert.Equal(t, "sales", (&PostgresDialect{}).GetSchemaName("sales"))
	assert.Equal(t, "dbo", (&MSSQLDialect{}).GetSchemaName(""))
	assert.Equal(t, "main", (&SQLiteDialect{}).GetSchemaName(""))
	assert.Equal(t, "", (&MysqlDialect{}).GetSchemaName(""))
}

func TestQueryArguments(t *testing.T) {
	query, args := (&PostgresDialect{}).TablesQuery("", "CUST%")
	assert.Contains(t, query, "$2")
	assert.Equal(t, []any{"public", "CUST%"}, args)

	query, args = (&MSSQLDialect{}).ColumnsQuery("")
	assert.Contains(t, query, "@p1")
	assert.Equal(t, []any{"dbo"}, args)

	_, args = (&OracleDialect{}).TablesQuery("hr", "%")
	assert.Equal(t, []any{"HR", "%", "HR", "%"}, args)

	query, args = (&MysqlDialect{}).ForeignKeysQuery("")
	assert.Equal(t, 1, strings.Count(query, "?"))
	assert.Equal(t, []any{""}, args)
}

func TestPostgresForeignKeysQuery(t *testing.T) {
	query, args := (&PostgresDialect{}).ForeignKeysQuery("")

	assert.Equal(t, []any{"public"}, args)
	// keys are joined to their columns by constraint row, never by name
	assert.Contains(t, query, "pg_catalog.pg_constraint con")
	assert.Contains(t, query, "con.contype = 'f'")
	assert.Contains(t, query, "unnest(con.conkey, con.confkey) WITH ORDINALITY")
	assert.Contains(t, query, "att.attrelid = con.conrelid")
	assert.Contains(t, query, "ratt.attrelid = con.confrelid")
	assert.NotContains(t, query, "referential_constraints")
	assert.NotContains(t, query, "constraint_name")
	assert.True(t, strings.HasSuffix(query, "ORDER BY cl.relname, con.conname, k.ord"))
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "$3", (&PostgresDialect{}).Placeholder(2))
	assert.Equal(t, "@p1", (&MSSQLDialect{}).Placeholder(0))
	assert.Equal(t, ":2", (&OracleDialect{}).Placeholder(1))
	assert.Equal(t, "?", (&MysqlDialect{}).Placeholder(5))
	assert.Equal(t, "?", (&SQLiteDialect{}).Placeholder(5))
}
