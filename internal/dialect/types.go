package dialect

import "strings"

// JDBC type codes (java.sql.Types). Code generators downstream of the model
// key their type mappings on these values.
const (
	TypeBit                   = -7
	TypeTinyInt               = -6
	TypeSmallInt              = 5
	TypeInteger               = 4
	TypeBigInt                = -5
	TypeFloat                 = 6
	TypeReal                  = 7
	TypeDouble                = 8
	TypeNumeric               = 2
	TypeDecimal               = 3
	TypeChar                  = 1
	TypeVarchar               = 12
	TypeLongVarchar           = -1
	TypeNChar                 = -15
	TypeNVarchar              = -9
	TypeDate                  = 91
	TypeTime                  = 92
	TypeTimestamp             = 93
	TypeBinary                = -2
	TypeVarBinary             = -3
	TypeLongVarBinary         = -4
	TypeOther                 = 1111
	TypeBlob                  = 2004
	TypeClob                  = 2005
	TypeNClob                 = 2011
	TypeBoolean               = 16
	TypeSQLXML                = 2009
	TypeArray                 = 2003
	TypeTimeWithTimezone      = 2013
	TypeTimestampWithTimezone = 2014
)

var typeCodes = map[string]int{
	"BIT":     TypeBit,
	"TINYINT": TypeTinyInt,

	"SMALLINT": TypeSmallInt,
	"INT2":     TypeSmallInt,

	"INT":       TypeInteger,
	"INT4":      TypeInteger,
	"INTEGER":   TypeInteger,
	"MEDIUMINT": TypeInteger,
	"SERIAL":    TypeInteger,

	"BIGINT":    TypeBigInt,
	"INT8":      TypeBigInt,
	"BIGSERIAL": TypeBigInt,

	"FLOAT":            TypeFloat,
	"REAL":             TypeReal,
	"FLOAT4":           TypeReal,
	"DOUBLE":           TypeDouble,
	"FLOAT8":           TypeDouble,
	"DOUBLE PRECISION": TypeDouble,
	"BINARY_DOUBLE":    TypeDouble,
	"BINARY_FLOAT":     TypeReal,

	"NUMERIC":    TypeNumeric,
	"NUMBER":     TypeNumeric,
	"DECIMAL":    TypeDecimal,
	"MONEY":      TypeDecimal,
	"SMALLMONEY": TypeDecimal,

	"CHAR":              TypeChar,
	"BPCHAR":            TypeChar,
	"CHARACTER":         TypeChar,
	"VARCHAR":           TypeVarchar,
	"VARCHAR2":          TypeVarchar,
	"CHARACTER VARYING": TypeVarchar,
	"TEXT":              TypeLongVarchar,
	"MEDIUMTEXT":        TypeLongVarchar,
	"LONGTEXT":          TypeLongVarchar,
	"NTEXT":             TypeLongVarchar,
	"NCHAR":             TypeNChar,
	"NVARCHAR":          TypeNVarchar,
	"NVARCHAR2":         TypeNVarchar,
	"CLOB":              TypeClob,
	"NCLOB":             TypeNClob,

	"DATE":           TypeDate,
	"TIME":           TypeTime,
	"TIMETZ":         TypeTimeWithTimezone,
	"TIMESTAMP":      TypeTimestamp,
	"DATETIME":       TypeTimestamp,
	"DATETIME2":      TypeTimestamp,
	"SMALLDATETIME":  TypeTimestamp,
	"TIMESTAMPTZ":    TypeTimestampWithTimezone,
	"DATETIMEOFFSET": TypeTimestampWithTimezone,

	"BINARY":    TypeBinary,
	"VARBINARY": TypeVarBinary,
	"BYTEA":     TypeBinary,
	"IMAGE":     TypeLongVarBinary,
	"BLOB":      TypeBlob,
	"LONGBLOB":  TypeLongVarBinary,
	"RAW":       TypeVarBinary,

	"BOOL":    TypeBoolean,
	"BOOLEAN": TypeBoolean,
	"XML":     TypeSQLXML,
}

// DefaultTypeCode maps a normalized type name to its JDBC type code.
// Unknown names map to TypeOther; array types (postgres "_INT4") map to TypeArray.
func DefaultTypeCode(typeName string) int {
	name := strings.ToUpper(strings.TrimSpace(typeName))
	if code, ok := typeCodes[name]; ok {
		return code
	}
	if strings.HasPrefix(name, "_") || strings.HasSuffix(name, "[]") {
		return TypeArray
	}
	if strings.HasPrefix(name, "TIMESTAMP") {
		if strings.Contains(name, "TIME ZONE") {
			return TypeTimestampWithTimezone
		}
		return TypeTimestamp
	}
	return TypeOther
}
