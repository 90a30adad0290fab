package dialect

import (
	"strconv"
	"strings"
)

// DefaultNormalizeType is a default implementation for type normalization (uppercase, size untouched).
func DefaultNormalizeType(sqlType string, size int) (string, int) {
	return strings.ToUpper(strings.TrimSpace(sqlType)), size
}

// DefaultGetSchemaName is a default implementation for Getting Schema Name (identity).
func DefaultGetSchemaName(input string) string {
	return input
}

// SplitTypeSize splits a declared type such as "VARCHAR(100)" or
// "DECIMAL(10,2)" into its name and leading size. When the declaration has no
// usable size the given fallback is returned.
func SplitTypeSize(declared string, fallback int) (string, int) {
	open := strings.IndexByte(declared, '(')
	if open < 0 {
		return strings.TrimSpace(declared), fallback
	}
	name := strings.TrimSpace(declared[:open])
	args := strings.TrimSuffix(strings.TrimSpace(declared[open+1:]), ")")
	if comma := strings.IndexByte(args, ','); comma >= 0 {
		args = args[:comma]
	}
	size, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return name, fallback
	}
	return name, size
}
