package reconcile

import (
	"repo-sync/internal/model"
)

// Field comparators. Each one updates the stored value when it differs from
// the observed one and reports whether it did. Log text is the caller's job.

func updateType(c *model.Column, dbType string) bool {
	if c.DatabaseType == dbType {
		return false
	}
	c.DatabaseType = dbType
	return true
}

func updateTypeCode(c *model.Column, code int) bool {
	if c.JDBCTypeCode == code {
		return false
	}
	c.JDBCTypeCode = code
	return true
}

func updateNotNull(c *model.Column, notNull bool) bool {
	if c.NotNull == notNull {
		return false
	}
	c.NotNull = notNull
	return true
}

func updateSize(c *model.Column, size int) bool {
	if c.Size == size {
		return false
	}
	c.Size = size
	return true
}

func updatePrimaryKey(c *model.Column, pk bool) bool {
	if c.PrimaryKey == pk {
		return false
	}
	c.PrimaryKey = pk
	return true
}

// updateForeignKey replaces existing with observed as a whole when they differ structurally.
func updateForeignKey(e *model.Entity, existing, observed *model.ForeignKey) bool {
	if existing.Equal(observed) {
		return false
	}
	e.StoreForeignKey(observed)
	return true
}
