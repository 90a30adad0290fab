package reconcile

import (
	"testing"

	"repo-sync/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestColumnComparators(t *testing.T) {
	base := func() *model.Column {
		return &model.Column{Name: "C", DatabaseType: "INTEGER", JDBCTypeCode: 4, NotNull: true, Size: 10, PrimaryKey: true}
	}

	tests := []struct {
		name    string
		apply   func(c *model.Column) bool
		check   func(t *testing.T, c *model.Column)
		changed bool
	}{
		{
			name:    "type same",
			apply:   func(c *model.Column) bool { return updateType(c, "INTEGER") },
			check:   func(t *testing.T, c *model.Column) { assert.Equal(t, "INTEGER", c.DatabaseType) },
			changed: false,
		},
		{
			name:    "type differs",
			apply:   func(c *model.Column) bool { return updateType(c, "BIGINT") },
			check:   func(t *testing.T, c *model.Column) { assert.Equal(t, "BIGINT", c.DatabaseType) },
			changed: true,
		},
		{
			name:    "type code differs",
			apply:   func(c *model.Column) bool { return updateTypeCode(c, -5) },
			check:   func(t *testing.T, c *model.Column) { assert.Equal(t, -5, c.JDBCTypeCode) },
			changed: true,
		},
		{
			name:    "not null same",
			apply:   func(c *model.Column) bool { return updateNotNull(c, true) },
			check:   func(t *testing.T, c *model.Column) { assert.True(t, c.NotNull) },
			changed: false,
		},
		{
			name:    "not null differs",
			apply:   func(c *model.Column) bool { return updateNotNull(c, false) },
			check:   func(t *testing.T, c *model.Column) { assert.False(t, c.NotNull) },
			changed: true,
		},
		{
			name:    "size differs",
			apply:   func(c *model.Column) bool { return updateSize(c, 0) },
			check:   func(t *testing.T, c *model.Column) { assert.Equal(t, 0, c.Size) },
			changed: true,
		},
		{
			name:    "primary key differs",
			apply:   func(c *model.Column) bool { return updatePrimaryKey(c, false) },
			check:   func(t *testing.T, c *model.Column) { assert.False(t, c.PrimaryKey) },
			changed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			assert.Equal(t, tt.changed, tt.apply(c))
			tt.check(t, c)
			// second application is always a no-op
			assert.False(t, tt.apply(c))
		})
	}
}

func TestUpdateForeignKey(t *testing.T) {
	e := buildEntity(orderTable())
	existing := e.ForeignKey("FK_CUST")

	same := buildForeignKey(orderTable().ForeignKeys[0])
	assert.False(t, updateForeignKey(e, existing, same))
	assert.Same(t, existing, e.ForeignKey("FK_CUST"))

	other := buildForeignKey(fk("FK_CUST", "ORDER", "CLIENT", "CUST_ID", "ID"))
	assert.True(t, updateForeignKey(e, existing, other))
	assert.Same(t, other, e.ForeignKey("FK_CUST"))
	assert.Len(t, e.ForeignKeys, 1)
}

func TestCategory_RemoveMissingWhileEditing(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	var removed []string
	c := category[string, string]{
		storedName:   func(s string) string { return s },
		observedName: func(s string) string { return s },
		remove: func(s string) {
			for i, v := range items {
				if v == s {
					items = append(items[:i], items[i+1:]...)
					break
				}
			}
		},
		removed: func(name string) { removed = append(removed, name) },
	}

	n := c.removeMissing(items, []string{"c"})

	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"a", "b", "d"}, removed)
	assert.Equal(t, []string{"c"}, items)
}
