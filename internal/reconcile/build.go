package reconcile

import (
	"repo-sync/internal/model"
	"repo-sync/internal/schema"
)

// buildEntity creates the entity for a table the model does not know yet.
func buildEntity(t *schema.Table) *model.Entity {
	e := &model.Entity{
		Name:      t.Name,
		TableType: t.Type,
		Catalog:   t.Catalog,
		Schema:    t.Schema,
	}
	for _, c := range t.Columns {
		e.StoreColumn(buildColumn(c))
	}
	for _, fk := range t.ForeignKeys {
		e.StoreForeignKey(buildForeignKey(fk))
	}
	return e
}

// buildColumn copies what the database reports, nothing more.
func buildColumn(c *schema.Column) *model.Column {
	return &model.Column{
		Name:         c.Name,
		DatabaseType: c.DataType,
		JDBCTypeCode: c.TypeCode,
		NotNull:      c.NotNull,
		Size:         c.Size,
		PrimaryKey:   c.IsPK,
	}
}

func buildForeignKey(fk *schema.ForeignKey) *model.ForeignKey {
	out := &model.ForeignKey{
		Name:     fk.Name,
		Table:    fk.Table,
		RefTable: fk.RefTable,
		Columns:  make([]model.ForeignKeyColumn, len(fk.Columns)),
	}
	for i, c := range fk.Columns {
		out.Columns[i] = model.ForeignKeyColumn{
			Sequence:  c.Sequence,
			Column:    c.Column,
			RefColumn: c.RefColumn,
		}
	}
	return out
}
