package reconcile

import (
	"fmt"

	"repo-sync/internal/model"
	"repo-sync/internal/schema"
)

// UpdateEntity brings e into agreement with t and returns the number of
// changes applied. Removals run before additions and updates:
//
//  1. table type
//  2. columns missing from the table
//  3. foreign keys missing from the table
//  4. columns added or updated
//  5. foreign keys added or replaced
//
// An unset stored table type is initialized without counting a change. An
// empty observed type means the provider did not report one; the stored type
// is then left as it is.
func UpdateEntity(changes ChangeLog, e *model.Entity, t *schema.Table) (int, error) {
	if e.Name != t.Name {
		return 0, &InconsistentStateError{Entity: e.Name, Table: t.Name}
	}

	n := updateTableType(changes, e, t.Type)

	cols := columnCategory(changes, e)
	fks := foreignKeyCategory(changes, e)

	n += cols.removeMissing(e.Columns, t.Columns)
	n += fks.removeMissing(e.ForeignKeys, t.ForeignKeys)

	changed, err := cols.addOrUpdate(t.Columns)
	n += changed
	if err != nil {
		return n, err
	}
	changed, err = fks.addOrUpdate(t.ForeignKeys)
	n += changed
	return n, err
}

func updateTableType(changes ChangeLog, e *model.Entity, observed string) int {
	if observed == "" {
		return 0
	}
	if e.TableType == "" {
		// Not set yet => first assignment, not a change
		e.TableType = observed
		return 0
	}
	if e.TableType == observed {
		return 0
	}
	changes.Println(fmt.Sprintf(" . Type has changed '%s' --> '%s'", e.TableType, observed))
	e.TableType = observed
	return 1
}

func columnCategory(changes ChangeLog, e *model.Entity) category[*model.Column, *schema.Column] {
	return category[*model.Column, *schema.Column]{
		storedName:   func(c *model.Column) string { return c.Name },
		observedName: func(c *schema.Column) string { return c.Name },
		lookup: func(name string) (*model.Column, bool) {
			c := e.Column(name)
			return c, c != nil
		},
		add: func(c *schema.Column) { e.StoreColumn(buildColumn(c)) },
		update: func(c *model.Column, o *schema.Column) (int, error) {
			return updateColumn(changes, c, o), nil
		},
		remove: func(c *model.Column) { e.RemoveColumn(c.Name) },
		added: func(name string) {
			changes.Println(fmt.Sprintf(" . Column '%s' added", name))
		},
		removed: func(name string) {
			changes.Println(fmt.Sprintf(" . Column '%s' removed", name))
		},
	}
}

// updateColumn runs the five column comparators, one change per difference.
func updateColumn(changes ChangeLog, c *model.Column, o *schema.Column) int {
	n := 0
	report := func(field string, value any) {
		changes.Println(fmt.Sprintf(" . Column '%s' : %s changed to %v", c.Name, field, value))
		n++
	}

	if updateType(c, o.DataType) {
		report("Database type", o.DataType)
	}
	if updateTypeCode(c, o.TypeCode) {
		report("JDBC type code", o.TypeCode)
	}
	if updateNotNull(c, o.NotNull) {
		report("NotNull", o.NotNull)
	}
	if updateSize(c, o.Size) {
		report("Size", o.Size)
	}
	if updatePrimaryKey(c, o.IsPK) {
		report("Primary Key flag", o.IsPK)
	}
	return n
}

func foreignKeyCategory(changes ChangeLog, e *model.Entity) category[*model.ForeignKey, *schema.ForeignKey] {
	return category[*model.ForeignKey, *schema.ForeignKey]{
		storedName:   func(fk *model.ForeignKey) string { return fk.Name },
		observedName: func(fk *schema.ForeignKey) string { return fk.Name },
		lookup: func(name string) (*model.ForeignKey, bool) {
			fk := e.ForeignKey(name)
			return fk, fk != nil
		},
		add: func(fk *schema.ForeignKey) { e.StoreForeignKey(buildForeignKey(fk)) },
		update: func(fk *model.ForeignKey, o *schema.ForeignKey) (int, error) {
			if !updateForeignKey(e, fk, buildForeignKey(o)) {
				return 0, nil
			}
			changes.Println(fmt.Sprintf(" . Foreign key '%s' updated", fk.Name))
			return 1, nil
		},
		remove: func(fk *model.ForeignKey) { e.RemoveForeignKey(fk.Name) },
		added: func(name string) {
			changes.Println(fmt.Sprintf(" . Foreign key '%s' added", name))
		},
		removed: func(name string) {
			changes.Println(fmt.Sprintf(" . Foreign key '%s' removed", name))
		},
	}
}
