// Package model holds the repository model: the design-time snapshot of a
// database schema that code generators read.
package model

import (
	"sort"
)

// Model is the repository model. Entities are keyed by table name.
// A Model is not safe for concurrent use.
type Model struct {
	DatabaseName   string
	DatabaseDriver string

	entities map[string]*Entity
}

// New returns an empty model.
func New() *Model {
	return &Model{entities: make(map[string]*Entity)}
}

// Entity returns the entity with the given name, or nil.
func (m *Model) Entity(name string) *Entity {
	return m.entities[name]
}

// StoreEntity adds e, replacing any entity with the same name.
func (m *Model) StoreEntity(e *Entity) {
	if m.entities == nil {
		m.entities = make(map[string]*Entity)
	}
	m.entities[e.Name] = e
}

// RemoveEntity removes the named entity and reports whether it was present.
func (m *Model) RemoveEntity(name string) bool {
	if _, ok := m.entities[name]; !ok {
		return false
	}
	delete(m.entities, name)
	return true
}

// EntityNames returns the entity names in ascending order.
func (m *Model) EntityNames() []string {
	names := make([]string, 0, len(m.entities))
	for name := range m.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entities returns the entities sorted by name.
func (m *Model) Entities() []*Entity {
	names := m.EntityNames()
	entities := make([]*Entity, len(names))
	for i, name := range names {
		entities[i] = m.entities[name]
	}
	return entities
}

// Len returns the number of entities.
func (m *Model) Len() int {
	return len(m.entities)
}

// Entity is the stored representation of one table.
type Entity struct {
	Name        string        `yaml:"name"`
	TableType   string        `yaml:"type,omitempty"` // "" until first observed
	Catalog     string        `yaml:"catalog,omitempty"`
	Schema      string        `yaml:"schema,omitempty"`
	Columns     []*Column     `yaml:"columns"`
	ForeignKeys []*ForeignKey `yaml:"foreignKeys,omitempty"`
}

// Column returns the column with the given name, or nil.
func (e *Entity) Column(name string) *Column {
	for _, c := range e.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// StoreColumn appends c, or replaces the column with the same name in place.
func (e *Entity) StoreColumn(c *Column) {
	for i, existing := range e.Columns {
		if existing.Name == c.Name {
			e.Columns[i] = c
			return
		}
	}
	e.Columns = append(e.Columns, c)
}

// RemoveColumn removes the named column and reports whether it was present.
func (e *Entity) RemoveColumn(name string) bool {
	for i, c := range e.Columns {
		if c.Name == name {
			e.Columns = append(e.Columns[:i], e.Columns[i+1:]...)
			return true
		}
	}
	return false
}

// ForeignKey returns the foreign key with the given name, or nil.
func (e *Entity) ForeignKey(name string) *ForeignKey {
	for _, fk := range e.ForeignKeys {
		if fk.Name == name {
			return fk
		}
	}
	return nil
}

// StoreForeignKey appends fk, or replaces the foreign key with the same name in place.
func (e *Entity) StoreForeignKey(fk *ForeignKey) {
	for i, existing := range e.ForeignKeys {
		if existing.Name == fk.Name {
			e.ForeignKeys[i] = fk
			return
		}
	}
	e.ForeignKeys = append(e.ForeignKeys, fk)
}

// RemoveForeignKey removes the named foreign key and reports whether it was present.
func (e *Entity) RemoveForeignKey(name string) bool {
	for i, fk := range e.ForeignKeys {
		if fk.Name == name {
			e.ForeignKeys = append(e.ForeignKeys[:i], e.ForeignKeys[i+1:]...)
			return true
		}
	}
	return false
}

type Column struct {
	Name         string `yaml:"name"`
	DatabaseType string `yaml:"type"`
	JDBCTypeCode int    `yaml:"jdbcTypeCode"`
	NotNull      bool   `yaml:"notNull"`
	Size         int    `yaml:"size"`
	PrimaryKey   bool   `yaml:"primaryKey"`
}

// ForeignKey references RefTable from Table. Columns are in key sequence order.
type ForeignKey struct {
	Name     string             `yaml:"name"`
	Table    string             `yaml:"table"`
	RefTable string             `yaml:"referencedTable"`
	Columns  []ForeignKeyColumn `yaml:"columns"`
}

type ForeignKeyColumn struct {
	Sequence  int    `yaml:"sequence"`
	Column    string `yaml:"column"`
	RefColumn string `yaml:"referencedColumn"`
}

// Equal reports structural equality: same tables and the same column pairs in
// the same order. The key name is not compared.
func (fk *ForeignKey) Equal(other *ForeignKey) bool {
	if fk == nil || other == nil {
		return fk == other
	}
	if fk.Table != other.Table || fk.RefTable != other.RefTable {
		return false
	}
	if len(fk.Columns) != len(other.Columns) {
		return false
	}
	for i := range fk.Columns {
		if fk.Columns[i] != other.Columns[i] {
			return false
		}
	}
	return true
}
