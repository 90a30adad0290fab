package schema

// Table is one table (or view) as observed in the database.
type Table struct {
	Name         string
	Catalog      string
	Schema       string
	Type         string // TABLE, VIEW, ...
	Columns      []*Column
	ForeignKeys  []*ForeignKey
	Dependencies []string // referenced tables, used for dependency ordering
}

type Column struct {
	Name     string
	DataType string
	TypeCode int // JDBC type code
	Size     int
	NotNull  bool
	IsPK     bool
}

// ForeignKey is a named reference from Table to RefTable. Columns are kept in
// key sequence order.
type ForeignKey struct {
	Name     string
	Table    string
	RefTable string
	Columns  []ForeignKeyColumn
}

type ForeignKeyColumn struct {
	Sequence  int
	Column    string
	RefColumn string
}

// Filter selects the tables a snapshot covers.
type Filter struct {
	Catalog      string
	Schema       string
	TablePattern string   // SQL LIKE pattern, "%" when empty
	TableTypes   []string // TABLE, VIEW, ...; empty means all
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ForeignKey returns the foreign key with the given name, or nil.
func (t *Table) ForeignKey(name string) *ForeignKey {
	for _, fk := range t.ForeignKeys {
		if fk.Name == name {
			return fk
		}
	}
	return nil
}
