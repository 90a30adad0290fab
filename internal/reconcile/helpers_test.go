package reconcile

import (
	"bytes"
	"context"
	"testing"
	"time"

	"repo-sync/internal/changelog"
	"repo-sync/internal/dialect"
	"repo-sync/internal/model"
	"repo-sync/internal/schema"

	"github.com/stretchr/testify/require"
)

var fixedClock = func() time.Time {
	return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
}

type fakeProvider struct {
	tables []*schema.Table
	err    error
	calls  int
	filter schema.Filter
}

func (p *fakeProvider) FetchTables(ctx context.Context, f schema.Filter) ([]*schema.Table, error) {
	p.calls++
	p.filter = f
	if p.err != nil {
		return nil, p.err
	}
	return p.tables, nil
}

func table(name string, cols ...*schema.Column) *schema.Table {
	return &schema.Table{Name: name, Type: "TABLE", Schema: "public", Columns: cols}
}

func col(name, typ string, size int) *schema.Column {
	return &schema.Column{Name: name, DataType: typ, TypeCode: dialect.DefaultTypeCode(typ), Size: size}
}

func pkCol(name, typ string, size int) *schema.Column {
	c := col(name, typ, size)
	c.NotNull = true
	c.IsPK = true
	return c
}

// fk builds a foreign key from alternating column / referenced column names.
func fk(name, from, to string, pairs ...string) *schema.ForeignKey {
	out := &schema.ForeignKey{Name: name, Table: from, RefTable: to}
	for i := 0; i+1 < len(pairs); i += 2 {
		out.Columns = append(out.Columns, schema.ForeignKeyColumn{
			Sequence:  i/2 + 1,
			Column:    pairs[i],
			RefColumn: pairs[i+1],
		})
	}
	return out
}

func withFK(t *schema.Table, keys ...*schema.ForeignKey) *schema.Table {
	t.ForeignKeys = append(t.ForeignKeys, keys...)
	return t
}

func customerTable() *schema.Table {
	return table("CUSTOMER",
		pkCol("ID", "INTEGER", 10),
		col("NAME", "VARCHAR", 50),
		col("EMAIL", "VARCHAR", 100),
	)
}

func orderTable() *schema.Table {
	return withFK(table("ORDER",
		pkCol("ID", "INTEGER", 10),
		col("CUST_ID", "INTEGER", 10),
		col("TOTAL", "DECIMAL", 12),
	), fk("FK_CUST", "ORDER", "CUSTOMER", "CUST_ID", "ID"))
}

// modelOf builds a model holding copies of the given tables.
func modelOf(tables ...*schema.Table) *model.Model {
	m := model.New()
	for _, t := range tables {
		m.StoreEntity(buildEntity(t))
	}
	return m
}

func run(t *testing.T, m *model.Model, tables ...*schema.Table) (int, *changelog.Buffer) {
	t.Helper()
	changes := changelog.NewBuffer()
	u := NewUpdater(Options{Provider: &fakeProvider{tables: tables}, Clock: fixedClock})
	n, err := u.Update(context.Background(), m, changes, schema.Filter{})
	require.NoError(t, err)
	require.True(t, changes.Closed(), "change log must be closed")
	return n, changes
}

func encode(t *testing.T, m *model.Model) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, model.Encode(&buf, m))
	return buf.String()
}
