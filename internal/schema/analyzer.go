package schema

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"
	"strings"

	"repo-sync/internal/dialect"

	"github.com/charmbracelet/log"
)

// ---------------------------------------------------------------------
// 1. Metadata Provider
// ---------------------------------------------------------------------

// Analyzer reads table snapshots from a live database.
type Analyzer struct {
	db      *sql.DB
	dialect dialect.Dialect
	logger  *log.Logger
}

// NewAnalyzer returns an Analyzer querying db with the catalog queries of d.
// A nil logger discards debug output.
func NewAnalyzer(db *sql.DB, d dialect.Dialect, logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Analyzer{db: db, dialect: d, logger: logger}
}

// FetchTables returns the tables matching f, in the order the database lists them.
func (a *Analyzer) FetchTables(ctx context.Context, f Filter) ([]*Table, error) {
	a.logger.Debug("reading database metadata",
		"catalog", f.Catalog, "schema", a.dialect.GetSchemaName(f.Schema),
		"pattern", f.TablePattern, "types", f.TableTypes)

	tables, err := Analyze(ctx, a.db, a.dialect, f)
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		a.logger.Debug("table found", "table", t.Name, "type", t.Type,
			"columns", len(t.Columns), "foreignKeys", len(t.ForeignKeys))
	}
	return tables, nil
}

// ---------------------------------------------------------------------
// 2. Schema Analysis Logic
// ---------------------------------------------------------------------

// Analyze runs the dialect's catalog queries and assembles the snapshot.
func Analyze(ctx context.Context, db *sql.DB, d dialect.Dialect, f Filter) ([]*Table, error) {
	target := d.GetSchemaName(f.Schema)
	pattern := f.TablePattern
	if pattern == "" {
		pattern = "%"
	}

	// Use map for O(1) lookups, with normalized keys for case-insensitive matching (Oracle support)
	tableMap := make(map[string]*Table)

	tables, err := fetchTables(ctx, db, d, target, pattern, f.TableTypes)
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		t.Catalog = f.Catalog
		t.Schema = target
		tableMap[strings.ToUpper(t.Name)] = t
	}

	if err := fetchColumns(ctx, db, d, target, tableMap); err != nil {
		return nil, err
	}
	if err := fetchForeignKeys(ctx, db, d, target, tableMap); err != nil {
		return nil, err
	}
	return tables, nil
}

// --- Step 1: Fetch Tables ---
func fetchTables(ctx context.Context, db *sql.DB, d dialect.Dialect, target, pattern string, types []string) ([]*Table, error) {
	wanted := make(map[string]bool, len(types))
	for _, t := range types {
		wanted[NormalizeTableType(t)] = true
	}

	query, args := d.TablesQuery(target, pattern)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []*Table
	for rows.Next() {
		var name, tableType sql.NullString
		if err := rows.Scan(&name, &tableType); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		if !name.Valid {
			continue
		}
		typ := NormalizeTableType(tableType.String)
		if len(wanted) > 0 && !wanted[typ] {
			continue
		}
		tables = append(tables, &Table{Name: name.String, Type: typ, Dependencies: []string{}})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

// --- Step 2: Fetch Columns ---
func fetchColumns(ctx context.Context, db *sql.DB, d dialect.Dialect, target string, tableMap map[string]*Table) error {
	query, args := d.ColumnsQuery(target)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tName, cName, dType, isNull, cKey sql.NullString
		var cLen sql.NullString // Use String for safety, drivers disagree on numeric types

		if err := rows.Scan(&tName, &cName, &dType, &cLen, &isNull, &cKey); err != nil {
			return fmt.Errorf("failed to scan column (table: %s): %w", tName.String, err)
		}
		if !tName.Valid || !cName.Valid {
			continue // Skip invalid rows
		}

		// Lookup using Normalized Key; tables outside the filter are skipped
		t, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}

		typeName, size := d.NormalizeType(dType.String, parseLength(cLen))
		t.Columns = append(t.Columns, &Column{
			Name:     cName.String,
			DataType: typeName,
			TypeCode: d.TypeCode(typeName),
			Size:     size,
			NotNull:  strings.EqualFold(isNull.String, "NO"),
			IsPK:     strings.Contains(cKey.String, "PRI"),
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating columns: %w", err)
	}
	return nil
}

// --- Step 3: Fetch Foreign Keys ---
func fetchForeignKeys(ctx context.Context, db *sql.DB, d dialect.Dialect, target string, tableMap map[string]*Table) error {
	query, args := d.ForeignKeysQuery(target)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tName, cConst, seq, cName, rTable, rCol sql.NullString
		if err := rows.Scan(&tName, &cConst, &seq, &cName, &rTable, &rCol); err != nil {
			return fmt.Errorf("failed to scan foreign key: %w", err)
		}
		if !tName.Valid || !cConst.Valid || !rTable.Valid {
			continue
		}

		t, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}

		fk := t.ForeignKey(cConst.String)
		if fk == nil {
			fk = &ForeignKey{Name: cConst.String, Table: t.Name, RefTable: rTable.String}
			t.ForeignKeys = append(t.ForeignKeys, fk)

			// Add dependency only if it's a known table other than itself
			if ref, exists := tableMap[strings.ToUpper(rTable.String)]; exists && ref != t {
				t.Dependencies = appendUnique(t.Dependencies, ref.Name)
			}
		}
		fk.Columns = append(fk.Columns, ForeignKeyColumn{
			Sequence:  parseLength(seq),
			Column:    cName.String,
			RefColumn: rCol.String,
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating foreign keys: %w", err)
	}

	for _, t := range tableMap {
		for _, fk := range t.ForeignKeys {
			sort.SliceStable(fk.Columns, func(i, j int) bool {
				return fk.Columns[i].Sequence < fk.Columns[j].Sequence
			})
		}
	}
	return nil
}

// NormalizeTableType maps catalog table types to the JDBC names
// ("BASE TABLE" -> "TABLE"). Other types are upper-cased.
func NormalizeTableType(tableType string) string {
	t := strings.ToUpper(strings.TrimSpace(tableType))
	switch t {
	case "BASE TABLE":
		return "TABLE"
	default:
		return t
	}
}

// parseLength handles drivers returning sizes as int, decimal or text.
func parseLength(v sql.NullString) int {
	if !v.Valid || v.String == "" {
		return 0
	}
	var length int
	if _, err := fmt.Sscanf(v.String, "%d", &length); err == nil {
		return length
	}
	var fLength float64
	if _, err := fmt.Sscanf(v.String, "%f", &fLength); err == nil {
		return int(fLength)
	}
	return 0
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
