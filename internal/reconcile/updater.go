// Package reconcile brings a repository model in line with the structure of a
// live database and records every decision in a change log.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"repo-sync/internal/model"
	"repo-sync/internal/schema"

	"github.com/charmbracelet/log"
)

// MetadataProvider returns the tables of a database matching a filter.
type MetadataProvider interface {
	FetchTables(ctx context.Context, f schema.Filter) ([]*schema.Table, error)
}

// ChangeLog receives one line per decision. Update closes it.
type ChangeLog interface {
	Println(line string)
	Close() error
}

// Options configures an Updater.
type Options struct {
	Provider MetadataProvider
	Logger   *log.Logger
	// Clock stamps the change log header; defaults to time.Now.
	Clock func() time.Time
	// Progress is called after each observed table.
	Progress func(done, total int)
}

// Updater reconciles repository models against a database.
type Updater struct {
	provider MetadataProvider
	logger   *log.Logger
	clock    func() time.Time
	progress func(done, total int)
}

// NewUpdater creates an Updater. Provider is required.
func NewUpdater(opts Options) *Updater {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Updater{
		provider: opts.Provider,
		logger:   opts.Logger,
		clock:    opts.Clock,
		progress: opts.Progress,
	}
}

// Update reconciles m with the tables selected by f and returns the number of
// changes applied. m is modified in place.
//
// changes is closed before Update returns, on every path. When the run fails,
// the changes applied so far stay in m; the caller decides whether to keep it.
func (u *Updater) Update(ctx context.Context, m *model.Model, changes ChangeLog, f schema.Filter) (count int, err error) {
	defer func() {
		if cerr := changes.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close change log: %w", cerr))
		}
	}()

	changes.Println("Update date : " + u.clock().Format("2006-01-02 15:04:05 MST"))

	u.logger.Info("reading database metadata", "schema", f.Schema, "pattern", f.TablePattern)
	tables, err := u.provider.FetchTables(ctx, f)
	if err != nil {
		return 0, &ReconciliationError{Kind: KindMetadataAccess, Err: err}
	}
	if err := checkSnapshot(tables); err != nil {
		return 0, &ReconciliationError{Kind: KindMetadataAccess, Err: err}
	}

	u.logger.Info("updating repository from database tables", "tables", len(tables), "entities", m.Len())
	count, err = u.updateModel(m, changes, tables)
	if err != nil {
		return count, &ReconciliationError{Kind: KindInconsistentState, Err: err}
	}

	u.logger.Info("repository updated", "changes", count, "entities", m.Len())
	return count, nil
}

// updateModel runs the table-level pass, then removes entities whose table is gone.
func (u *Updater) updateModel(m *model.Model, changes ChangeLog, tables []*schema.Table) (int, error) {
	done := 0
	entities := category[*model.Entity, *schema.Table]{
		storedName:   func(e *model.Entity) string { return e.Name },
		observedName: func(t *schema.Table) string { return t.Name },
		lookup: func(name string) (*model.Entity, bool) {
			e := m.Entity(name)
			return e, e != nil
		},
		add: func(t *schema.Table) { m.StoreEntity(buildEntity(t)) },
		update: func(e *model.Entity, t *schema.Table) (int, error) {
			changes.Println(fmt.Sprintf(" Table '%s' found in repository", t.Name))
			n, err := UpdateEntity(changes, e, t)
			if err != nil {
				return n, err
			}
			if n > 0 {
				changes.Println(fmt.Sprintf(" (*) table '%s' updated : %d change(s)", t.Name, n))
			} else {
				changes.Println(fmt.Sprintf(" (=) table '%s' unchanged", t.Name))
			}
			return n, nil
		},
		remove: func(e *model.Entity) { m.RemoveEntity(e.Name) },
		added: func(name string) {
			changes.Println(fmt.Sprintf(" Table '%s' not found in repository", name))
			changes.Println(fmt.Sprintf(" (+) table '%s' added", name))
		},
		removed: func(name string) {
			changes.Println(" ")
			changes.Println(fmt.Sprintf(" Table '%s' no longer exists in database", name))
			changes.Println(fmt.Sprintf(" (-) table '%s' removed", name))
			u.logger.Debug("entity removed", "table", name)
		},
		before: func(t *schema.Table) {
			u.logger.Debug("table", "name", t.Name, "catalog", t.Catalog, "schema", t.Schema)
			changes.Println(" ")
		},
		after: func(*schema.Table) {
			done++
			if u.progress != nil {
				u.progress(done, len(tables))
			}
		},
	}

	n, err := entities.addOrUpdate(tables)
	if err != nil {
		return n, err
	}
	n += entities.removeMissing(m.Entities(), tables)
	return n, nil
}

// checkSnapshot rejects snapshots the reconciliation cannot key by name:
// tables, their columns and their foreign keys must be named and unique.
func checkSnapshot(tables []*schema.Table) error {
	seen := make(map[string]bool, len(tables))
	for i, t := range tables {
		if t == nil || t.Name == "" {
			return fmt.Errorf("malformed metadata: table #%d has no name", i+1)
		}
		if seen[t.Name] {
			return fmt.Errorf("malformed metadata: table %q listed twice", t.Name)
		}
		seen[t.Name] = true
		if err := checkTable(t); err != nil {
			return err
		}
	}
	return nil
}

func checkTable(t *schema.Table) error {
	cols := make(map[string]bool, len(t.Columns))
	for i, c := range t.Columns {
		if c == nil || c.Name == "" {
			return fmt.Errorf("malformed metadata: table %q: column #%d has no name", t.Name, i+1)
		}
		if cols[c.Name] {
			return fmt.Errorf("malformed metadata: table %q: column %q listed twice", t.Name, c.Name)
		}
		cols[c.Name] = true
	}
	keys := make(map[string]bool, len(t.ForeignKeys))
	for i, fk := range t.ForeignKeys {
		if fk == nil || fk.Name == "" {
			return fmt.Errorf("malformed metadata: table %q: foreign key #%d has no name", t.Name, i+1)
		}
		if keys[fk.Name] {
			return fmt.Errorf("malformed metadata: table %q: foreign key %q listed twice", t.Name, fk.Name)
		}
		keys[fk.Name] = true
	}
	return nil
}
