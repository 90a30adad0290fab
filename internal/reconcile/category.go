package reconcile

import "slices"

// category drives the add/update/remove cycle shared by tables, columns and
// foreign keys. S is the stored item type, O the observed one; both are
// matched by name.
type category[S, O any] struct {
	storedName   func(S) string
	observedName func(O) string
	lookup       func(name string) (S, bool)

	add    func(O)
	update func(S, O) (int, error)
	remove func(S)

	// change log wording
	added   func(name string)
	removed func(name string)

	// optional hooks around each observed item
	before func(O)
	after  func(O)
}

// removeMissing removes every stored item whose name is absent from observed,
// counting one change per removal.
func (c category[S, O]) removeMissing(stored []S, observed []O) int {
	seen := make(map[string]struct{}, len(observed))
	for _, o := range observed {
		seen[c.observedName(o)] = struct{}{}
	}

	n := 0
	// stored may alias the slice remove() edits.
	for _, s := range slices.Clone(stored) {
		name := c.storedName(s)
		if _, ok := seen[name]; ok {
			continue
		}
		c.remove(s)
		c.removed(name)
		n++
	}
	return n
}

// addOrUpdate walks observed in order: unknown items are added (one change
// each), known ones are handed to update.
func (c category[S, O]) addOrUpdate(observed []O) (int, error) {
	n := 0
	for _, o := range observed {
		if c.before != nil {
			c.before(o)
		}

		name := c.observedName(o)
		if s, ok := c.lookup(name); ok {
			changed, err := c.update(s, o)
			if err != nil {
				return n, err
			}
			n += changed
		} else {
			c.add(o)
			c.added(name)
			n++
		}

		if c.after != nil {
			c.after(o)
		}
	}
	return n, nil
}
