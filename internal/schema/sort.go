package schema

// ---------------------------------------------------------------------
// 3. Sorting Algorithm (Topological / Greedy)
// ---------------------------------------------------------------------

// SortTablesByFKCount sorts tables by dependency order, referenced tables first.
// It handles circular dependencies by using a scoring system. The input slice
// is not modified.
func SortTablesByFKCount(tables []*Table) []*Table {
	sorted := make([]*Table, 0, len(tables))
	processed := make(map[string]bool)
	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	// Keep looping until all tables are processed
	for len(sorted) < len(tables) {
		added := false

		// Pass 1: Add tables whose dependencies are fully satisfied
		for _, t := range tables {
			if processed[t.Name] {
				continue
			}
			if unprocessed(t, processed, byName) == 0 {
				sorted = append(sorted, t)
				processed[t.Name] = true
				added = true
			}
		}
		if added {
			continue
		}

		// Pass 2: No table added, we have a cycle. Break it using heuristic score.
		bestTable := breakCycle(tables, processed, byName)
		if bestTable == nil {
			// Should not happen if tables > sorted
			break
		}
		sorted = append(sorted, bestTable)
		processed[bestTable.Name] = true
	}

	return sorted
}

// unprocessed counts the dependencies of t that are still pending. References
// to tables outside the snapshot never block.
func unprocessed(t *Table, processed map[string]bool, byName map[string]*Table) int {
	n := 0
	for _, dep := range t.Dependencies {
		if _, known := byName[dep]; known && !processed[dep] {
			n++
		}
	}
	return n
}

// breakCycle picks the table to emit next when every remaining table waits on another.
//
// Score: penalty of 100 per pending dependency (prefer fewer dependencies),
// bonus of 500 when one of its pending dependencies depends back on it
// (prefer breaking two-table cycles early). Ties go to the greater name.
func breakCycle(tables []*Table, processed map[string]bool, byName map[string]*Table) *Table {
	var bestTable *Table
	bestScore := 0

	for _, t := range tables {
		if processed[t.Name] {
			continue
		}

		score := -unprocessed(t, processed, byName) * 100
		if dependsBack(t, processed, byName) {
			score += 500 // Priority boost
		}

		// Tie-breaker: Name (Deterministic)
		if bestTable == nil || score > bestScore || (score == bestScore && t.Name > bestTable.Name) {
			bestScore = score
			bestTable = t
		}
	}
	return bestTable
}

func dependsBack(t *Table, processed map[string]bool, byName map[string]*Table) bool {
	for _, depName := range t.Dependencies {
		if processed[depName] {
			continue
		}
		cand, ok := byName[depName]
		if !ok {
			continue
		}
		for _, candDep := range cand.Dependencies {
			if candDep == t.Name {
				return true
			}
		}
	}
	return false
}
