package reconcile

import (
	"errors"
	"fmt"
)

// Kind classifies a ReconciliationError.
type Kind int

const (
	// KindMetadataAccess: the metadata provider failed or returned a malformed snapshot.
	KindMetadataAccess Kind = iota + 1
	// KindInconsistentState: an entity was reconciled against a table of another name.
	KindInconsistentState
)

func (k Kind) String() string {
	switch k {
	case KindMetadataAccess:
		return "metadata access"
	case KindInconsistentState:
		return "inconsistent state"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels matched by ReconciliationError.Is.
var (
	ErrMetadataAccess    = errors.New("metadata access failed")
	ErrInconsistentState = errors.New("inconsistent state")
)

// ReconciliationError aborts a run. Err is the underlying cause.
type ReconciliationError struct {
	Kind Kind
	Err  error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation failed (%s): %v", e.Kind, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

// Is matches ErrMetadataAccess and ErrInconsistentState by kind.
func (e *ReconciliationError) Is(target error) bool {
	switch target {
	case ErrMetadataAccess:
		return e.Kind == KindMetadataAccess
	case ErrInconsistentState:
		return e.Kind == KindInconsistentState
	}
	return false
}

// InconsistentStateError reports an entity reconciled against a table of
// another name. It signals a caller bug, not a database condition.
type InconsistentStateError struct {
	Entity string
	Table  string
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("entity %q cannot be reconciled with table %q", e.Entity, e.Table)
}

func (e *InconsistentStateError) Is(target error) bool {
	return target == ErrInconsistentState
}
