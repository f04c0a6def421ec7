package services

import "errors"

// Sentinel errors for invariants the schema alone cannot enforce. Constraint
// violations (uniqueness, foreign keys, not-null) surface directly as driver
// errors.
var (
	// ErrStatusRequired is returned when a workflow is created without an
	// explicit status.
	ErrStatusRequired = errors.New("status is required")

	// ErrDepartmentCycle is returned when a department's parent chain would
	// loop back on itself.
	ErrDepartmentCycle = errors.New("department parent chain forms a cycle")

	// ErrNotCloseStatus is returned when a ticket is closed with a status
	// whose state is not "closed".
	ErrNotCloseStatus = errors.New("status does not mark tickets closed")
)
