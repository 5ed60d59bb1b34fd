package world

import "errors"

// Validation errors are recovered locally by command precondition checks
// and never crash a tick. Configuration errors are fatal at construction
// time, before any tick runs.
var (
	// ErrOutOfBounds marks a position outside the world grid.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrCellBlocked marks terrain that never carries an occupant.
	ErrCellBlocked = errors.New("cell blocks movement")

	// ErrCellOccupied marks a destination that already holds an occupant.
	ErrCellOccupied = errors.New("cell already occupied")

	// ErrNotOccupant is returned when removing an agent from a cell it
	// does not occupy.
	ErrNotOccupant = errors.New("agent does not occupy cell")

	// ErrInsufficientResource marks a harvest against an empty or missing
	// resource.
	ErrInsufficientResource = errors.New("insufficient resource")

	// ErrAccessDenied is surfaced by the guarded store when a mutation
	// carries no valid capability token. It is not retried.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidConfig marks invalid construction parameters: bad world
	// dimensions, non-positive cache capacity, broken resource bounds.
	ErrInvalidConfig = errors.New("invalid configuration")
)
