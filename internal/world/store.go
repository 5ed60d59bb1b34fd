package world

import "fmt"

// CellStore is the backing-strategy contract shared by the eager and lazy
// grids. Implementations must hand back the same *Cell for repeated
// accesses to the same position while the cell is resident.
type CellStore interface {
	// GetCell returns the cell at pos, materializing it if the strategy
	// is lazy. Fails only for out-of-bounds positions (or denied writes
	// in the guarded variant).
	GetCell(pos Position) (*Cell, error)

	// SetCell replaces the cell at pos.
	SetCell(pos Position, cell *Cell) error

	// HasCell reports whether a cell is currently materialized at pos
	// without materializing one.
	HasCell(pos Position) bool

	// Width and Height give the grid dimensions.
	Width() int
	Height() int

	// Resident returns the number of materialized cells.
	Resident() int
}

// EagerStore materializes every cell of the width x height grid up front.
// Lookups are direct and never fail for in-bounds positions.
type EagerStore struct {
	width  int
	height int
	cells  map[Position]*Cell
}

// NewEagerStore creates an empty eager store. Cells are filled in by the
// generator before the run starts.
func NewEagerStore(width, height int) (*EagerStore, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("eager store %dx%d: %w", width, height, ErrInvalidConfig)
	}
	return &EagerStore{
		width:  width,
		height: height,
		cells:  make(map[Position]*Cell, width*height),
	}, nil
}

// GetCell returns the cell at pos.
func (s *EagerStore) GetCell(pos Position) (*Cell, error) {
	if !pos.InBounds(s.width, s.height) {
		return nil, fmt.Errorf("get %s: %w", pos, ErrOutOfBounds)
	}
	cell, ok := s.cells[pos]
	if !ok {
		// Pre-materialized stores are populated by the generator;
		// a hole means generation skipped the position.
		cell = NewCell(pos, TerrainPlains)
		s.cells[pos] = cell
	}
	return cell, nil
}

// SetCell replaces the cell at pos.
func (s *EagerStore) SetCell(pos Position, cell *Cell) error {
	if !pos.InBounds(s.width, s.height) {
		return fmt.Errorf("set %s: %w", pos, ErrOutOfBounds)
	}
	s.cells[pos] = cell
	return nil
}

// HasCell reports whether pos holds a materialized cell.
func (s *EagerStore) HasCell(pos Position) bool {
	_, ok := s.cells[pos]
	return ok
}

// Width returns the grid width.
func (s *EagerStore) Width() int { return s.width }

// Height returns the grid height.
func (s *EagerStore) Height() int { return s.height }

// Resident returns the number of materialized cells.
func (s *EagerStore) Resident() int { return len(s.cells) }
