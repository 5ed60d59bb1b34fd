package world

import (
	"fmt"

	"github.com/google/uuid"
)

// Cell is one grid square: terrain, at most one resource stack, and at
// most one occupant. The cell owns its resource; the occupant field is a
// non-owning back-reference recording which agent stands here.
//
// Invariants: at most one occupant; blocking terrain never carries an
// occupant.
type Cell struct {
	Position Position    `json:"position"`
	Terrain  TerrainKind `json:"terrain"`
	Resource *Resource   `json:"resource,omitempty"`
	Occupant *uuid.UUID  `json:"occupant,omitempty"`

	// modified is set once the cell diverges from its generated state
	// (harvest, occupancy change, resource placement). The cache layer
	// pins modified cells: evicting them would silently lose state that
	// the generation rule cannot reproduce.
	modified bool
}

// NewCell creates an empty cell of the given terrain.
func NewCell(pos Position, terrain TerrainKind) *Cell {
	return &Cell{Position: pos, Terrain: terrain}
}

// Traversable reports whether agents can enter this cell's terrain.
func (c *Cell) Traversable() bool {
	return !c.Terrain.BlocksMovement()
}

// Occupied reports whether an agent stands in this cell.
func (c *Cell) Occupied() bool {
	return c.Occupant != nil
}

// CanOccupy reports whether the given agent could enter: terrain must be
// traversable and the cell empty (or already held by that same agent).
func (c *Cell) CanOccupy(id uuid.UUID) bool {
	if !c.Traversable() {
		return false
	}
	return c.Occupant == nil || *c.Occupant == id
}

// SetOccupant records an agent as standing here.
func (c *Cell) SetOccupant(id uuid.UUID) error {
	if !c.Traversable() {
		return fmt.Errorf("occupy %s: %w", c.Position, ErrCellBlocked)
	}
	if c.Occupant != nil && *c.Occupant != id {
		return fmt.Errorf("occupy %s: %w", c.Position, ErrCellOccupied)
	}
	occ := id
	c.Occupant = &occ
	c.modified = true
	return nil
}

// ClearOccupant removes the given agent's back-reference.
func (c *Cell) ClearOccupant(id uuid.UUID) error {
	if c.Occupant == nil || *c.Occupant != id {
		return fmt.Errorf("vacate %s: %w", c.Position, ErrNotOccupant)
	}
	c.Occupant = nil
	c.modified = true
	return nil
}

// PlaceResource puts a resource stack in the cell, replacing any previous
// one. Terrain that cannot spawn resources rejects the placement.
func (c *Cell) PlaceResource(r *Resource) error {
	if !c.Terrain.SpawnsResources() {
		return fmt.Errorf("place %s on %s at %s: %w", r.Kind, c.Terrain, c.Position, ErrCellBlocked)
	}
	c.Resource = r
	c.modified = true
	return nil
}

// RemoveResource detaches and returns the cell's resource, or nil.
func (c *Cell) RemoveResource() *Resource {
	r := c.Resource
	if r != nil {
		c.Resource = nil
		c.modified = true
	}
	return r
}

// MarkModified flags the cell as diverged from its generated state.
// Harvests go through the resource directly, so commands call this.
func (c *Cell) MarkModified() {
	c.modified = true
}

// Modified reports whether the cell diverged from its generated state.
func (c *Cell) Modified() bool {
	return c.modified
}

// Snapshot returns a value copy sharing no mutable state with the cell.
// Perception snapshots and unrestricted guarded reads are built from it.
func (c *Cell) Snapshot() Cell {
	snapshot := *c
	if c.Resource != nil {
		res := *c.Resource
		snapshot.Resource = &res
	}
	if c.Occupant != nil {
		occ := *c.Occupant
		snapshot.Occupant = &occ
	}
	return snapshot
}

// String summarizes the cell contents.
func (c *Cell) String() string {
	res := "no resource"
	if c.Resource != nil {
		res = c.Resource.String()
	}
	occ := "empty"
	if c.Occupant != nil {
		occ = "occupied"
	}
	return fmt.Sprintf("Cell%s %s, %s, %s", c.Position, c.Terrain, res, occ)
}
