package world

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// World composes a cell store, the terrain catalog, and the event log, and
// owns the simulation clock. It is constructed explicitly once per run and
// handed to the scheduler; nothing mutates it concurrently.
type World struct {
	store CellStore
	log   *EventLog
	tick  uint64
}

// NewWorld wraps a populated cell store.
func NewWorld(store CellStore) (*World, error) {
	if store == nil {
		return nil, fmt.Errorf("world needs a cell store: %w", ErrInvalidConfig)
	}
	return &World{store: store, log: NewEventLog()}, nil
}

// Tick returns the current simulation tick.
func (w *World) Tick() uint64 { return w.tick }

// Width returns the grid width.
func (w *World) Width() int { return w.store.Width() }

// Height returns the grid height.
func (w *World) Height() int { return w.store.Height() }

// Store exposes the backing store for diagnostics (resident counts).
func (w *World) Store() CellStore { return w.store }

// Events returns the event log. Consumers read it through All, Filter, and
// CountByKind; only the world and the scheduler append.
func (w *World) Events() *EventLog { return w.log }

// LogEvent appends an event at the world's discretion. The caller stamps
// the tick.
func (w *World) LogEvent(e Event) { w.log.Append(e) }

// InBounds reports whether pos is on the grid.
func (w *World) InBounds(pos Position) bool {
	return pos.InBounds(w.store.Width(), w.store.Height())
}

// GetCell returns the cell at pos. Permanently exhausted resources are
// stripped here, lazily: a non-regenerative resource harvested to zero
// stays queryable as present-but-empty until this next access removes it.
func (w *World) GetCell(pos Position) (*Cell, error) {
	cell, err := w.store.GetCell(pos)
	if err != nil {
		return nil, err
	}
	if cell.Resource != nil && cell.Resource.Exhausted() {
		kind := cell.Resource.Kind
		cell.RemoveResource()
		w.log.Append(Event{
			Kind:     EventResourceExhausted,
			Position: pos,
			Tick:     w.tick,
			Payload:  map[string]any{"resource": kind.String()},
		})
	}
	return cell, nil
}

// SetCell replaces the cell at pos.
func (w *World) SetCell(pos Position, cell *Cell) error {
	return w.store.SetCell(pos, cell)
}

// HasCell reports whether a cell is materialized at pos.
func (w *World) HasCell(pos Position) bool {
	return w.store.HasCell(pos)
}

// PlaceAgent records an agent as occupying pos. The target must be in
// bounds, traversable, and empty.
func (w *World) PlaceAgent(id uuid.UUID, pos Position) error {
	cell, err := w.GetCell(pos)
	if err != nil {
		return err
	}
	if err := cell.SetOccupant(id); err != nil {
		return err
	}
	w.log.Append(Event{
		Kind:     EventAgentPlaced,
		Position: pos,
		Tick:     w.tick,
		Payload:  map[string]any{"agent": id.String()},
	})
	return nil
}

// RemoveAgent clears an agent's occupancy of pos.
func (w *World) RemoveAgent(id uuid.UUID, pos Position) error {
	cell, err := w.GetCell(pos)
	if err != nil {
		return err
	}
	if err := cell.ClearOccupant(id); err != nil {
		return err
	}
	w.log.Append(Event{
		Kind:     EventAgentRemoved,
		Position: pos,
		Tick:     w.tick,
		Payload:  map[string]any{"agent": id.String()},
	})
	return nil
}

// MoveAgent relocates an agent between cells after validating the
// destination. Movement commands log their own event, so this primitive
// stays silent on success.
func (w *World) MoveAgent(id uuid.UUID, from, to Position) error {
	dest, err := w.GetCell(to)
	if err != nil {
		return err
	}
	if !dest.Traversable() {
		return fmt.Errorf("move to %s: %w", to, ErrCellBlocked)
	}
	if dest.Occupied() && *dest.Occupant != id {
		return fmt.Errorf("move to %s: %w", to, ErrCellOccupied)
	}
	src, err := w.GetCell(from)
	if err != nil {
		return err
	}
	if err := src.ClearOccupant(id); err != nil {
		return err
	}
	return dest.SetOccupant(id)
}

// AdvanceTick applies resource regeneration for the interval that ended
// with the tick that just ran, then moves the clock forward. This is the
// single point where regeneration happens; each resource recovers
// proportional to the ticks elapsed since its own last-regeneration
// stamp, which keeps cells materialized late by the lazy store consistent
// with eager ones. The creation tick itself contributes no recovery, so a
// stack emptied on the tick it was created stays empty until the
// following tick completes.
func (w *World) AdvanceTick() {
	positions := w.residentPositions()
	for _, pos := range positions {
		cell, err := w.store.GetCell(pos)
		if err != nil || cell.Resource == nil {
			continue
		}
		res := cell.Resource
		elapsed := w.tick - res.LastRegenTick
		recovered := res.Regenerate(elapsed)
		res.LastRegenTick = w.tick
		if recovered > 0 {
			// Regenerated stock diverges from the generated default, so
			// the cell must survive eviction from here on.
			cell.MarkModified()
			w.log.Append(Event{
				Kind:     EventResourceRegenerated,
				Position: pos,
				Tick:     w.tick,
				Payload: map[string]any{
					"resource":  res.Kind.String(),
					"recovered": recovered,
					"amount":    res.Amount,
				},
			})
		}
	}

	w.tick++
	w.log.Append(Event{Kind: EventTick, Tick: w.tick})
	slog.Debug("tick advanced", "tick", w.tick, "resident", w.store.Resident())
}

// residentPositions lists materialized cells in row-major order so the
// regeneration pass (and its events) stay deterministic across runs.
func (w *World) residentPositions() []Position {
	var positions []Position
	for pos := range Scan(w.store.Width(), w.store.Height()) {
		if w.store.HasCell(pos) {
			positions = append(positions, pos)
		}
	}
	return positions
}

// String summarizes the world.
func (w *World) String() string {
	return fmt.Sprintf("World(%dx%d, t=%d)", w.Width(), w.Height(), w.tick)
}
