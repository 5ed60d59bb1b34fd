// Package engine provides the commands, decision policies, and the
// tick-based scheduler that drives agents through perceive, decide, act.
package engine

import (
	"fmt"

	"github.com/talgya/gridlands/internal/agents"
	"github.com/talgya/gridlands/internal/world"
)

// Energy economics shared by the built-in commands.
const (
	MoveBaseCost   = 5.0  // Scaled by destination terrain movement cost
	GatherCost     = 3.0
	RestRecovery   = 20.0
	DefaultHarvest = 15.0 // Units a gather requests when the policy has no preference
)

// Command is one mutating action an agent can take. The scheduler always
// calls CanExecute against current world state first; calling Execute on a
// command that failed validation is a contract violation.
//
// Execute applies the effect, appends the events it produces to the world
// log in causal order, and returns the primary event for scheduler
// bookkeeping.
type Command interface {
	Name() string
	CanExecute(w *world.World, a *agents.Agent) error
	Execute(w *world.World, a *agents.Agent) (world.Event, error)
}

// MoveCommand steps an agent onto an adjacent cell.
type MoveCommand struct {
	To world.Position
}

// Name identifies the command in events and logs.
func (c MoveCommand) Name() string { return "move" }

// cost returns the energy price of entering the destination terrain.
func (c MoveCommand) cost(dest *world.Cell) float64 {
	return MoveBaseCost * dest.Terrain.Props().MovementCost
}

// CanExecute validates adjacency, bounds, terrain, occupancy, and energy
// against the world as it is right now, not a stale snapshot.
func (c MoveCommand) CanExecute(w *world.World, a *agents.Agent) error {
	if !a.Position.IsAdjacent(c.To, true) {
		return fmt.Errorf("move %s -> %s not adjacent: %w", a.Position, c.To, world.ErrOutOfBounds)
	}
	dest, err := w.GetCell(c.To)
	if err != nil {
		return err
	}
	if !dest.Traversable() {
		return fmt.Errorf("move to %s: %w", c.To, world.ErrCellBlocked)
	}
	if dest.Occupied() {
		return fmt.Errorf("move to %s: %w", c.To, world.ErrCellOccupied)
	}
	if a.Energy < c.cost(dest) {
		return fmt.Errorf("move to %s needs %.1f energy: %w", c.To, c.cost(dest), world.ErrInsufficientResource)
	}
	return nil
}

// Execute relocates the agent and logs the move.
func (c MoveCommand) Execute(w *world.World, a *agents.Agent) (world.Event, error) {
	dest, err := w.GetCell(c.To)
	if err != nil {
		return world.Event{}, err
	}
	if !a.ConsumeEnergy(c.cost(dest)) {
		return world.Event{}, fmt.Errorf("move to %s: %w", c.To, world.ErrInsufficientResource)
	}
	from := a.Position
	if err := w.MoveAgent(a.ID, from, c.To); err != nil {
		return world.Event{}, err
	}
	a.Position = c.To
	evt := world.Event{
		Kind:     world.EventAgentMoved,
		Position: c.To,
		Tick:     w.Tick(),
		Payload: map[string]any{
			"agent": a.ID.String(),
			"from":  from.String(),
		},
	}
	w.LogEvent(evt)
	return evt, nil
}

// GatherCommand harvests from the resource in the agent's current cell.
type GatherCommand struct {
	Amount float64
}

// Name identifies the command in events and logs.
func (c GatherCommand) Name() string { return "gather" }

// CanExecute requires a harvestable resource underfoot and enough energy.
func (c GatherCommand) CanExecute(w *world.World, a *agents.Agent) error {
	if c.Amount <= 0 {
		return fmt.Errorf("gather amount %.1f: %w", c.Amount, world.ErrInsufficientResource)
	}
	cell, err := w.GetCell(a.Position)
	if err != nil {
		return err
	}
	if cell.Resource == nil || !cell.Resource.Harvestable() {
		return fmt.Errorf("gather at %s: %w", a.Position, world.ErrInsufficientResource)
	}
	if a.Energy < GatherCost {
		return fmt.Errorf("gather needs %.1f energy: %w", GatherCost, world.ErrInsufficientResource)
	}
	return nil
}

// Execute harvests into the agent's inventory, logging the harvest and,
// when this call empties the stack, exactly one depletion event.
func (c GatherCommand) Execute(w *world.World, a *agents.Agent) (world.Event, error) {
	cell, err := w.GetCell(a.Position)
	if err != nil {
		return world.Event{}, err
	}
	res := cell.Resource
	if res == nil {
		return world.Event{}, fmt.Errorf("gather at %s: %w", a.Position, world.ErrInsufficientResource)
	}
	if !a.ConsumeEnergy(GatherCost) {
		return world.Event{}, fmt.Errorf("gather: %w", world.ErrInsufficientResource)
	}

	actual, depleted := res.Harvest(c.Amount)
	cell.MarkModified()
	a.Carry(res.Kind, actual)

	evt := world.Event{
		Kind:     world.EventResourceHarvested,
		Position: a.Position,
		Tick:     w.Tick(),
		Payload: map[string]any{
			"agent":     a.ID.String(),
			"resource":  res.Kind.String(),
			"requested": c.Amount,
			"actual":    actual,
			"remaining": res.Amount,
		},
	}
	w.LogEvent(evt)

	if depleted {
		w.LogEvent(world.Event{
			Kind:     world.EventResourceDepleted,
			Position: a.Position,
			Tick:     w.Tick(),
			Payload: map[string]any{
				"resource":     res.Kind.String(),
				"regenerative": res.Kind.Regenerative(),
			},
		})
	}
	return evt, nil
}

// RestCommand recovers energy in place.
type RestCommand struct{}

// Name identifies the command in events and logs.
func (c RestCommand) Name() string { return "rest" }

// CanExecute only rejects resting at full energy.
func (c RestCommand) CanExecute(w *world.World, a *agents.Agent) error {
	if a.Energy >= agents.MaxEnergy {
		return fmt.Errorf("rest at full energy: %w", world.ErrInsufficientResource)
	}
	return nil
}

// Execute restores energy and logs the rest.
func (c RestCommand) Execute(w *world.World, a *agents.Agent) (world.Event, error) {
	a.RestoreEnergy(RestRecovery)
	evt := world.Event{
		Kind:     world.EventAgentRested,
		Position: a.Position,
		Tick:     w.Tick(),
		Payload: map[string]any{
			"agent":  a.ID.String(),
			"energy": a.Energy,
		},
	}
	w.LogEvent(evt)
	return evt, nil
}
