package engine

import (
	"github.com/talgya/gridlands/internal/agents"
	"github.com/talgya/gridlands/internal/world"
)

// Perception is the read-only snapshot a policy decides from: the agent's
// own state and value copies of the nearby cells, nearest first. Policies
// never touch the world directly.
type Perception struct {
	Agent  world.Position // Where the deciding agent stands
	Energy float64
	Tick   uint64
	Cells  []world.Cell // Nearest-first, row-major tie-break
}

// CellAt looks up a perceived cell by position.
func (p Perception) CellAt(pos world.Position) (world.Cell, bool) {
	for _, c := range p.Cells {
		if c.Position == pos {
			return c, true
		}
	}
	return world.Cell{}, false
}

// Policy selects at most one command from a perception snapshot. A nil
// return means the agent idles this tick.
type Policy interface {
	Name() string
	Decide(p Perception) Command
}

// restThreshold is the energy level below which the forager stops to rest.
const restThreshold = 25.0

// ForagerPolicy is the reference survival-first strategy: rest when
// drained, harvest underfoot, otherwise walk toward the most valuable
// visible resource, falling back to deterministic exploration.
type ForagerPolicy struct{}

// Name identifies the policy.
func (ForagerPolicy) Name() string { return "forager" }

// Decide implements the forager priorities in order.
func (f ForagerPolicy) Decide(p Perception) Command {
	if p.Energy < restThreshold {
		return RestCommand{}
	}

	// Harvest in place when something is underfoot.
	if here, ok := p.CellAt(p.Agent); ok {
		if here.Resource != nil && here.Resource.Harvestable() {
			return GatherCommand{Amount: DefaultHarvest}
		}
	}

	// Walk toward the best visible stock. Perception order is
	// deterministic, so strict improvement keeps the choice stable.
	if target, ok := f.bestResource(p); ok {
		if step, ok := f.stepToward(p, target); ok {
			return MoveCommand{To: step}
		}
	}

	return f.explore(p)
}

// bestResource picks the highest-value harvestable cell in view.
func (f ForagerPolicy) bestResource(p Perception) (world.Position, bool) {
	var (
		best      world.Position
		bestValue float64
		found     bool
	)
	for _, c := range p.Cells {
		if c.Position == p.Agent || c.Resource == nil || !c.Resource.Harvestable() {
			continue
		}
		if v := c.Resource.Value(); v > bestValue {
			best = c.Position
			bestValue = v
			found = true
		}
	}
	return best, found
}

// stepToward returns the one-cell move closing distance to target,
// preferring the diagonal step and degrading to single-axis steps when
// the snapshot shows the way blocked.
func (f ForagerPolicy) stepToward(p Perception, target world.Position) (world.Position, bool) {
	dx := sign(target.X - p.Agent.X)
	dy := sign(target.Y - p.Agent.Y)
	candidates := []world.Position{
		{X: p.Agent.X + dx, Y: p.Agent.Y + dy},
		{X: p.Agent.X + dx, Y: p.Agent.Y},
		{X: p.Agent.X, Y: p.Agent.Y + dy},
	}
	for _, pos := range candidates {
		if pos == p.Agent {
			continue
		}
		if cell, ok := p.CellAt(pos); ok && cell.Traversable() && !cell.Occupied() {
			return pos, true
		}
	}
	return world.Position{}, false
}

// explore walks to a free neighbor, rotating the preferred direction with
// the tick so the wander is deterministic but not a fixed drift.
func (f ForagerPolicy) explore(p Perception) Command {
	neighbors := p.Agent.Neighbors(false)
	n := len(neighbors)
	start := int(p.Tick) % n
	for i := 0; i < n; i++ {
		pos := neighbors[(start+i)%n]
		if cell, ok := p.CellAt(pos); ok && cell.Traversable() && !cell.Occupied() {
			return MoveCommand{To: pos}
		}
	}
	if p.Energy < agents.MaxEnergy {
		return RestCommand{}
	}
	return nil
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
