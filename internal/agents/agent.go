// Package agents provides the agent identity and state model consumed by
// the scheduler. Decision making lives in the engine's policies; an agent
// here is position, energy, and what it has gathered.
package agents

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/gridlands/internal/world"
)

// Energy bounds shared by all agents.
const (
	MaxEnergy   = 100.0
	StartEnergy = 100.0
)

// Agent is one autonomous actor on the grid. The agent owns its identity;
// cells only record a back-reference to it.
type Agent struct {
	ID       uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	Position world.Position `json:"position"`
	Energy   float64        `json:"energy"`

	// Inventory tallies harvested resources by kind.
	Inventory map[world.ResourceKind]float64 `json:"inventory"`
}

// NewAgent creates an agent at the given position with full energy.
func NewAgent(id uuid.UUID, name string, pos world.Position) *Agent {
	return &Agent{
		ID:        id,
		Name:      name,
		Position:  pos,
		Energy:    StartEnergy,
		Inventory: make(map[world.ResourceKind]float64),
	}
}

// ConsumeEnergy spends the given amount, reporting false if the agent
// lacks it (nothing is spent in that case).
func (a *Agent) ConsumeEnergy(amount float64) bool {
	if amount > a.Energy {
		return false
	}
	a.Energy -= amount
	return true
}

// RestoreEnergy recovers energy, clamped to MaxEnergy.
func (a *Agent) RestoreEnergy(amount float64) {
	a.Energy += amount
	if a.Energy > MaxEnergy {
		a.Energy = MaxEnergy
	}
}

// Carry adds harvested stock to the inventory.
func (a *Agent) Carry(kind world.ResourceKind, amount float64) {
	a.Inventory[kind] += amount
}

// Carried returns the inventory total for a kind.
func (a *Agent) Carried(kind world.ResourceKind) float64 {
	return a.Inventory[kind]
}

// String summarizes the agent.
func (a *Agent) String() string {
	return fmt.Sprintf("%s@%s energy=%.0f", a.Name, a.Position, a.Energy)
}
