package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/talgya/gridlands/internal/agents"
	"github.com/talgya/gridlands/internal/world"
)

// State is the scheduler lifecycle: Idle before a run starts or after it
// ends, Running while stepping.
type State uint8

const (
	StateIdle State = iota
	StateRunning
)

// String names the state for logs.
func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// PriorityFunc ranks agents for update order; lower values act earlier.
// Sorting is stable, so equal priorities keep insertion order.
type PriorityFunc func(a *agents.Agent) int

// Config tunes one scheduler.
type Config struct {
	PerceptionRadius int
	Metric           world.DistanceMetric
	Priority         PriorityFunc // nil = pure insertion order
}

// DefaultConfig returns the standard perception setup.
func DefaultConfig() Config {
	return Config{PerceptionRadius: 3, Metric: world.MetricChebyshev}
}

// StepResult reports what one tick did.
type StepResult struct {
	Tick            uint64
	AgentsActed     int
	CommandsApplied int
	CommandsSkipped int
	Idled           int
}

// Scheduler owns the world for the duration of a run and drives every
// registered agent through perceive, decide, act, strictly sequentially
// within a tick. Conflicting commands resolve first-mover-wins: the agent
// earlier in the order commits its effect before the later one validates.
type Scheduler struct {
	world    *world.World
	cfg      Config
	agents   []*agents.Agent // insertion order
	policies map[uuid.UUID]Policy
	state    State
	stop     bool
}

// NewScheduler creates an idle scheduler over the world.
func NewScheduler(w *world.World, cfg Config) (*Scheduler, error) {
	if w == nil {
		return nil, fmt.Errorf("scheduler needs a world: %w", world.ErrInvalidConfig)
	}
	if cfg.PerceptionRadius <= 0 {
		return nil, fmt.Errorf("perception radius %d: %w", cfg.PerceptionRadius, world.ErrInvalidConfig)
	}
	return &Scheduler{
		world:    w,
		cfg:      cfg,
		policies: make(map[uuid.UUID]Policy),
	}, nil
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State { return s.state }

// World returns the world the scheduler drives.
func (s *Scheduler) World() *world.World { return s.world }

// Agents returns the registered agents in insertion order.
func (s *Scheduler) Agents() []*agents.Agent {
	out := make([]*agents.Agent, len(s.agents))
	copy(out, s.agents)
	return out
}

// Register adds an agent with its decision policy. If the agent's cell
// does not yet record it, it is placed into the world first.
func (s *Scheduler) Register(a *agents.Agent, p Policy) error {
	if a == nil || p == nil {
		return fmt.Errorf("register needs agent and policy: %w", world.ErrInvalidConfig)
	}
	cell, err := s.world.GetCell(a.Position)
	if err != nil {
		return err
	}
	if cell.Occupant == nil || *cell.Occupant != a.ID {
		if err := s.world.PlaceAgent(a.ID, a.Position); err != nil {
			return err
		}
	}
	s.agents = append(s.agents, a)
	s.policies[a.ID] = p
	return nil
}

// Remove unregisters an agent and vacates its cell.
func (s *Scheduler) Remove(id uuid.UUID) error {
	for i, a := range s.agents {
		if a.ID != id {
			continue
		}
		if err := s.world.RemoveAgent(id, a.Position); err != nil {
			return err
		}
		s.agents = append(s.agents[:i], s.agents[i+1:]...)
		delete(s.policies, id)
		return nil
	}
	return fmt.Errorf("remove %s: %w", id, world.ErrNotOccupant)
}

// Stop requests a halt. It takes effect at the next tick boundary: the
// tick in flight always completes for every agent.
func (s *Scheduler) Stop() { s.stop = true }

// Step runs exactly one tick: every agent perceives, decides, and acts in
// order, then the world clock advances once.
func (s *Scheduler) Step() StepResult {
	s.state = StateRunning

	result := StepResult{Tick: s.world.Tick() + 1}
	for _, a := range s.orderedAgents() {
		s.updateAgent(a, &result)
		result.AgentsActed++
	}
	s.world.AdvanceTick()
	return result
}

// Run executes up to maxTicks full ticks, stopping early only at a tick
// boundary after Stop. The scheduler returns to Idle when done.
func (s *Scheduler) Run(maxTicks int) []StepResult {
	s.stop = false
	results := make([]StepResult, 0, maxTicks)
	for i := 0; i < maxTicks; i++ {
		if s.stop {
			break
		}
		results = append(results, s.Step())
	}
	s.state = StateIdle
	slog.Info("run complete",
		"ticks", len(results),
		"tick", s.world.Tick(),
		"agents", len(s.agents),
		"events", s.world.Events().Len(),
	)
	return results
}

// orderedAgents returns the update order for this tick: insertion order,
// reordered by the stable priority sort when one is configured.
func (s *Scheduler) orderedAgents() []*agents.Agent {
	ordered := make([]*agents.Agent, len(s.agents))
	copy(ordered, s.agents)
	if s.cfg.Priority != nil {
		sort.SliceStable(ordered, func(i, j int) bool {
			return s.cfg.Priority(ordered[i]) < s.cfg.Priority(ordered[j])
		})
	}
	return ordered
}

// updateAgent runs one agent's perceive-decide-act cycle atomically with
// respect to all other agents.
func (s *Scheduler) updateAgent(a *agents.Agent, result *StepResult) {
	perception := s.perceive(a)

	cmd := s.policies[a.ID].Decide(perception)
	if cmd == nil {
		result.Idled++
		return
	}

	// Validate against current world state, not the snapshot the policy
	// saw: an earlier agent may have taken the cell or the stock.
	if err := cmd.CanExecute(s.world, a); err != nil {
		s.logSkip(a, cmd, err)
		result.CommandsSkipped++
		return
	}

	if _, err := cmd.Execute(s.world, a); err != nil {
		// CanExecute passed, so this is unexpected; skip and keep the
		// tick moving.
		slog.Warn("command failed after validation",
			"agent", a.Name, "command", cmd.Name(), "error", err)
		s.logSkip(a, cmd, err)
		result.CommandsSkipped++
		return
	}
	result.CommandsApplied++
}

// perceive builds the read-only radius-bounded snapshot for one agent.
func (s *Scheduler) perceive(a *agents.Agent) Perception {
	p := Perception{
		Agent:  a.Position,
		Energy: a.Energy,
		Tick:   s.world.Tick(),
	}
	for pos := range world.Radius(a.Position, s.cfg.PerceptionRadius, s.world.Width(), s.world.Height(), s.cfg.Metric) {
		cell, err := s.world.GetCell(pos)
		if err != nil {
			continue
		}
		p.Cells = append(p.Cells, cell.Snapshot())
	}
	return p
}

// logSkip records a skipped command as a no-op event for observability.
func (s *Scheduler) logSkip(a *agents.Agent, cmd Command, reason error) {
	s.world.LogEvent(world.Event{
		Kind:     world.EventCommandSkipped,
		Position: a.Position,
		Tick:     s.world.Tick(),
		Payload: map[string]any{
			"agent":   a.ID.String(),
			"command": cmd.Name(),
			"reason":  reason.Error(),
		},
	})
}
