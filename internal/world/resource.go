package world

import "fmt"

// ResourceKind enumerates the harvestable resource types.
type ResourceKind uint8

const (
	ResourceFood     ResourceKind = iota // Regenerates: fruit, game, crops
	ResourceMaterial                     // Finite: stone, wood, ore
	ResourceWater                        // Regenerates: springs and pools
)

const resourceKindCount = 3

// ResourceProps holds the immutable per-kind resource behavior, shared by
// every resource of that kind.
type ResourceProps struct {
	Kind         ResourceKind
	Regenerative bool
	BaseValue    float64 // Value per unit for policy scoring
	Name         string
}

var resourceCatalog = [resourceKindCount]ResourceProps{
	ResourceFood:     {Kind: ResourceFood, Regenerative: true, BaseValue: 1.0, Name: "food"},
	ResourceMaterial: {Kind: ResourceMaterial, Regenerative: false, BaseValue: 1.5, Name: "material"},
	ResourceWater:    {Kind: ResourceWater, Regenerative: true, BaseValue: 0.8, Name: "water"},
}

// Props returns the shared property record for the kind.
func (k ResourceKind) Props() ResourceProps {
	return resourceCatalog[k]
}

// Regenerative reports whether this kind recovers over time.
func (k ResourceKind) Regenerative() bool {
	return resourceCatalog[k].Regenerative
}

// String returns the resource name.
func (k ResourceKind) String() string {
	if int(k) >= resourceKindCount {
		return "unknown"
	}
	return resourceCatalog[k].Name
}

// Resource is a depletable quantity sitting in a cell. Invariant:
// 0 <= Amount <= MaxAmount at all times.
//
// A resource at zero is depleted but stays in place: regenerative kinds
// recover on later ticks, non-regenerative kinds are permanently exhausted
// and are stripped from their cell lazily on the next access.
type Resource struct {
	Kind      ResourceKind `json:"kind"`
	Amount    float64      `json:"amount"`
	MaxAmount float64      `json:"max_amount"`
	RegenRate float64      `json:"regen_rate"` // Units recovered per tick

	// Tick of the last regeneration (or creation). Regeneration is
	// proportional to ticks elapsed since this stamp, so cells created
	// lazily at different ticks stay consistent with eager ones.
	LastRegenTick uint64 `json:"last_regen_tick"`
}

// NewResource creates a resource, validating the amount invariant.
func NewResource(kind ResourceKind, amount, maxAmount, regenRate float64, createdTick uint64) (*Resource, error) {
	if amount < 0 || maxAmount <= 0 {
		return nil, fmt.Errorf("resource amounts must be non-negative with positive capacity: %w", ErrInvalidConfig)
	}
	if amount > maxAmount {
		return nil, fmt.Errorf("initial amount %.2f exceeds capacity %.2f: %w", amount, maxAmount, ErrInvalidConfig)
	}
	if regenRate < 0 {
		return nil, fmt.Errorf("regeneration rate must be non-negative: %w", ErrInvalidConfig)
	}
	return &Resource{
		Kind:          kind,
		Amount:        amount,
		MaxAmount:     maxAmount,
		RegenRate:     regenRate,
		LastRegenTick: createdTick,
	}, nil
}

// Harvest removes up to requested units, clamped to what is present.
// It returns the amount actually removed and whether this call crossed
// from non-zero to zero. Harvesting an already-empty resource is a no-op
// and never reports a crossing.
func (r *Resource) Harvest(requested float64) (actual float64, depleted bool) {
	if requested <= 0 || r.Amount <= 0 {
		return 0, false
	}
	actual = requested
	if actual > r.Amount {
		actual = r.Amount
	}
	before := r.Amount
	r.Amount -= actual
	return actual, before > 0 && r.Amount == 0
}

// Regenerate recovers RegenRate units per elapsed tick, clamped to
// MaxAmount. Non-regenerative kinds are a no-op. Returns the amount
// recovered.
func (r *Resource) Regenerate(ticksElapsed uint64) float64 {
	if !r.Kind.Regenerative() || ticksElapsed == 0 {
		return 0
	}
	recovered := r.RegenRate * float64(ticksElapsed)
	if r.Amount+recovered > r.MaxAmount {
		recovered = r.MaxAmount - r.Amount
	}
	r.Amount += recovered
	return recovered
}

// Depleted reports whether the resource is empty.
func (r *Resource) Depleted() bool {
	return r.Amount <= 0
}

// Exhausted reports whether the resource is empty with no way to recover.
// Exhausted resources are removed from their cell on next access.
func (r *Resource) Exhausted() bool {
	return r.Depleted() && !r.Kind.Regenerative()
}

// Harvestable reports whether a harvest would yield anything.
func (r *Resource) Harvestable() bool {
	return r.Amount > 0
}

// Value returns the policy-scoring value of the remaining stock.
func (r *Resource) Value() float64 {
	return r.Amount * r.Kind.Props().BaseValue
}

// String returns "kind: amount/max".
func (r *Resource) String() string {
	return fmt.Sprintf("%s: %.1f/%.1f", r.Kind, r.Amount, r.MaxAmount)
}
