// World generation using layered simplex noise. The same position-keyed
// rule backs eager generation and lazy materialization, so an evicted cell
// regenerated on re-access gets identical immutable attributes.
package world

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Width           int
	Height          int
	ResourceDensity float64 // Fraction of spawnable cells carrying a resource (0.0–1.0)
	Seed            int64
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:           64,
		Height:          64,
		ResourceDensity: 0.15,
		Seed:            42,
	}
}

// Validate rejects unusable generation parameters.
func (cfg GenConfig) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("world dimensions %dx%d: %w", cfg.Width, cfg.Height, ErrInvalidConfig)
	}
	if cfg.ResourceDensity < 0 || cfg.ResourceDensity > 1 {
		return fmt.Errorf("resource density %.2f: %w", cfg.ResourceDensity, ErrInvalidConfig)
	}
	return nil
}

// Terrain thresholds on the noise layers.
const (
	waterLevel    = 0.25
	mountainLevel = 0.72
	desertRainLvl = 0.25
	forestRainLvl = 0.62
)

// Default resource stock parameters. Spawned stacks start full so the rule
// stays idempotent: a freshly generated resource has nothing to regenerate,
// which keeps lazily materialized cells indistinguishable from eager ones
// until something harvests them.
const (
	baseStock      = 40.0
	stockSpread    = 40.0
	foodRegenRate  = 2.0
	waterRegenRate = 3.0
)

// GenRule is the deterministic generation rule keyed by position. Two
// rules built from the same config produce identical cells for every
// position, forever.
type GenRule struct {
	cfg       GenConfig
	elevNoise opensimplex.Noise
	rainNoise opensimplex.Noise
	resNoise  opensimplex.Noise
	kindNoise opensimplex.Noise
}

// NewGenRule builds the rule from a validated config.
func NewGenRule(cfg GenConfig) (*GenRule, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// Independent layers from seed offsets.
	return &GenRule{
		cfg:       cfg,
		elevNoise: opensimplex.NewNormalized(cfg.Seed),
		rainNoise: opensimplex.NewNormalized(cfg.Seed + 1),
		resNoise:  opensimplex.NewNormalized(cfg.Seed + 2),
		kindNoise: opensimplex.NewNormalized(cfg.Seed + 3),
	}, nil
}

// Config returns the generation parameters.
func (g *GenRule) Config() GenConfig { return g.cfg }

// CellAt materializes the cell for pos: terrain from layered noise, plus a
// full resource stack where the density threshold and terrain allow one.
func (g *GenRule) CellAt(pos Position) *Cell {
	x := float64(pos.X)
	y := float64(pos.Y)

	elev := octaveNoise(g.elevNoise, x, y, 4, 0.08, 0.5)
	rain := octaveNoise(g.rainNoise, x, y, 3, 0.06, 0.5)

	terrain := deriveTerrain(elev, rain)
	cell := NewCell(pos, terrain)

	if terrain.SpawnsResources() && g.resNoise.Eval2(x*0.35, y*0.35) < g.cfg.ResourceDensity {
		kind := deriveResourceKind(g.kindNoise.Eval2(x*0.5, y*0.5), terrain)
		fertility := terrain.Props().Fertility
		maxAmount := (baseStock + stockSpread*rain) * fertility
		regen := 0.0
		switch kind {
		case ResourceFood:
			regen = foodRegenRate * fertility
		case ResourceWater:
			regen = waterRegenRate
		}
		cell.Resource = &Resource{
			Kind:      kind,
			Amount:    maxAmount,
			MaxAmount: maxAmount,
			RegenRate: regen,
		}
	}
	return cell
}

// deriveTerrain determines terrain from the elevation and rainfall layers.
func deriveTerrain(elev, rain float64) TerrainKind {
	if elev < waterLevel {
		return TerrainWater
	}
	if elev > mountainLevel {
		return TerrainMountain
	}
	if rain < desertRainLvl {
		return TerrainDesert
	}
	if rain > forestRainLvl {
		return TerrainForest
	}
	return TerrainPlains
}

// deriveResourceKind maps a noise sample to a resource kind. Mountains
// lean toward material, everything else splits by the sample.
func deriveResourceKind(sample float64, terrain TerrainKind) ResourceKind {
	if terrain == TerrainMountain {
		return ResourceMaterial
	}
	switch {
	case sample < 0.45:
		return ResourceFood
	case sample < 0.75:
		return ResourceMaterial
	default:
		return ResourceWater
	}
}

// octaveNoise samples multi-octave noise normalized to [0, 1].
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	var total, maxValue float64
	amplitude := 1.0
	freq := frequency
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2.0
	}
	if maxValue == 0 {
		return 0
	}
	return math.Min(1.0, math.Max(0.0, total/maxValue))
}

// GenerateEager materializes the full grid up front.
func GenerateEager(cfg GenConfig) (*EagerStore, error) {
	rule, err := NewGenRule(cfg)
	if err != nil {
		return nil, err
	}
	store, err := NewEagerStore(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	for pos := range Scan(cfg.Width, cfg.Height) {
		if err := store.SetCell(pos, rule.CellAt(pos)); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// GenerateLazy builds a lazy store around the rule; no cells are
// materialized until accessed.
func GenerateLazy(cfg GenConfig, capacity int) (*LazyStore, error) {
	rule, err := NewGenRule(cfg)
	if err != nil {
		return nil, err
	}
	return NewLazyStore(cfg.Width, cfg.Height, capacity, rule)
}
