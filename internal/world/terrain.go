package world

// TerrainKind enumerates the terrain types a cell can carry.
type TerrainKind uint8

const (
	TerrainPlains   TerrainKind = iota // Open grassland, easy movement
	TerrainForest                      // Dense woodland, high fertility
	TerrainMountain                    // Rocky highlands, costly movement
	TerrainWater                       // Rivers and lakes, blocks movement
	TerrainDesert                      // Arid wasteland, scarce resources
)

// terrainKindCount is the number of defined terrain kinds.
const terrainKindCount = 5

// TerrainProps holds the immutable properties shared by every cell of one
// terrain kind. Exactly one record exists per kind; cells reference it by
// kind, never by copy.
type TerrainProps struct {
	Kind            TerrainKind
	MovementCost    float64 // Multiplier on movement energy (1.0 = normal)
	BlocksMovement  bool
	Fertility       float64 // Multiplier on resource spawn amounts (0.0-2.0)
	SpawnsResources bool
	Name            string
}

// terrainCatalog is the flyweight table indexed by TerrainKind.
var terrainCatalog = [terrainKindCount]TerrainProps{
	TerrainPlains: {
		Kind:            TerrainPlains,
		MovementCost:    1.0,
		BlocksMovement:  false,
		Fertility:       1.0,
		SpawnsResources: true,
		Name:            "plains",
	},
	TerrainForest: {
		Kind:            TerrainForest,
		MovementCost:    1.5,
		BlocksMovement:  false,
		Fertility:       1.8,
		SpawnsResources: true,
		Name:            "forest",
	},
	TerrainMountain: {
		Kind:            TerrainMountain,
		MovementCost:    2.5,
		BlocksMovement:  false,
		Fertility:       0.5,
		SpawnsResources: true,
		Name:            "mountain",
	},
	TerrainWater: {
		Kind:            TerrainWater,
		MovementCost:    0,
		BlocksMovement:  true,
		Fertility:       1.2,
		SpawnsResources: false,
		Name:            "water",
	},
	TerrainDesert: {
		Kind:            TerrainDesert,
		MovementCost:    2.0,
		BlocksMovement:  false,
		Fertility:       0.3,
		SpawnsResources: true,
		Name:            "desert",
	},
}

// Props returns the shared property record for the kind.
func (k TerrainKind) Props() TerrainProps {
	return terrainCatalog[k]
}

// BlocksMovement reports whether agents can never enter this terrain.
func (k TerrainKind) BlocksMovement() bool {
	return terrainCatalog[k].BlocksMovement
}

// SpawnsResources reports whether resources may be placed on this terrain.
func (k TerrainKind) SpawnsResources() bool {
	return terrainCatalog[k].SpawnsResources
}

// String returns the terrain name.
func (k TerrainKind) String() string {
	if int(k) >= terrainKindCount {
		return "unknown"
	}
	return terrainCatalog[k].Name
}
