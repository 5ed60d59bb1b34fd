package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/gridlands/internal/entropy"
	"github.com/talgya/gridlands/internal/world"
)

func newTerrainWorld(t *testing.T, width, height int, terrain world.TerrainKind) *world.World {
	t.Helper()
	store, err := world.NewEagerStore(width, height)
	require.NoError(t, err)
	for pos := range world.Scan(width, height) {
		require.NoError(t, store.SetCell(pos, world.NewCell(pos, terrain)))
	}
	w, err := world.NewWorld(store)
	require.NoError(t, err)
	return w
}

func TestSpawner_SpawnInto_PlacesOnFreeTraversableCells(t *testing.T) {
	w := newTerrainWorld(t, 8, 8, world.TerrainPlains)
	spawner := NewSpawner(entropy.NewSource(7))

	spawned, err := spawner.SpawnInto(w, 5)
	require.NoError(t, err)
	require.Equal(t, 5, len(spawned))

	seen := make(map[world.Position]bool)
	for _, a := range spawned {
		assert.False(t, seen[a.Position], "two agents at %s", a.Position)
		seen[a.Position] = true
		cell, err := w.GetCell(a.Position)
		require.NoError(t, err)
		require.True(t, cell.Occupied())
		assert.Equal(t, a.ID, *cell.Occupant)
	}
}

func TestSpawner_SameSeed_IdenticalPopulation(t *testing.T) {
	// GIVEN two identical worlds and spawners seeded alike
	first := NewSpawner(entropy.NewSource(7))
	second := NewSpawner(entropy.NewSource(7))

	a, err := first.SpawnInto(newTerrainWorld(t, 8, 8, world.TerrainPlains), 4)
	require.NoError(t, err)
	b, err := second.SpawnInto(newTerrainWorld(t, 8, 8, world.TerrainPlains), 4)
	require.NoError(t, err)

	// THEN the populations replay bit for bit
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Position, b[i].Position)
	}
}

func TestSpawner_DifferentSeed_DifferentPopulation(t *testing.T) {
	a, err := NewSpawner(entropy.NewSource(7)).SpawnInto(newTerrainWorld(t, 8, 8, world.TerrainPlains), 1)
	require.NoError(t, err)
	b, err := NewSpawner(entropy.NewSource(8)).SpawnInto(newTerrainWorld(t, 8, 8, world.TerrainPlains), 1)
	require.NoError(t, err)

	assert.NotEqual(t, a[0].ID, b[0].ID)
}

func TestSpawner_NoTraversableCells_Fails(t *testing.T) {
	w := newTerrainWorld(t, 4, 4, world.TerrainWater)
	spawner := NewSpawner(entropy.NewSource(7))

	_, err := spawner.SpawnInto(w, 1)

	assert.Error(t, err)
}

func TestSpawner_FullGrid_FallsBackToScanThenFails(t *testing.T) {
	// A 2x2 grid holds at most 4 agents; the fifth has nowhere to go.
	w := newTerrainWorld(t, 2, 2, world.TerrainPlains)
	spawner := NewSpawner(entropy.NewSource(7))

	spawned, err := spawner.SpawnInto(w, 5)

	assert.Error(t, err)
	assert.Equal(t, 4, len(spawned))
}

func TestSpawner_NamesStayUniquePastOneCycle(t *testing.T) {
	w := newTerrainWorld(t, 8, 8, world.TerrainPlains)
	spawner := NewSpawner(entropy.NewSource(7))

	spawned, err := spawner.SpawnInto(w, 30)
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, a := range spawned {
		assert.False(t, names[a.Name], "duplicate name %s", a.Name)
		names[a.Name] = true
	}
}
