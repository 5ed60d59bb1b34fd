package world

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPlainsWorld builds an all-plains eager world for tests.
func newPlainsWorld(t *testing.T, width, height int) *World {
	t.Helper()
	store, err := NewEagerStore(width, height)
	require.NoError(t, err)
	for pos := range Scan(width, height) {
		require.NoError(t, store.SetCell(pos, NewCell(pos, TerrainPlains)))
	}
	w, err := NewWorld(store)
	require.NoError(t, err)
	return w
}

func placeResource(t *testing.T, w *World, pos Position, kind ResourceKind, amount, max, regen float64) *Resource {
	t.Helper()
	res, err := NewResource(kind, amount, max, regen, w.Tick())
	require.NoError(t, err)
	cell, err := w.GetCell(pos)
	require.NoError(t, err)
	require.NoError(t, cell.PlaceResource(res))
	return res
}

func TestNewWorld_NilStore_Fails(t *testing.T) {
	_, err := NewWorld(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWorld_PlaceAgent_BlockedCell_Fails(t *testing.T) {
	w := newPlainsWorld(t, 4, 4)
	pos := Position{X: 1, Y: 1}
	cell, err := w.GetCell(pos)
	require.NoError(t, err)
	cell.Terrain = TerrainWater

	err = w.PlaceAgent(uuid.New(), pos)

	assert.ErrorIs(t, err, ErrCellBlocked)
}

func TestWorld_PlaceAgent_OccupiedCell_Fails(t *testing.T) {
	w := newPlainsWorld(t, 4, 4)
	pos := Position{X: 1, Y: 1}
	require.NoError(t, w.PlaceAgent(uuid.New(), pos))

	err := w.PlaceAgent(uuid.New(), pos)

	assert.ErrorIs(t, err, ErrCellOccupied)
}

func TestWorld_PlaceAgent_OutOfBounds_Fails(t *testing.T) {
	w := newPlainsWorld(t, 4, 4)

	err := w.PlaceAgent(uuid.New(), Position{X: 4, Y: 0})

	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestWorld_MoveAgent_RelocatesOccupancy(t *testing.T) {
	w := newPlainsWorld(t, 4, 4)
	id := uuid.New()
	from := Position{X: 0, Y: 0}
	to := Position{X: 1, Y: 0}
	require.NoError(t, w.PlaceAgent(id, from))

	require.NoError(t, w.MoveAgent(id, from, to))

	src, err := w.GetCell(from)
	require.NoError(t, err)
	dst, err := w.GetCell(to)
	require.NoError(t, err)
	assert.False(t, src.Occupied())
	require.True(t, dst.Occupied())
	assert.Equal(t, id, *dst.Occupant)
}

func TestWorld_MoveAgent_OccupiedDestination_Fails(t *testing.T) {
	w := newPlainsWorld(t, 4, 4)
	id := uuid.New()
	from := Position{X: 0, Y: 0}
	to := Position{X: 1, Y: 0}
	require.NoError(t, w.PlaceAgent(id, from))
	require.NoError(t, w.PlaceAgent(uuid.New(), to))

	err := w.MoveAgent(id, from, to)

	assert.ErrorIs(t, err, ErrCellOccupied)
	// The mover stays put on failure.
	src, getErr := w.GetCell(from)
	require.NoError(t, getErr)
	assert.True(t, src.Occupied())
}

func TestWorld_AdvanceTick_RegeneratesDepletedFood(t *testing.T) {
	// GIVEN a food stack harvested to zero at tick 0
	w := newPlainsWorld(t, 4, 4)
	pos := Position{X: 2, Y: 2}
	res := placeResource(t, w, pos, ResourceFood, 50, 50, 5)
	res.Harvest(50)
	require.True(t, res.Depleted())

	// WHEN the tick it was created on completes
	w.AdvanceTick()

	// THEN nothing has recovered yet: the creation tick contributes no
	// elapsed time
	assert.Equal(t, 0.0, res.Amount)
	assert.Empty(t, w.Events().Filter(EventResourceRegenerated, 0, 0))

	// WHEN one further tick completes
	w.AdvanceTick()

	// THEN the stack recovered exactly one tick's worth
	assert.Equal(t, 5.0, res.Amount)
	assert.Equal(t, uint64(1), res.LastRegenTick)

	regen := w.Events().Filter(EventResourceRegenerated, 0, 0)
	require.Equal(t, 1, len(regen))
	assert.Equal(t, pos, regen[0].Position)
	assert.Equal(t, uint64(1), regen[0].Tick)
	assert.Equal(t, 5.0, regen[0].Payload["recovered"])
}

func TestWorld_AdvanceTick_FullStock_NoRegenEvent(t *testing.T) {
	w := newPlainsWorld(t, 4, 4)
	placeResource(t, w, Position{X: 2, Y: 2}, ResourceFood, 50, 50, 5)

	w.AdvanceTick()

	assert.Empty(t, w.Events().Filter(EventResourceRegenerated, 0, 0))
}

func TestWorld_AdvanceTick_AppendsTickEvent(t *testing.T) {
	w := newPlainsWorld(t, 4, 4)

	w.AdvanceTick()
	w.AdvanceTick()

	assert.Equal(t, uint64(2), w.Tick())
	assert.Equal(t, 2, len(w.Events().Filter(EventTick, 0, 0)))
}

func TestWorld_GetCell_StripsExhaustedResourceLazily(t *testing.T) {
	// GIVEN a material stack harvested to zero
	w := newPlainsWorld(t, 4, 4)
	pos := Position{X: 1, Y: 2}
	res := placeResource(t, w, pos, ResourceMaterial, 10, 10, 0)
	res.Harvest(10)
	require.True(t, res.Exhausted())

	// WHEN the cell is next accessed
	cell, err := w.GetCell(pos)
	require.NoError(t, err)

	// THEN the stack is gone and exactly one exhaustion event is logged,
	// also on repeat access
	assert.Nil(t, cell.Resource)
	_, err = w.GetCell(pos)
	require.NoError(t, err)
	assert.Equal(t, 1, len(w.Events().Filter(EventResourceExhausted, 0, 0)))
}

func TestWorld_GetCell_KeepsDepletedRegenerativeResource(t *testing.T) {
	w := newPlainsWorld(t, 4, 4)
	pos := Position{X: 1, Y: 2}
	res := placeResource(t, w, pos, ResourceFood, 10, 10, 2)
	res.Harvest(10)

	cell, err := w.GetCell(pos)
	require.NoError(t, err)

	// Depleted food stays in place; it recovers on later ticks.
	assert.NotNil(t, cell.Resource)
	assert.Empty(t, w.Events().Filter(EventResourceExhausted, 0, 0))
}

func TestWorld_LazyStoreBacked_RegenerationMatchesEager(t *testing.T) {
	// GIVEN eager and lazy worlds over the same generation rule
	rule := GeneratorFunc(func(pos Position) *Cell {
		cell := NewCell(pos, TerrainPlains)
		res, _ := NewResource(ResourceFood, 20, 20, 2, 0)
		cell.Resource = res
		return cell
	})

	lazyStore, err := NewLazyStore(4, 4, 2, rule)
	require.NoError(t, err)
	lazyWorld, err := NewWorld(lazyStore)
	require.NoError(t, err)

	// WHEN a cell materializes only after several ticks
	lazyWorld.AdvanceTick()
	lazyWorld.AdvanceTick()
	lazyWorld.AdvanceTick()
	late, err := lazyWorld.GetCell(Position{X: 3, Y: 3})
	require.NoError(t, err)

	// THEN its full stock gained nothing from the missed ticks
	assert.Equal(t, 20.0, late.Resource.Amount)
	lazyWorld.AdvanceTick()
	assert.Equal(t, 20.0, late.Resource.Amount)
}
