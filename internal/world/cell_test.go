package world

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_SetOccupant_SecondAgent_Fails(t *testing.T) {
	cell := NewCell(Position{X: 1, Y: 1}, TerrainPlains)
	first := uuid.New()
	second := uuid.New()

	require.NoError(t, cell.SetOccupant(first))
	err := cell.SetOccupant(second)

	assert.ErrorIs(t, err, ErrCellOccupied)
	assert.Equal(t, first, *cell.Occupant)
}

func TestCell_SetOccupant_BlockingTerrain_Fails(t *testing.T) {
	cell := NewCell(Position{X: 1, Y: 1}, TerrainWater)

	err := cell.SetOccupant(uuid.New())

	assert.ErrorIs(t, err, ErrCellBlocked)
}

func TestCell_SetOccupant_SameAgentTwice_Idempotent(t *testing.T) {
	cell := NewCell(Position{X: 1, Y: 1}, TerrainPlains)
	id := uuid.New()

	require.NoError(t, cell.SetOccupant(id))
	assert.NoError(t, cell.SetOccupant(id))
}

func TestCell_ClearOccupant_WrongAgent_Fails(t *testing.T) {
	cell := NewCell(Position{X: 1, Y: 1}, TerrainPlains)
	require.NoError(t, cell.SetOccupant(uuid.New()))

	err := cell.ClearOccupant(uuid.New())

	assert.ErrorIs(t, err, ErrNotOccupant)
}

func TestCell_PlaceResource_NonSpawningTerrain_Fails(t *testing.T) {
	cell := NewCell(Position{X: 1, Y: 1}, TerrainWater)
	res, err := NewResource(ResourceFood, 10, 10, 2, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, cell.PlaceResource(res), ErrCellBlocked)
}

func TestCell_MutationsMarkModified(t *testing.T) {
	cell := NewCell(Position{X: 1, Y: 1}, TerrainPlains)
	assert.False(t, cell.Modified())

	id := uuid.New()
	require.NoError(t, cell.SetOccupant(id))
	assert.True(t, cell.Modified())
}

func TestCell_Snapshot_SharesNoMutableState(t *testing.T) {
	// GIVEN an occupied cell with a resource stack
	cell := NewCell(Position{X: 2, Y: 3}, TerrainForest)
	res, err := NewResource(ResourceFood, 30, 50, 2, 0)
	require.NoError(t, err)
	require.NoError(t, cell.PlaceResource(res))
	require.NoError(t, cell.SetOccupant(uuid.New()))

	// WHEN a snapshot is taken and the live cell mutates afterwards
	snap := cell.Snapshot()
	cell.Resource.Harvest(30)
	cell.ClearOccupant(*cell.Occupant)

	// THEN the snapshot still shows the state at capture time
	assert.Equal(t, 30.0, snap.Resource.Amount)
	assert.NotNil(t, snap.Occupant)
	assert.Equal(t, 0.0, cell.Resource.Amount)
}
