package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResource_AmountAboveCapacity_Fails(t *testing.T) {
	_, err := NewResource(ResourceFood, 60, 50, 2, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewResource_NegativeRegenRate_Fails(t *testing.T) {
	_, err := NewResource(ResourceFood, 10, 50, -1, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestResource_Harvest_ClampsToStock(t *testing.T) {
	// GIVEN a food stack holding 50 units
	res, err := NewResource(ResourceFood, 50, 50, 2, 0)
	require.NoError(t, err)

	// WHEN 60 units are requested
	actual, depleted := res.Harvest(60)

	// THEN only the 50 present come out and the crossing is reported
	assert.Equal(t, 50.0, actual)
	assert.True(t, depleted)
	assert.Equal(t, 0.0, res.Amount)
}

func TestResource_Harvest_PartialLeavesRemainder(t *testing.T) {
	res, err := NewResource(ResourceFood, 50, 50, 2, 0)
	require.NoError(t, err)

	actual, depleted := res.Harvest(20)

	assert.Equal(t, 20.0, actual)
	assert.False(t, depleted)
	assert.Equal(t, 30.0, res.Amount)
}

func TestResource_Harvest_EmptyStack_NoSecondCrossing(t *testing.T) {
	// GIVEN a stack already harvested to zero
	res, err := NewResource(ResourceFood, 10, 50, 2, 0)
	require.NoError(t, err)
	_, depleted := res.Harvest(10)
	require.True(t, depleted)

	// WHEN it is harvested again
	actual, depleted := res.Harvest(5)

	// THEN nothing comes out and no crossing is reported
	assert.Equal(t, 0.0, actual)
	assert.False(t, depleted)
}

func TestResource_Harvest_NonPositiveRequest_NoOp(t *testing.T) {
	res, err := NewResource(ResourceWater, 10, 50, 3, 0)
	require.NoError(t, err)

	actual, depleted := res.Harvest(0)

	assert.Equal(t, 0.0, actual)
	assert.False(t, depleted)
	assert.Equal(t, 10.0, res.Amount)
}

func TestResource_Regenerate_ProportionalToElapsedTicks(t *testing.T) {
	res, err := NewResource(ResourceFood, 5, 50, 2, 0)
	require.NoError(t, err)

	recovered := res.Regenerate(3)

	assert.Equal(t, 6.0, recovered)
	assert.Equal(t, 11.0, res.Amount)
}

func TestResource_Regenerate_ClampsToCapacity(t *testing.T) {
	res, err := NewResource(ResourceFood, 48, 50, 2, 0)
	require.NoError(t, err)

	recovered := res.Regenerate(10)

	assert.Equal(t, 2.0, recovered)
	assert.Equal(t, 50.0, res.Amount)
}

func TestResource_Regenerate_NonRegenerativeKind_NoOp(t *testing.T) {
	res, err := NewResource(ResourceMaterial, 10, 50, 2, 0)
	require.NoError(t, err)

	recovered := res.Regenerate(100)

	assert.Equal(t, 0.0, recovered)
	assert.Equal(t, 10.0, res.Amount)
}

func TestResource_Exhausted_OnlyForEmptyNonRegenerative(t *testing.T) {
	material, err := NewResource(ResourceMaterial, 10, 10, 0, 0)
	require.NoError(t, err)
	food, err := NewResource(ResourceFood, 10, 10, 2, 0)
	require.NoError(t, err)

	material.Harvest(10)
	food.Harvest(10)

	assert.True(t, material.Exhausted())
	assert.True(t, food.Depleted())
	assert.False(t, food.Exhausted())
}

func TestResource_Value_ScalesByKind(t *testing.T) {
	material, err := NewResource(ResourceMaterial, 10, 10, 0, 0)
	require.NoError(t, err)

	// Material is worth 1.5 per unit.
	assert.Equal(t, 15.0, material.Value())
}
