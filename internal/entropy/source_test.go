package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource_SameSeed_ReplaysIdentically(t *testing.T) {
	a := NewSource(42).Subsystem("spawner")
	b := NewSource(42).Subsystem("spawner")

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Int63(), b.Int63(), "draw %d diverged", i)
	}
}

func TestSource_Subsystem_ReturnsSameInstance(t *testing.T) {
	src := NewSource(42)

	assert.Same(t, src.Subsystem("spawner"), src.Subsystem("spawner"))
}

func TestSource_SubsystemsAreIsolated(t *testing.T) {
	// GIVEN two sources where one subsystem draws extra values
	a := NewSource(42)
	b := NewSource(42)
	for i := 0; i < 10; i++ {
		a.Subsystem("weather").Int63()
	}

	// THEN another subsystem's sequence is unaffected
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Subsystem("spawner").Int63(), b.Subsystem("spawner").Int63(),
			"draw %d diverged", i)
	}
}

func TestSource_DifferentSubsystems_DifferentStreams(t *testing.T) {
	src := NewSource(42)

	assert.NotEqual(t, src.Subsystem("spawner").Int63(), src.Subsystem("weather").Int63())
}
