// Package world provides the grid, terrain, resources, and spatial storage
// strategies for the simulation. Positions are integer (x, y) coordinates
// with (0, 0) in the top-left corner; x grows east and y grows south.
package world

import (
	"fmt"
	"math"
)

// Position is an immutable coordinate on the 2D grid. It is a value type,
// comparable and usable as a map key.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Distance returns the Euclidean distance to other.
func (p Position) Distance(other Position) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ManhattanDistance returns the grid distance when movement is restricted
// to cardinal directions.
func (p Position) ManhattanDistance(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// ChebyshevDistance returns the grid distance when diagonal movement costs
// the same as cardinal movement.
func (p Position) ChebyshevDistance(other Position) int {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// cardinalDirections lists the four neighbor offsets in east, west, south,
// north order.
var cardinalDirections = [4]Position{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// diagonalDirections lists the four diagonal neighbor offsets.
var diagonalDirections = [4]Position{
	{X: 1, Y: 1},
	{X: 1, Y: -1},
	{X: -1, Y: 1},
	{X: -1, Y: -1},
}

// Neighbors returns adjacent positions. With diagonals included the result
// has eight entries, otherwise four. No bounds check is applied; validity
// is relative to a world size and checked by the consumer.
func (p Position) Neighbors(diagonals bool) []Position {
	n := 4
	if diagonals {
		n = 8
	}
	result := make([]Position, 0, n)
	for _, d := range cardinalDirections {
		result = append(result, Position{X: p.X + d.X, Y: p.Y + d.Y})
	}
	if diagonals {
		for _, d := range diagonalDirections {
			result = append(result, Position{X: p.X + d.X, Y: p.Y + d.Y})
		}
	}
	return result
}

// IsAdjacent reports whether other is a neighbor of p.
func (p Position) IsAdjacent(other Position, diagonals bool) bool {
	if p == other {
		return false
	}
	if diagonals {
		return p.ChebyshevDistance(other) == 1
	}
	return p.ManhattanDistance(other) == 1
}

// InBounds reports whether p lies within [0, width) x [0, height).
func (p Position) InBounds(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// String returns the position as "(x, y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
