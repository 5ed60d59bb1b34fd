package world

import (
	"iter"
	"sort"
)

// Traversal primitives yield lazy, finite, restartable position sequences.
// Re-ranging a sequence built from the same parameters reproduces the same
// order, and no yielded position ever lies outside the grid: out-of-bounds
// candidates are skipped silently, never surfaced as errors.

// DistanceMetric selects how Radius measures distance from its center.
type DistanceMetric uint8

const (
	MetricChebyshev DistanceMetric = iota // max(|dx|, |dy|), square neighborhoods
	MetricEuclidean                       // sqrt(dx*dx + dy*dy), circular neighborhoods
)

// Scan yields every in-bounds position in row-major order: (0,0), (1,0),
// ... (width-1,0), (0,1), ...
func Scan(width, height int) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !yield(Position{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// Radius yields every in-bounds position within the given distance of
// center, nearest first. Positions at equal distance come in row-major
// order, so the sequence is fully deterministic.
func Radius(center Position, radius, width, height int, metric DistanceMetric) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		if radius < 0 {
			return
		}
		// Candidates gathered row-major so the stable sort keeps
		// row-major order within each distance band.
		type candidate struct {
			pos  Position
			dist float64
		}
		var candidates []candidate
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				pos := Position{X: center.X + dx, Y: center.Y + dy}
				if !pos.InBounds(width, height) {
					continue
				}
				var dist float64
				switch metric {
				case MetricEuclidean:
					dist = center.Distance(pos)
				default:
					dist = float64(center.ChebyshevDistance(pos))
				}
				if dist > float64(radius) {
					continue
				}
				candidates = append(candidates, candidate{pos: pos, dist: dist})
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].dist < candidates[j].dist
		})
		for _, c := range candidates {
			if !yield(c.pos) {
				return
			}
		}
	}
}

// Path yields positions along the straight interpolation from start to end,
// both endpoints inclusive, one step per grid unit of the longer axis.
// Out-of-bounds steps are skipped.
func Path(start, end Position, width, height int) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		dx := end.X - start.X
		dy := end.Y - start.Y
		steps := abs(dx)
		if abs(dy) > steps {
			steps = abs(dy)
		}
		if steps == 0 {
			if start.InBounds(width, height) {
				yield(start)
			}
			return
		}
		for i := 0; i <= steps; i++ {
			pos := Position{
				X: start.X + roundDiv(dx*i, steps),
				Y: start.Y + roundDiv(dy*i, steps),
			}
			if !pos.InBounds(width, height) {
				continue
			}
			if !yield(pos) {
				return
			}
		}
	}
}

// roundDiv divides num by den rounding half away from zero.
func roundDiv(num, den int) int {
	if num >= 0 {
		return (2*num + den) / (2 * den)
	}
	return -((-2*num + den) / (2 * den))
}

// Spiral yields the center and then walks outward in the fixed rotational
// order east, south, west, north, one ring at a time, until maxRadius
// (Chebyshev) is exhausted. Candidates off the grid or beyond the radius
// are skipped without breaking the walk.
func Spiral(center Position, maxRadius, width, height int) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		if maxRadius < 0 {
			return
		}
		if center.InBounds(width, height) {
			if !yield(center) {
				return
			}
		}

		// Walk lengths grow 1,1,2,2,3,3,... with a quarter turn after
		// each leg: east, south, west, north. The walk runs one leg
		// length past the outer ring because the last ring only closes
		// on the following eastward leg; the overshoot is filtered by
		// the Chebyshev check.
		dirs := [4]Position{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}
		x, y := center.X, center.Y
		dir := 0
		for steps := 1; steps <= 2*maxRadius+1; steps++ {
			for leg := 0; leg < 2; leg++ {
				d := dirs[dir]
				for i := 0; i < steps; i++ {
					x += d.X
					y += d.Y
					pos := Position{X: x, Y: y}
					if center.ChebyshevDistance(pos) > maxRadius {
						continue
					}
					if !pos.InBounds(width, height) {
						continue
					}
					if !yield(pos) {
						return
					}
				}
				dir = (dir + 1) % 4
			}
		}
	}
}
