package world

import "testing"

func TestPosition_Distances(t *testing.T) {
	a := Position{X: 0, Y: 0}
	b := Position{X: 3, Y: 4}

	if got := a.Distance(b); got != 5.0 {
		t.Errorf("Distance: got %v, want 5", got)
	}
	if got := a.ManhattanDistance(b); got != 7 {
		t.Errorf("ManhattanDistance: got %d, want 7", got)
	}
	if got := a.ChebyshevDistance(b); got != 4 {
		t.Errorf("ChebyshevDistance: got %d, want 4", got)
	}
}

func TestPosition_Neighbors_CardinalOnly(t *testing.T) {
	got := Position{X: 5, Y: 5}.Neighbors(false)

	if len(got) != 4 {
		t.Fatalf("Neighbors(false): got %d positions, want 4", len(got))
	}
	for _, n := range got {
		if n.ManhattanDistance(Position{X: 5, Y: 5}) != 1 {
			t.Errorf("Neighbors(false) yielded non-cardinal %s", n)
		}
	}
}

func TestPosition_Neighbors_WithDiagonals(t *testing.T) {
	got := Position{X: 5, Y: 5}.Neighbors(true)

	if len(got) != 8 {
		t.Fatalf("Neighbors(true): got %d positions, want 8", len(got))
	}
}

func TestPosition_IsAdjacent(t *testing.T) {
	center := Position{X: 5, Y: 5}
	diag := Position{X: 6, Y: 6}

	if !center.IsAdjacent(diag, true) {
		t.Error("diagonal cell should be adjacent with diagonals enabled")
	}
	if center.IsAdjacent(diag, false) {
		t.Error("diagonal cell should not be adjacent with diagonals disabled")
	}
	if center.IsAdjacent(center, true) {
		t.Error("a position is not adjacent to itself")
	}
}

func TestPosition_InBounds(t *testing.T) {
	cases := []struct {
		pos  Position
		want bool
	}{
		{Position{X: 0, Y: 0}, true},
		{Position{X: 7, Y: 7}, true},
		{Position{X: 8, Y: 0}, false},
		{Position{X: 0, Y: 8}, false},
		{Position{X: -1, Y: 0}, false},
	}
	for _, tc := range cases {
		if got := tc.pos.InBounds(8, 8); got != tc.want {
			t.Errorf("InBounds(%s): got %v, want %v", tc.pos, got, tc.want)
		}
	}
}
