package model

import (
	"sort"
	"testing"
)

func at(x, y int) Coordinate { return NewCoordinate(x, y) }

func newTestBoard(t *testing.T, pieces ...*Piece) *Board {
	t.Helper()
	b, err := NewBoard(pieces, DefaultBoardSize, DefaultBoardSize)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

func sortCoordinates(coords []Coordinate) []Coordinate {
	out := append([]Coordinate{}, coords...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

func destinations(moves []Move) []Coordinate {
	out := make([]Coordinate, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.To)
	}
	return sortCoordinates(out)
}

func findMove(moves []Move, to Coordinate) (Move, bool) {
	for _, m := range moves {
		if m.To == to {
			return m, true
		}
	}
	return Move{}, false
}

// play applies each pair of coordinates in order and fails on the first
// rejection.
func play(t *testing.T, e *Engine, moves ...[2]Coordinate) {
	t.Helper()
	for i, m := range moves {
		if err := e.Apply(MoveRequest{From: m[0], To: m[1]}); err != nil {
			t.Fatalf("move %d %s to %s: %v", i+1, m[0], m[1], err)
		}
	}
}

func mv(fx, fy, tx, ty int) [2]Coordinate {
	return [2]Coordinate{at(fx, fy), at(tx, ty)}
}
