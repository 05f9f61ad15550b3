package worldmap

import (
	"testing"

	"github.com/oakmere/holdfast/internal/components"
)

func TestFindPathStartEqualsGoalReturnsEmpty(t *testing.T) {
	g := NewGrid(10, 10)
	path := FindPath(g, pos(3, 3), pos(3, 3))
	if len(path) != 0 {
		t.Fatalf("expected empty path, got %v", path)
	}
}

func TestFindPathStraightLine(t *testing.T) {
	g := NewGrid(10, 10)
	path := FindPath(g, pos(0, 0), pos(3, 0))
	if len(path) != 3 {
		t.Fatalf("expected 3 steps, got %d: %v", len(path), path)
	}
	want := []components.Tile{pos(1, 0), pos(2, 0), pos(3, 0)}
	for i, w := range want {
		if path[i] != w {
			t.Fatalf("step %d: want %+v, got %+v", i, w, path[i])
		}
	}
}

func TestFindPathUnreachableGoalReturnsEmpty(t *testing.T) {
	g := NewGrid(5, 5)
	// Wall off (4,4) entirely with water.
	g.SetTerrain(3, 4, TerrainWater)
	g.SetTerrain(4, 3, TerrainWater)
	path := FindPath(g, pos(0, 0), pos(4, 4))
	if len(path) != 0 {
		t.Fatalf("expected no path around a sealed corner, got %v", path)
	}
}

func TestFindPathGoalUnwalkableReturnsEmpty(t *testing.T) {
	g := NewGrid(5, 5)
	g.SetTerrain(2, 2, TerrainWater)
	path := FindPath(g, pos(0, 0), pos(2, 2))
	if len(path) != 0 {
		t.Fatalf("expected empty path to unwalkable goal, got %v", path)
	}
}
