package worldmap

import (
	"testing"

	"github.com/oakmere/holdfast/internal/components"
)

func TestSetTerrainUpdatesMoveCostAtomically(t *testing.T) {
	g := NewGrid(4, 4)
	if !g.IsWalkable(1, 1) {
		t.Fatal("default grass should be walkable")
	}
	g.SetTerrain(1, 1, TerrainWater)
	if g.IsWalkable(1, 1) {
		t.Fatal("water tile should be impassable")
	}
	g.SetTerrain(1, 1, TerrainDirt)
	if !g.IsWalkable(1, 1) {
		t.Fatal("dirt should be walkable again")
	}
}

func TestSetTerrainOutOfBoundsIsNoOp(t *testing.T) {
	g := NewGrid(4, 4)
	g.SetTerrain(-1, 0, TerrainStone)
	if g.GetTerrain(-1, 0) != -1 {
		t.Fatalf("expected -1 sentinel, got %d", g.GetTerrain(-1, 0))
	}
}

func TestGetZoneOutOfBoundsReturnsNoneSentinel(t *testing.T) {
	g := NewGrid(4, 4)
	if g.GetZone(-1, -1) != ZoneNone {
		t.Fatal("expected ZoneNone sentinel out of bounds")
	}
}

func TestManhattanDistance(t *testing.T) {
	a := components.Tile{X: 3, Y: 4}
	b := components.Tile{X: 0, Y: 0}
	if d := ManhattanDistance(a, b); d != 7 {
		t.Fatalf("expected 7, got %d", d)
	}
}

// TestWalkableNeighborNearestPrefersAgentSide guards against picking a
// neighbor by a fixed scan order alone: an agent standing on the target's
// south (Y-1) side must get that neighbor, which the fixed Neighbors4 scan
// visits last, so a scan-order-only pick would return the +X neighbor.
func TestWalkableNeighborNearestPrefersAgentSide(t *testing.T) {
	g := NewGrid(5, 5)
	target := components.Tile{X: 2, Y: 2}

	south := components.Tile{X: 2, Y: 1}
	n, ok := g.WalkableNeighborNearest(target, south)
	if !ok || n != (components.Tile{X: 2, Y: 1}) {
		t.Fatalf("expected the south neighbor closest to the agent, got %+v", n)
	}
}

func TestWalkableNeighborNearestSkipsUnwalkable(t *testing.T) {
	g := NewGrid(5, 5)
	target := components.Tile{X: 2, Y: 2}
	g.SetTerrain(2, 1, TerrainWater) // block the south neighbor

	agent := components.Tile{X: 2, Y: 1} // standing where the blocked tile is
	n, ok := g.WalkableNeighborNearest(target, agent)
	if !ok {
		t.Fatal("expected a walkable neighbor to be found")
	}
	if n == (components.Tile{X: 2, Y: 1}) {
		t.Fatal("expected the unwalkable neighbor to be skipped")
	}
}
