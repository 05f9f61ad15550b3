// Package worldmap is the tile grid (component B), the zone index
// (component C), and the A* pathfinder (component E) together, since all
// three operate over the same flat tile array. Grounded directly on the
// reference implementation's src/world/{grid,zone_manager,pathfinding}.py.
package worldmap

import "github.com/oakmere/holdfast/internal/components"

// TerrainKind is one of the four stable small-integer terrain ids at the
// external boundary.
type TerrainKind uint8

const (
	TerrainGrass TerrainKind = 0
	TerrainDirt  TerrainKind = 1
	TerrainWater TerrainKind = 2
	TerrainStone TerrainKind = 3
)

// ZoneKind is one of the four stable small-integer zone ids.
type ZoneKind uint8

const (
	ZoneNone        ZoneKind = 0
	ZoneStockpile   ZoneKind = 1
	ZoneFarm        ZoneKind = 2
	ZoneResidential ZoneKind = 3
)

// impassableCost is the move-cost sentinel marking a tile unwalkable.
const impassableCost = 255

// Grid is a dense 2-D tile array with terrain, move-cost, zone, and
// moisture layers. It is static during a tick: only world setup and
// between-tick zone marking touch it, never a system mid-pass.
type Grid struct {
	Width, Height int

	terrain  []TerrainKind
	moveCost []uint8
	zone     []ZoneKind
	moisture []float64 // supplemented layer: populated at generation, biases terrain pick
}

// NewGrid creates a width x height grid, all grass and fully walkable.
func NewGrid(width, height int) *Grid {
	n := width * height
	g := &Grid{
		Width:    width,
		Height:   height,
		terrain:  make([]TerrainKind, n),
		moveCost: make([]uint8, n),
		zone:     make([]ZoneKind, n),
		moisture: make([]float64, n),
	}
	for i := range g.moveCost {
		g.moveCost[i] = 1
	}
	return g
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// InBounds reports whether (x,y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool { return g.inBounds(x, y) }

func (g *Grid) index(x, y int) int { return y*g.Width + x }

// SetTerrain sets the terrain kind at (x,y), atomically updating move-cost
// (water becomes impassable, everything else costs 1). Out-of-bounds
// calls are a no-op.
func (g *Grid) SetTerrain(x, y int, kind TerrainKind) {
	if !g.inBounds(x, y) {
		return
	}
	i := g.index(x, y)
	g.terrain[i] = kind
	if kind == TerrainWater {
		g.moveCost[i] = impassableCost
	} else {
		g.moveCost[i] = 1
	}
}

// GetTerrain returns the terrain kind at (x,y) as an int, or -1 if
// out of bounds.
func (g *Grid) GetTerrain(x, y int) int {
	if !g.inBounds(x, y) {
		return -1
	}
	return int(g.terrain[g.index(x, y)])
}

// MoveCost returns the tile's move cost, or the impassable sentinel if
// out of bounds.
func (g *Grid) MoveCost(x, y int) int {
	if !g.inBounds(x, y) {
		return impassableCost
	}
	return int(g.moveCost[g.index(x, y)])
}

// IsWalkable is false for out-of-bounds tiles or move-cost >= 255.
func (g *Grid) IsWalkable(x, y int) bool {
	if !g.inBounds(x, y) {
		return false
	}
	return g.moveCost[g.index(x, y)] < impassableCost
}

// SetZone sets the zone kind at (x,y). Out-of-bounds calls are a no-op.
// Callers that need the index's per-kind sets kept consistent should go
// through ZoneIndex.Mark instead of calling this directly.
func (g *Grid) SetZone(x, y int, kind ZoneKind) {
	if !g.inBounds(x, y) {
		return
	}
	g.zone[g.index(x, y)] = kind
}

// GetZone returns the zone kind at (x,y), or the ZoneNone sentinel if out
// of bounds.
func (g *Grid) GetZone(x, y int) ZoneKind {
	if !g.inBounds(x, y) {
		return ZoneNone
	}
	return g.zone[g.index(x, y)]
}

// SetMoisture stores the moisture value sampled during world generation.
func (g *Grid) SetMoisture(x, y int, v float64) {
	if !g.inBounds(x, y) {
		return
	}
	g.moisture[g.index(x, y)] = v
}

// Moisture returns the moisture value at (x,y), 0 if out of bounds.
func (g *Grid) Moisture(x, y int) float64 {
	if !g.inBounds(x, y) {
		return 0
	}
	return g.moisture[g.index(x, y)]
}

// Neighbors4 returns the 4-connected neighbor tiles of t, whether or not
// they lie in bounds.
func Neighbors4(t components.Tile) [4]components.Tile {
	return [4]components.Tile{
		{X: t.X + 1, Y: t.Y},
		{X: t.X - 1, Y: t.Y},
		{X: t.X, Y: t.Y + 1},
		{X: t.X, Y: t.Y - 1},
	}
}

// WalkableNeighborNearest returns the walkable 4-neighbor of t closest to
// near by Manhattan distance, matching the original's
// `min(valid, key=lambda n: abs(n[0]-pos.x)+abs(n[1]-pos.y))` neighbor
// pick. Ties are broken by the fixed (+X, -X, +Y, -Y) scan order of
// Neighbors4, the same stable order the original's list comprehension
// produces before min() runs over it.
func (g *Grid) WalkableNeighborNearest(t, near components.Tile) (components.Tile, bool) {
	best := components.Tile{}
	bestDist := -1
	found := false
	for _, n := range Neighbors4(t) {
		if !g.IsWalkable(n.X, n.Y) {
			continue
		}
		d := ManhattanDistance(n, near)
		if !found || d < bestDist {
			best = n
			bestDist = d
			found = true
		}
	}
	return best, found
}

// ManhattanDistance is |dx| + |dy|.
func ManhattanDistance(a, b components.Tile) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
