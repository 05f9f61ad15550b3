package worldmap

import "github.com/oakmere/holdfast/internal/components"

// ZoneIndex maintains zone_kind -> set<tile>, kept in lockstep with the
// grid's zone layer. Ported from ZoneManager in the reference
// implementation.
type ZoneIndex struct {
	grid  *Grid
	tiles map[ZoneKind]map[components.Tile]struct{}
	// order mirrors tiles but as an insertion-ordered slice per kind, since
	// Go map iteration order is randomized and NearestTileOf must break
	// ties the same way on every run given the same inserts.
	order map[ZoneKind][]components.Tile
}

// NewZoneIndex builds an index over grid, seeding it from any zone tags
// the grid already carries (e.g. from world generation). After
// construction, zone changes must go through Mark so the cached sets stay
// consistent with invariant 6.
func NewZoneIndex(grid *Grid) *ZoneIndex {
	z := &ZoneIndex{
		grid:  grid,
		tiles: make(map[ZoneKind]map[components.Tile]struct{}),
		order: make(map[ZoneKind][]components.Tile),
	}
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if kind := grid.GetZone(x, y); kind != ZoneNone {
				t := components.Tile{X: x, Y: y}
				z.setFor(kind)[t] = struct{}{}
				z.appendOrder(kind, t)
			}
		}
	}
	return z
}

func (z *ZoneIndex) setFor(kind ZoneKind) map[components.Tile]struct{} {
	s, ok := z.tiles[kind]
	if !ok {
		s = make(map[components.Tile]struct{})
		z.tiles[kind] = s
	}
	return s
}

func (z *ZoneIndex) appendOrder(kind ZoneKind, t components.Tile) {
	z.order[kind] = append(z.order[kind], t)
}

func (z *ZoneIndex) removeOrder(kind ZoneKind, t components.Tile) {
	list := z.order[kind]
	for i, existing := range list {
		if existing == t {
			z.order[kind] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Mark assigns zone kind to (x,y). It is idempotent: marking a tile with
// its current zone is a no-op. Otherwise it discards the tile from its
// old zone's set before writing the new zone to the grid and, unless the
// new kind is ZoneNone, adding it to the new set.
func (z *ZoneIndex) Mark(x, y int, kind ZoneKind) {
	if !z.grid.InBounds(x, y) {
		return
	}
	current := z.grid.GetZone(x, y)
	if current == kind {
		return
	}
	t := components.Tile{X: x, Y: y}
	delete(z.setFor(current), t)
	z.removeOrder(current, t)
	z.grid.SetZone(x, y, kind)
	if kind != ZoneNone {
		z.setFor(kind)[t] = struct{}{}
		z.appendOrder(kind, t)
	}
}

// NearestTileOf scans the tiles tagged kind for the one closest to start
// by Manhattan distance. Returns absent if the set is empty. Ties are
// broken by insertion order (the order tiles were marked into the zone),
// scanned via the parallel ordered slice rather than a map range, so the
// same tile wins on every run given the same sequence of Mark calls.
func (z *ZoneIndex) NearestTileOf(start components.Tile, kind ZoneKind) (components.Tile, bool) {
	list, ok := z.order[kind]
	if !ok || len(list) == 0 {
		return components.Tile{}, false
	}
	best := components.Tile{}
	bestDist := -1
	found := false
	for _, t := range list {
		d := ManhattanDistance(start, t)
		if !found || d < bestDist {
			best = t
			bestDist = d
			found = true
		}
	}
	return best, found
}

// Tiles returns the current tile set for kind, for diagnostics and tests.
// The returned map must not be mutated by the caller.
func (z *ZoneIndex) Tiles(kind ZoneKind) map[components.Tile]struct{} {
	return z.tiles[kind]
}
