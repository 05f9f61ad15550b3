package worldmap

import (
	"container/heap"
	"math"

	"github.com/oakmere/holdfast/internal/components"
)

// pqItem is one entry in the A* open set.
type pqItem struct {
	tile    components.Tile
	g, f    float64
	seq     int // insertion order, for stable tie-breaking
	index   int
}

// openSet is a min-heap over f-score, ties broken by insertion order. No
// priority-queue package appears anywhere in the retrieved example
// corpus, so this uses container/heap directly rather than reaching for
// an unverified third-party dependency.
type openSet []*pqItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index, o[j].index = i, j
}
func (o *openSet) Push(x any) {
	item := x.(*pqItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}

func heuristic(a, b components.Tile) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// FindPath runs A* on the grid's 4-connected tiles, cost per step equal
// to the destination tile's move-cost, heuristic Euclidean distance.
// Returns the ordered tile sequence strictly after start, up to and
// including goal; an empty sequence if start==goal, the goal is
// unwalkable, or no path exists. The path is not smoothed.
func FindPath(g *Grid, start, goal components.Tile) []components.Tile {
	if start == goal {
		return nil
	}
	if !g.IsWalkable(goal.X, goal.Y) {
		return nil
	}

	cameFrom := make(map[components.Tile]components.Tile)
	gScore := map[components.Tile]float64{start: 0}
	inOpen := make(map[components.Tile]*pqItem)

	seq := 0
	open := &openSet{}
	heap.Init(open)
	startItem := &pqItem{tile: start, g: 0, f: heuristic(start, goal), seq: seq}
	seq++
	heap.Push(open, startItem)
	inOpen[start] = startItem

	for open.Len() > 0 {
		current := heap.Pop(open).(*pqItem)
		delete(inOpen, current.tile)

		if current.tile == goal {
			return reconstruct(cameFrom, start, goal)
		}

		for _, n := range Neighbors4(current.tile) {
			if !g.IsWalkable(n.X, n.Y) {
				continue
			}
			tentativeG := gScore[current.tile] + float64(g.MoveCost(n.X, n.Y))
			best, known := gScore[n]
			if known && tentativeG >= best {
				continue
			}
			cameFrom[n] = current.tile
			gScore[n] = tentativeG
			f := tentativeG + heuristic(n, goal)
			if item, ok := inOpen[n]; ok {
				item.g, item.f = tentativeG, f
				heap.Fix(open, item.index)
				continue
			}
			item := &pqItem{tile: n, g: tentativeG, f: f, seq: seq}
			seq++
			heap.Push(open, item)
			inOpen[n] = item
		}
	}

	return nil
}

func reconstruct(cameFrom map[components.Tile]components.Tile, start, goal components.Tile) []components.Tile {
	path := []components.Tile{goal}
	cur := goal
	for cur != start {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		if prev == start {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	// path is currently goal..first-tile-after-start in reverse; flip it.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
