package systems

import (
	"github.com/oakmere/holdfast/internal/clock"
	"github.com/oakmere/holdfast/internal/components"
	"github.com/oakmere/holdfast/internal/corerand"
	"github.com/oakmere/holdfast/internal/ecs"
	"github.com/oakmere/holdfast/internal/jobs"
	"github.com/oakmere/holdfast/internal/simlog"
	"github.com/oakmere/holdfast/internal/worldmap"
)

// jobGenInterval throttles world-scanning job generation to once every 10
// ticks.
const jobGenInterval = 10

// maxChopJobs caps the number of outstanding chop jobs job generation
// will maintain at once.
const maxChopJobs = 10

const (
	hungerUrgentThreshold    = 80.0
	tirednessUrgentThreshold = 90.0

	foodSearchRadius = 30
	trapSearchRadius = 15
	waterSearchRadius = 20

	trappingSkillThreshold = 0.1
	fishingSkillThreshold  = 0.1
)

// AI is component K: urgent-needs pre-emption, job execution, and job
// discovery, run in three phases per tick. Ported from
// src/systems/ai_system.py.
type AI struct {
	bal   *Balance
	clk   *clock.Clock
	board *jobs.Board
	grid  *worldmap.Grid
	zones *worldmap.ZoneIndex
	rng   *corerand.Source
	log   *simlog.Logger

	lastJobGenTick uint64
}

// NewAI constructs the Agent AI system.
func NewAI(bal *Balance, clk *clock.Clock, board *jobs.Board, grid *worldmap.Grid, zones *worldmap.ZoneIndex, rng *corerand.Source, log *simlog.Logger) *AI {
	return &AI{bal: bal, clk: clk, board: board, grid: grid, zones: zones, rng: rng, log: log}
}

// Update runs job generation followed by the three AI phases.
func (ai *AI) Update(store *ecs.Store) {
	ai.generateJobs(store)

	for _, e := range ecs.With2[components.Position, components.Action](store) {
		ai.phase1Urgent(store, e)
	}
	for _, e := range ecs.With1[components.Job](store) {
		ai.phase2Execute(store, e)
	}
	for _, e := range ecs.With1[components.Action](store) {
		ai.phase3Discover(store, e)
	}
}

// --- job generation -------------------------------------------------

func (ai *AI) generateJobs(store *ecs.Store) {
	tick := ai.clk.CurrentTick()
	if tick != 0 && tick-ai.lastJobGenTick < jobGenInterval {
		return
	}
	ai.lastJobGenTick = tick

	for _, e := range ecs.With2[components.Item, components.Position](store) {
		if ai.board.HasHaulJobFor(e) {
			continue
		}
		pos, _ := ecs.Get[components.Position](store, e)
		if ai.grid.GetZone(pos.X, pos.Y) == worldmap.ZoneStockpile {
			continue
		}
		item, _ := ecs.Get[components.Item](store, e)
		tile := pos.Tile()
		target := e
		ai.board.Add("haul", jobs.PriorityHaul, &tile, &target, "", item.Kind)
	}

	if ai.board.ChopJobCount() >= maxChopJobs {
		return
	}
	for _, e := range ecs.With3[components.IsTree, components.Resource, components.Position](store) {
		if ai.board.ChopJobCount() >= maxChopJobs {
			break
		}
		if ai.board.HasChopJobFor(e) {
			continue
		}
		pos, _ := ecs.Get[components.Position](store, e)
		tile := pos.Tile()
		target := e
		ai.board.Add("chop", jobs.PriorityChop, &tile, &target, "", "")
	}
}

// --- phase 1: urgent needs pre-emption -------------------------------

func (ai *AI) phase1Urgent(store *ecs.Store, e ecs.Entity) {
	pos, _ := ecs.Get[components.Position](store, e)
	action, _ := ecs.Get[components.Action](store, e)

	if hunger, ok := ecs.Get[components.Hunger](store, e); ok && hunger.Value > hungerUrgentThreshold {
		ai.cancelJob(store, e)
		ai.pursueFood(store, e, pos, action)
		return
	}
	if tiredness, ok := ecs.Get[components.Tiredness](store, e); ok && tiredness.Value > tirednessUrgentThreshold {
		ai.cancelJob(store, e)
		ai.pursueSleep(store, e, pos, action)
	}
}

func (ai *AI) cancelJob(store *ecs.Store, e ecs.Entity) {
	job, ok := ecs.Get[components.Job](store, e)
	if !ok {
		return
	}
	ai.board.Complete(job.JobID)
	ecs.Remove[components.Job](store, e)
}

// pursueFood implements the food-acquisition priority ladder.
func (ai *AI) pursueFood(store *ecs.Store, e ecs.Entity, pos *components.Position, action *components.Action) {
	if inv, ok := ecs.Get[components.Inventory](store, e); ok {
		for kind, count := range inv.Items {
			if count > 0 && ai.bal.ItemFoodValue[kind] > 0 {
				action.Current = components.ActionEat
				action.TargetEntity = nil
				action.TargetTile = nil
				return
			}
		}
	}

	agentTile := pos.Tile()

	// Already walking toward a food item and arrived: pick it up.
	if action.Current == components.ActionMove && action.TargetEntity != nil {
		if item, ok := ecs.Get[components.Item](store, *action.TargetEntity); ok && item.FoodValue > 0 {
			if itemPos, ok := ecs.Get[components.Position](store, *action.TargetEntity); ok {
				if worldmap.ManhattanDistance(agentTile, itemPos.Tile()) == 0 {
					action.Current = components.ActionPickup
					return
				}
			}
		}
	}
	if action.Current == components.ActionMove && action.TargetEntity != nil {
		if trap, ok := ecs.Get[components.Trap](store, *action.TargetEntity); ok && trap.Durability > 0 {
			if trapPos, ok := ecs.Get[components.Position](store, *action.TargetEntity); ok {
				if worldmap.ManhattanDistance(agentTile, trapPos.Tile()) <= 1 {
					action.Current = components.ActionTrap
					return
				}
			}
		}
	}
	if action.Current == components.ActionMove && action.TargetTile != nil {
		if ai.grid.GetTerrain(action.TargetTile.X, action.TargetTile.Y) == int(worldmap.TerrainWater) || adjacentToWater(ai.grid, agentTile) {
			if worldmap.ManhattanDistance(agentTile, *action.TargetTile) <= 1 {
				action.Current = components.ActionFish
				return
			}
		}
	}

	if item, itemPos, ok := ai.nearestFood(store, agentTile); ok {
		if itemPos == agentTile {
			action.Current = components.ActionPickup
			action.TargetEntity = &item
			action.TargetTile = nil
			return
		}
		ai.moveToward(action, itemPos, &item)
		return
	}

	skill, _ := ecs.Get[components.Skill](store, e)
	if skill.Get("trapping") > trappingSkillThreshold {
		if trap, trapPos, ok := ai.nearestTrap(store, agentTile); ok {
			if worldmap.ManhattanDistance(agentTile, trapPos) <= 1 {
				action.Current = components.ActionTrap
				action.TargetEntity = &trap
				action.TargetTile = nil
				return
			}
			ai.moveToward(action, trapPos, &trap)
			return
		}
	}
	if skill.Get("fishing") > fishingSkillThreshold {
		if waterTile, ok := ai.nearestWater(agentTile); ok {
			action.Current = components.ActionMove
			action.TargetEntity = nil
			t := waterTile
			action.TargetTile = &t
			return
		}
	}
	if inv, ok := ecs.Get[components.Inventory](store, e); ok && inv.Items["log"] >= 2 {
		if tile, ok := ai.grid.WalkableNeighborNearest(agentTile, agentTile); ok {
			action.Current = components.ActionTrap
			action.TargetEntity = nil
			t := tile
			action.TargetTile = &t
			return
		}
	}

	if ai.log != nil {
		ai.log.AI("hungry, no food", "entity", e)
	}
	action.Current = components.ActionIdle
}

func (ai *AI) moveToward(action *components.Action, tile components.Tile, target *ecs.Entity) {
	action.Current = components.ActionMove
	action.TargetEntity = target
	t := tile
	action.TargetTile = &t
}

func (ai *AI) nearestFood(store *ecs.Store, from components.Tile) (ecs.Entity, components.Tile, bool) {
	best := ecs.Entity(0)
	bestTile := components.Tile{}
	bestWeight := -1.0
	found := false
	for _, e := range ecs.With2[components.Item, components.Position](store) {
		item, _ := ecs.Get[components.Item](store, e)
		if item.FoodValue <= 0 {
			continue
		}
		pos, _ := ecs.Get[components.Position](store, e)
		tile := pos.Tile()
		dist := worldmap.ManhattanDistance(from, tile)
		if dist > foodSearchRadius {
			continue
		}
		weight := float64(dist)
		if ai.grid.GetZone(tile.X, tile.Y) == worldmap.ZoneStockpile {
			weight /= 2
		}
		if !found || weight < bestWeight {
			best, bestTile, bestWeight, found = e, tile, weight, true
		}
	}
	return best, bestTile, found
}

func (ai *AI) nearestTrap(store *ecs.Store, from components.Tile) (ecs.Entity, components.Tile, bool) {
	best := ecs.Entity(0)
	bestTile := components.Tile{}
	bestDist := -1
	found := false
	for _, e := range ecs.With2[components.Trap, components.Position](store) {
		pos, _ := ecs.Get[components.Position](store, e)
		tile := pos.Tile()
		dist := worldmap.ManhattanDistance(from, tile)
		if dist > trapSearchRadius {
			continue
		}
		if !found || dist < bestDist {
			best, bestTile, bestDist, found = e, tile, dist, true
		}
	}
	return best, bestTile, found
}

func adjacentToWater(grid *worldmap.Grid, tile components.Tile) bool {
	if grid.GetTerrain(tile.X, tile.Y) == int(worldmap.TerrainWater) {
		return true
	}
	for _, n := range worldmap.Neighbors4(tile) {
		if grid.GetTerrain(n.X, n.Y) == int(worldmap.TerrainWater) {
			return true
		}
	}
	return false
}

func (ai *AI) nearestWater(from components.Tile) (components.Tile, bool) {
	bestTile := components.Tile{}
	bestDist := -1
	found := false
	for dx := -waterSearchRadius; dx <= waterSearchRadius; dx++ {
		for dy := -waterSearchRadius; dy <= waterSearchRadius; dy++ {
			tile := components.Tile{X: from.X + dx, Y: from.Y + dy}
			if ai.grid.GetTerrain(tile.X, tile.Y) != int(worldmap.TerrainWater) {
				continue
			}
			dist := worldmap.ManhattanDistance(from, tile)
			if dist > waterSearchRadius {
				continue
			}
			if !found || dist < bestDist {
				bestTile, bestDist, found = tile, dist, true
			}
		}
	}
	return bestTile, found
}

func (ai *AI) pursueSleep(store *ecs.Store, e ecs.Entity, pos *components.Position, action *components.Action) {
	agentTile := pos.Tile()
	if worldmap.ManhattanDistance(agentTile, agentTile) == 0 && ai.grid.GetZone(agentTile.X, agentTile.Y) == worldmap.ZoneResidential {
		action.Current = components.ActionSleep
		action.TargetEntity = nil
		action.TargetTile = nil
		return
	}
	tile, ok := ai.zones.NearestTileOf(agentTile, worldmap.ZoneResidential)
	if !ok {
		if ai.log != nil {
			ai.log.AI("tired, no residential zone found", "entity", e)
		}
		action.Current = components.ActionIdle
		return
	}
	if worldmap.ManhattanDistance(agentTile, tile) == 0 {
		action.Current = components.ActionSleep
		action.TargetEntity = nil
		action.TargetTile = nil
		return
	}
	action.Current = components.ActionMove
	action.TargetEntity = nil
	t := tile
	action.TargetTile = &t
}

// --- phase 2: job execution -------------------------------------------

func (ai *AI) phase2Execute(store *ecs.Store, e ecs.Entity) {
	job, _ := ecs.Get[components.Job](store, e)
	record, ok := ai.board.ByID(job.JobID)
	if !ok {
		ecs.Remove[components.Job](store, e)
		ai.setIdle(store, e)
		return
	}

	action, ok := ecs.Get[components.Action](store, e)
	if !ok {
		return
	}
	pos, ok := ecs.Get[components.Position](store, e)
	if !ok {
		return
	}
	agentTile := pos.Tile()

	switch job.Kind {
	case "chop":
		ai.execChop(store, e, job, record, action, agentTile)
	case "haul":
		ai.execHaul(store, e, job, record, action, agentTile)
	case "plant":
		ai.execPlant(job, action, agentTile)
	case "harvest":
		ai.execHarvest(store, e, job, record, action, agentTile)
	case "trap", "fish", "tend_fire":
		ai.execWalkThenAct(store, job, record, action, agentTile, components.ActionKind(job.Kind))
	}
}

func (ai *AI) setIdle(store *ecs.Store, e ecs.Entity) {
	if action, ok := ecs.Get[components.Action](store, e); ok {
		action.Current = components.ActionIdle
		action.TargetEntity = nil
		action.TargetTile = nil
	}
}

func (ai *AI) completeJob(store *ecs.Store, e ecs.Entity, jobID string) {
	ai.board.Complete(jobID)
	ecs.Remove[components.Job](store, e)
	ai.setIdle(store, e)
}

func (ai *AI) execChop(store *ecs.Store, e ecs.Entity, job *components.Job, record *jobs.Record, action *components.Action, agentTile components.Tile) {
	if job.TargetEntity == nil || !store.HasEntity(*job.TargetEntity) {
		ai.completeJob(store, e, job.JobID)
		return
	}
	if worldmap.ManhattanDistance(agentTile, *job.TargetTile) <= 1 {
		action.Current = components.ActionChop
		action.TargetEntity = job.TargetEntity
		return
	}
	neighbor, ok := ai.grid.WalkableNeighborNearest(*job.TargetTile, agentTile)
	if !ok {
		ai.completeJob(store, e, job.JobID)
		return
	}
	action.Current = components.ActionMove
	action.TargetEntity = nil
	t := neighbor
	action.TargetTile = &t
}

func (ai *AI) execHaul(store *ecs.Store, e ecs.Entity, job *components.Job, record *jobs.Record, action *components.Action, agentTile components.Tile) {
	inv, _ := ecs.Get[components.Inventory](store, e)
	carryingRequired := inv != nil && record.RequiredItem != "" && inv.Items[record.RequiredItem] > 0
	carryingAny := inv != nil && len(inv.Items) > 0

	if !carryingAny && !carryingRequired {
		if job.TargetEntity == nil || !store.HasEntity(*job.TargetEntity) {
			ai.completeJob(store, e, job.JobID)
			return
		}
		if worldmap.ManhattanDistance(agentTile, *job.TargetTile) == 0 {
			action.Current = components.ActionPickup
			action.TargetEntity = job.TargetEntity
			return
		}
		// Ground items lie on walkable tiles: walk onto the item's own tile.
		if !ai.grid.IsWalkable(job.TargetTile.X, job.TargetTile.Y) {
			ai.completeJob(store, e, job.JobID)
			return
		}
		action.Current = components.ActionMove
		action.TargetEntity = nil
		t := *job.TargetTile
		action.TargetTile = &t
		return
	}

	tile, ok := ai.zones.NearestTileOf(agentTile, worldmap.ZoneStockpile)
	if !ok {
		// Cancel the job but leave Action=drop so the executor drops the
		// carried item on the spot this tick.
		ai.board.Complete(job.JobID)
		ecs.Remove[components.Job](store, e)
		action.Current = components.ActionDrop
		action.TargetEntity = nil
		action.TargetTile = nil
		return
	}
	if worldmap.ManhattanDistance(agentTile, tile) == 0 {
		action.Current = components.ActionDrop
		action.TargetEntity = nil
		action.TargetTile = nil
		// The job completes the natural way next tick: the target item
		// entity is gone, Phase 2 finds it missing, and completes. This
		// mirrors the reference implementation's emergent completion
		// rather than an explicit signal (see design decisions).
		return
	}
	action.Current = components.ActionMove
	action.TargetEntity = nil
	t := tile
	action.TargetTile = &t
}

func (ai *AI) execPlant(job *components.Job, action *components.Action, agentTile components.Tile) {
	if job.TargetTile == nil {
		action.Current = components.ActionIdle
		return
	}
	if worldmap.ManhattanDistance(agentTile, *job.TargetTile) == 0 {
		action.Current = components.ActionPlant
		return
	}
	action.Current = components.ActionMove
	action.TargetEntity = nil
	t := *job.TargetTile
	action.TargetTile = &t
}

func (ai *AI) execHarvest(store *ecs.Store, e ecs.Entity, job *components.Job, record *jobs.Record, action *components.Action, agentTile components.Tile) {
	if job.TargetEntity == nil || !store.HasEntity(*job.TargetEntity) {
		ai.completeJob(store, e, job.JobID)
		return
	}
	if worldmap.ManhattanDistance(agentTile, *job.TargetTile) <= 1 {
		action.Current = components.ActionHarvest
		action.TargetEntity = job.TargetEntity
		return
	}
	action.Current = components.ActionMove
	action.TargetEntity = nil
	t := *job.TargetTile
	action.TargetTile = &t
}

// execWalkThenAct handles trap/fish/tend_fire, each an analogous
// walk-then-act skeleton.
func (ai *AI) execWalkThenAct(store *ecs.Store, job *components.Job, record *jobs.Record, action *components.Action, agentTile components.Tile, kind components.ActionKind) {
	if job.TargetTile == nil {
		action.Current = kind
		return
	}
	if worldmap.ManhattanDistance(agentTile, *job.TargetTile) <= 1 {
		action.Current = kind
		action.TargetEntity = job.TargetEntity
		return
	}
	action.Current = components.ActionMove
	action.TargetEntity = nil
	t := *job.TargetTile
	action.TargetTile = &t
}

// --- phase 3: job discovery --------------------------------------------

func (ai *AI) phase3Discover(store *ecs.Store, e ecs.Entity) {
	action, _ := ecs.Get[components.Action](store, e)
	if action.Current != components.ActionIdle {
		return
	}
	if ecs.Has[components.Job](store, e) {
		return
	}
	skill, _ := ecs.Get[components.Skill](store, e)

	for _, record := range ai.board.Available() {
		if record.RequiredSkill != "" && skill.Get(record.RequiredSkill) <= 0 {
			continue
		}
		ai.board.Assign(record, e)
		ecs.Add(store, e, components.Job{
			JobID:        record.ID,
			Kind:         record.Kind,
			TargetTile:   record.TargetTile,
			TargetEntity: record.TargetEntity,
		})
		return
	}
}
