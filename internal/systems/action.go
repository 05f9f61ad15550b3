package systems

import (
	"github.com/oakmere/holdfast/internal/clock"
	"github.com/oakmere/holdfast/internal/components"
	"github.com/oakmere/holdfast/internal/corerand"
	"github.com/oakmere/holdfast/internal/ecs"
	"github.com/oakmere/holdfast/internal/simlog"
	"github.com/oakmere/holdfast/internal/simutil"
	"github.com/oakmere/holdfast/internal/worldmap"
)

// Action is component L: interprets each agent's Action tag and mutates
// the world accordingly. The largest system, ported from
// src/systems/action_system.py's per-kind handlers.
type Action struct {
	bal   *Balance
	clk   *clock.Clock
	grid  *worldmap.Grid
	zones *worldmap.ZoneIndex
	rng   *corerand.Source
	log   *simlog.Logger

	// fishingProgress is a side-table keyed by entity, mirroring the
	// reference implementation's self._fishing_progress dict: fishing
	// state that does not belong on the shared component catalog.
	fishingProgress map[ecs.Entity]float64
}

// NewAction constructs the Action Executor.
func NewAction(bal *Balance, clk *clock.Clock, grid *worldmap.Grid, zones *worldmap.ZoneIndex, rng *corerand.Source, log *simlog.Logger) *Action {
	return &Action{
		bal: bal, clk: clk, grid: grid, zones: zones, rng: rng, log: log,
		fishingProgress: make(map[ecs.Entity]float64),
	}
}

// Update dispatches every Action-carrying entity to its per-kind handler.
func (a *Action) Update(store *ecs.Store, gameDt float64) {
	hours := gameDt * 24.0 / a.bal.DayLengthSeconds
	daysElapsed := gameDt / a.bal.DayLengthSeconds

	for _, e := range ecs.With1[components.Action](store) {
		action, _ := ecs.Get[components.Action](store, e)
		switch action.Current {
		case components.ActionIdle:
			// no-op
		case components.ActionMove:
			a.execMove(store, e, action, gameDt)
		case components.ActionChop:
			a.execChop(store, e, action, gameDt)
		case components.ActionPickup:
			a.execPickup(store, e, action)
		case components.ActionDrop:
			a.execDrop(store, e, action)
		case components.ActionEat:
			a.execEat(store, e, action)
		case components.ActionSleep:
			a.execSleep(store, e, action, hours)
		case components.ActionPlant:
			a.execPlant(store, e, action)
		case components.ActionHarvest:
			a.execHarvest(store, e, action)
		case components.ActionTrap:
			a.execTrap(store, e, action)
		case components.ActionFish:
			a.execFish(store, e, action, daysElapsed)
		case components.ActionCreateFire, components.ActionTendFire:
			a.execFire(store, e, action)
		}
	}
}

func idleOut(action *components.Action) {
	action.Current = components.ActionIdle
	action.TargetEntity = nil
	action.TargetTile = nil
}

// --- move -------------------------------------------------------------

func (a *Action) execMove(store *ecs.Store, e ecs.Entity, action *components.Action, gameDt float64) {
	move, ok := ecs.Get[components.Movement](store, e)
	pos, posOk := ecs.Get[components.Position](store, e)
	if !ok || !posOk {
		idleOut(action)
		return
	}

	// A move intent written by AI carries its destination on the Action;
	// adopt it as the movement target (replanning if it changed).
	if action.TargetTile != nil && (move.Target == nil || *move.Target != *action.TargetTile) {
		t := *action.TargetTile
		move.Target = &t
		move.Path = nil
	}

	if len(move.Path) == 0 {
		if move.Target == nil {
			idleOut(action)
			return
		}
		path := worldmap.FindPath(a.grid, pos.Tile(), *move.Target)
		if len(path) == 0 {
			idleOut(action)
			move.Target = nil
			return
		}
		move.Path = path
	}

	move.Progress += move.Speed * gameDt
	for move.Progress >= 1.0 && len(move.Path) > 0 {
		next := move.Path[0]
		move.Path = move.Path[1:]
		pos.X, pos.Y = next.X, next.Y
		move.Progress -= 1.0
	}
	if len(move.Path) == 0 {
		idleOut(action)
		move.Target = nil
	}
}

// moveToNeighborOf sets the agent up to walk toward the walkable neighbor
// of target closest to the agent's current tile, returning false if none
// exists.
func (a *Action) moveToNeighborOf(store *ecs.Store, e ecs.Entity, action *components.Action, target, agentTile components.Tile, keepTargetEntity *ecs.Entity) bool {
	neighbor, ok := a.grid.WalkableNeighborNearest(target, agentTile)
	if !ok {
		return false
	}
	if move, ok := ecs.Get[components.Movement](store, e); ok {
		t := neighbor
		move.Target = &t
		move.Path = nil
		move.Progress = 0
	} else {
		ecs.Add(store, e, components.Movement{Speed: a.bal.MoveSpeed, Target: &neighbor})
	}
	action.Current = components.ActionMove
	action.TargetEntity = keepTargetEntity
	t := neighbor
	action.TargetTile = &t
	return true
}

// --- chop ---------------------------------------------------------------

func (a *Action) execChop(store *ecs.Store, e ecs.Entity, action *components.Action, gameDt float64) {
	if action.TargetEntity == nil || !store.HasEntity(*action.TargetEntity) {
		idleOut(action)
		return
	}
	target := *action.TargetEntity
	resTile, okPos := ecs.Get[components.Position](store, target)
	pos, okAgent := ecs.Get[components.Position](store, e)
	if !okPos || !okAgent {
		idleOut(action)
		return
	}
	if worldmap.ManhattanDistance(pos.Tile(), resTile.Tile()) > 1 {
		if !a.moveToNeighborOf(store, e, action, resTile.Tile(), pos.Tile(), &target) {
			idleOut(action)
		}
		return
	}

	res, ok := ecs.Get[components.Resource](store, target)
	if !ok {
		idleOut(action)
		return
	}

	skill, _ := ecs.Get[components.Skill](store, e)
	toolEfficiency := 1.0
	if equip, ok := ecs.Get[components.Equipped](store, e); ok && equip.ToolEntity != nil {
		if tool, ok := ecs.Get[components.Tool](store, *equip.ToolEntity); ok {
			toolEfficiency = tool.Efficiency
			loss := a.bal.Tools[tool.Kind].DurabilityLossPerUse
			if loss <= 0 {
				loss = 1.0
			}
			tool.Durability -= loss
			if tool.Durability <= 0 {
				store.DestroyEntity(*equip.ToolEntity)
				equip.ToolEntity = nil
			}
		}
	}

	res.Health -= a.bal.ChopSpeed * (1 + skill.Get("logging")) * toolEfficiency * gameDt
	if res.Health <= 0 {
		treeTile := resTile.Tile()
		logEntity := store.CreateEntity()
		ecs.Add(store, logEntity, components.Position{X: treeTile.X, Y: treeTile.Y})
		ecs.Add(store, logEntity, components.Item{Kind: "log", Amount: 1, FoodValue: a.bal.ItemFoodValue["log"]})
		if skill != nil {
			skill.Bump("logging", 0.01)
		}
		store.DestroyEntity(target)
		idleOut(action)
	}
}

// --- pickup / drop ------------------------------------------------------

func (a *Action) execPickup(store *ecs.Store, e ecs.Entity, action *components.Action) {
	if action.TargetEntity == nil || !store.HasEntity(*action.TargetEntity) {
		idleOut(action)
		return
	}
	item, ok := ecs.Get[components.Item](store, *action.TargetEntity)
	if !ok {
		idleOut(action)
		return
	}
	inv, ok := ecs.Get[components.Inventory](store, e)
	if !ok {
		inv = ecs.Add(store, e, components.Inventory{Items: map[string]int{}, Capacity: 20})
	}
	if inv.Items == nil {
		inv.Items = map[string]int{}
	}
	total := 0
	for _, n := range inv.Items {
		total += n
	}
	if inv.Capacity > 0 && total+item.Amount > inv.Capacity {
		if a.log != nil {
			a.log.Gameplay("inventory full, item discarded", "entity", e, "kind", item.Kind)
		}
		store.DestroyEntity(*action.TargetEntity)
		idleOut(action)
		return
	}
	inv.Items[item.Kind] += item.Amount
	store.DestroyEntity(*action.TargetEntity)
	idleOut(action)
}

func (a *Action) execDrop(store *ecs.Store, e ecs.Entity, action *components.Action) {
	inv, ok := ecs.Get[components.Inventory](store, e)
	pos, posOk := ecs.Get[components.Position](store, e)
	if !ok || !posOk || len(inv.Items) == 0 {
		idleOut(action)
		return
	}
	for kind, amount := range inv.Items {
		dropped := store.CreateEntity()
		ecs.Add(store, dropped, components.Position{X: pos.X, Y: pos.Y})
		ecs.Add(store, dropped, components.Item{Kind: kind, Amount: amount, FoodValue: a.bal.ItemFoodValue[kind]})
		delete(inv.Items, kind)
		break
	}
	idleOut(action)
}

// --- eat ------------------------------------------------------------

func (a *Action) execEat(store *ecs.Store, e ecs.Entity, action *components.Action) {
	inv, invOk := ecs.Get[components.Inventory](store, e)
	if invOk {
		bestKind := ""
		bestValue := -1.0
		for kind, count := range inv.Items {
			if count <= 0 {
				continue
			}
			fv := a.bal.ItemFoodValue[kind]
			if fv > bestValue {
				bestKind, bestValue = kind, fv
			}
		}
		if bestKind != "" && bestValue > 0 {
			inv.Items[bestKind]--
			if inv.Items[bestKind] <= 0 {
				delete(inv.Items, bestKind)
			}
			if hunger, ok := ecs.Get[components.Hunger](store, e); ok {
				hunger.Value = simutil.Clamp(hunger.Value-bestValue, 0, 100)
			}
			if mood, ok := ecs.Get[components.Mood](store, e); ok {
				mood.Value = simutil.Clamp(mood.Value+0.5*bestValue, 0, 100)
			}
			idleOut(action)
			return
		}
	}

	if action.TargetEntity != nil && store.HasEntity(*action.TargetEntity) {
		if _, ok := ecs.Get[components.Item](store, *action.TargetEntity); ok {
			a.execPickup(store, e, action)
			return
		}
	}
	idleOut(action)
}

// --- sleep ------------------------------------------------------------

func (a *Action) execSleep(store *ecs.Store, e ecs.Entity, action *components.Action, hours float64) {
	pos, ok := ecs.Get[components.Position](store, e)
	if !ok || a.grid.GetZone(pos.X, pos.Y) != worldmap.ZoneResidential {
		idleOut(action)
		return
	}
	sleep, ok := ecs.Get[components.SleepState](store, e)
	if !ok {
		t := pos.Tile()
		sleep = ecs.Add(store, e, components.SleepState{Sleeping: true, BedTile: &t})
	}
	sleep.Sleeping = true

	tiredness, ok := ecs.Get[components.Tiredness](store, e)
	if !ok {
		idleOut(action)
		return
	}
	rate := a.bal.Needs.TirednessPerHourResting
	if rate < 0 {
		rate = -rate
	}
	tiredness.Value = simutil.Clamp(tiredness.Value-rate*hours, 0, 100)
	if tiredness.Value <= 10 {
		sleep.Sleeping = false
		idleOut(action)
	}
}

// --- plant ------------------------------------------------------------

func (a *Action) execPlant(store *ecs.Store, e ecs.Entity, action *components.Action) {
	pos, ok := ecs.Get[components.Position](store, e)
	if !ok || a.grid.GetZone(pos.X, pos.Y) != worldmap.ZoneFarm {
		idleOut(action)
		return
	}
	tile := pos.Tile()
	for _, c := range ecs.With2[components.Crop, components.Position](store) {
		cropPos, _ := ecs.Get[components.Position](store, c)
		if cropPos.Tile() == tile {
			idleOut(action)
			return
		}
	}
	inv, ok := ecs.Get[components.Inventory](store, e)
	if !ok || inv.Items["seed"] <= 0 {
		idleOut(action)
		return
	}
	inv.Items["seed"]--
	if inv.Items["seed"] <= 0 {
		delete(inv.Items, "seed")
	}
	crop := store.CreateEntity()
	ecs.Add(store, crop, components.Position{X: tile.X, Y: tile.Y})
	ecs.Add(store, crop, components.Crop{Kind: "wheat", State: components.CropSeed})
	idleOut(action)
}

// --- harvest ------------------------------------------------------------

func (a *Action) execHarvest(store *ecs.Store, e ecs.Entity, action *components.Action) {
	if action.TargetEntity == nil || !store.HasEntity(*action.TargetEntity) {
		idleOut(action)
		return
	}
	target := *action.TargetEntity
	crop, ok := ecs.Get[components.Crop](store, target)
	cropPos, posOk := ecs.Get[components.Position](store, target)
	pos, agentOk := ecs.Get[components.Position](store, e)
	if !ok || !posOk || !agentOk || crop.State != components.CropRipe {
		idleOut(action)
		return
	}
	if worldmap.ManhattanDistance(pos.Tile(), cropPos.Tile()) > 1 {
		if !a.moveToNeighborOf(store, e, action, cropPos.Tile(), pos.Tile(), &target) {
			idleOut(action)
		}
		return
	}

	cb := a.bal.Crops[crop.Kind]
	if len(cb.Yield) == 0 {
		cb.Yield = map[string][2]float64{"food_wheat": {1, 3}}
	}
	for item, rng := range cb.Yield {
		amount := int(rng[0] + a.rng.Float64()*(rng[1]-rng[0]))
		if amount < 1 {
			amount = 1
		}
		spawned := store.CreateEntity()
		ecs.Add(store, spawned, components.Position{X: cropPos.X, Y: cropPos.Y})
		ecs.Add(store, spawned, components.Item{Kind: item, Amount: amount, FoodValue: a.bal.ItemFoodValue[item]})
	}
	store.DestroyEntity(target)
	idleOut(action)
}

// --- trap ------------------------------------------------------------

func (a *Action) execTrap(store *ecs.Store, e ecs.Entity, action *components.Action) {
	pos, ok := ecs.Get[components.Position](store, e)
	if !ok {
		idleOut(action)
		return
	}
	if action.TargetEntity != nil && store.HasEntity(*action.TargetEntity) {
		trap, ok := ecs.Get[components.Trap](store, *action.TargetEntity)
		if !ok {
			idleOut(action)
			return
		}
		skill, _ := ecs.Get[components.Skill](store, e)
		prob := a.bal.Trapping.CatchProbabilityBase * (1 + skill.Get("trapping")*a.bal.Trapping.CatchProbabilityPerSkill)
		trapPos, _ := ecs.Get[components.Position](store, *action.TargetEntity)
		if a.rng.Chance(prob) {
			caught := store.CreateEntity()
			ecs.Add(store, caught, components.Position{X: trapPos.X, Y: trapPos.Y})
			ecs.Add(store, caught, components.Item{Kind: "meat", Amount: 1, FoodValue: a.bal.ItemFoodValue["meat"]})
			trap.Durability -= 1
			if skill != nil {
				skill.Bump("trapping", 0.01)
			}
		} else {
			trap.Durability -= 0.1
		}
		if trap.Durability <= 0 {
			store.DestroyEntity(*action.TargetEntity)
		}
		idleOut(action)
		return
	}

	inv, ok := ecs.Get[components.Inventory](store, e)
	if !ok || inv.Items["log"] < 2 {
		idleOut(action)
		return
	}
	inv.Items["log"] -= 2
	if inv.Items["log"] <= 0 {
		delete(inv.Items, "log")
	}
	trapEntity := store.CreateEntity()
	ecs.Add(store, trapEntity, components.Position{X: pos.X, Y: pos.Y})
	ecs.Add(store, trapEntity, components.Trap{
		Kind:             "snare",
		Durability:       a.bal.Trapping.Durability,
		MaxDurability:    a.bal.Trapping.Durability,
		CatchProbability: a.bal.Trapping.CatchProbabilityBase,
	})
	idleOut(action)
}

// --- fish ------------------------------------------------------------

func (a *Action) execFish(store *ecs.Store, e ecs.Entity, action *components.Action, daysElapsed float64) {
	pos, ok := ecs.Get[components.Position](store, e)
	if !ok || !adjacentToWater(a.grid, pos.Tile()) {
		idleOut(action)
		delete(a.fishingProgress, e)
		return
	}
	a.fishingProgress[e] += daysElapsed
	threshold := a.bal.Fishing.TimePerAttemptSeconds / a.bal.DayLengthSeconds
	if a.fishingProgress[e] < threshold {
		return
	}
	a.fishingProgress[e] = 0

	skill, _ := ecs.Get[components.Skill](store, e)
	prob := a.bal.Fishing.CatchProbabilityBase * (1 + skill.Get("fishing")*a.bal.Fishing.CatchProbabilityPerSkill)
	hour := int(a.clk.Hour())
	for _, best := range a.bal.Fishing.BestHours {
		if best == hour {
			prob += a.bal.Fishing.BestHoursBonus
			break
		}
	}
	if a.rng.Chance(prob) {
		caught := store.CreateEntity()
		ecs.Add(store, caught, components.Position{X: pos.X, Y: pos.Y})
		ecs.Add(store, caught, components.Item{Kind: "fish", Amount: 1, FoodValue: a.bal.ItemFoodValue["fish"]})
		if skill != nil {
			skill.Bump("fishing", 0.01)
		}
	}
	idleOut(action)
}

// --- fire ------------------------------------------------------------

func (a *Action) execFire(store *ecs.Store, e ecs.Entity, action *components.Action) {
	pos, ok := ecs.Get[components.Position](store, e)
	inv, invOk := ecs.Get[components.Inventory](store, e)
	cost := a.bal.Fire.CreationCostLogs
	if !ok || !invOk || float64(inv.Items["log"]) < cost {
		idleOut(action)
		return
	}
	inv.Items["log"] -= int(cost)
	if inv.Items["log"] <= 0 {
		delete(inv.Items, "log")
	}

	tile := pos.Tile()
	for _, fe := range ecs.With2[components.Fire, components.Position](store) {
		firePos, _ := ecs.Get[components.Position](store, fe)
		if firePos.Tile() == tile {
			fire, _ := ecs.Get[components.Fire](store, fe)
			fire.FuelRemaining += cost * 10
			idleOut(action)
			return
		}
	}
	fireEntity := store.CreateEntity()
	ecs.Add(store, fireEntity, components.Position{X: tile.X, Y: tile.Y})
	ecs.Add(store, fireEntity, components.Fire{
		FuelRemaining:          cost * 10,
		WarmthRadius:           a.bal.Fire.WarmthRadius,
		FuelConsumptionPerHour: a.bal.Fire.FuelConsumptionPerHour,
	})
	idleOut(action)
}
