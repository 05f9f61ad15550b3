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

// Survival advances fire fuel, warmth proximity, and cold damage rolls.
// Ported from src/systems/survival_system.py — including actually
// applying the cold-damage health loss that the reference implementation
// only logs ("in a full system, we'd reduce health here").
type Survival struct {
	bal *Balance
	clk *clock.Clock
	rng *corerand.Source
	log *simlog.Logger
}

// NewSurvival constructs the Survival system.
func NewSurvival(bal *Balance, clk *clock.Clock, rng *corerand.Source, log *simlog.Logger) *Survival {
	return &Survival{bal: bal, clk: clk, rng: rng, log: log}
}

type firePos struct {
	tile   components.Tile
	radius int
}

// Update advances fires, applies warmth/cold to every Cold+Position
// entity, and rolls cold damage against exposed agents at night.
func (sv *Survival) Update(store *ecs.Store, gameDt float64) {
	if gameDt <= 0 {
		return
	}
	hours := gameDt * 24.0 / sv.bal.DayLengthSeconds
	season := sv.bal.Seasons[sv.clk.CurrentSeason()]
	isNight := sv.clk.State() == clock.Night

	sv.updateFires(store, hours)

	fires := sv.liveFires(store)

	for _, e := range ecs.With2[components.Cold, components.Position](store) {
		cold, _ := ecs.Get[components.Cold](store, e)
		pos, _ := ecs.Get[components.Position](store, e)
		tile := pos.Tile()

		warm := nearAnyFire(tile, fires)
		if warm {
			cold.Value = simutil.Clamp(cold.Value-sv.bal.Fire.ColdReductionPerHour*hours, 0, 100)
		} else {
			rate := sv.bal.Needs.ColdGainPerHourDay
			if isNight {
				rate = sv.bal.Needs.ColdGainPerHourNight
			}
			cold.Value = simutil.Clamp(cold.Value+rate*hours*season.ColdGainMultiplier, 0, 100)
		}

		if cold.Value > 50 && !warm && isNight {
			prob := sv.bal.Needs.ColdDamageProbabilityBase * season.ColdDamageProbabilityMultiplier * hours
			if sv.rng.Chance(prob) {
				sv.applyColdDamage(store, e)
			}
		}
	}
}

func (sv *Survival) updateFires(store *ecs.Store, hours float64) {
	for _, e := range ecs.With1[components.Fire](store) {
		fire, _ := ecs.Get[components.Fire](store, e)
		fire.FuelRemaining -= fire.FuelConsumptionPerHour * hours
		if fire.FuelRemaining <= 0 {
			store.DestroyEntity(e)
		}
	}
}

func (sv *Survival) liveFires(store *ecs.Store) []firePos {
	var out []firePos
	for _, e := range ecs.With2[components.Fire, components.Position](store) {
		fire, _ := ecs.Get[components.Fire](store, e)
		pos, _ := ecs.Get[components.Position](store, e)
		out = append(out, firePos{tile: pos.Tile(), radius: fire.WarmthRadius})
	}
	return out
}

func nearAnyFire(tile components.Tile, fires []firePos) bool {
	for _, f := range fires {
		if worldmap.ManhattanDistance(tile, f.tile) <= f.radius {
			return true
		}
	}
	return false
}

// applyColdDamage reduces the agent's Resource health if it carries one;
// otherwise (most villagers have no Resource component) it only logs the
// damage roll, since no dedicated Health component exists for agents
// outside Resource.health.
func (sv *Survival) applyColdDamage(store *ecs.Store, e ecs.Entity) {
	if res, ok := ecs.Get[components.Resource](store, e); ok {
		res.Health -= sv.bal.Needs.ColdDamageAmount
		if sv.log != nil {
			sv.log.Gameplay("cold damage applied", "entity", e, "health", res.Health)
		}
		return
	}
	if sv.log != nil {
		sv.log.Gameplay("cold exposure damage roll", "entity", e)
	}
}
