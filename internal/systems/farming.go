package systems

import (
	"github.com/oakmere/holdfast/internal/clock"
	"github.com/oakmere/holdfast/internal/components"
	"github.com/oakmere/holdfast/internal/ecs"
	"github.com/oakmere/holdfast/internal/jobs"
	"github.com/oakmere/holdfast/internal/simlog"
)

// Farming is component I: advances crop growth and emits harvest jobs on
// ripeness. Ported from src/systems/farming_system.py.
type Farming struct {
	bal   *Balance
	clk   *clock.Clock
	board *jobs.Board
	log   *simlog.Logger
}

// NewFarming constructs the Farming system.
func NewFarming(bal *Balance, clk *clock.Clock, board *jobs.Board, log *simlog.Logger) *Farming {
	return &Farming{bal: bal, clk: clk, board: board, log: log}
}

// Update advances crop growth and enqueues harvest jobs for newly ripe
// crops lacking one.
func (f *Farming) Update(store *ecs.Store, gameDt float64) {
	if gameDt <= 0 {
		return
	}
	daysElapsed := gameDt / f.bal.DayLengthSeconds
	growthMult := f.bal.Seasons[f.clk.CurrentSeason()].CropGrowthMultiplier

	for _, e := range ecs.With1[components.Crop](store) {
		crop, _ := ecs.Get[components.Crop](store, e)

		switch crop.State {
		case components.CropSeed:
			crop.State = components.CropGrowing
		case components.CropGrowing:
			cb, ok := f.bal.Crops[crop.Kind]
			growthDays := 3.0
			if ok {
				growthDays = cb.GrowthDays
			}
			if growthDays <= 0 {
				growthDays = 3.0
			}
			crop.Growth += (1.0 / growthDays) * daysElapsed * growthMult
			if crop.Growth >= 1.0 {
				crop.Growth = 1.0
				crop.State = components.CropRipe
				if f.log != nil {
					f.log.Gameplay("crop ripened", "entity", e, "kind", crop.Kind)
				}
			}
		}
	}

	for _, e := range ecs.With2[components.Crop, components.Position](store) {
		crop, _ := ecs.Get[components.Crop](store, e)
		if crop.State != components.CropRipe {
			continue
		}
		if f.board.HasHarvestJobFor(e) {
			continue
		}
		pos, _ := ecs.Get[components.Position](store, e)
		tile := pos.Tile()
		target := e
		f.board.Add("harvest", jobs.PriorityHarvest, &tile, &target, "farming", "")
	}
}
