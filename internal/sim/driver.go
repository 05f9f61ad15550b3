// Package sim is the Simulation Driver (component M): it owns every other
// component by composition and exposes a single Step(realDt) entry point,
// matching the reference implementation's top-level simulation loop class.
package sim

import (
	"time"

	"github.com/oakmere/holdfast/internal/clock"
	"github.com/oakmere/holdfast/internal/config"
	"github.com/oakmere/holdfast/internal/corerand"
	"github.com/oakmere/holdfast/internal/ecs"
	"github.com/oakmere/holdfast/internal/jobs"
	"github.com/oakmere/holdfast/internal/simlog"
	"github.com/oakmere/holdfast/internal/systems"
	"github.com/oakmere/holdfast/internal/worldmap"
)

// Driver owns the store, grid, zone index, job board, clock, and every
// tick system, and enforces the fixed per-tick ordering:
// Clock -> Needs -> Routine -> Farming -> Survival -> AI -> Action.
type Driver struct {
	store *ecs.Store
	grid  *worldmap.Grid
	zones *worldmap.ZoneIndex
	board *jobs.Board
	clk   *clock.Clock
	bal   *systems.Balance
	log   *simlog.Logger

	needs    *systems.Needs
	routine  *systems.Routine
	farming  *systems.Farming
	survival *systems.Survival
	ai       *systems.AI
	action   *systems.Action

	secondsAccum float64
}

// New wires every system in construction order (leaves first), loading
// balance from cfg exactly once.
func New(cfg *config.Config, grid *worldmap.Grid, seed int64, log *simlog.Logger) *Driver {
	clk := clock.New(cfg, log)
	if log != nil {
		log.SetTickSource(clk)
	}
	bal := systems.LoadBalance(cfg)
	rng := corerand.New(seed)
	store := ecs.New()
	zones := worldmap.NewZoneIndex(grid)
	board := jobs.NewBoard()

	return &Driver{
		store: store,
		grid:  grid,
		zones: zones,
		board: board,
		clk:   clk,
		bal:   bal,
		log:   log,

		needs:    systems.NewNeeds(bal, clk, log),
		routine:  systems.NewRoutine(bal, clk),
		farming:  systems.NewFarming(bal, clk, board, log),
		survival: systems.NewSurvival(bal, clk, rng, log),
		ai:       systems.NewAI(bal, clk, board, grid, zones, rng, log),
		action:   systems.NewAction(bal, clk, grid, zones, rng, log),
	}
}

// Step advances the simulation by one tick of realDt wall-clock time,
// running every system in the mandated fixed order. It logs once per
// simulated second.
func (d *Driver) Step(realDt time.Duration) {
	gameDt := d.clk.Step(realDt)

	d.needs.Update(d.store, gameDt)
	d.routine.Update(d.store)
	d.farming.Update(d.store, gameDt)
	d.survival.Update(d.store, gameDt)
	d.ai.Update(d.store)
	d.action.Update(d.store, gameDt)

	d.secondsAccum += gameDt
	if d.secondsAccum >= 1.0 {
		d.secondsAccum -= 1.0
		if d.log != nil {
			d.log.System("tick", "day", d.clk.Day(), "hour", d.clk.Hour(), "season", d.clk.CurrentSeason().String(), "jobs", d.board.Len())
		}
	}
}

// Store returns the read-only-by-convention component store, for
// presentation collaborators to inspect.
func (d *Driver) Store() *ecs.Store { return d.store }

// Grid returns the tile grid, for presentation collaborators to inspect.
func (d *Driver) Grid() *worldmap.Grid { return d.grid }

// Zones returns the zone index, for presentation/UI zone-painting tools.
func (d *Driver) Zones() *worldmap.ZoneIndex { return d.zones }

// Jobs returns the job board, for presentation collaborators (job panels).
func (d *Driver) Jobs() *jobs.Board { return d.board }

// Clock returns the clock, for presentation status lines.
func (d *Driver) Clock() *clock.Clock { return d.clk }

// SetPaused/SetScale forward controller commands to the clock.
// Callers invoke these only between Step calls, never mid-tick.
func (d *Driver) SetPaused(p bool)    { d.clk.SetPaused(p) }
func (d *Driver) SetScale(s float64)  { d.clk.SetScale(s) }
