package systems

import (
	"github.com/oakmere/holdfast/internal/clock"
	"github.com/oakmere/holdfast/internal/components"
	"github.com/oakmere/holdfast/internal/ecs"
	"github.com/oakmere/holdfast/internal/simlog"
	"github.com/oakmere/holdfast/internal/simutil"
)

// Needs is component G: once per tick it advances hunger, tiredness and
// mood proportional to elapsed game-hours, and clamps Cold (where present)
// to [0,100]; Cold itself is advanced by Survival.
// Ported from src/systems/needs_system.py.
type Needs struct {
	bal *Balance
	clk *clock.Clock
	log *simlog.Logger
}

// NewNeeds constructs the Needs system.
func NewNeeds(bal *Balance, clk *clock.Clock, log *simlog.Logger) *Needs {
	return &Needs{bal: bal, clk: clk, log: log}
}

// Update advances every agent carrying Hunger+Tiredness+Mood by
// gameDt seconds of elapsed game time.
func (n *Needs) Update(store *ecs.Store, gameDt float64) {
	if gameDt <= 0 {
		return
	}
	hours := gameDt * 24.0 / n.bal.DayLengthSeconds
	season := n.bal.Seasons[n.clk.CurrentSeason()]
	isNight := n.clk.State() == clock.Night

	for _, e := range ecs.With3[components.Hunger, components.Tiredness, components.Mood](store) {
		hunger, _ := ecs.Get[components.Hunger](store, e)
		tiredness, _ := ecs.Get[components.Tiredness](store, e)
		mood, _ := ecs.Get[components.Mood](store, e)

		hunger.Value = simutil.Clamp(hunger.Value+n.bal.Needs.HungerPerHour*hours*season.FoodConsumptionMultiplier, 0, 100)

		if action, ok := ecs.Get[components.Action](store, e); ok {
			switch {
			case action.Current == components.ActionSleep:
				tiredness.Value -= n.bal.Needs.TirednessPerHourResting * hours
			case action.Current != components.ActionIdle && action.Current != components.ActionEat:
				rate := n.bal.Needs.TirednessPerHourWorking
				if isNight {
					rate *= 1.5
				}
				tiredness.Value += rate * hours
			}
		}
		tiredness.Value = simutil.Clamp(tiredness.Value, 0, 100)

		if hunger.Value > 80 || tiredness.Value > 90 {
			mood.Value -= 1.0 * hours
		} else {
			mood.Value += 0.5 * hours
		}
		mood.Value = simutil.Clamp(mood.Value, 0, 100)

		if cold, ok := ecs.Get[components.Cold](store, e); ok {
			cold.Value = simutil.Clamp(cold.Value, 0, 100)
		}
	}
}
