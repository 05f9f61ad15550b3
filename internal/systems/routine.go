package systems

import (
	"github.com/oakmere/holdfast/internal/clock"
	"github.com/oakmere/holdfast/internal/components"
	"github.com/oakmere/holdfast/internal/ecs"
)

// Routine is component H: maps current hour + season to a suggested
// activity state per agent. It never forces an action; it only informs
// AI. Ported from src/systems/routine_system.py.
type Routine struct {
	bal *Balance
	clk *clock.Clock
}

// NewRoutine constructs the Routine system.
func NewRoutine(bal *Balance, clk *clock.Clock) *Routine {
	return &Routine{bal: bal, clk: clk}
}

// Update recomputes Routine.Current (and Next) for every agent carrying
// a Routine component.
func (r *Routine) Update(store *ecs.Store) {
	hour := r.clk.Hour()
	schedule := r.winterAdjusted(r.clk.CurrentSeason())

	for _, e := range ecs.With1[components.Routine](store) {
		routine, _ := ecs.Get[components.Routine](store, e)

		// Urgent needs defer to AI; Routine stays hands-off this tick.
		if hunger, ok := ecs.Get[components.Hunger](store, e); ok && hunger.Value > 80 {
			continue
		}
		if tiredness, ok := ecs.Get[components.Tiredness](store, e); ok && tiredness.Value > 90 {
			continue
		}

		routine.Current = suggestedActivity(schedule, hour)
		next := nextActivity(schedule, hour)
		routine.Next = &next
	}
}

func (r *Routine) winterAdjusted(season clock.Season) map[string][2]float64 {
	schedule := make(map[string][2]float64, len(r.bal.DailySchedule))
	for k, v := range r.bal.DailySchedule {
		schedule[k] = v
	}
	if season == clock.Winter {
		if w, ok := schedule["work_afternoon"]; ok {
			schedule["work_afternoon"] = [2]float64{w[0], w[1] - 2}
		}
		if s, ok := schedule["sleep"]; ok {
			schedule["sleep"] = [2]float64{s[0] - 1, s[1]}
		}
	}
	return schedule
}

// activityOrder is the schedule-to-routine-state mapping, in lookup
// order: the first interval containing the hour wins. Sleep is checked
// first, so where its interval overlaps another (as the winter shift
// makes it overlap leisure) the agent is sleeping.
var activityOrder = []struct {
	key   string
	state components.RoutineState
}{
	{"sleep", components.RoutineSleeping},
	{"wake", components.RoutineWorking},
	{"breakfast", components.RoutineEating},
	{"work_morning", components.RoutineWorking},
	{"lunch", components.RoutineEating},
	{"work_afternoon", components.RoutineWorking},
	{"dinner", components.RoutineEating},
	{"leisure", components.RoutineSocializing},
}

func inInterval(hour float64, interval [2]float64) bool {
	start, end := interval[0], interval[1]
	if start <= end {
		return hour >= start && hour < end
	}
	// Wraps past midnight (sleep).
	return hour >= start || hour < end
}

func suggestedActivity(schedule map[string][2]float64, hour float64) components.RoutineState {
	for _, a := range activityOrder {
		if interval, ok := schedule[a.key]; ok && inInterval(hour, interval) {
			return a.state
		}
	}
	return components.RoutineWorking
}

func nextActivity(schedule map[string][2]float64, hour float64) components.RoutineState {
	return suggestedActivity(schedule, hour+1)
}
