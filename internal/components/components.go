// Package components is the data-model catalog: plain records keyed by
// entity, with no behavior of their own. Apart from Tool and Equipped,
// which have no counterpart there, each record mirrors a dataclass from
// the reference implementation's
// src/components/{data_components,skill_component,tags}.py, translated to
// idiomatic Go structs rather than Python dataclasses.
package components

import "github.com/oakmere/holdfast/internal/ecs"

// Tile is an integer tile coordinate shared by every component and system
// that addresses the grid.
type Tile struct {
	X, Y int
}

// Position is the entity's location on the grid. Created with the entity,
// mutated only by the Action Executor.
type Position struct {
	X, Y int
}

// Tile returns p as a Tile value.
func (p Position) Tile() Tile { return Tile{X: p.X, Y: p.Y} }

// Movement is the ordered remaining path, speed, and optional target.
type Movement struct {
	Path     []Tile
	Speed    float64
	Target   *Tile
	Progress float64 // progress to next tile, in [0,1)
}

// ActionKind is the tagged-union discriminant for Action: state, not a
// co-routine, re-evaluated fresh every tick.
type ActionKind string

const (
	ActionIdle       ActionKind = "idle"
	ActionMove       ActionKind = "move"
	ActionChop       ActionKind = "chop"
	ActionPickup     ActionKind = "pickup"
	ActionDrop       ActionKind = "drop"
	ActionEat        ActionKind = "eat"
	ActionSleep      ActionKind = "sleep"
	ActionPlant      ActionKind = "plant"
	ActionHarvest    ActionKind = "harvest"
	ActionTrap       ActionKind = "trap"
	ActionFish       ActionKind = "fish"
	ActionCreateFire ActionKind = "create_fire"
	ActionTendFire   ActionKind = "tend_fire"
)

// Action is the current verb an agent is executing, mutated by both AI
// and the Action Executor.
type Action struct {
	Current      ActionKind
	TargetEntity *ecs.Entity
	TargetTile   *Tile
}

// Resource is a harvestable world object (tree, ore vein, ...).
type Resource struct {
	Kind      string
	Health    float64
	MaxHealth float64
	Drops     map[string][2]int // item-kind -> [min, max]
}

// Item is a ground or inventory-carried stack.
type Item struct {
	Kind      string
	Amount    int
	FoodValue float64 // zero means non-food
}

// Inventory is an agent's carried goods.
type Inventory struct {
	Items    map[string]int
	Capacity int
}

// Skill maps skill-kind to proficiency in [0,1].
type Skill struct {
	Skills map[string]float64
}

// Get returns the proficiency for kind, or 0 if the agent has never
// practiced it.
func (s *Skill) Get(kind string) float64 {
	if s == nil || s.Skills == nil {
		return 0
	}
	return s.Skills[kind]
}

// Bump raises skill kind by delta, capped at 1.0.
func (s *Skill) Bump(kind string, delta float64) {
	if s.Skills == nil {
		s.Skills = make(map[string]float64)
	}
	v := s.Skills[kind] + delta
	if v > 1.0 {
		v = 1.0
	}
	s.Skills[kind] = v
}

// Job is the component carried by the worker entity, distinct from the
// Job record owned by the job board; it mirrors the record's identity so
// the worker can be found from the board and vice versa.
type Job struct {
	JobID        string
	Kind         string
	TargetTile   *Tile
	TargetEntity *ecs.Entity
}

// Hunger, Tiredness, Mood, Cold are need scalars clamped to [0,100].
type (
	Hunger struct{ Value float64 }
	Tiredness struct{ Value float64 }
	Mood struct{ Value float64 }
	Cold struct{ Value float64 }
)

// CropState is the growth-stage discriminant.
type CropState string

const (
	CropSeed    CropState = "seed"
	CropGrowing CropState = "growing"
	CropRipe    CropState = "ripe"
)

// Crop tracks a planted crop's growth.
type Crop struct {
	Kind     string
	Growth   float64 // progress in [0,1]
	State    CropState
}

// SleepState tracks whether the agent is currently asleep and where.
type SleepState struct {
	Sleeping bool
	BedTile  *Tile
}

// RoutineState is the daily-schedule activity label.
type RoutineState string

const (
	RoutineSleeping    RoutineState = "sleeping"
	RoutineEating      RoutineState = "eating"
	RoutineWorking     RoutineState = "working"
	RoutineSocializing RoutineState = "socializing"
)

// Routine is the suggested daily-schedule state; it never forces an
// action, only informs AI.
type Routine struct {
	Current RoutineState
	Next    *RoutineState
}

// Trap is a placed trap awaiting checking.
type Trap struct {
	Kind             string
	Durability       float64
	MaxDurability    float64
	CatchProbability float64
}

// Fire is a burning fire providing warmth while fuel lasts.
type Fire struct {
	FuelRemaining          float64
	WarmthRadius           int
	FuelConsumptionPerHour float64
}

// Tool is an equippable implement with wear: a durability-consuming entity
// backing the configured per-kind efficiency and durability-loss rates.
type Tool struct {
	Kind          string
	Durability    float64
	MaxDurability float64
	Efficiency    float64
}

// Equipped names the tool entity, if any, an agent currently wields.
type Equipped struct {
	ToolEntity *ecs.Entity
}

// Tag components are zero-sized markers.
type (
	IsTree       struct{}
	IsVillager   struct{}
	IsPlayer     struct{}
	IsSelectable struct{}
	IsWalkable   struct{}
)
