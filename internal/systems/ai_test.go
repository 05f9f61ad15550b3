package systems

import (
	"testing"

	"github.com/oakmere/holdfast/internal/clock"
	"github.com/oakmere/holdfast/internal/components"
	"github.com/oakmere/holdfast/internal/corerand"
	"github.com/oakmere/holdfast/internal/ecs"
	"github.com/oakmere/holdfast/internal/jobs"
	"github.com/oakmere/holdfast/internal/worldmap"
)

func newTestAI() (*AI, *worldmap.Grid, *worldmap.ZoneIndex, *jobs.Board) {
	bal := testBalance()
	clk := clock.New(nil, nil)
	grid := worldmap.NewGrid(20, 20)
	zones := worldmap.NewZoneIndex(grid)
	board := jobs.NewBoard()
	rng := corerand.New(1)
	return NewAI(bal, clk, board, grid, zones, rng, nil), grid, zones, board
}

func TestJobGenerationCreatesHaulJobForUnstockpiledItem(t *testing.T) {
	ai, _, _, board := newTestAI()
	store := ecs.New()
	item := store.CreateEntity()
	ecs.Add(store, item, components.Position{X: 15, Y: 10})
	ecs.Add(store, item, components.Item{Kind: "log", Amount: 1})

	ai.Update(store)

	if !board.HasHaulJobFor(item) {
		t.Fatal("expected a haul job generated for the ground item")
	}
}

func TestJobGenerationPopulatesRequiredItemKind(t *testing.T) {
	ai, _, _, board := newTestAI()
	store := ecs.New()
	item := store.CreateEntity()
	ecs.Add(store, item, components.Position{X: 15, Y: 10})
	ecs.Add(store, item, components.Item{Kind: "log", Amount: 1})

	ai.Update(store)

	var found *jobs.Record
	for _, r := range board.Available() {
		if r.Kind == "haul" && r.TargetEntity != nil && *r.TargetEntity == item {
			found = r
		}
	}
	if found == nil {
		t.Fatal("expected a haul job for the ground item")
	}
	if found.RequiredItem != "log" {
		t.Fatalf("expected RequiredItem \"log\", got %q", found.RequiredItem)
	}
}

func TestJobGenerationSkipsItemsInStockpile(t *testing.T) {
	ai, grid, zones, board := newTestAI()
	zones.Mark(5, 5, worldmap.ZoneStockpile)
	_ = grid

	store := ecs.New()
	item := store.CreateEntity()
	ecs.Add(store, item, components.Position{X: 5, Y: 5})
	ecs.Add(store, item, components.Item{Kind: "log", Amount: 1})

	ai.Update(store)

	if board.HasHaulJobFor(item) {
		t.Fatal("expected no haul job for an item already in a stockpile")
	}
}

func TestPhase3JobDiscoveryRequiresSkill(t *testing.T) {
	ai, _, _, board := newTestAI()
	store := ecs.New()
	agent := store.CreateEntity()
	ecs.Add(store, agent, components.Position{X: 0, Y: 0})
	ecs.Add(store, agent, components.Action{Current: components.ActionIdle})
	ecs.Add(store, agent, components.Skill{Skills: map[string]float64{}})

	board.Add("harvest", jobs.PriorityHarvest, nil, nil, "farming", "")

	ai.Update(store)

	if ecs.Has[components.Job](store, agent) {
		t.Fatal("expected agent without farming skill to not claim the harvest job")
	}
}

func TestPhase3JobDiscoveryAcceptsMatchingSkill(t *testing.T) {
	ai, _, _, board := newTestAI()
	store := ecs.New()
	agent := store.CreateEntity()
	ecs.Add(store, agent, components.Position{X: 0, Y: 0})
	ecs.Add(store, agent, components.Action{Current: components.ActionIdle})
	ecs.Add(store, agent, components.Skill{Skills: map[string]float64{"farming": 0.5}})

	board.Add("harvest", jobs.PriorityHarvest, nil, nil, "farming", "")

	ai.Update(store)

	job, ok := ecs.Get[components.Job](store, agent)
	if !ok || job.Kind != "harvest" {
		t.Fatal("expected agent with farming skill to claim the harvest job")
	}
}

func TestHungerPreemptionCancelsAssignedJob(t *testing.T) {
	ai, _, _, board := newTestAI()
	store := ecs.New()
	agent := store.CreateEntity()
	ecs.Add(store, agent, components.Position{X: 0, Y: 0})
	ecs.Add(store, agent, components.Action{Current: components.ActionChop})
	ecs.Add(store, agent, components.Hunger{Value: 85})

	r := board.Add("chop", jobs.PriorityChop, nil, nil, "", "")
	board.Assign(r, agent)
	ecs.Add(store, agent, components.Job{JobID: r.ID, Kind: "chop"})

	ai.Update(store)

	if ecs.Has[components.Job](store, agent) {
		t.Fatal("expected job component stripped on hunger pre-emption")
	}
	if _, ok := board.ByID(r.ID); ok {
		t.Fatal("expected job removed from the board on cancellation")
	}
}
