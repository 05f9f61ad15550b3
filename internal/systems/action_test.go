package systems

import (
	"testing"

	"github.com/oakmere/holdfast/internal/clock"
	"github.com/oakmere/holdfast/internal/components"
	"github.com/oakmere/holdfast/internal/corerand"
	"github.com/oakmere/holdfast/internal/ecs"
	"github.com/oakmere/holdfast/internal/worldmap"
)

func newTestAction() (*Action, *worldmap.Grid, *worldmap.ZoneIndex) {
	bal := testBalance()
	clk := clock.New(nil, nil)
	grid := worldmap.NewGrid(20, 20)
	zones := worldmap.NewZoneIndex(grid)
	rng := corerand.New(1)
	return NewAction(bal, clk, grid, zones, rng, nil), grid, zones
}

// TestMoveToTile is scenario 1: an agent with Movement(speed=5) and a move
// target reaches it after enough accumulated game-seconds and goes idle.
func TestMoveToTile(t *testing.T) {
	a, _, _ := newTestAction()
	store := ecs.New()
	e := store.CreateEntity()
	ecs.Add(store, e, components.Position{X: 10, Y: 10})
	target := components.Tile{X: 15, Y: 10}
	ecs.Add(store, e, components.Movement{Speed: 5, Target: &target})
	ecs.Add(store, e, components.Action{Current: components.ActionMove, TargetTile: &target})

	for i := 0; i < 20; i++ {
		a.Update(store, 0.05) // 20 * 0.05s = 1.0s total game time
	}

	pos, _ := ecs.Get[components.Position](store, e)
	action, _ := ecs.Get[components.Action](store, e)
	if pos.X != 15 || pos.Y != 10 {
		t.Fatalf("expected agent at (15,10), got (%d,%d)", pos.X, pos.Y)
	}
	if action.Current != components.ActionIdle {
		t.Fatalf("expected idle after arrival, got %s", action.Current)
	}
}

// TestChopTreeToCompletion is scenario 2: chopping a tree's health down to
// zero spawns a log item, bumps logging skill, and destroys the tree.
func TestChopTreeToCompletion(t *testing.T) {
	a, _, _ := newTestAction()
	store := ecs.New()

	tree := store.CreateEntity()
	ecs.Add(store, tree, components.Position{X: 15, Y: 10})
	ecs.Add(store, tree, components.Resource{Kind: "tree_oak", Health: 20, MaxHealth: 20})
	ecs.Add(store, tree, components.IsTree{})

	agent := store.CreateEntity()
	ecs.Add(store, agent, components.Position{X: 14, Y: 10})
	ecs.Add(store, agent, components.Skill{Skills: map[string]float64{"logging": 0.1}})
	target := tree
	ecs.Add(store, agent, components.Action{Current: components.ActionChop, TargetEntity: &target})

	for i := 0; i < 200 && store.HasEntity(tree); i++ {
		a.Update(store, 0.1)
	}

	if store.HasEntity(tree) {
		t.Fatal("expected tree destroyed after enough chopping")
	}
	action, _ := ecs.Get[components.Action](store, agent)
	if action.Current != components.ActionIdle {
		t.Fatalf("expected idle after chop completes, got %s", action.Current)
	}
	skill, _ := ecs.Get[components.Skill](store, agent)
	if skill.Get("logging") <= 0.1 {
		t.Fatalf("expected logging skill to increase, got %f", skill.Get("logging"))
	}

	found := false
	for _, item := range ecs.With1[components.Item](store) {
		it, _ := ecs.Get[components.Item](store, item)
		if it.Kind == "log" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a log item spawned at the tree tile")
	}
}

// TestHungerPreemptionEatsFromInventory is scenario 4's second tick: once
// Action=eat is set, the executor consumes the food and reduces hunger.
func TestHungerPreemptionEatsFromInventory(t *testing.T) {
	a, _, _ := newTestAction()
	store := ecs.New()
	e := store.CreateEntity()
	ecs.Add(store, e, components.Hunger{Value: 85})
	ecs.Add(store, e, components.Inventory{Items: map[string]int{"food_wheat": 1}})
	a.bal.ItemFoodValue["food_wheat"] = 30
	ecs.Add(store, e, components.Action{Current: components.ActionEat})

	a.Update(store, 0.1)

	hunger, _ := ecs.Get[components.Hunger](store, e)
	if hunger.Value != 55 {
		t.Fatalf("expected hunger reduced to 55, got %f", hunger.Value)
	}
	inv, _ := ecs.Get[components.Inventory](store, e)
	if inv.Items["food_wheat"] != 0 {
		t.Fatalf("expected food consumed from inventory, got %d", inv.Items["food_wheat"])
	}
	action, _ := ecs.Get[components.Action](store, e)
	if action.Current != components.ActionIdle {
		t.Fatalf("expected idle after eating, got %s", action.Current)
	}
}

func TestSleepRequiresResidentialZone(t *testing.T) {
	a, _, zones := newTestAction()
	store := ecs.New()
	e := store.CreateEntity()
	ecs.Add(store, e, components.Position{X: 2, Y: 2})
	ecs.Add(store, e, components.Tiredness{Value: 95})
	ecs.Add(store, e, components.Action{Current: components.ActionSleep})

	a.Update(store, 0.1)
	action, _ := ecs.Get[components.Action](store, e)
	if action.Current != components.ActionIdle {
		t.Fatal("expected idle when sleeping outside a residential zone")
	}

	zones.Mark(2, 2, worldmap.ZoneResidential)
	ecs.Add(store, e, components.Action{Current: components.ActionSleep})
	a.Update(store, 100)

	tiredness, _ := ecs.Get[components.Tiredness](store, e)
	if tiredness.Value >= 95 {
		t.Fatalf("expected tiredness to drop while sleeping in a residential zone, got %f", tiredness.Value)
	}
}
