package systems

import (
	"testing"

	"github.com/oakmere/holdfast/internal/clock"
	"github.com/oakmere/holdfast/internal/components"
	"github.com/oakmere/holdfast/internal/corerand"
	"github.com/oakmere/holdfast/internal/ecs"
)

func TestSurvivalFireNearbyReducesCold(t *testing.T) {
	bal := testBalance()
	clk := clock.New(nil, nil)
	rng := corerand.New(1)
	sv := NewSurvival(bal, clk, rng, nil)

	store := ecs.New()
	agent := store.CreateEntity()
	ecs.Add(store, agent, components.Cold{Value: 80})
	ecs.Add(store, agent, components.Position{X: 5, Y: 5})

	fire := store.CreateEntity()
	ecs.Add(store, fire, components.Position{X: 5, Y: 6})
	ecs.Add(store, fire, components.Fire{FuelRemaining: 100, WarmthRadius: 3, FuelConsumptionPerHour: 1})

	sv.Update(store, bal.DayLengthSeconds/24)

	cold, _ := ecs.Get[components.Cold](store, agent)
	if cold.Value >= 80 {
		t.Fatalf("expected cold to decrease near a fire, got %f", cold.Value)
	}
}

func TestSurvivalFireOutOfFuelIsDestroyed(t *testing.T) {
	bal := testBalance()
	clk := clock.New(nil, nil)
	rng := corerand.New(1)
	sv := NewSurvival(bal, clk, rng, nil)

	store := ecs.New()
	fire := store.CreateEntity()
	ecs.Add(store, fire, components.Position{X: 0, Y: 0})
	ecs.Add(store, fire, components.Fire{FuelRemaining: 0.01, WarmthRadius: 1, FuelConsumptionPerHour: 100})

	sv.Update(store, bal.DayLengthSeconds/24)

	if store.HasEntity(fire) {
		t.Fatal("expected fire entity destroyed once fuel is exhausted")
	}
}

func TestSurvivalColdIncreasesWithoutFire(t *testing.T) {
	bal := testBalance()
	clk := clock.New(nil, nil)
	rng := corerand.New(1)
	sv := NewSurvival(bal, clk, rng, nil)

	store := ecs.New()
	agent := store.CreateEntity()
	ecs.Add(store, agent, components.Cold{Value: 10})
	ecs.Add(store, agent, components.Position{X: 0, Y: 0})

	sv.Update(store, bal.DayLengthSeconds/24)

	cold, _ := ecs.Get[components.Cold](store, agent)
	if cold.Value <= 10 {
		t.Fatalf("expected cold to increase without a nearby fire, got %f", cold.Value)
	}
}
