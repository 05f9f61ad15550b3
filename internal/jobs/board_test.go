package jobs

import (
	"testing"

	"github.com/oakmere/holdfast/internal/ecs"
)

func TestAddSortsByPriorityDescending(t *testing.T) {
	b := NewBoard()
	b.Add("chop", PriorityChop, nil, nil, "", "")
	b.Add("harvest", PriorityHarvest, nil, nil, "farming", "")
	b.Add("haul", PriorityHaul, nil, nil, "", "")

	avail := b.Available()
	if len(avail) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(avail))
	}
	if avail[0].Kind != "harvest" || avail[1].Kind != "haul" || avail[2].Kind != "chop" {
		t.Fatalf("expected priority order harvest,haul,chop, got %v,%v,%v", avail[0].Kind, avail[1].Kind, avail[2].Kind)
	}
}

func TestAssignRemovesFromAvailable(t *testing.T) {
	b := NewBoard()
	r := b.Add("chop", PriorityChop, nil, nil, "", "")
	b.Assign(r, 7)

	if len(b.Available()) != 0 {
		t.Fatal("assigned job should not be available")
	}
	if r.Assignee == nil || *r.Assignee != 7 {
		t.Fatal("expected assignee set to entity 7")
	}
}

func TestCompleteRemovesJob(t *testing.T) {
	b := NewBoard()
	r := b.Add("chop", PriorityChop, nil, nil, "", "")
	b.Complete(r.ID)

	if _, ok := b.ByID(r.ID); ok {
		t.Fatal("expected job removed after complete")
	}
	if b.Len() != 0 {
		t.Fatalf("expected empty board, got %d", b.Len())
	}
}

func TestHasChopJobForTracksTargetEntity(t *testing.T) {
	b := NewBoard()
	e := ecs.Entity(42)
	b.Add("chop", PriorityChop, nil, &e, "", "")

	if !b.HasChopJobFor(e) {
		t.Fatal("expected chop job found for target entity")
	}
	if b.HasChopJobFor(ecs.Entity(99)) {
		t.Fatal("unexpected chop job for unrelated entity")
	}
}
