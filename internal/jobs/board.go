// Package jobs is the Job Board (component F): a priority-ordered queue
// of outstanding work units, with no internal scheduling timer —
// consumers pull. Grounded on src/systems/job_system.py, whose Job
// dataclass mints an id via uuid.uuid4(); this port uses
// github.com/google/uuid for the same stable external identity.
package jobs

import (
	"sort"

	"github.com/google/uuid"

	"github.com/oakmere/holdfast/internal/components"
	"github.com/oakmere/holdfast/internal/ecs"
)

// Default priorities, per the board's priority convention: higher
// dispatches first.
const (
	PriorityHarvest = 5
	PriorityHaul    = 2
	PriorityChop    = 1
)

// Record is a unit of work on the board, distinct from the Job component
// carried by the assigned worker.
type Record struct {
	ID            string
	Kind          string
	TargetTile    *components.Tile
	TargetEntity  *ecs.Entity
	RequiredSkill string
	RequiredItem  string
	Priority      int
	Assignee      *ecs.Entity
}

// Board holds Record values sorted by priority, descending.
type Board struct {
	jobs []*Record
}

// NewBoard creates an empty job board.
func NewBoard() *Board {
	return &Board{}
}

// Add creates a new Record with a fresh id, inserts it, and re-sorts by
// priority descending.
func (b *Board) Add(kind string, priority int, targetTile *components.Tile, targetEntity *ecs.Entity, requiredSkill, requiredItem string) *Record {
	r := &Record{
		ID:            uuid.NewString(),
		Kind:          kind,
		TargetTile:    targetTile,
		TargetEntity:  targetEntity,
		RequiredSkill: requiredSkill,
		RequiredItem:  requiredItem,
		Priority:      priority,
	}
	b.jobs = append(b.jobs, r)
	b.sort()
	return r
}

func (b *Board) sort() {
	sort.SliceStable(b.jobs, func(i, j int) bool {
		return b.jobs[i].Priority > b.jobs[j].Priority
	})
}

// Available returns the unassigned jobs, already in priority order.
func (b *Board) Available() []*Record {
	out := make([]*Record, 0, len(b.jobs))
	for _, r := range b.jobs {
		if r.Assignee == nil {
			out = append(out, r)
		}
	}
	return out
}

// Assign marks job as claimed by entity.
func (b *Board) Assign(job *Record, entity ecs.Entity) {
	job.Assignee = &entity
}

// Complete removes the job with the given id from the board, if present.
func (b *Board) Complete(jobID string) {
	for i, r := range b.jobs {
		if r.ID == jobID {
			b.jobs = append(b.jobs[:i], b.jobs[i+1:]...)
			return
		}
	}
}

// ByID looks up a job record by its stable id.
func (b *Board) ByID(jobID string) (*Record, bool) {
	for _, r := range b.jobs {
		if r.ID == jobID {
			return r, true
		}
	}
	return nil, false
}

// HasHaulJobFor reports whether an outstanding haul job already targets
// entity, used by job generation to avoid duplicate haul jobs for the
// same item.
func (b *Board) HasHaulJobFor(entity ecs.Entity) bool {
	for _, r := range b.jobs {
		if r.Kind == "haul" && r.TargetEntity != nil && *r.TargetEntity == entity {
			return true
		}
	}
	return false
}

// HasChopJobFor reports whether an outstanding chop job already targets
// entity.
func (b *Board) HasChopJobFor(entity ecs.Entity) bool {
	for _, r := range b.jobs {
		if r.Kind == "chop" && r.TargetEntity != nil && *r.TargetEntity == entity {
			return true
		}
	}
	return false
}

// HasHarvestJobFor reports whether an outstanding harvest job already
// targets entity.
func (b *Board) HasHarvestJobFor(entity ecs.Entity) bool {
	for _, r := range b.jobs {
		if r.Kind == "harvest" && r.TargetEntity != nil && *r.TargetEntity == entity {
			return true
		}
	}
	return false
}

// Len returns the number of jobs currently on the board (assigned and
// unassigned).
func (b *Board) Len() int { return len(b.jobs) }

// ChopJobCount returns the number of outstanding chop jobs, used by job
// generation's "up to 10 total chop jobs" cap.
func (b *Board) ChopJobCount() int {
	n := 0
	for _, r := range b.jobs {
		if r.Kind == "chop" {
			n++
		}
	}
	return n
}
