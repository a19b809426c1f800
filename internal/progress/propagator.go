package progress

import (
	"context"
	"fmt"
	"log"

	"tasknag-backend/internal/task/domain"
	"tasknag-backend/pkg/clock"
)

// maxDepth caps the upward walk. Trees are shallow in practice; the cap only
// exists because the data model cannot forbid a malformed cycle.
const maxDepth = 32

// TaskStore is the slice of the repository the propagator needs.
type TaskStore interface {
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	GetChildren(ctx context.Context, parentID string) ([]*domain.Task, error)
	Save(ctx context.Context, task *domain.Task) error
}

// Propagator keeps parent aggregates consistent. It runs synchronously inside
// whichever command mutated a task, so the UI observes a consistent parent
// immediately after editing a child.
type Propagator struct {
	store TaskStore
	clock clock.Clock
}

func NewPropagator(store TaskStore, clk clock.Clock) *Propagator {
	return &Propagator{store: store, clock: clk}
}

// OnChildChanged recomputes and persists every ancestor's aggregate after any
// mutation that could change a child's status or progress, or after inserting
// or removing the child itself. Each level is written before the walk moves
// up: a grandparent's aggregate must never be computed from a stale parent.
func (p *Propagator) OnChildChanged(ctx context.Context, childID string) error {
	child, err := p.store.FindByID(ctx, childID)
	if err != nil {
		return fmt.Errorf("load changed task %s: %w", childID, err)
	}
	return p.propagateFrom(ctx, child.ParentID)
}

// OnChildRemoved re-aggregates a former parent after a child was deleted. The
// child row is gone, so the walk starts from the parent directly.
func (p *Propagator) OnChildRemoved(ctx context.Context, parentID string) error {
	return p.propagateFrom(ctx, &parentID)
}

func (p *Propagator) propagateFrom(ctx context.Context, parentID *string) error {
	visited := make(map[string]bool)

	for depth := 0; parentID != nil; depth++ {
		if depth >= maxDepth || visited[*parentID] {
			log.Printf("[Progress] Aborting propagation at %s: cycle or excessive depth", *parentID)
			return nil
		}
		visited[*parentID] = true

		parent, err := p.store.FindByID(ctx, *parentID)
		if err != nil {
			return fmt.Errorf("load parent %s: %w", *parentID, err)
		}

		children, err := p.store.GetChildren(ctx, parent.ID)
		if err != nil {
			return fmt.Errorf("load children of %s: %w", parent.ID, err)
		}

		parent.Progress = Aggregate(children)

		// Reaching 100% completes the parent. The reverse is not automatic:
		// dropping below 100% leaves a done parent done until the user says
		// otherwise.
		if parent.Progress == 100 && !parent.IsDone() {
			parent.Status = domain.TaskStatusDone
			now := p.clock.Now()
			parent.CompletedAt = &now
		}

		if err := p.store.Save(ctx, parent); err != nil {
			return fmt.Errorf("save parent %s: %w", parent.ID, err)
		}

		parentID = parent.ParentID
	}

	return nil
}
