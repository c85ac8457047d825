package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"recharge-service/internal/domain/plan"
)

// PlanRepoMem implements the catalog plan repository in memory.
type PlanRepoMem struct {
	mu    sync.RWMutex
	plans map[string]plan.Plan
	order []string // insertion order of IDs
}

// NewPlanRepoMem creates an empty in-memory plan repository.
func NewPlanRepoMem() *PlanRepoMem {
	return &PlanRepoMem{plans: make(map[string]plan.Plan)}
}

// Create stores a new plan.
func (r *PlanRepoMem) Create(_ context.Context, p *plan.Plan) error {
	if p == nil {
		return errors.New("plan cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.plans[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

// GetByID returns the plan with the given ID, nil when absent.
func (r *PlanRepoMem) GetByID(_ context.Context, id string) (*plan.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.plans[id]; ok {
		return &p, nil
	}
	return nil, nil
}

// Update replaces an existing plan. Last write wins; updating a plan that
// was deleted meanwhile is a no-op.
func (r *PlanRepoMem) Update(_ context.Context, p *plan.Plan) error {
	if p == nil {
		return errors.New("plan cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[p.ID]; ok {
		r.plans[p.ID] = *p
	}
	return nil
}

// Delete removes a plan by ID. Deleting a missing plan is not an error.
func (r *PlanRepoMem) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.plans, id)
	return nil
}

// List returns plans in insertion order, optionally filtered to active ones.
func (r *PlanRepoMem) List(_ context.Context, activeOnly bool) ([]plan.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]plan.Plan, 0, len(r.plans))
	for _, id := range r.order {
		p, ok := r.plans[id]
		if !ok {
			continue
		}
		if activeOnly && !p.IsActive {
			continue
		}
		plans = append(plans, p)
	}
	return plans, nil
}
