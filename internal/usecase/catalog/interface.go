package catalog

import (
	"context"

	plandomain "recharge-service/internal/domain/plan"
	userdomain "recharge-service/internal/domain/user"
)

// PlanRepository defines the data access operations for the plan catalog.
type PlanRepository interface {
	Create(ctx context.Context, p *plandomain.Plan) error               // Persist a new plan
	GetByID(ctx context.Context, id string) (*plandomain.Plan, error)   // Retrieve plan by ID, nil when absent
	Update(ctx context.Context, p *plandomain.Plan) error               // Replace an existing plan record
	Delete(ctx context.Context, id string) error                        // Remove plan by ID; no error when absent
	List(ctx context.Context, activeOnly bool) ([]plandomain.Plan, error) // List plans, creation time ascending
}

// UserRepository defines the user moderation operations the catalog's admin
// surface needs. Listings never expose password hashes to callers.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	List(ctx context.Context) ([]userdomain.User, error)
	Delete(ctx context.Context, id string) error // no error when absent
}

// Usecase defines the interface for catalog business logic operations.
type Usecase interface {
	ListPlans(ctx context.Context, activeOnly bool) ([]Plan, error)
	CreatePlan(ctx context.Context, in CreatePlanRequest) (*Plan, error)
	UpdatePlan(ctx context.Context, id string, in UpdatePlanRequest) (*Plan, error)
	DeletePlan(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id string) error
}
