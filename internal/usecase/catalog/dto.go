package catalog

import "time"

// Plan is the catalog entry DTO returned to transport layers.
type Plan struct {
	ID          string
	Operator    string
	Amount      int64
	Validity    string
	Data        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// CreatePlanRequest represents the request payload for creating a plan.
// Operator falls back to the default when omitted.
type CreatePlanRequest struct {
	Operator    string
	Amount      int64  `validate:"required,gt=0"`
	Validity    string `validate:"required"`
	Data        string `validate:"required"`
	Description string `validate:"required"`
	IsActive    *bool
}

// UpdatePlanRequest carries a partial plan update. Nil fields are left
// untouched; the plan ID itself cannot change.
type UpdatePlanRequest struct {
	Operator    *string
	Amount      *int64 `validate:"omitempty,gt=0"`
	Validity    *string
	Data        *string
	Description *string
	IsActive    *bool
}

// User is the admin listing projection of an account. No password material.
type User struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Role        string
	CreatedAt   time.Time
}
