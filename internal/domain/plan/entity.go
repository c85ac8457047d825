package plan

import "time"

// DefaultOperator is applied when a plan is created without an operator.
const DefaultOperator = "All"

// Plan represents a purchasable recharge offer.
type Plan struct {
	ID          string // opaque unique identifier
	Operator    string // carrier name, "All" when not operator-specific
	Amount      int64  // price in currency units, always positive
	Validity    string // free-text duration, e.g. "28 days"
	Data        string // free-text quota, e.g. "2GB/day"
	Description string
	IsActive    bool // inactive plans are hidden from the storefront
	CreatedAt   time.Time
}
