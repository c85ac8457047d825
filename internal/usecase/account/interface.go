package account

import (
	"context"

	domain "recharge-service/internal/domain/user"
)

// UserRepository defines the data access operations the account service needs.
// It abstracts the data layer, allowing different implementations
// (PostgreSQL, MongoDB, in-memory) to be used interchangeably.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error                   // Persist a new user; duplicate email fails
	GetByEmail(ctx context.Context, email string) (*domain.User, error) // Retrieve user by email, nil when absent
	GetByID(ctx context.Context, id string) (*domain.User, error)       // Retrieve user by ID, nil when absent
}

// Usecase defines the interface for account business logic operations.
type Usecase interface {
	Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, in LoginRequest) (*LoginResponse, error)
	AdminLogin(ctx context.Context, in AdminLoginRequest) (*AdminLoginResponse, error)
	SeedAdmin(ctx context.Context) error
}
