package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "recharge-service/internal/domain/user"
	"recharge-service/pkg/auth"
	errs "recharge-service/pkg/errors"
)

// AdminSeed describes the admin account created at startup when absent.
type AdminSeed struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
}

// Service implements the business logic for registration and authentication.
type Service struct {
	repo     UserRepository
	tokens   *auth.TokenManager
	admin    AdminSeed
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new account Service.
func New(repo UserRepository, tokens *auth.TokenManager, admin AdminSeed, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		admin:    admin,
		log:      log,
		validate: validator.New(),
	}
}

// formatValidationError converts validator.ValidationErrors into a human-readable error.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return errs.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// Register creates a new user account after validating the request and
// checking email uniqueness. The password is stored as a bcrypt hash.
func (s *Service) Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error) {
	s.log.Info("registering user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		s.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, errs.ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		return nil, errs.NewInternalError("failed to process password", err)
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	// The store's unique email constraint decides concurrent races:
	// at most one of two simultaneous registrations wins.
	if err := s.repo.Create(ctx, u); err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	s.log.Info("user registered", zap.String("id", u.ID))
	return &RegisterResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	}, nil
}

// Login authenticates a user by email and password and issues a fresh token.
func (s *Service) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to look up user", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	if u == nil || !auth.CheckPassword(in.Password, u.PasswordHash) {
		s.log.Warn("login rejected", zap.String("email", in.Email))
		return nil, errs.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		s.log.Error("failed to issue token", zap.String("id", u.ID), zap.Error(err))
		return nil, errs.NewInternalError("failed to issue token", err)
	}

	s.log.Info("user logged in", zap.String("id", u.ID))
	return &LoginResponse{
		Token: token,
		User: UserInfo{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		},
	}, nil
}

// AdminLogin verifies the supplied password against the seeded admin account
// and issues an admin token. The credential goes through the same hashed
// verification path as regular users.
func (s *Service) AdminLogin(ctx context.Context, in AdminLoginRequest) (*AdminLoginResponse, error) {
	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := s.repo.GetByEmail(ctx, s.admin.Email)
	if err != nil {
		s.log.Error("failed to look up admin account", zap.Error(err))
		return nil, err
	}
	if u == nil || !u.IsAdmin() || !auth.CheckPassword(in.Password, u.PasswordHash) {
		s.log.Warn("admin login rejected")
		return nil, errs.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		s.log.Error("failed to issue admin token", zap.Error(err))
		return nil, errs.NewInternalError("failed to issue token", err)
	}

	s.log.Info("admin logged in", zap.String("id", u.ID))
	return &AdminLoginResponse{Token: token}, nil
}

// SeedAdmin creates the configured admin account if it does not exist yet.
// Safe to call on every startup.
func (s *Service) SeedAdmin(ctx context.Context) error {
	existing, err := s.repo.GetByEmail(ctx, s.admin.Email)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if existing != nil {
		s.log.Debug("admin account already present", zap.String("id", existing.ID))
		return nil
	}

	hash, err := auth.HashPassword(s.admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         s.admin.Name,
		Email:        s.admin.Email,
		PhoneNumber:  s.admin.PhoneNumber,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// Another instance may have seeded concurrently.
		if _, ok := err.(*errs.AlreadyExistsError); ok {
			return nil
		}
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	s.log.Info("admin account seeded", zap.String("id", u.ID), zap.String("email", u.Email))
	return nil
}
