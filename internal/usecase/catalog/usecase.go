package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	plandomain "recharge-service/internal/domain/plan"
	errs "recharge-service/pkg/errors"
)

// Service implements the business logic for plan catalog management and
// admin user moderation.
type Service struct {
	plans    PlanRepository
	users    UserRepository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new catalog Service.
func New(plans PlanRepository, users UserRepository, log *zap.Logger) *Service {
	return &Service{
		plans:    plans,
		users:    users,
		log:      log,
		validate: validator.New(),
	}
}

func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "gt":
				messages = append(messages, fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return errs.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

func toPlanDTO(p *plandomain.Plan) *Plan {
	return &Plan{
		ID:          p.ID,
		Operator:    p.Operator,
		Amount:      p.Amount,
		Validity:    p.Validity,
		Data:        p.Data,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

// ListPlans returns catalog entries in creation order. Storefront callers
// pass activeOnly=true and never see inactive plans.
func (s *Service) ListPlans(ctx context.Context, activeOnly bool) ([]Plan, error) {
	domainPlans, err := s.plans.List(ctx, activeOnly)
	if err != nil {
		s.log.Error("failed to list plans", zap.Bool("active_only", activeOnly), zap.Error(err))
		return nil, err
	}

	plans := make([]Plan, len(domainPlans))
	for i := range domainPlans {
		plans[i] = *toPlanDTO(&domainPlans[i])
	}
	return plans, nil
}

// CreatePlan validates and persists a new catalog entry.
func (s *Service) CreatePlan(ctx context.Context, in CreatePlanRequest) (*Plan, error) {
	s.log.Info("creating plan", zap.String("operator", in.Operator), zap.Int64("amount", in.Amount))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	operator := strings.TrimSpace(in.Operator)
	if operator == "" {
		operator = plandomain.DefaultOperator
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	p := &plandomain.Plan{
		ID:          uuid.NewString(),
		Operator:    operator,
		Amount:      in.Amount,
		Validity:    in.Validity,
		Data:        in.Data,
		Description: in.Description,
		IsActive:    active,
	}

	if err := s.plans.Create(ctx, p); err != nil {
		s.log.Error("failed to create plan", zap.Error(err))
		return nil, err
	}

	created, err := s.plans.GetByID(ctx, p.ID)
	if err != nil {
		s.log.Error("failed to reload created plan", zap.String("id", p.ID), zap.Error(err))
		return nil, err
	}
	if created == nil {
		return nil, errs.NewInternalError("created plan disappeared", nil)
	}

	s.log.Info("plan created", zap.String("id", created.ID))
	return toPlanDTO(created), nil
}

// UpdatePlan merges the supplied fields onto an existing plan.
// Concurrent updates resolve last-write-wins.
func (s *Service) UpdatePlan(ctx context.Context, id string, in UpdatePlanRequest) (*Plan, error) {
	s.log.Info("updating plan", zap.String("id", id))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := s.plans.GetByID(ctx, id)
	if err != nil {
		s.log.Error("failed to load plan", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if existing == nil {
		s.log.Warn("plan not found", zap.String("id", id))
		return nil, errs.NewNotFoundError("plan", "plan not found")
	}

	if in.Operator != nil {
		existing.Operator = *in.Operator
	}
	if in.Amount != nil {
		existing.Amount = *in.Amount
	}
	if in.Validity != nil {
		existing.Validity = *in.Validity
	}
	if in.Data != nil {
		existing.Data = *in.Data
	}
	if in.Description != nil {
		existing.Description = *in.Description
	}
	if in.IsActive != nil {
		existing.IsActive = *in.IsActive
	}

	if err := s.plans.Update(ctx, existing); err != nil {
		s.log.Error("failed to update plan", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.log.Info("plan updated", zap.String("id", id))
	return toPlanDTO(existing), nil
}

// DeletePlan removes a plan. Deleting a missing plan is a success.
func (s *Service) DeletePlan(ctx context.Context, id string) error {
	s.log.Info("deleting plan", zap.String("id", id))

	if err := s.plans.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete plan", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ListUsers returns all accounts for the admin surface, password excluded.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	domainUsers, err := s.users.List(ctx)
	if err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, u := range domainUsers {
		users[i] = User{
			ID:          u.ID,
			Name:        u.Name,
			Email:       u.Email,
			PhoneNumber: u.PhoneNumber,
			Role:        u.Role,
			CreatedAt:   u.CreatedAt,
		}
	}
	return users, nil
}

// DeleteUser removes an account. Admin accounts cannot be deleted; this is
// enforced here, not in the UI. Deleting a missing user is a success.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	s.log.Info("deleting user", zap.String("id", id))

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		s.log.Error("failed to load user", zap.String("id", id), zap.Error(err))
		return err
	}
	if target == nil {
		// Already gone, idempotent success.
		return nil
	}
	if target.IsAdmin() {
		s.log.Warn("refusing to delete admin account", zap.String("id", id))
		return errs.NewForbiddenError("admin accounts cannot be deleted")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete user", zap.String("id", id), zap.Error(err))
		return err
	}

	s.log.Info("user deleted", zap.String("id", id))
	return nil
}
