package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recharge-service/internal/domain/plan"
)

// PlanRepoPG implements the catalog plan repository using GORM.
type PlanRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewPlanRepoPG creates a new instance of PlanRepoPG.
func NewPlanRepoPG(db *gorm.DB, log *zap.Logger) *PlanRepoPG {
	return &PlanRepoPG{db: db, log: log}
}

// PlanSchema represents the database schema for the plans table.
type PlanSchema struct {
	ID          string `gorm:"primaryKey;size:36"`
	Operator    string `gorm:"not null"`
	Amount      int64  `gorm:"not null"`
	Validity    string `gorm:"not null"`
	Data        string `gorm:"not null"`
	Description string `gorm:"not null"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
}

// TableName specifies the table name for the PlanSchema model.
func (PlanSchema) TableName() string {
	return "plans"
}

func (m *PlanSchema) toDomain() *plan.Plan {
	return &plan.Plan{
		ID:          m.ID,
		Operator:    m.Operator,
		Amount:      m.Amount,
		Validity:    m.Validity,
		Data:        m.Data,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

func fromDomain(p *plan.Plan) PlanSchema {
	return PlanSchema{
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

// Create inserts a new plan.
func (r *PlanRepoPG) Create(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return errors.New("plan cannot be nil")
	}

	model := fromDomain(p)
	model.CreatedAt = time.Time{} // let GORM stamp it

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create plan in db", zap.Error(err))
		return fmt.Errorf("failed to create plan: %w", err)
	}

	p.CreatedAt = model.CreatedAt
	r.log.Info("plan created in db", zap.String("id", model.ID))
	return nil
}

// GetByID retrieves a plan by ID. Returns nil when absent.
func (r *PlanRepoPG) GetByID(ctx context.Context, id string) (*plan.Plan, error) {
	var model PlanSchema
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("plan not found", zap.String("id", id))
			return nil, nil
		}
		r.log.Error("failed to get plan from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return model.toDomain(), nil
}

// Update replaces an existing plan record. Last write wins.
func (r *PlanRepoPG) Update(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return errors.New("plan cannot be nil")
	}

	model := fromDomain(p)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		r.log.Error("failed to update plan in db", zap.Error(err), zap.String("id", p.ID))
		return fmt.Errorf("failed to update plan: %w", err)
	}

	r.log.Info("plan updated in db", zap.String("id", p.ID))
	return nil
}

// Delete removes a plan by ID. Deleting a missing plan is not an error.
func (r *PlanRepoPG) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&PlanSchema{}, "id = ?", id).Error; err != nil {
		r.log.Error("failed to delete plan in db", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	r.log.Info("plan deleted in db", zap.String("id", id))
	return nil
}

// List retrieves plans in creation order, optionally filtered to active ones.
func (r *PlanRepoPG) List(ctx context.Context, activeOnly bool) ([]plan.Plan, error) {
	q := r.db.WithContext(ctx).Order("created_at ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var models []PlanSchema
	if err := q.Find(&models).Error; err != nil {
		r.log.Error("failed to list plans from db", zap.Error(err), zap.Bool("active_only", activeOnly))
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]plan.Plan, len(models))
	for i := range models {
		plans[i] = *models[i].toDomain()
	}
	return plans, nil
}
