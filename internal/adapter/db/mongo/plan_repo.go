package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"recharge-service/internal/domain/plan"
)

// PlanRepoMongo implements the catalog plan repository on MongoDB.
type PlanRepoMongo struct {
	store *Store
	log   *zap.Logger
}

// NewPlanRepoMongo creates a new instance of PlanRepoMongo.
func NewPlanRepoMongo(store *Store, log *zap.Logger) *PlanRepoMongo {
	return &PlanRepoMongo{store: store, log: log}
}

type planDoc struct {
	ID          string    `bson:"_id"`
	Operator    string    `bson:"operator"`
	Amount      int64     `bson:"amount"`
	Validity    string    `bson:"validity"`
	Data        string    `bson:"data"`
	Description string    `bson:"description"`
	IsActive    bool      `bson:"is_active"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d *planDoc) toDomain() *plan.Plan {
	return &plan.Plan{
		ID:          d.ID,
		Operator:    d.Operator,
		Amount:      d.Amount,
		Validity:    d.Validity,
		Data:        d.Data,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
	}
}

func planToDoc(p *plan.Plan) planDoc {
	return planDoc{
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

// Create inserts a new plan document.
func (r *PlanRepoMongo) Create(ctx context.Context, p *plan.Plan) error {
	if err := r.store.checkReady(); err != nil {
		return err
	}
	if p == nil {
		return errors.New("plan cannot be nil")
	}

	doc := planToDoc(p)
	doc.CreatedAt = time.Now().UTC()

	if _, err := r.store.col(ColPlans).InsertOne(ctx, doc); err != nil {
		r.log.Error("failed to create plan", zap.Error(err))
		return fmt.Errorf("failed to create plan: %w", err)
	}

	p.CreatedAt = doc.CreatedAt
	r.log.Info("plan created", zap.String("id", p.ID))
	return nil
}

// GetByID retrieves a plan by ID. Returns nil when absent.
func (r *PlanRepoMongo) GetByID(ctx context.Context, id string) (*plan.Plan, error) {
	if err := r.store.checkReady(); err != nil {
		return nil, err
	}

	var doc planDoc
	err := r.store.col(ColPlans).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("failed to get plan", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return doc.toDomain(), nil
}

// Update replaces an existing plan document. Last write wins.
func (r *PlanRepoMongo) Update(ctx context.Context, p *plan.Plan) error {
	if err := r.store.checkReady(); err != nil {
		return err
	}
	if p == nil {
		return errors.New("plan cannot be nil")
	}

	doc := planToDoc(p)
	if _, err := r.store.col(ColPlans).ReplaceOne(ctx, bson.D{{Key: "_id", Value: p.ID}}, doc); err != nil {
		r.log.Error("failed to update plan", zap.Error(err), zap.String("id", p.ID))
		return fmt.Errorf("failed to update plan: %w", err)
	}

	r.log.Info("plan updated", zap.String("id", p.ID))
	return nil
}

// Delete removes a plan by ID. Deleting a missing plan is not an error.
func (r *PlanRepoMongo) Delete(ctx context.Context, id string) error {
	if err := r.store.checkReady(); err != nil {
		return err
	}

	if _, err := r.store.col(ColPlans).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		r.log.Error("failed to delete plan", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	r.log.Info("plan deleted", zap.String("id", id))
	return nil
}

// List retrieves plans in creation order, optionally filtered to active ones.
func (r *PlanRepoMongo) List(ctx context.Context, activeOnly bool) ([]plan.Plan, error) {
	if err := r.store.checkReady(); err != nil {
		return nil, err
	}

	filter := bson.D{}
	if activeOnly {
		filter = bson.D{{Key: "is_active", Value: true}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.store.col(ColPlans).Find(ctx, filter, opts)
	if err != nil {
		r.log.Error("failed to list plans", zap.Error(err))
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []planDoc
	if err := cursor.All(ctx, &docs); err != nil {
		r.log.Error("failed to decode plans", zap.Error(err))
		return nil, fmt.Errorf("failed to decode plans: %w", err)
	}

	plans := make([]plan.Plan, len(docs))
	for i := range docs {
		plans[i] = *docs[i].toDomain()
	}
	return plans, nil
}
