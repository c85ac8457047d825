package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"recharge-service/internal/adapter/cache"
	domain "recharge-service/internal/domain/plan"
	"recharge-service/internal/usecase/catalog"
)

// CachedPlanRepository implements catalog.PlanRepository with caching support
// for the listing path, the storefront's hot read. It wraps a persistent
// repository and a cache implementation.
type CachedPlanRepository struct {
	dbRepo catalog.PlanRepository
	cache  cache.PlanCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedPlanRepository creates a new instance of CachedPlanRepository.
func NewCachedPlanRepository(dbRepo catalog.PlanRepository, cache cache.PlanCache, log *zap.Logger) catalog.PlanRepository {
	return &CachedPlanRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// List retrieves a plan listing using the cache-aside pattern with
// single-flight stampede protection. Cache failures fall back to the database.
func (r *CachedPlanRepository) List(ctx context.Context, activeOnly bool) ([]domain.Plan, error) {
	if r.cache != nil {
		cached, err := r.cache.GetList(ctx, activeOnly)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	key := fmt.Sprintf("plans:%t", activeOnly)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Double-check cache in case another request populated it while we were waiting
		if r.cache != nil {
			cached, err := r.cache.GetList(ctx, activeOnly)
			if err == nil && cached != nil {
				return cached, nil
			}
		}

		plans, err := r.dbRepo.List(ctx, activeOnly)
		if err != nil {
			return nil, err
		}

		if r.cache != nil {
			if err := r.cache.SetList(ctx, activeOnly, plans); err != nil {
				r.log.Warn("failed to cache plan listing", zap.Error(err))
			}
		}

		return plans, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]domain.Plan), nil
}

// Create persists the plan and invalidates cached listings.
func (r *CachedPlanRepository) Create(ctx context.Context, p *domain.Plan) error {
	if err := r.dbRepo.Create(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// GetByID delegates to the DB repository.
func (r *CachedPlanRepository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	return r.dbRepo.GetByID(ctx, id)
}

// Update updates the plan and invalidates cached listings.
func (r *CachedPlanRepository) Update(ctx context.Context, p *domain.Plan) error {
	if err := r.dbRepo.Update(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// Delete deletes the plan and invalidates cached listings.
func (r *CachedPlanRepository) Delete(ctx context.Context, id string) error {
	if err := r.dbRepo.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedPlanRepository) invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx); err != nil {
		r.log.Warn("failed to invalidate plan cache", zap.Error(err))
	}
}
