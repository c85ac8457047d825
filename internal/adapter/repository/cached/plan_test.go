package cached

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"recharge-service/internal/adapter/cache"
	"recharge-service/internal/adapter/db/memory"
	domain "recharge-service/internal/domain/plan"
	"recharge-service/internal/usecase/catalog"
)

// countingPlanRepo wraps the in-memory repository and counts List calls so
// tests can observe whether a read was served from the cache.
type countingPlanRepo struct {
	catalog.PlanRepository
	listCalls atomic.Int64
}

func (r *countingPlanRepo) List(ctx context.Context, activeOnly bool) ([]domain.Plan, error) {
	r.listCalls.Add(1)
	return r.PlanRepository.List(ctx, activeOnly)
}

func setupCachedRepo(t *testing.T) (catalog.PlanRepository, *countingPlanRepo) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zaptest.NewLogger(t)
	db := &countingPlanRepo{PlanRepository: memory.NewPlanRepoMem()}
	planCache := cache.NewRedisPlanCache(client, time.Minute, log)
	return NewCachedPlanRepository(db, planCache, log), db
}

func TestCachedList_SecondReadServedFromCache(t *testing.T) {
	repo, db := setupCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Plan{ID: "p1", Amount: 199, IsActive: true}))

	first, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, int64(1), db.listCalls.Load())

	second, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, int64(1), db.listCalls.Load(), "second read should not hit the database")
}

func TestCachedList_MutationInvalidates(t *testing.T) {
	repo, db := setupCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Plan{ID: "p1", Amount: 199, IsActive: true}))

	_, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Equal(t, int64(1), db.listCalls.Load())

	// Any mutation drops the cached listings.
	require.NoError(t, repo.Create(ctx, &domain.Plan{ID: "p2", Amount: 299, IsActive: true}))

	plans, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, int64(2), db.listCalls.Load())
}

func TestCachedList_UpdateAndDeleteInvalidate(t *testing.T) {
	repo, db := setupCachedRepo(t)
	ctx := context.Background()

	p := &domain.Plan{ID: "p1", Amount: 199, IsActive: true}
	require.NoError(t, repo.Create(ctx, p))

	_, err := repo.List(ctx, true)
	require.NoError(t, err)

	p.Amount = 249
	require.NoError(t, repo.Update(ctx, p))

	updated, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, int64(249), updated[0].Amount)

	require.NoError(t, repo.Delete(ctx, "p1"))

	gone, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, gone)
	assert.Equal(t, int64(3), db.listCalls.Load())
}

func TestCachedList_NilCacheFallsThrough(t *testing.T) {
	log := zaptest.NewLogger(t)
	db := &countingPlanRepo{PlanRepository: memory.NewPlanRepoMem()}
	repo := NewCachedPlanRepository(db, nil, log)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Plan{ID: "p1", Amount: 199, IsActive: true}))

	for i := 0; i < 3; i++ {
		plans, err := repo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, plans, 1)
	}
	assert.Equal(t, int64(3), db.listCalls.Load())
}

func TestCachedGetByID_Delegates(t *testing.T) {
	repo, _ := setupCachedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Plan{ID: "p1", Amount: 199}))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(199), got.Amount)
}
