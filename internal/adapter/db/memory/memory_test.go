package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recharge-service/internal/domain/plan"
	"recharge-service/internal/domain/user"
	errs "recharge-service/pkg/errors"
)

func TestUserRepoMem_CreateAndGet(t *testing.T) {
	repo := NewUserRepoMem()
	ctx := context.Background()

	u := &user.User{ID: "u1", Name: "John", Email: "john@example.com", Role: user.RoleUser}
	require.NoError(t, repo.Create(ctx, u))
	assert.False(t, u.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "john@example.com", byID.Email)

	byEmail, err := repo.GetByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "u1", byEmail.ID)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepoMem_DuplicateEmail(t *testing.T) {
	repo := NewUserRepoMem()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &user.User{ID: "u1", Email: "john@example.com"}))

	err := repo.Create(ctx, &user.User{ID: "u2", Email: "john@example.com"})
	assert.Equal(t, errs.ErrDuplicateEmail, err)
}

func TestUserRepoMem_ConcurrentRegistrationSingleWinner(t *testing.T) {
	repo := NewUserRepoMem()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results <- repo.Create(ctx, &user.User{
				ID:    fmt.Sprintf("u%d", i),
				Email: "contended@example.com",
			})
		}(i)
	}
	wg.Wait()
	close(results)

	var wins, dups int
	for err := range results {
		switch err {
		case nil:
			wins++
		case errs.ErrDuplicateEmail:
			dups++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, dups)
}

func TestUserRepoMem_ListInsertionOrderAndDelete(t *testing.T) {
	repo := NewUserRepoMem()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &user.User{
			ID:    fmt.Sprintf("u%d", i),
			Email: fmt.Sprintf("u%d@example.com", i),
		}))
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "u0", users[0].ID)
	assert.Equal(t, "u2", users[2].ID)

	require.NoError(t, repo.Delete(ctx, "u1"))
	require.NoError(t, repo.Delete(ctx, "u1")) // idempotent

	users, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u0", users[0].ID)
	assert.Equal(t, "u2", users[1].ID)
}

func TestPlanRepoMem_CRUD(t *testing.T) {
	repo := NewPlanRepoMem()
	ctx := context.Background()

	p := &plan.Plan{ID: "p1", Operator: plan.DefaultOperator, Amount: 199, IsActive: true}
	require.NoError(t, repo.Create(ctx, p))
	assert.False(t, p.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(199), got.Amount)

	got.Amount = 249
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(249), updated.Amount)

	require.NoError(t, repo.Delete(ctx, "p1"))
	require.NoError(t, repo.Delete(ctx, "p1"))

	gone, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPlanRepoMem_UpdateAfterDeleteIsNoop(t *testing.T) {
	repo := NewPlanRepoMem()
	ctx := context.Background()

	p := &plan.Plan{ID: "p1", Amount: 199}
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Delete(ctx, "p1"))

	p.Amount = 249
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPlanRepoMem_ListActiveFilter(t *testing.T) {
	repo := NewPlanRepoMem()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &plan.Plan{ID: "p1", Amount: 99, IsActive: true}))
	require.NoError(t, repo.Create(ctx, &plan.Plan{ID: "p2", Amount: 199, IsActive: false}))
	require.NoError(t, repo.Create(ctx, &plan.Plan{ID: "p3", Amount: 299, IsActive: true}))

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "p1", active[0].ID)
	assert.Equal(t, "p3", active[1].ID)
}

func TestGetReturnsCopy(t *testing.T) {
	repo := NewPlanRepoMem()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &plan.Plan{ID: "p1", Amount: 199}))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	got.Amount = 999 // mutating the returned value must not touch the store

	fresh, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(199), fresh.Amount)
}
