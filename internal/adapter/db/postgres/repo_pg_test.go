package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"recharge-service/internal/domain/plan"
	"recharge-service/internal/domain/user"
	errs "recharge-service/pkg/errors"
)

// setupTestDB creates an in-memory SQLite database. The repositories run the
// same GORM code against PostgreSQL in production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&UserSchema{}, &PlanSchema{}))
	return db
}

func testUser(email string) *user.User {
	return &user.User{
		ID:           "id-" + email,
		Name:         "Test User",
		Email:        email,
		PhoneNumber:  "9876543210",
		PasswordHash: "$2a$12$testhash",
		Role:         user.RoleUser,
	}
}

func TestUserRepoPG_CreateAndGet(t *testing.T) {
	repo := NewUserRepoPG(setupTestDB(t), zaptest.NewLogger(t))
	ctx := context.Background()

	u := testUser("john@example.com")
	require.NoError(t, repo.Create(ctx, u))
	assert.False(t, u.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "john@example.com", byID.Email)
	assert.Equal(t, user.RoleUser, byID.Role)

	byEmail, err := repo.GetByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)
}

func TestUserRepoPG_GetMissingReturnsNil(t *testing.T) {
	repo := NewUserRepoPG(setupTestDB(t), zaptest.NewLogger(t))
	ctx := context.Background()

	byID, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, byID)

	byEmail, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, byEmail)
}

func TestUserRepoPG_DuplicateEmail(t *testing.T) {
	repo := NewUserRepoPG(setupTestDB(t), zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("john@example.com")))

	dup := testUser("john@example.com")
	dup.ID = "other-id"
	err := repo.Create(ctx, dup)
	assert.Equal(t, errs.ErrDuplicateEmail, err)
}

func TestUserRepoPG_ListCreationOrder(t *testing.T) {
	repo := NewUserRepoPG(setupTestDB(t), zaptest.NewLogger(t))
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, repo.Create(ctx, testUser(email)))
		time.Sleep(2 * time.Millisecond)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.Equal(t, "c@example.com", users[2].Email)
}

func TestUserRepoPG_DeleteIdempotent(t *testing.T) {
	repo := NewUserRepoPG(setupTestDB(t), zaptest.NewLogger(t))
	ctx := context.Background()

	u := testUser("john@example.com")
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.Delete(ctx, u.ID))
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is still a success.
	require.NoError(t, repo.Delete(ctx, u.ID))
}

func testPlan(id string, amount int64, active bool) *plan.Plan {
	return &plan.Plan{
		ID:          id,
		Operator:    plan.DefaultOperator,
		Amount:      amount,
		Validity:    "28 days",
		Data:        "1.5GB/day",
		Description: "Test plan",
		IsActive:    active,
	}
}

func TestPlanRepoPG_CreateAndGet(t *testing.T) {
	repo := NewPlanRepoPG(setupTestDB(t), zaptest.NewLogger(t))
	ctx := context.Background()

	p := testPlan("p1", 199, true)
	require.NoError(t, repo.Create(ctx, p))
	assert.False(t, p.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(199), got.Amount)
	assert.Equal(t, plan.DefaultOperator, got.Operator)
	assert.True(t, got.IsActive)
}

func TestPlanRepoPG_Update(t *testing.T) {
	repo := NewPlanRepoPG(setupTestDB(t), zaptest.NewLogger(t))
	ctx := context.Background()

	p := testPlan("p1", 199, true)
	require.NoError(t, repo.Create(ctx, p))

	p.Amount = 249
	p.IsActive = false
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(249), got.Amount)
	assert.False(t, got.IsActive)
	assert.Equal(t, "28 days", got.Validity)
}

func TestPlanRepoPG_ListActiveFilter(t *testing.T) {
	repo := NewPlanRepoPG(setupTestDB(t), zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPlan("p1", 99, true)))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repo.Create(ctx, testPlan("p2", 199, false)))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repo.Create(ctx, testPlan("p3", 299, true)))

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "p1", all[0].ID)
	assert.Equal(t, "p3", all[2].ID)

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "p1", active[0].ID)
	assert.Equal(t, "p3", active[1].ID)
}

func TestPlanRepoPG_DeleteIdempotent(t *testing.T) {
	repo := NewPlanRepoPG(setupTestDB(t), zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPlan("p1", 199, true)))
	require.NoError(t, repo.Delete(ctx, "p1"))
	require.NoError(t, repo.Delete(ctx, "p1"))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
