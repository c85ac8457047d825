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

	"recharge-service/internal/domain/user"
	errs "recharge-service/pkg/errors"
)

// UserRepoMongo implements the user repository interfaces on MongoDB.
type UserRepoMongo struct {
	store *Store
	log   *zap.Logger
}

// NewUserRepoMongo creates a new instance of UserRepoMongo.
func NewUserRepoMongo(store *Store, log *zap.Logger) *UserRepoMongo {
	return &UserRepoMongo{store: store, log: log}
}

type userDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PhoneNumber  string    `bson:"phone_number"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (d *userDoc) toDomain() *user.User {
	return &user.User{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		PhoneNumber:  d.PhoneNumber,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
	}
}

// Create inserts a new user document. The unique email index resolves
// concurrent registration races to a single winner.
func (r *UserRepoMongo) Create(ctx context.Context, u *user.User) error {
	if err := r.store.checkReady(); err != nil {
		return err
	}
	if u == nil {
		return errors.New("user cannot be nil")
	}

	doc := userDoc{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := r.store.col(ColUsers).InsertOne(ctx, doc); err != nil {
		if mongodrv.IsDuplicateKeyError(err) {
			r.log.Warn("duplicate email on insert", zap.String("email", u.Email))
			return errs.ErrDuplicateEmail
		}
		r.log.Error("failed to create user", zap.Error(err), zap.String("email", u.Email))
		return fmt.Errorf("failed to create user: %w", err)
	}

	u.CreatedAt = doc.CreatedAt
	r.log.Info("user created", zap.String("id", u.ID))
	return nil
}

// GetByID retrieves a user by ID. Returns nil when absent.
func (r *UserRepoMongo) GetByID(ctx context.Context, id string) (*user.User, error) {
	if err := r.store.checkReady(); err != nil {
		return nil, err
	}

	var doc userDoc
	err := r.store.col(ColUsers).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("failed to get user", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return doc.toDomain(), nil
}

// GetByEmail retrieves a user by email. Returns nil when absent.
func (r *UserRepoMongo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if err := r.store.checkReady(); err != nil {
		return nil, err
	}

	var doc userDoc
	err := r.store.col(ColUsers).FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("failed to get user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return doc.toDomain(), nil
}

// List retrieves all users in creation order.
func (r *UserRepoMongo) List(ctx context.Context) ([]user.User, error) {
	if err := r.store.checkReady(); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.store.col(ColUsers).Find(ctx, bson.D{}, opts)
	if err != nil {
		r.log.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		r.log.Error("failed to decode users", zap.Error(err))
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]user.User, len(docs))
	for i := range docs {
		users[i] = *docs[i].toDomain()
	}
	return users, nil
}

// Delete removes a user by ID. Deleting a missing user is not an error.
func (r *UserRepoMongo) Delete(ctx context.Context, id string) error {
	if err := r.store.checkReady(); err != nil {
		return err
	}

	if _, err := r.store.col(ColUsers).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		r.log.Error("failed to delete user", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	r.log.Info("user deleted", zap.String("id", id))
	return nil
}
