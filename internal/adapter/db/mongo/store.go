// Package mongo implements the repositories on top of MongoDB.
//
// The connection is supervised in the background: while the server is
// unreachable every data operation fails fast with a ServiceUnavailable
// error instead of hanging, and the store keeps retrying with backoff
// until the connection comes back.
package mongo

import (
	"context"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	errs "recharge-service/pkg/errors"
)

// Collection names
const (
	ColUsers = "users"
	ColPlans = "plans"
)

const (
	pingTimeout  = 5 * time.Second
	pingInterval = 10 * time.Second
	maxBackoff   = 30 * time.Second
	queryTimeout = 10 * time.Second
)

// Store holds the MongoDB client shared by the repositories.
type Store struct {
	client *mongodrv.Client
	db     *mongodrv.Database
	ready  atomic.Bool
	stop   chan struct{}
	log    *zap.Logger
}

// NewStore creates a MongoDB store and starts the connection supervisor.
// It returns immediately; repositories report ServiceUnavailable until the
// first successful ping.
func NewStore(uri, dbName string, log *zap.Logger) (*Store, error) {
	client, err := mongodrv.Connect(options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(pingTimeout))
	if err != nil {
		return nil, err
	}

	s := &Store{
		client: client,
		db:     client.Database(dbName),
		stop:   make(chan struct{}),
		log:    log,
	}

	go s.superviseConnection()
	return s, nil
}

// Ready reports whether the store currently considers the connection usable.
func (s *Store) Ready() bool {
	return s.ready.Load()
}

// Close stops the supervisor and disconnects the client.
func (s *Store) Close() error {
	close(s.stop)
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// checkReady is called at the top of every repository operation.
func (s *Store) checkReady() error {
	if !s.ready.Load() {
		return errs.ErrUnavailable
	}
	return nil
}

// col returns the named collection.
func (s *Store) col(name string) *mongodrv.Collection {
	return s.db.Collection(name)
}

// superviseConnection pings the server, flipping the ready flag and retrying
// with exponential backoff while the connection is down.
func (s *Store) superviseConnection() {
	backoff := time.Second
	for {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err := s.client.Ping(ctx, nil)
		cancel()

		if err != nil {
			if s.ready.Swap(false) {
				s.log.Warn("MongoDB connection lost", zap.Error(err))
			} else {
				s.log.Warn("MongoDB not reachable, retrying",
					zap.Duration("backoff", backoff), zap.Error(err))
			}
			select {
			case <-s.stop:
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		if !s.ready.Swap(true) {
			s.log.Info("MongoDB connected successfully")
			if err := s.ensureIndexes(); err != nil {
				s.log.Warn("failed to ensure indexes", zap.Error(err))
			}
		}
		backoff = time.Second

		select {
		case <-s.stop:
			return
		case <-time.After(pingInterval):
		}
	}
}

// ensureIndexes creates the unique email index that decides concurrent
// registration races.
func (s *Store) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err := s.col(ColUsers).Indexes().CreateOne(ctx, mongodrv.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
