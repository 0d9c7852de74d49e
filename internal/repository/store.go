package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"forum-api/internal/model"
)

const defaultStoreTimeout = 5 * time.Second

// collection bundles a store handle with the per-call deadline applied to
// every round trip.
type collection struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func newCollection(db *mongo.Database, name string, timeout time.Duration) collection {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return collection{coll: db.Collection(name), timeout: timeout}
}

func (c collection) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, c.timeout)
}

func upstream(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, model.ErrUpstreamFailure, err)
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
