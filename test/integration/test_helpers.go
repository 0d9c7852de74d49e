//go:build integration

package integration

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"forum-api/internal/database"
)

const storeTimeout = 5 * time.Second

// newMongo connects to MONGO_URI and hands out a database that exists only
// for the calling test.
func newMongo(t *testing.T) *database.Mongo {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	name := "forum_it_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	m, err := database.NewMongo(context.Background(), uri, name, storeTimeout)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		_ = m.DB.Drop(ctx)
		_ = m.Close(ctx)
	})
	return m
}

// newPostgres connects to DATABASE_URL, applies migrations and empties the
// audit table so each test starts clean.
func newPostgres(t *testing.T) *database.DB {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, url, 4, 0)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx))
	_, err = db.Pool.Exec(ctx, "TRUNCATE audit_entries")
	require.NoError(t, err)
	return db
}
