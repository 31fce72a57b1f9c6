// Package testutil provides shared helpers for tests that need a live
// MongoDB, seeded fixtures, or a stubbed prompt provider.
package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	czarcredstore "github.com/dalemusser/memedeck/internal/app/store/czarcreds"
	roomstore "github.com/dalemusser/memedeck/internal/app/store/rooms"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTestURI = "mongodb://localhost:27017"

// SetupTestDB connects to the test MongoDB (MONGO_TEST_URI, falling back to
// localhost) and returns a database with a unique per-test name so parallel
// packages never collide. The database is dropped on cleanup. Tests are
// skipped, not failed, when no server is reachable, so the pure-logic suites
// still run everywhere.
//
// Indexes for both collections are created up front; tests that rely on
// unique-key behavior (join codes, one credential per room) get it for free.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = defaultTestURI
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("skipping: cannot connect to test MongoDB at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("skipping: test MongoDB at %s not reachable: %v", uri, err)
	}

	name := "memedeck_test_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	db := client.Database(name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	idxCtx, idxCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer idxCancel()
	if err := roomstore.New(db).EnsureIndexes(idxCtx); err != nil {
		t.Fatalf("ensure room indexes: %v", err)
	}
	if err := czarcredstore.New(db).EnsureIndexes(idxCtx); err != nil {
		t.Fatalf("ensure credential indexes: %v", err)
	}

	return db
}

// TestContext returns a context with a generous timeout for test DB calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}
