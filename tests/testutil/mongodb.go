// Package testutil provides container-backed stores for integration tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoDB test configuration constants.
const (
	mongoImage            = "mongo:7"
	mongoStartupTimeout   = 60 * time.Second
	mongoTerminateTimeout = 5 * time.Second
	mongoCtxTimeout       = 10 * time.Second
)

// SetupTestMongoDB starts a MongoDB container and returns a database with a
// unique per-test name. The container and database are cleaned up when the
// test finishes.
func SetupTestMongoDB(t *testing.T) *mongo.Database {
	t.Helper()

	startupCtx, cancel := context.WithTimeout(context.Background(), mongoStartupTimeout)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        mongoImage,
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	}
	container, err := testcontainers.GenericContainer(startupCtx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker unavailable, skipping: %v", err)
	}
	t.Cleanup(func() {
		terminateCtx, terminateCancel := context.WithTimeout(context.Background(), mongoTerminateTimeout)
		defer terminateCancel()
		_ = container.Terminate(terminateCtx)
	})

	host, err := container.Host(startupCtx)
	if err != nil {
		t.Fatalf("failed to resolve container host: %v", err)
	}
	port, err := container.MappedPort(startupCtx, "27017/tcp")
	if err != nil {
		t.Fatalf("failed to resolve container port: %v", err)
	}

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), mongoCtxTimeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	db := client.Database("quizforge_test")

	t.Cleanup(func() {
		ctx, cleanupCancel := context.WithTimeout(context.Background(), mongoCtxTimeout)
		defer cleanupCancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}
