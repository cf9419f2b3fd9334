package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Redis test configuration constants.
const (
	redisImage            = "redis:7-alpine"
	redisStartupTimeout   = 60 * time.Second
	redisTerminateTimeout = 5 * time.Second
	redisPingTimeout      = 2 * time.Second
)

// SetupTestRedis starts a Redis container and returns a connected client.
// The container and client are cleaned up when the test finishes.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	startupCtx, cancel := context.WithTimeout(context.Background(), redisStartupTimeout)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        redisImage,
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	container, err := testcontainers.GenericContainer(startupCtx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker unavailable, skipping: %v", err)
	}
	t.Cleanup(func() {
		terminateCtx, terminateCancel := context.WithTimeout(context.Background(), redisTerminateTimeout)
		defer terminateCancel()
		_ = container.Terminate(terminateCtx)
	})

	host, err := container.Host(startupCtx)
	if err != nil {
		t.Fatalf("failed to resolve container host: %v", err)
	}
	port, err := container.MappedPort(startupCtx, "6379/tcp")
	if err != nil {
		t.Fatalf("failed to resolve container port: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})

	pingCtx, pingCancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer pingCancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		t.Fatalf("failed to ping Redis: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}
