// Package healthcheck probes the service's backing dependencies.
package healthcheck

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const defaultProbeTimeout = 2 * time.Second

// Status of a component or of the service as a whole.
type Status string

// Statuses.
const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// Report is the aggregate health of the service.
type Report struct {
	Status     Status            `json:"status"`
	Components map[string]Status `json:"components"`
}

// Registry holds named checks and runs them on demand.
type Registry struct {
	checks map[string]Check
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{checks: make(map[string]Check)}
}

// Add registers a named check.
func (r *Registry) Add(name string, check Check) {
	r.checks[name] = check
}

// Run probes every registered dependency. The report is down if any
// component is down.
func (r *Registry) Run(ctx context.Context) Report {
	report := Report{
		Status:     StatusUp,
		Components: make(map[string]Status, len(r.checks)),
	}

	for name, check := range r.checks {
		probeCtx, cancel := context.WithTimeout(ctx, defaultProbeTimeout)
		err := check(probeCtx)
		cancel()

		if err != nil {
			report.Components[name] = StatusDown
			report.Status = StatusDown
		} else {
			report.Components[name] = StatusUp
		}
	}
	return report
}

// MongoCheck pings the MongoDB deployment.
func MongoCheck(client *mongo.Client) Check {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}

// RedisCheck pings the Redis server.
func RedisCheck(client *redis.Client) Check {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
