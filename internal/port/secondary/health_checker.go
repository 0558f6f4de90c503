package secondary

import "context"

// HealthChecker defines the secondary port for probing an external
// dependency's availability.
type HealthChecker interface {
	// Name identifies the dependency being probed.
	Name() string

	// Check returns an error when the dependency is unhealthy.
	Check(ctx context.Context) error
}
