// Package health tracks dependency health and serves it over the gRPC
// health protocol.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the gRPC health service name that reports overall status
const ServiceName = "bazaarsetu"

var errNotChecked = errors.New("not checked yet")

// Check reports whether one dependency is usable
type Check func(ctx context.Context) error

// Report is a point-in-time view of every registered check
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Healthy reports whether every check passed
func (r Report) Healthy() bool {
	return r.Status == "ok"
}

// Monitor runs named checks and mirrors their result into a gRPC health server.
// Each check is exposed as its own health service; "" and ServiceName carry
// the overall status.
type Monitor struct {
	server  *health.Server
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.RWMutex
	checks  map[string]Check
	results map[string]error
}

// NewMonitor creates a monitor publishing to server
func NewMonitor(server *health.Server, timeout time.Duration, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Monitor{
		server:  server,
		timeout: timeout,
		logger:  logger,
		checks:  make(map[string]Check),
		results: make(map[string]error),
	}
}

// Register adds a named check. Until the first run the check counts as failing.
func (m *Monitor) Register(name string, check Check) {
	m.mu.Lock()
	m.checks[name] = check
	m.results[name] = errNotChecked
	m.mu.Unlock()

	m.server.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
}

// CheckNow runs every check once and publishes the results
func (m *Monitor) CheckNow(ctx context.Context) Report {
	m.mu.RLock()
	checks := make(map[string]Check, len(m.checks))
	for name, check := range m.checks {
		checks[name] = check
	}
	m.mu.RUnlock()

	results := make(map[string]error, len(checks))
	for name, check := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
		results[name] = check(checkCtx)
		cancel()
	}

	overall := grpc_health_v1.HealthCheckResponse_SERVING
	for name, err := range results {
		status := grpc_health_v1.HealthCheckResponse_SERVING
		if err != nil {
			status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
			overall = status
			m.logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
		}
		m.server.SetServingStatus(name, status)
	}
	m.server.SetServingStatus("", overall)
	m.server.SetServingStatus(ServiceName, overall)

	m.mu.Lock()
	for name, err := range results {
		m.results[name] = err
	}
	m.mu.Unlock()

	return m.Report()
}

// Run re-checks on every tick until ctx is done
func (m *Monitor) Run(ctx context.Context, interval time.Duration) error {
	m.CheckNow(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.CheckNow(ctx)
		}
	}
}

// Report returns the latest results without running the checks
func (m *Monitor) Report() Report {
	m.mu.RLock()
	defer m.mu.RUnlock()

	report := Report{Status: "ok", Checks: make(map[string]string, len(m.results))}
	for name, err := range m.results {
		if err != nil {
			report.Checks[name] = err.Error()
			report.Status = "degraded"
		} else {
			report.Checks[name] = "ok"
		}
	}
	return report
}

// Server returns the gRPC health server the monitor publishes to
func (m *Monitor) Server() *health.Server {
	return m.server
}

// Shutdown marks every service as not serving
func (m *Monitor) Shutdown() {
	m.server.Shutdown()
}

// NewGRPCServer builds a gRPC server exposing the health service
func NewGRPCServer(server *health.Server, opts ...grpc.ServerOption) *grpc.Server {
	s := grpc.NewServer(opts...)
	grpc_health_v1.RegisterHealthServer(s, server)
	server.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	return s
}
