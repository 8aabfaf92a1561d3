package health

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func dialHealth(t *testing.T, hs *health.Server) grpc_health_v1.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer(hs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return grpc_health_v1.NewHealthClient(conn)
}

func status(t *testing.T, client grpc_health_v1.HealthClient, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
	require.NoError(t, err, "check %q", service)
	return resp.GetStatus()
}

func TestMonitor_PublishesStatus(t *testing.T) {
	hs := health.NewServer()
	client := dialHealth(t, hs)
	m := NewMonitor(hs, time.Second, nil)

	var sqliteErr error
	m.Register("sqlite", func(context.Context) error { return sqliteErr })
	m.Register("neo4j", func(context.Context) error { return nil })

	// unchecked dependencies are not serving
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, status(t, client, "sqlite"))

	report := m.CheckNow(context.Background())
	require.True(t, report.Healthy(), "%+v", report)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, status(t, client, ServiceName))

	sqliteErr = errors.New("disk full")
	report = m.CheckNow(context.Background())
	require.False(t, report.Healthy())
	assert.Equal(t, "disk full", report.Checks["sqlite"])
	assert.Equal(t, "ok", report.Checks["neo4j"])
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, status(t, client, ""))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, status(t, client, "neo4j"))
}

func TestMonitor_RunStopsWithContext(t *testing.T) {
	m := NewMonitor(health.NewServer(), time.Second, nil)
	calls := make(chan struct{}, 10)
	m.Register("tick", func(context.Context) error {
		select {
		case calls <- struct{}{}:
		default:
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, 10*time.Millisecond) }()

	<-calls
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "Run did not stop")
	}
}
