package readiness

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-learn/lumina-e2e/apiclient"
)

// stubChecker reports health per service as a function of how many times the
// service has been probed.
type stubChecker struct {
	mu      sync.Mutex
	probes  map[string]int
	healthy func(service string, probe int) bool
}

func newStubChecker(healthy func(service string, probe int) bool) *stubChecker {
	return &stubChecker{probes: map[string]int{}, healthy: healthy}
}

func (s *stubChecker) HealthCheck(_ context.Context, service string) apiclient.ApiResponse[apiclient.HealthStatus] {
	s.mu.Lock()
	n := s.probes[service]
	s.probes[service]++
	s.mu.Unlock()
	if s.healthy(service, n) {
		return apiclient.ApiResponse[apiclient.HealthStatus]{
			Success: true,
			Status:  200,
			Data:    apiclient.HealthStatus{Service: service, Healthy: true},
		}
	}
	return apiclient.ApiResponse[apiclient.HealthStatus]{
		Success: false,
		Status:  503,
		Error:   service + " unavailable",
	}
}

func TestPollerReadyWhenAllHealthy(t *testing.T) {
	checker := newStubChecker(func(string, int) bool { return true })
	p := New(checker, []string{"auth", "users", "learning"}, 10*time.Millisecond, time.Second)

	require.Equal(t, StateWaiting, p.State())
	err := p.WaitUntilReady(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateReady, p.State())
	assert.True(t, p.Snapshot().AllHealthy())
}

func TestPollerRecoversAfterInitialFailures(t *testing.T) {
	// users comes up on its third probe; the poller must keep going.
	checker := newStubChecker(func(service string, probe int) bool {
		if service == "users" {
			return probe >= 2
		}
		return true
	})
	p := New(checker, []string{"auth", "users"}, 10*time.Millisecond, time.Second)

	require.NoError(t, p.WaitUntilReady(context.Background()))
	assert.Equal(t, StateReady, p.State())
}

func TestPollerTimesOutOnPermanentFailure(t *testing.T) {
	checker := newStubChecker(func(service string, _ int) bool {
		return service != "feedback"
	})
	timeout := 150 * time.Millisecond
	p := New(checker, []string{"auth", "feedback"}, 10*time.Millisecond, timeout)

	start := time.Now()
	err := p.WaitUntilReady(context.Background())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "feedback")
	assert.Equal(t, StateTimedOut, p.State())
	assert.GreaterOrEqual(t, elapsed, timeout-20*time.Millisecond,
		"a permanently failing service must consume the full timeout, not fail early")

	snap := p.Snapshot()
	assert.True(t, snap["auth"])
	assert.False(t, snap["feedback"])
}

func TestPollerRequiresSameTickHealth(t *testing.T) {
	// Each service is healthy on alternating probes but never both on the
	// same tick, so readiness must never be declared.
	checker := newStubChecker(func(service string, probe int) bool {
		if service == "auth" {
			return probe%2 == 0
		}
		return probe%2 == 1
	})
	p := New(checker, []string{"auth", "users"}, 5*time.Millisecond, 100*time.Millisecond)

	err := p.WaitUntilReady(context.Background())
	require.Error(t, err, "alternating health must not satisfy same-tick readiness")
	assert.Equal(t, StateTimedOut, p.State())
}

func TestPollerNoServicesConfigured(t *testing.T) {
	p := New(newStubChecker(func(string, int) bool { return true }), nil, time.Millisecond, time.Millisecond)
	require.Error(t, p.WaitUntilReady(context.Background()))
}

func TestPollerAgainstHTTPBackend(t *testing.T) {
	// End to end through the real API client: one healthy service, one that
	// always answers 500.
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/learning/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := apiclient.New(srv.URL)

	healthyOnly := New(client, []string{"auth"}, 10*time.Millisecond, time.Second)
	require.NoError(t, healthyOnly.WaitUntilReady(context.Background()))

	mixed := New(client, []string{"auth", "learning"}, 10*time.Millisecond, 100*time.Millisecond)
	err := mixed.WaitUntilReady(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateTimedOut, mixed.State())
}
