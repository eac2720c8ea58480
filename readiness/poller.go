// Package readiness gates suite setup on the health of the backend services.
package readiness

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/lumina-learn/lumina-e2e/apiclient"
	"github.com/lumina-learn/lumina-e2e/model"
)

// State is the poller's lifecycle state.
type State string

const (
	StateWaiting  State = "waiting"
	StatePolling  State = "polling"
	StateReady    State = "ready"
	StateTimedOut State = "timed_out"
)

// HealthChecker is the slice of the API client the poller needs.
type HealthChecker interface {
	HealthCheck(ctx context.Context, service string) apiclient.ApiResponse[apiclient.HealthStatus]
}

// Poller repeatedly probes every configured service until all report healthy
// on the same tick, or the total timeout elapses.
type Poller struct {
	services []string
	checker  HealthChecker
	interval time.Duration
	timeout  time.Duration
	log      *zap.SugaredLogger

	mu    sync.Mutex
	state State
	last  model.ServiceHealth
}

// New returns a Poller in the waiting state.
func New(checker HealthChecker, services []string, interval, timeout time.Duration) *Poller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Poller{
		services: services,
		checker:  checker,
		interval: interval,
		timeout:  timeout,
		log:      zap.S(),
		state:    StateWaiting,
	}
}

// State returns the current lifecycle state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Snapshot returns the per-service health observed on the latest tick.
func (p *Poller) Snapshot() model.ServiceHealth {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(model.ServiceHealth, len(p.last))
	for k, v := range p.last {
		out[k] = v
	}
	return out
}

// WaitUntilReady polls until every service is healthy on a single tick.
// A permanently failing service keeps the poller running for the full
// timeout; only then does it transition to timed_out and return an error.
func (p *Poller) WaitUntilReady(ctx context.Context) error {
	if len(p.services) == 0 {
		return fmt.Errorf("readiness: no services configured")
	}
	p.setState(StatePolling)

	operation := func() (struct{}, error) {
		health := p.tick(ctx)
		p.store(health)
		if !health.AllHealthy() {
			unhealthy := health.Unhealthy()
			sort.Strings(unhealthy)
			p.log.Debugw("services not ready", "unhealthy", unhealthy)
			return struct{}{}, fmt.Errorf("services not healthy: %v", unhealthy)
		}
		return struct{}{}, nil
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(p.interval)),
		backoff.WithMaxElapsedTime(p.timeout),
	)
	if err != nil {
		p.setState(StateTimedOut)
		return fmt.Errorf("readiness: services did not become healthy within %s: %w", p.timeout, err)
	}
	p.setState(StateReady)
	p.log.Infow("all services healthy", "services", p.services)
	return nil
}

// tick fans out one health check per service and joins on all of them.
// Every check gets its own goroutine and is bounded by the tick interval so
// a slow or hanging service cannot starve evaluation of the others.
func (p *Poller) tick(ctx context.Context) model.ServiceHealth {
	tickCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	health := make(model.ServiceHealth, len(p.services))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, svc := range p.services {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			res := p.checker.HealthCheck(tickCtx, name)
			mu.Lock()
			health[name] = res.Success && res.Data.Healthy
			mu.Unlock()
		}(svc)
	}
	wg.Wait()
	return health
}

func (p *Poller) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

func (p *Poller) store(h model.ServiceHealth) {
	p.mu.Lock()
	p.last = h
	p.mu.Unlock()
}
