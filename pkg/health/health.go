// Package health provides Kubernetes-style liveness and readiness probes.
//
// Registered checks run periodically in the background; the HTTP endpoints
// report the stored result of the most recent run rather than executing
// checks inline.
package health

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/jx"
)

// CheckFunc reports nil when the checked component is healthy.
type CheckFunc func(ctx context.Context) error

// check holds one registered probe and its latest result. The result pointer
// is nil until the first run, which counts as healthy.
type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc
	lastErr atomic.Pointer[error]
}

func (c *check) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	err := c.fn(ctx)
	c.lastErr.Store(&err)
}

func (c *check) failure() (string, bool) {
	p := c.lastErr.Load()
	if p == nil || *p == nil {
		return "", false
	}
	return (*p).Error(), true
}

// Service runs liveness and readiness checks for one process.
type Service struct {
	ready atomic.Bool

	mu        sync.RWMutex
	liveness  []*check
	readiness []*check
	cancel    context.CancelFunc
}

// New returns a Service in the not-ready state; call SetReady(true) once
// initialization finishes.
func New() *Service {
	return &Service{}
}

// AddLivenessCheck registers a check that decides whether the process should
// be restarted, e.g. goroutine leak detection.
func (s *Service) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liveness = append(s.liveness, &check{name: name, timeout: timeout, fn: fn})
}

// AddReadinessCheck registers a check that decides whether the process may
// receive traffic, e.g. a dependency ping.
func (s *Service) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readiness = append(s.readiness, &check{name: name, timeout: timeout, fn: fn})
}

// Start runs every registered check once, then again at each interval, until
// Stop is called or ctx is cancelled. Register all checks before calling
// Start.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	checks := make([]*check, 0, len(s.liveness)+len(s.readiness))
	checks = append(checks, s.liveness...)
	checks = append(checks, s.readiness...)
	s.mu.Unlock()

	go func() {
		for _, c := range checks {
			c.run(ctx)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, c := range checks {
					c.run(ctx)
				}
			}
		}
	}()
}

// Stop cancels the background check loop. Safe to call more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// SetReady flips the manual readiness gate. It is set to false during
// graceful shutdown so load balancers stop routing new traffic.
func (s *Service) SetReady(ready bool) {
	s.ready.Store(ready)
}

// IsReady reports whether the manual gate is open and every readiness check
// passed its latest run.
func (s *Service) IsReady() bool {
	if !s.ready.Load() {
		return false
	}
	s.mu.RLock()
	checks := s.readiness
	s.mu.RUnlock()
	for _, c := range checks {
		if _, failed := c.failure(); failed {
			return false
		}
	}
	return true
}

// LiveEndpoint serves /livez: 200 when all liveness checks pass, 503 with
// per-check failures otherwise.
func (s *Service) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	checks := make([]*check, len(s.liveness))
	copy(checks, s.liveness)
	s.mu.RUnlock()

	writeStatus(w, failures(checks))
}

// ReadyEndpoint serves /readyz: 200 when the manual gate is open and all
// readiness checks pass, 503 with details otherwise.
func (s *Service) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	checks := make([]*check, len(s.readiness))
	copy(checks, s.readiness)
	s.mu.RUnlock()

	failed := failures(checks)
	if !s.ready.Load() {
		failed["_readiness"] = "service is not ready"
	}
	writeStatus(w, failed)
}

func failures(checks []*check) map[string]string {
	failed := make(map[string]string)
	for _, c := range checks {
		if msg, bad := c.failure(); bad {
			failed[c.name] = msg
		}
	}
	return failed
}

func writeStatus(w http.ResponseWriter, failed map[string]string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("status")
	status := http.StatusOK
	if len(failed) == 0 {
		e.Str("ok")
	} else {
		status = http.StatusServiceUnavailable
		e.Str("unhealthy")
		names := make([]string, 0, len(failed))
		for name := range failed {
			names = append(names, name)
		}
		sort.Strings(names)
		e.FieldStart("checks")
		e.ObjStart()
		for _, name := range names {
			e.FieldStart(name)
			e.Str(failed[name])
		}
		e.ObjEnd()
	}
	e.ObjEnd()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}
