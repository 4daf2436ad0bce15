package server

import (
	"context"
	"sync"
	"time"
)

// Readiness is closed once startup work (seeding) has finished.
type Readiness struct {
	once sync.Once
	ch   chan struct{}
}

func NewReadiness() *Readiness {
	return &Readiness{ch: make(chan struct{})}
}

// MarkReady releases every waiter. Calling it again is a no-op.
func (r *Readiness) MarkReady() {
	r.once.Do(func() { close(r.ch) })
}

func (r *Readiness) Ready() bool {
	select {
	case <-r.ch:
		return true
	default:
		return false
	}
}

// Wait blocks until ready, ctx is done or timeout elapses, and reports
// whether the server became ready.
func (r *Readiness) Wait(ctx context.Context, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-r.ch:
		return true
	case <-ctx.Done():
		return false
	case <-timer.C:
		return false
	}
}
