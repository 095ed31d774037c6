package di

import (
	"context"
	"time"

	"phraseapp/internal/services"
)

// sessionSweeper runs SessionStore.RunSweeper between Startup and Shutdown
type sessionSweeper struct {
	store    *services.SessionStore
	interval time.Duration
	maxIdle  time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func newSessionSweeper(store *services.SessionStore, interval, maxIdle time.Duration) *sessionSweeper {
	return &sessionSweeper{store: store, interval: interval, maxIdle: maxIdle}
}

// Startup starts the background sweep
func (s *sessionSweeper) Startup(ctx context.Context) error {
	sweepCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		s.store.RunSweeper(sweepCtx, s.interval, s.maxIdle)
	}()
	return nil
}

// Shutdown stops the sweep and waits for it to return
func (s *sessionSweeper) Shutdown(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.cancel = nil
	return nil
}
