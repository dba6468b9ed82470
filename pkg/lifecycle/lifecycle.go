// Package lifecycle coordinates startup and shutdown hooks for long-running systems.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator runs startup hooks concurrently, tracks readiness, and
// fans out shutdown to registered cleanup hooks.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startup    *errgroup.Group
	shutdownWg sync.WaitGroup
	ready      atomic.Bool
	failure    atomic.Pointer[error]
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:     ctx,
		cancel:  cancel,
		startup: &errgroup.Group{},
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup registers a hook to run concurrently during startup.
// A hook error keeps the coordinator from becoming ready.
func (c *Coordinator) OnStartup(fn func(ctx context.Context) error) {
	c.startup.Go(func() error {
		return fn(c.ctx)
	})
}

// OnShutdown registers a function to run concurrently during shutdown.
// Shutdown hooks should block on <-c.Context().Done() before executing cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Go(fn)
}

// Ready returns true after all startup hooks have completed without error.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// Err returns the first startup hook failure, if any.
func (c *Coordinator) Err() error {
	if err := c.failure.Load(); err != nil {
		return *err
	}
	return nil
}

// WaitForStartup blocks until all startup hooks finish. The ready flag is only
// set when every hook succeeded; otherwise the first error is returned.
func (c *Coordinator) WaitForStartup() error {
	if err := c.startup.Wait(); err != nil {
		c.failure.Store(&err)
		return fmt.Errorf("startup failed: %w", err)
	}
	c.ready.Store(true)
	return nil
}

// Shutdown cancels the context and waits for shutdown hooks to complete
// within the given timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.ready.Store(false)
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}
