package remote

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hy4ri/todo-tui/internal/todo"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds a single dispatch across all syncers.
const DefaultTimeout = 10 * time.Second

// Dispatcher runs syncs as detached background tasks. Nothing waits on a
// dispatch except Wait, the flush barrier used at exit. Dispatches are not
// ordered with respect to each other.
type Dispatcher struct {
	syncers []Syncer
	timeout time.Duration
	logger  *log.Logger

	wg         sync.WaitGroup
	dispatched atomic.Int64
	failed     atomic.Int64
}

// NewDispatcher creates a dispatcher fanning out to syncers.
// A non-positive timeout means DefaultTimeout.
func NewDispatcher(logger *log.Logger, timeout time.Duration, syncers ...Syncer) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		syncers: syncers,
		timeout: timeout,
		logger:  logger,
	}
}

// Dispatch starts a background sync of snapshot and returns immediately.
// The snapshot is copied so later mutations do not leak into it.
func (d *Dispatcher) Dispatch(snapshot *todo.Store) {
	if len(d.syncers) == 0 {
		return
	}

	snap := snapshot.Clone()
	d.dispatched.Add(1)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(snap)
	}()
}

func (d *Dispatcher) run(snap *todo.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	// A plain group: one failing syncer must not cancel the others.
	var g errgroup.Group
	for _, s := range d.syncers {
		g.Go(func() error {
			start := time.Now()
			if err := s.Sync(ctx, snap); err != nil {
				d.failed.Add(1)
				d.logger.Error("remote sync failed", "syncer", s.Name(), "err", err)
				return err
			}
			d.logger.Debug("remote sync done", "syncer", s.Name(), "took", time.Since(start))
			return nil
		})
	}
	_ = g.Wait()
}

// Wait blocks until every dispatched sync has finished or ctx is done.
// When ctx ends first, the syncs keep running and so does the goroutine
// waiting on them; both exit once the per-dispatch timeout expires.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns how many dispatches were started and how many syncer runs failed.
func (d *Dispatcher) Stats() (dispatched, failed int64) {
	return d.dispatched.Load(), d.failed.Load()
}
