package audit

import (
	"context"
	"sync"
	"sync/atomic"
)

// Config controls dispatch buffering. Audit events originate in UI-facing
// paths (guard evaluations, login and logout handlers) that must never
// stall on a slow sink, so DropIfFull is the expected mode; Dropped keeps
// the evidence when the buffer overflows.
type Config struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// Dispatcher forwards events to a sink on a dedicated goroutine, keeping
// sink I/O off the caller's path. A nil Dispatcher (auditing disabled)
// ignores every call.
type Dispatcher struct {
	sink  Sink
	queue chan Event
	quit  chan struct{}
	block bool

	dropped atomic.Uint64
	closed  atomic.Bool
	stop    sync.Once
	wg      sync.WaitGroup
}

// NewDispatcher starts the forwarding goroutine. Returns nil when auditing
// is disabled; a nil sink falls back to [NoOpSink].
func NewDispatcher(cfg Config, sink Sink) *Dispatcher {
	if !cfg.Enabled {
		return nil
	}
	if sink == nil {
		sink = NoOpSink{}
	}
	size := cfg.BufferSize
	if size <= 0 {
		size = 1
	}

	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, size),
		quit:  make(chan struct{}),
		block: !cfg.DropIfFull,
	}
	d.wg.Add(1)
	go d.forward()
	return d
}

func (d *Dispatcher) forward() {
	defer d.wg.Done()
	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		case <-d.quit:
			d.flush()
			return
		}
	}
}

// flush delivers whatever was already queued when Close stopped intake.
func (d *Dispatcher) flush() {
	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		default:
			return
		}
	}
}

// Emit queues one event. In drop mode a full buffer increments the drop
// counter instead of blocking the caller; in blocking mode ctx bounds the
// wait.
func (d *Dispatcher) Emit(ctx context.Context, event Event) {
	if d == nil || d.closed.Load() {
		return
	}

	if d.block {
		if ctx == nil {
			ctx = context.Background()
		}
		select {
		case d.queue <- event:
		case <-ctx.Done():
		case <-d.quit:
		}
		return
	}

	select {
	case d.queue <- event:
	case <-d.quit:
	default:
		d.dropped.Add(1)
	}
}

// Close stops intake, drains the queue, and waits for delivery to finish.
// Safe to call more than once.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.stop.Do(func() {
		d.closed.Store(true)
		close(d.quit)
		d.wg.Wait()
	})
}

// Dropped reports events discarded under backpressure.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
