package audit

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Emitter defaults.
const (
	DefaultBufferSize   = 1024
	defaultSinkTimeout  = 5 * time.Second
	defaultDrainTimeout = 10 * time.Second
)

// Emitter accepts security events for best-effort delivery. Emit must never
// block the caller.
type Emitter interface {
	Emit(event Event)
}

// Sink delivers a single event to a destination (log, pub/sub channel,
// websocket feed). Sink errors are logged and otherwise ignored.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// NopEmitter discards every event.
type NopEmitter struct{}

// Emit implements Emitter.
func (NopEmitter) Emit(Event) {}

// AsyncEmitter queues events on a bounded channel and fans them out to its
// sinks from a single background goroutine. When the buffer is full the event
// is dropped and counted; audit loss is preferred over request latency.
type AsyncEmitter struct {
	buf     chan Event
	sinks   []Sink
	logger  *slog.Logger
	dropped atomic.Uint64

	wg        sync.WaitGroup
	startOnce sync.Once
	closeOnce sync.Once
	done      chan struct{}
}

// AsyncEmitterConfig configures an AsyncEmitter.
type AsyncEmitterConfig struct {
	// BufferSize is the capacity of the event queue. Defaults to
	// DefaultBufferSize.
	BufferSize int

	// Logger is the structured logger for delivery failures and drop
	// reporting.
	Logger *slog.Logger

	// Sinks receive every queued event in order.
	Sinks []Sink
}

// NewAsyncEmitter creates an emitter. Call Start before emitting and Close on
// shutdown.
func NewAsyncEmitter(cfg AsyncEmitterConfig) *AsyncEmitter {
	size := cfg.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AsyncEmitter{
		buf:    make(chan Event, size),
		sinks:  cfg.Sinks,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start launches the delivery goroutine. Subsequent calls are no-ops.
func (e *AsyncEmitter) Start(ctx context.Context) {
	e.startOnce.Do(func() {
		e.wg.Add(1)
		go e.run(ctx)
	})
}

// Emit queues an event without blocking. Events emitted while the buffer is
// full are dropped and counted.
func (e *AsyncEmitter) Emit(event Event) {
	select {
	case e.buf <- event:
	default:
		dropped := e.dropped.Add(1)
		if dropped == 1 || dropped%100 == 0 {
			e.logger.Warn("audit buffer full, dropping event",
				slog.String("event_type", string(event.Type)),
				slog.Uint64("total_dropped", dropped),
			)
		}
	}
}

// Dropped returns the number of events dropped due to a full buffer.
func (e *AsyncEmitter) Dropped() uint64 {
	return e.dropped.Load()
}

// Close stops the delivery goroutine after draining queued events, bounded by
// a drain timeout.
func (e *AsyncEmitter) Close() error {
	e.closeOnce.Do(func() {
		close(e.done)
	})

	finished := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(defaultDrainTimeout):
		e.logger.Warn("audit emitter drain timed out",
			slog.Int("pending", len(e.buf)),
		)
	}
	return nil
}

func (e *AsyncEmitter) run(ctx context.Context) {
	defer e.wg.Done()

	for {
		select {
		case event := <-e.buf:
			e.deliver(event)
		case <-e.done:
			e.drain()
			return
		case <-ctx.Done():
			e.drain()
			return
		}
	}
}

// drain delivers whatever is already queued, then returns.
func (e *AsyncEmitter) drain() {
	for {
		select {
		case event := <-e.buf:
			e.deliver(event)
		default:
			return
		}
	}
}

func (e *AsyncEmitter) deliver(event Event) {
	for _, sink := range e.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), defaultSinkTimeout)
		if err := sink.Publish(ctx, event); err != nil {
			e.logger.Error("audit sink publish failed",
				slog.String("event_type", string(event.Type)),
				slog.String("severity", string(event.Severity)),
				slog.Any("error", err),
			)
		}
		cancel()
	}
}
