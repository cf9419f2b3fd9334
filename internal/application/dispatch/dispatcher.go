// Package dispatch routes commands and queries to their registered handlers.
// The registry binds each request name to exactly one handler; zero or
// ambiguous bindings are wiring defects surfaced at startup, never as
// per-request failures.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"sync"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/application/audit"
	"github.com/quizforge/quizforge/internal/application/security"
)

// Registration and dispatch errors. These mark configuration defects: they
// are returned from registration or panicked from Send, never wrapped into a
// Result.
var (
	ErrDuplicateHandler = errors.New("duplicate handler registration")
	ErrNoHandler        = errors.New("no handler registered for request type")
	ErrUnnamedRequest   = errors.New("request declares an empty name")
	ErrNotDispatchable  = errors.New("request implements neither Command nor Query")
)

const panicStackSize = 4 << 10

// Handler is the unique business-logic unit bound to one request type.
// Request types are value types; the registry derives the binding name from
// the type's declared CommandName/QueryName.
type Handler[C any, R any] interface {
	Execute(ctx context.Context, cmd C) appcore.Result[R]
}

// entry is one registered binding. The invoke closure is built once at
// registration; dispatching is a map lookup plus a call.
type entry struct {
	name    string
	handler any
	invoke  func(ctx context.Context, req any) appcore.Result[any]
}

// Registry maps request names to handlers. Build it eagerly at process start
// and validate it with Validate/MustValidate before serving traffic.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// RegisterCommand binds a command type to its handler. Registering a second
// handler for the same command name returns ErrDuplicateHandler.
func RegisterCommand[C appcore.Command, R any](r *Registry, h Handler[C, R]) error {
	var zero C
	return r.add(zero.CommandName(), h, adapt(h))
}

// RegisterQuery binds a query type to its handler.
func RegisterQuery[Q appcore.Query, R any](r *Registry, h Handler[Q, R]) error {
	var zero Q
	return r.add(zero.QueryName(), h, adapt(h))
}

// adapt wraps a typed handler into the registry's untyped invoke shape.
func adapt[C any, R any](h Handler[C, R]) func(ctx context.Context, req any) appcore.Result[any] {
	return func(ctx context.Context, req any) appcore.Result[any] {
		cmd, ok := req.(C)
		if !ok {
			return appcore.Failure[any](appcore.CodeInternal,
				fmt.Sprintf("handler received unexpected request type %T", req))
		}
		result := h.Execute(ctx, cmd)
		if result.IsFailure() {
			return appcore.FailureFrom[any](result)
		}
		return appcore.Success[any](result.Value())
	}
}

func (r *Registry) add(name string, h any, invoke func(ctx context.Context, req any) appcore.Result[any]) error {
	if name == "" {
		return ErrUnnamedRequest
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, name)
	}
	r.entries[name] = &entry{name: name, handler: h, invoke: invoke}
	return nil
}

func (r *Registry) lookup(name string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Validate checks that every given request resolves to exactly one handler.
// Call it at startup over all known request types so a missing binding is
// caught before serving traffic, not on first use.
func (r *Registry) Validate(requests ...any) error {
	for _, req := range requests {
		name, err := RequestName(req)
		if err != nil {
			return fmt.Errorf("%w: %T", err, req)
		}
		if _, ok := r.lookup(name); !ok {
			return fmt.Errorf("%w: %s (%T)", ErrNoHandler, name, req)
		}
	}
	return nil
}

// MustValidate is Validate that panics; wiring defects should stop the
// process before it accepts traffic.
func (r *Registry) MustValidate(requests ...any) {
	if err := r.Validate(requests...); err != nil {
		panic(err)
	}
}

// RequestName extracts the declared registry name of a request.
func RequestName(req any) (string, error) {
	switch r := req.(type) {
	case appcore.Command:
		return r.CommandName(), nil
	case appcore.Query:
		return r.QueryName(), nil
	default:
		return "", ErrNotDispatchable
	}
}

// Config configures a Dispatcher.
type Config struct {
	// Registry is the handler registry. Required.
	Registry *Registry

	// Chain gates every command before its handler runs. Optional; queries
	// never pass through it.
	Chain *security.Chain

	// Emitter receives an event when a handler panics.
	Emitter audit.Emitter

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Dispatcher resolves a request to its handler and invokes it. Resolution
// for a concrete request type is computed once and memoized.
type Dispatcher struct {
	registry *Registry
	chain    *security.Chain
	emitter  audit.Emitter
	logger   *slog.Logger
	resolved sync.Map // reflect.Type -> *entry
}

// New creates a Dispatcher.
func New(cfg Config) *Dispatcher {
	if cfg.Registry == nil {
		panic("dispatch: registry is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	emitter := cfg.Emitter
	if emitter == nil {
		emitter = audit.NopEmitter{}
	}

	return &Dispatcher{
		registry: cfg.Registry,
		chain:    cfg.Chain,
		emitter:  emitter,
		logger:   logger,
	}
}

// Send dispatches a request and returns its handler's Result unchanged.
// Commands run the security chain first; a chain failure short-circuits and
// the handler never executes. A request type with no registered handler
// panics: that is a wiring defect, not a per-request condition. A panic
// inside the handler body is recovered, logged, and converted to a generic
// failure so callers always receive a Result.
func (d *Dispatcher) Send(ctx context.Context, req any) (result appcore.Result[any]) {
	e := d.resolve(req)

	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, panicStackSize)
			stack = stack[:runtime.Stack(stack, false)]
			d.logger.Error("handler panicked",
				slog.String("request", e.name),
				slog.Any("panic", r),
				slog.String("stack", string(stack)),
			)
			d.emitter.Emit(audit.FromContext(ctx, audit.EventHandlerPanic, audit.SeverityCritical, map[string]string{
				"request": e.name,
				"panic":   fmt.Sprint(r),
			}))
			result = appcore.Failure[any](appcore.CodeInternal, "internal error")
		}
	}()

	if cmd, ok := req.(appcore.Command); ok && d.chain != nil {
		if v := d.chain.Validate(ctx, cmd); v.IsFailure() {
			return appcore.FailureFrom[any](v)
		}
	}

	return e.invoke(ctx, req)
}

// CachedResolutions returns how many concrete request types have been
// resolved so far.
func (d *Dispatcher) CachedResolutions() int {
	count := 0
	d.resolved.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

func (d *Dispatcher) resolve(req any) *entry {
	t := reflect.TypeOf(req)
	if cached, ok := d.resolved.Load(t); ok {
		return cached.(*entry)
	}

	name, err := RequestName(req)
	if err != nil {
		panic(fmt.Errorf("%w: %T", err, req))
	}
	e, ok := d.registry.lookup(name)
	if !ok {
		panic(fmt.Errorf("%w: %s (%T)", ErrNoHandler, name, req))
	}

	d.resolved.Store(t, e)
	return e
}

// Send is the typed dispatch helper: it asserts the handler's declared
// result type for the caller.
func Send[R any](ctx context.Context, d *Dispatcher, req any) appcore.Result[R] {
	result := d.Send(ctx, req)
	if result.IsFailure() {
		return appcore.FailureFrom[R](result)
	}

	value, ok := result.Value().(R)
	if !ok {
		return appcore.Failure[R](appcore.CodeInternal,
			fmt.Sprintf("handler returned %T, caller expected %T", result.Value(), value))
	}
	return appcore.Success(value)
}
