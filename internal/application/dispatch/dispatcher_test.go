package dispatch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/application/dispatch"
	"github.com/quizforge/quizforge/internal/application/security"
)

// pingCommand is a registered test command.
type pingCommand struct {
	Value string
}

func (pingCommand) CommandName() string { return "test.ping" }

// echoQuery is a registered test query.
type echoQuery struct {
	Value string
}

func (echoQuery) QueryName() string { return "test.echo" }

// orphanCommand has no registered handler.
type orphanCommand struct{}

func (orphanCommand) CommandName() string { return "test.orphan" }

// unnamedCommand declares an empty name.
type unnamedCommand struct{}

func (unnamedCommand) CommandName() string { return "" }

// pingHandler handles pingCommand.
type pingHandler struct {
	calls   int
	fail    *appcore.Result[string]
	panicOn bool
}

func (h *pingHandler) Execute(_ context.Context, cmd pingCommand) appcore.Result[string] {
	h.calls++
	if h.panicOn {
		panic("boom")
	}
	if h.fail != nil {
		return *h.fail
	}
	return appcore.Success("pong:" + cmd.Value)
}

// echoHandler handles echoQuery.
type echoHandler struct{ calls int }

func (h *echoHandler) Execute(_ context.Context, q echoQuery) appcore.Result[string] {
	h.calls++
	return appcore.Success(q.Value)
}

func newDispatcher(t *testing.T, chain *security.Chain) (*dispatch.Dispatcher, *pingHandler, *echoHandler) {
	t.Helper()
	registry := dispatch.NewRegistry()
	ph := &pingHandler{}
	eh := &echoHandler{}
	require.NoError(t, dispatch.RegisterCommand(registry, ph))
	require.NoError(t, dispatch.RegisterQuery(registry, eh))

	return dispatch.New(dispatch.Config{Registry: registry, Chain: chain}), ph, eh
}

func TestDispatcher_SendCommand(t *testing.T) {
	d, ph, _ := newDispatcher(t, nil)

	result := dispatch.Send[string](context.Background(), d, pingCommand{Value: "1"})

	require.True(t, result.IsSuccess())
	assert.Equal(t, "pong:1", result.Value())
	assert.Equal(t, 1, ph.calls)
}

func TestDispatcher_SendQuery(t *testing.T) {
	d, _, eh := newDispatcher(t, nil)

	result := dispatch.Send[string](context.Background(), d, echoQuery{Value: "hello"})

	require.True(t, result.IsSuccess())
	assert.Equal(t, "hello", result.Value())
	assert.Equal(t, 1, eh.calls)
}

func TestDispatcher_DeterministicResolution(t *testing.T) {
	d, ph, _ := newDispatcher(t, nil)

	for i := range 10 {
		result := d.Send(context.Background(), pingCommand{Value: "x"})
		require.True(t, result.IsSuccess(), "send %d", i)
	}

	assert.Equal(t, 10, ph.calls, "every send reaches the same handler instance")
	assert.Equal(t, 1, d.CachedResolutions(), "resolution is computed once per concrete type")
}

func TestDispatcher_HandlerFailurePassedThrough(t *testing.T) {
	registry := dispatch.NewRegistry()
	failure := appcore.Failure[string](appcore.CodeDuplicate, "already exists")
	ph := &pingHandler{fail: &failure}
	require.NoError(t, dispatch.RegisterCommand(registry, ph))
	d := dispatch.New(dispatch.Config{Registry: registry})

	result := d.Send(context.Background(), pingCommand{})

	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeDuplicate, result.Code())
	assert.Equal(t, "already exists", result.Message())
}

func TestDispatcher_UnregisteredTypePanics(t *testing.T) {
	d, _, _ := newDispatcher(t, nil)

	assert.Panics(t, func() {
		d.Send(context.Background(), orphanCommand{})
	}, "a missing handler is a wiring defect, not a Result")
}

func TestDispatcher_NonDispatchableTypePanics(t *testing.T) {
	d, _, _ := newDispatcher(t, nil)

	assert.Panics(t, func() {
		d.Send(context.Background(), struct{}{})
	})
}

func TestDispatcher_HandlerPanicBecomesFailure(t *testing.T) {
	registry := dispatch.NewRegistry()
	ph := &pingHandler{panicOn: true}
	require.NoError(t, dispatch.RegisterCommand(registry, ph))
	d := dispatch.New(dispatch.Config{Registry: registry})

	result := d.Send(context.Background(), pingCommand{})

	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeInternal, result.Code())
}

func TestDispatcher_ChainGatesCommandsOnly(t *testing.T) {
	reject := &rejectAllValidator{}
	chain := security.NewChain(nil, reject)
	d, ph, eh := newDispatcher(t, chain)

	cmdResult := d.Send(context.Background(), pingCommand{})
	require.True(t, cmdResult.IsFailure())
	assert.Equal(t, appcore.CodeUnauthorized, cmdResult.Code())
	assert.Equal(t, 0, ph.calls, "business logic must not run after a chain rejection")

	queryResult := d.Send(context.Background(), echoQuery{Value: "q"})
	assert.True(t, queryResult.IsSuccess(), "queries bypass the chain")
	assert.Equal(t, 1, eh.calls)
}

// rejectAllValidator fails every command.
type rejectAllValidator struct{}

func (rejectAllValidator) Name() string { return "reject_all" }

func (rejectAllValidator) Validate(context.Context, appcore.Command) appcore.Result[appcore.Unit] {
	return appcore.Fail(appcore.CodeUnauthorized, "rejected")
}

func TestRegistry_DuplicateRegistrationFails(t *testing.T) {
	registry := dispatch.NewRegistry()

	require.NoError(t, dispatch.RegisterCommand(registry, &pingHandler{}))
	err := dispatch.RegisterCommand(registry, &pingHandler{})

	require.ErrorIs(t, err, dispatch.ErrDuplicateHandler)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_EmptyNameRejected(t *testing.T) {
	registry := dispatch.NewRegistry()

	err := dispatch.RegisterCommand(registry, &unnamedHandler{})
	assert.ErrorIs(t, err, dispatch.ErrUnnamedRequest)
}

// unnamedHandler handles unnamedCommand.
type unnamedHandler struct{}

func (unnamedHandler) Execute(context.Context, unnamedCommand) appcore.Result[string] {
	return appcore.Success("")
}

func TestRegistry_Validate(t *testing.T) {
	registry := dispatch.NewRegistry()
	require.NoError(t, dispatch.RegisterCommand(registry, &pingHandler{}))

	assert.NoError(t, registry.Validate(pingCommand{}))
	assert.ErrorIs(t, registry.Validate(pingCommand{}, orphanCommand{}), dispatch.ErrNoHandler)
	assert.ErrorIs(t, registry.Validate(struct{}{}), dispatch.ErrNotDispatchable)
}

func TestRegistry_MustValidatePanicsOnMissingHandler(t *testing.T) {
	registry := dispatch.NewRegistry()

	assert.Panics(t, func() {
		registry.MustValidate(orphanCommand{})
	})
}

func TestSend_TypeMismatchIsInternal(t *testing.T) {
	d, _, _ := newDispatcher(t, nil)

	result := dispatch.Send[int](context.Background(), d, pingCommand{Value: "1"})

	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeInternal, result.Code())
}
