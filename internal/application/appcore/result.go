// Package appcore provides the shared building blocks of the application
// layer: the Result type used for every expected per-request outcome, the
// command/query marker interfaces consumed by the dispatcher, ambient
// identity/request metadata carriers, and construction-time validation
// helpers.
package appcore

// Result is an immutable success/failure container. Every expected outcome of
// a request travels as a Result; errors and panics are reserved for wiring
// defects and truly unexpected conditions.
type Result[T any] struct {
	value   T
	code    Code
	message string
	ok      bool
}

// Success creates a successful result holding value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Failure creates a failed result with a code and a human-readable message.
func Failure[T any](code Code, message string) Result[T] {
	return Result[T]{code: code, message: message}
}

// FailureFrom converts a failed Result of one value type into a failed Result
// of another, preserving code and message. Calling it on a success is a
// programming error and yields an INTERNAL_ERROR failure.
func FailureFrom[U, T any](r Result[T]) Result[U] {
	if r.ok {
		return Failure[U](CodeInternal, "FailureFrom called on a successful result")
	}
	return Failure[U](r.code, r.message)
}

// IsSuccess reports whether the result is a success.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// IsFailure reports whether the result is a failure.
func (r Result[T]) IsFailure() bool {
	return !r.ok
}

// Value returns the success value. Only meaningful after IsSuccess.
func (r Result[T]) Value() T {
	return r.value
}

// Code returns the failure code, or the empty code for a success.
func (r Result[T]) Code() Code {
	return r.code
}

// Message returns the failure message, or "" for a success.
func (r Result[T]) Message() string {
	return r.message
}

// Map applies fn to the success value, short-circuiting on failure.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.IsFailure() {
		return Failure[U](r.code, r.message)
	}
	return Success(fn(r.value))
}

// FlatMap chains result-returning operations, short-circuiting on failure.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.IsFailure() {
		return Failure[U](r.code, r.message)
	}
	return fn(r.value)
}

// Unit is the value type of results that carry no payload.
type Unit struct{}

// OK returns a successful Unit result.
func OK() Result[Unit] {
	return Success(Unit{})
}

// Fail returns a failed Unit result.
func Fail(code Code, message string) Result[Unit] {
	return Failure[Unit](code, message)
}
