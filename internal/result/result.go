// Package result carries the tri-state outcome that every repository and use
// case operation returns instead of raising an error past its boundary.
//
// A Result is exactly one of Success (with a value), Error (with a cause for
// diagnostics and a human-readable message for the UI), or Loading (a
// payload-less sentinel used as a transient default rather than a real
// progress signal). Callers are expected to handle all three variants; Fold
// makes that explicit.
package result

type status int

const (
	statusLoading status = iota
	statusSuccess
	statusError
)

// Unit is the empty payload for operations that return nothing on success.
type Unit struct{}

// Result is a tagged union over Success, Error and Loading.
// The zero value is Loading.
type Result[T any] struct {
	st      status
	value   T
	cause   error
	message string
}

// Success wraps a value in a successful Result.
func Success[T any](value T) Result[T] {
	return Result[T]{st: statusSuccess, value: value}
}

// Error builds a failed Result. cause is kept for logging; message is the
// only thing shown to the user.
func Error[T any](cause error, message string) Result[T] {
	return Result[T]{st: statusError, cause: cause, message: message}
}

// Loading is the transient sentinel variant.
func Loading[T any]() Result[T] {
	return Result[T]{st: statusLoading}
}

// IsSuccess reports whether r holds a value.
func (r Result[T]) IsSuccess() bool { return r.st == statusSuccess }

// IsError reports whether r holds a failure.
func (r Result[T]) IsError() bool { return r.st == statusError }

// IsLoading reports whether r is the loading sentinel.
func (r Result[T]) IsLoading() bool { return r.st == statusLoading }

// Value returns the success payload, or the zero value for non-success results.
func (r Result[T]) Value() T { return r.value }

// Cause returns the underlying error of a failed Result, nil otherwise.
func (r Result[T]) Cause() error { return r.cause }

// Message returns the human-readable failure message, empty otherwise.
func (r Result[T]) Message() string { return r.message }

// Fold reduces a Result by handling every variant exactly once.
func Fold[T, R any](
	r Result[T],
	onSuccess func(value T) R,
	onError func(cause error, message string) R,
	onLoading func() R,
) R {
	switch r.st {
	case statusSuccess:
		return onSuccess(r.value)
	case statusError:
		return onError(r.cause, r.message)
	default:
		return onLoading()
	}
}

// Propagate carries a non-success Result across a payload type change, used
// when a caller fetched one type and returns another. A success input
// degrades to Loading; callers check IsSuccess first.
func Propagate[U, T any](r Result[T]) Result[U] {
	if r.st == statusError {
		return Error[U](r.cause, r.message)
	}
	return Loading[U]()
}
