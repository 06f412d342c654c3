// Package load describes the outcome of fetching data for a page.
//
// Pages are rendered after their loads finish, so handlers only ever pass
// Loaded or Failed results to a template. Loading is the zero state.
package load

import "context"

type State int

const (
	Loading State = iota
	Loaded
	Failed
)

// Result is Loading, Loaded with Value, or Failed with Err.
type Result[T any] struct {
	State State
	Value T
	Err   error
}

func Pending[T any]() Result[T] {
	return Result[T]{State: Loading}
}

func Ok[T any](v T) Result[T] {
	return Result[T]{State: Loaded, Value: v}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{State: Failed, Err: err}
}

// Run calls fn and tags its outcome.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) Result[T] {
	v, err := fn(ctx)
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

func (r Result[T]) IsLoading() bool { return r.State == Loading }
func (r Result[T]) IsLoaded() bool  { return r.State == Loaded }
func (r Result[T]) IsFailed() bool  { return r.State == Failed }

// ValueOr returns the loaded value, or fallback in any other state.
func (r Result[T]) ValueOr(fallback T) T {
	if r.State == Loaded {
		return r.Value
	}
	return fallback
}
