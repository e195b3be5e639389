// Package callable implements the lazy, single-shot unit of work the
// operation pipeline is composed of. A Callable does nothing until Call is
// invoked; each Call re-executes the underlying action, and a failure
// short-circuits every combinator built on top of it.
package callable

// Callable is a lazily triggered action producing a T or an error.
type Callable[T any] interface {
	Call() (T, error)
}

// Func adapts a plain function to a Callable.
type Func[T any] func() (T, error)

func (f Func[T]) Call() (T, error) { return f() }

// Of wraps an already-available value.
func Of[T any](value T) Callable[T] {
	return Func[T](func() (T, error) { return value, nil })
}

// Fail wraps an error; Call always fails with it.
func Fail[T any](err error) Callable[T] {
	return Func[T](func() (T, error) {
		var zero T
		return zero, err
	})
}

// Map transforms the result of c without triggering it more than once per
// Call. An upstream error is returned as-is and transform never runs.
func Map[T, U any](c Callable[T], transform func(T) U) Callable[U] {
	return Func[U](func() (U, error) {
		v, err := c.Call()
		if err != nil {
			var zero U
			return zero, err
		}
		return transform(v), nil
	})
}

// FlatMap feeds the result of c into the construction of the next callable
// and triggers it. Errors from either stage short-circuit.
func FlatMap[T, U any](c Callable[T], next func(T) Callable[U]) Callable[U] {
	return Func[U](func() (U, error) {
		v, err := c.Call()
		if err != nil {
			var zero U
			return zero, err
		}
		return next(v).Call()
	})
}
