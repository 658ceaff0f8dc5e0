package core

// Try holds either a computed value or the error that prevented computing it.
type Try[T any] struct {
	value T
	err   error
}

func Successful[T any](value T) Try[T] {
	return Try[T]{value: value}
}

func Failed[T any](err error) Try[T] {
	return Try[T]{err: err}
}

func (t Try[T]) Get() (T, error) {
	return t.value, t.err
}

func (t Try[T]) Err() error {
	return t.err
}

func (t Try[T]) IsSuccessful() bool {
	return t.err == nil
}
