package result

// Result хранит либо значение, либо ошибку, но никогда оба сразу.
type Result[T any] struct {
	value T
	err   error
}

// Ok создает успешный результат.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err создает неуспешный результат; nil-ошибка недопустима.
func Err[T any](err error) Result[T] {
	if err == nil {
		panic("result: Err called with nil error")
	}
	return Result[T]{err: err}
}

// Of собирает результат из пары (значение, ошибка).
func Of[T any](v T, err error) Result[T] {
	if err != nil {
		return Result[T]{err: err}
	}
	return Result[T]{value: v}
}

// IsOk сообщает, содержит ли результат значение.
func (r Result[T]) IsOk() bool { return r.err == nil }

// Value возвращает значение; для ошибки это нулевое значение T.
func (r Result[T]) Value() T { return r.value }

// Error возвращает ошибку или nil.
func (r Result[T]) Error() error { return r.err }

// Get раскладывает результат обратно в идиоматичную пару.
func (r Result[T]) Get() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}
