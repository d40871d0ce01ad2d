package validate

import (
	"errors"
	"fmt"

	"clikit/internal/core"
)

// Validator проверяет произвольное значение и возвращает его типизированную,
// возможно нормализованную, форму. Ошибки всегда *core.Error с кодом
// VALIDATION_ERROR.
type Validator[T any] func(value any) (T, error)

// New оборачивает функцию в Validator; ошибки приводятся к *core.Error.
func New[T any](fn func(value any) (T, error)) Validator[T] {
	return func(value any) (T, error) {
		v, err := fn(value)
		if err != nil {
			var zero T
			return zero, asValidationError(err)
		}
		return v, nil
	}
}

// Validate вызывает валидатор.
func (v Validator[T]) Validate(value any) (T, error) {
	return v(value)
}

// And запускает other на результате v; при ошибке v other не вызывается.
func (v Validator[T]) And(other Validator[T]) Validator[T] {
	return func(value any) (T, error) {
		first, err := v(value)
		if err != nil {
			var zero T
			return zero, err
		}
		return other(first)
	}
}

// Or возвращает первый успешный результат из v и other.
func (v Validator[T]) Or(other Validator[T]) Validator[T] {
	return func(value any) (T, error) {
		first, errA := v(value)
		if errA == nil {
			return first, nil
		}
		second, errB := other(value)
		if errB == nil {
			return second, nil
		}
		var zero T
		a := asValidationError(errA)
		return zero, &core.Error{
			Code:    core.CodeValidation,
			Message: fmt.Sprintf("Neither validation passed: %s; %s", a.Message, asValidationError(errB).Message),
			Field:   a.Field,
			Cause:   errors.Join(errA, errB),
		}
	}
}

// Map применяет fn к успешному значению. Ошибка или паника fn
// превращается в "Mapping failed: <причина>".
func (v Validator[T]) Map(fn func(T) (T, error)) Validator[T] {
	return MapTo(v, fn)
}

// MapError переписывает ошибку; успешный результат не трогается.
func (v Validator[T]) MapError(fn func(*core.Error) *core.Error) Validator[T] {
	return func(value any) (T, error) {
		out, err := v(value)
		if err == nil {
			return out, nil
		}
		mapped := fn(asValidationError(err))
		if mapped == nil {
			return out, asValidationError(err)
		}
		return out, mapped
	}
}

// MapTo как Map, но меняет тип результата.
func MapTo[T, U any](v Validator[T], fn func(T) (U, error)) Validator[U] {
	return func(value any) (out U, err error) {
		in, err := v(value)
		if err != nil {
			return out, err
		}
		defer func() {
			if rec := recover(); rec != nil {
				cause := core.FromPanic(core.CodeValidation, "", rec).Cause
				var zero U
				out, err = zero, mappingFailed(cause)
			}
		}()
		mapped, mapErr := fn(in)
		if mapErr != nil {
			return out, mappingFailed(mapErr)
		}
		return mapped, nil
	}
}

func mappingFailed(cause error) *core.Error {
	return &core.Error{
		Code:    core.CodeValidation,
		Message: "Mapping failed: " + cause.Error(),
		Cause:   cause,
	}
}

func asValidationError(err error) *core.Error {
	var ce *core.Error
	if errors.As(err, &ce) {
		return ce
	}
	return &core.Error{Code: core.CodeValidation, Message: err.Error(), Cause: err}
}

func typeError(field, kind string) *core.Error {
	return core.Validation(field, subject(field, "Value")+" must be "+kind)
}

func subject(field, fallback string) string {
	if field == "" {
		return fallback
	}
	return field
}
