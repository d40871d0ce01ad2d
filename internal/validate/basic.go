package validate

import (
	"fmt"

	"clikit/internal/core"
)

// String принимает только строки.
func String(field string) Validator[string] {
	return func(value any) (string, error) {
		s, ok := value.(string)
		if !ok {
			return "", typeError(field, "a string")
		}
		return s, nil
	}
}

// Number принимает любые числовые типы Go, кроме NaN.
func Number(field string) Validator[float64] {
	return func(value any) (float64, error) {
		if !IsNumber(value) {
			return 0, typeError(field, "a number")
		}
		f, _ := toFloat(value)
		return f, nil
	}
}

// Boolean принимает только bool.
func Boolean(field string) Validator[bool] {
	return func(value any) (bool, error) {
		b, ok := value.(bool)
		if !ok {
			return false, typeError(field, "a boolean")
		}
		return b, nil
	}
}

// Object принимает непустую ссылку на map[string]any.
func Object(field string) Validator[map[string]any] {
	return func(value any) (map[string]any, error) {
		if !IsObject(value) {
			return nil, typeError(field, "an object")
		}
		return value.(map[string]any), nil
	}
}

// Array проверяет срез поэлементно и останавливается на первом невалидном.
func Array[T any](item Validator[T], field string) Validator[[]T] {
	return func(value any) ([]T, error) {
		items, ok := elements(value)
		if !ok {
			return nil, typeError(field, "an array")
		}
		out := make([]T, 0, len(items))
		for i, raw := range items {
			v, err := item(raw)
			if err != nil {
				inner := asValidationError(err)
				return nil, &core.Error{
					Code:    core.CodeValidation,
					Field:   fmt.Sprintf("%s[%d]", subject(field, "value"), i),
					Message: fmt.Sprintf("Invalid item at index %d: %s", i, inner.Message),
					Cause:   inner,
				}
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// StringArray принимает []string или срез, состоящий только из строк.
func StringArray(field string) Validator[[]string] {
	return func(value any) ([]string, error) {
		out, ok := toStrings(value)
		if !ok {
			return nil, typeError(field, "an array of strings")
		}
		return out, nil
	}
}
