package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"clikit/internal/core"
)

// NoLimit отключает границу в StringLength.
const NoLimit = -1

// Pattern требует строку, совпадающую с re; message используется как есть.
func Pattern(re *regexp.Regexp, message, field string) Validator[string] {
	return String(field).And(func(value any) (string, error) {
		s := value.(string)
		if !re.MatchString(s) {
			return "", core.Validation(field, message)
		}
		return s, nil
	})
}

// StringLength проверяет длину в рунах. Граница <= 0 (в том числе NoLimit)
// не проверяется.
func StringLength(min, max int, field string) Validator[string] {
	name := subject(field, "String")
	return String(field).And(func(value any) (string, error) {
		s := value.(string)
		n := utf8.RuneCountInString(s)
		if min > 0 && n < min {
			return "", core.Validation(field, fmt.Sprintf("%s must be at least %d characters", name, min))
		}
		if max > 0 && n > max {
			return "", core.Validation(field, fmt.Sprintf("%s must be at most %d characters", name, max))
		}
		return s, nil
	})
}

// NumberRange проверяет границы включительно; бесконечности отключают границу.
func NumberRange(min, max float64, field string) Validator[float64] {
	name := subject(field, "Number")
	return Number(field).And(func(value any) (float64, error) {
		f := value.(float64)
		if f < min {
			return 0, core.Validation(field, fmt.Sprintf("%s must be at least %s", name, formatNumber(min)))
		}
		if f > max {
			return 0, core.Validation(field, fmt.Sprintf("%s must be at most %s", name, formatNumber(max)))
		}
		return f, nil
	})
}

// EnumValue требует строку из списка values.
func EnumValue(values []string, field string) Validator[string] {
	name := subject(field, "Value")
	return String(field).And(func(value any) (string, error) {
		s := value.(string)
		if !slices.Contains(values, s) {
			return "", core.Validation(field, fmt.Sprintf("%s must be one of: %s", name, strings.Join(values, ", ")))
		}
		return s, nil
	})
}

// Optional пропускает отсутствующее значение как nil, иначе делегирует v.
func Optional[T any](v Validator[T]) Validator[*T] {
	return func(value any) (*T, error) {
		if isAbsent(value) {
			return nil, nil
		}
		out, err := v(value)
		if err != nil {
			return nil, err
		}
		return &out, nil
	}
}

// WithDefault подставляет def для отсутствующего значения и для любой
// ошибки валидации. Ошибка при этом теряется.
func WithDefault[T any](v Validator[T], def T) Validator[T] {
	return func(value any) (T, error) {
		if isAbsent(value) {
			return def, nil
		}
		out, err := v(value)
		if err != nil {
			return def, nil
		}
		return out, nil
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
