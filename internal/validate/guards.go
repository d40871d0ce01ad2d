package validate

import (
	"math"
	"reflect"
	"strings"
)

// IsString reports whether v is a string.
func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}

// IsNumber reports whether v is any Go numeric type; NaN is rejected.
func IsNumber(v any) bool {
	f, ok := toFloat(v)
	return ok && !math.IsNaN(f)
}

// IsBoolean reports whether v is a bool.
func IsBoolean(v any) bool {
	_, ok := v.(bool)
	return ok
}

// IsObject reports whether v is a non-nil map[string]any.
func IsObject(v any) bool {
	m, ok := v.(map[string]any)
	return ok && m != nil
}

// IsArray reports whether v is a slice or an array.
func IsArray(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// IsNonEmptyString rejects empty and whitespace-only strings.
func IsNonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

// IsStringArray accepts []string and slices whose every element is a string.
func IsStringArray(v any) bool {
	_, ok := toStrings(v)
	return ok
}

// isAbsent treats untyped nil and nil pointers/maps/slices as "no value".
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func toStrings(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}

// elements раскладывает любой срез/массив в []any.
func elements(v any) ([]any, bool) {
	if !IsArray(v) {
		return nil, false
	}
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
