package epio

import (
	"strconv"

	"github.com/ltan01/perturbopy/internal/apperr"
)

// The extraction helpers below implement the destructive "take" contract of
// the reshaping layer: reading a key also removes it, so that a fully
// consumed document ends up drained and a missing key surfaces immediately
// as a MissingKeyError carrying the dotted path.

// JoinPath appends key to a dotted path prefix.
func JoinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Take removes and returns m[key]. The path prefix is only used for error
// reporting.
func Take(m map[string]any, key, prefix string) (any, error) {
	v, ok := m[key]
	if !ok {
		return nil, apperr.MissingKey(JoinPath(prefix, key))
	}
	delete(m, key)
	return v, nil
}

// TakeString removes m[key] and converts it to a string.
func TakeString(m map[string]any, key, prefix string) (string, error) {
	v, err := Take(m, key, prefix)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", apperr.Configf("%s: expected string, got %T", JoinPath(prefix, key), v)
	}
	return s, nil
}

// TakeInt removes m[key] and converts it to an int.
func TakeInt(m map[string]any, key, prefix string) (int, error) {
	v, err := Take(m, key, prefix)
	if err != nil {
		return 0, err
	}
	n, ok := asInt(v)
	if !ok {
		return 0, apperr.Configf("%s: expected integer, got %T", JoinPath(prefix, key), v)
	}
	return n, nil
}

// TakeFloat removes m[key] and converts it to a float64.
func TakeFloat(m map[string]any, key, prefix string) (float64, error) {
	v, err := Take(m, key, prefix)
	if err != nil {
		return 0, err
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, apperr.Configf("%s: expected number, got %T", JoinPath(prefix, key), v)
	}
	return f, nil
}

// TakeMap removes m[key] and normalizes it to a string-keyed mapping.
func TakeMap(m map[string]any, key, prefix string) (map[string]any, error) {
	v, err := Take(m, key, prefix)
	if err != nil {
		return nil, err
	}
	sm, err2 := AsMap(v)
	if err2 != nil {
		return nil, apperr.Configf("%s: %v", JoinPath(prefix, key), err2)
	}
	return sm, nil
}

// TakeIndexMap removes m[key] and normalizes it to an integer-keyed mapping.
func TakeIndexMap(m map[string]any, key, prefix string) (map[int]any, error) {
	v, err := Take(m, key, prefix)
	if err != nil {
		return nil, err
	}
	im, err2 := AsIndexMap(v)
	if err2 != nil {
		return nil, apperr.Configf("%s: %v", JoinPath(prefix, key), err2)
	}
	return im, nil
}

// TakeFloatArray removes m[key] and converts it to a numeric array.
func TakeFloatArray(m map[string]any, key, prefix string) ([]float64, error) {
	v, err := Take(m, key, prefix)
	if err != nil {
		return nil, err
	}
	arr, ok := AsFloatArray(v)
	if !ok {
		return nil, apperr.Configf("%s: expected numeric array, got %T", JoinPath(prefix, key), v)
	}
	return arr, nil
}

// TakePointList removes m[key] and converts it to a list of coordinate rows.
func TakePointList(m map[string]any, key, prefix string) ([][]float64, error) {
	v, err := Take(m, key, prefix)
	if err != nil {
		return nil, err
	}
	rows, ok := v.([]any)
	if !ok {
		return nil, apperr.Configf("%s: expected coordinate list, got %T", JoinPath(prefix, key), v)
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		arr, ok := AsFloatArray(row)
		if !ok {
			return nil, apperr.Configf("%s: row %d is not numeric", JoinPath(prefix, key), i)
		}
		out[i] = arr
	}
	return out, nil
}

// AsMap normalizes a decoded YAML mapping to string keys. yaml/v3 decodes
// mappings with non-string keys into map[any]any; both layouts are accepted.
func AsMap(v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			s, ok := k.(string)
			if !ok {
				n, isInt := asInt(k)
				if !isInt {
					return nil, apperr.Configf("unrepresentable mapping key %v (%T)", k, k)
				}
				s = strconv.Itoa(n)
			}
			out[s] = val
		}
		return out, nil
	default:
		return nil, apperr.Configf("expected mapping, got %T", v)
	}
}

// AsIndexMap normalizes a decoded YAML mapping to integer keys.
func AsIndexMap(v any) (map[int]any, error) {
	out := make(map[int]any)
	switch m := v.(type) {
	case map[any]any:
		for k, val := range m {
			n, ok := asInt(k)
			if !ok {
				if s, isStr := k.(string); isStr {
					parsed, err := strconv.Atoi(s)
					if err != nil {
						return nil, apperr.Configf("non-integer index key %q", s)
					}
					n = parsed
				} else {
					return nil, apperr.Configf("non-integer index key %v (%T)", k, k)
				}
			}
			out[n] = val
		}
	case map[string]any:
		for k, val := range m {
			n, err := strconv.Atoi(k)
			if err != nil {
				return nil, apperr.Configf("non-integer index key %q", k)
			}
			out[n] = val
		}
	case map[int]any:
		for k, val := range m {
			out[k] = val
		}
	default:
		return nil, apperr.Configf("expected index mapping, got %T", v)
	}
	return out, nil
}

// AsFloatArray converts a decoded YAML sequence of numbers to []float64.
func AsFloatArray(v any) ([]float64, bool) {
	switch arr := v.(type) {
	case []float64:
		out := make([]float64, len(arr))
		copy(out, arr)
		return out, true
	case []any:
		out := make([]float64, len(arr))
		for i, e := range arr {
			f, ok := asFloat(e)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func mustInt(v any) int {
	n, _ := asInt(v)
	return n
}
