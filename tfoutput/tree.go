package tfoutput

import (
	"fmt"
	"sort"
	"strconv"
)

// Outputs is the decoded result of `terraform output -json`. Each key maps either
// to a raw value or to an envelope of the form {"value": ..., "type": ..., "sensitive": ...}.
type Outputs map[string]any

// Unwrap returns the value stored under key, stripping the output envelope when present.
// A nil Outputs or a missing key yields def.
func (o Outputs) Unwrap(key string, def any) any {
	if o == nil {
		return def
	}
	block, ok := o[key]
	if !ok {
		return def
	}
	if m, ok := block.(map[string]any); ok {
		if v, ok := m["value"]; ok {
			return v
		}
	}
	return block
}

// AsMap returns v as a map, or nil when v is not a JSON object.
func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// Lookup walks nested maps along keys. Any missing key or non-map hop returns nil.
func Lookup(v any, keys ...string) any {
	cur := v
	for _, k := range keys {
		m := AsMap(cur)
		if m == nil {
			return nil
		}
		cur = m[k]
	}
	return cur
}

// MapAt is Lookup followed by AsMap.
func MapAt(v any, keys ...string) map[string]any {
	return AsMap(Lookup(v, keys...))
}

// String renders a scalar for display. nil and non-scalar values render empty.
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// StringAt is Lookup followed by String.
func StringAt(v any, keys ...string) string {
	return String(Lookup(v, keys...))
}

// Strings converts a JSON array into display strings, skipping empty entries.
// Anything other than an array yields nil.
func Strings(v any) []string {
	list, ok := v.([]any)
	if !ok {
		if s, ok := v.([]string); ok {
			return s
		}
		return nil
	}
	var out []string
	for _, item := range list {
		if s := String(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SortedKeys returns the keys of m in lexicographic order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FirstNonEmpty returns the first non-empty string, or "".
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
