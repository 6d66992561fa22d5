package netgraph

import "maps"

// Attrs stores ancillary node or edge values keyed by name.
// Core algorithms never depend on Attrs; they carry inputs such as edge
// weights and outputs such as centrality scores.
type Attrs map[string]any

// Float returns the value stored under key as a float64.
// Integer values are converted; any other type reports false.
func (a Attrs) Float(key string) (float64, bool) {
	switch v := a[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	default:
		return 0, false
	}
}

// String returns the value stored under key if it is a string.
func (a Attrs) String(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// Strings returns the value stored under key if it is a string slice.
// Values decoded from JSON arrive as []any and are converted when every
// element is a string.
func (a Attrs) Strings(key string) ([]string, bool) {
	switch v := a[key].(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// Clone returns a shallow copy. A nil map clones to an empty map.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return Attrs{}
	}
	return maps.Clone(a)
}
