// Package convert turns decoded config values into the types the settings
// service reads.
package convert

import "math"

// Int returns v as an int. TOML integers decode as int64; a float is
// accepted only when it holds a whole number ("timeout_seconds = 10.0").
func Int(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// Float returns v as a float64. "rate_limit = 5" and "rate_limit = 5.0" both
// read as 5.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// String returns v when it is a string.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
