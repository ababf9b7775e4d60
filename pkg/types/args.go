package types

import "encoding/json"

// Argument bag accessors. The bag comes straight from a decoded protocol
// request, so values may be absent or of the wrong kind; in either case the
// caller's default wins. Only the dispatcher treats any argument as
// mandatory, and it checks that explicitly.

// StringArg returns args[key] if it is a string, else def.
func StringArg(args map[string]any, key, def string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return def
}

// BoolArg returns args[key] if it is a bool, else def.
func BoolArg(args map[string]any, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

// IntArg returns args[key] coerced to int. JSON decoding yields float64 for
// numbers, so that is the common case; int kinds cover callers constructing
// bags in-process.
func IntArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return def
}
