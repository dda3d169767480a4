// ABOUTME: Value coercion applied at the port-read boundary for loosely-typed textual values.
// ABOUTME: Promotes integer and float literals, parses bracketed list literals, and falls back to the raw string.
package flow

import (
	"strconv"
	"strings"
)

// Coerce converts a textual value into its most natural typed form: a string
// that parses fully as an integer literal becomes an int, otherwise a float
// literal becomes a float64, otherwise a bracketed list literal becomes a
// []any with recursively coerced elements. Any parse failure returns the
// original value unchanged. Non-string values pass through untouched.
//
// This is centralized here because several numeric nodes assume numeric
// inputs while ports carry loosely-typed values.
func Coerce(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		if list, ok := parseListLiteral(trimmed); ok {
			return list
		}
	}
	return v
}

// parseListLiteral parses a bracketed list literal like "[1, 2.5, x, [3]]".
// Elements split on top-level commas; quoted elements unquote to strings,
// everything else recursively coerces. Returns ok=false on malformed input.
func parseListLiteral(s string) ([]any, bool) {
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return []any{}, true
	}
	parts, ok := splitTopLevel(inner)
	if !ok {
		return nil, false
	}
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		elem := strings.TrimSpace(part)
		if elem == "" {
			return nil, false
		}
		if len(elem) >= 2 && (elem[0] == '\'' || elem[0] == '"') && elem[len(elem)-1] == elem[0] {
			out = append(out, elem[1:len(elem)-1])
			continue
		}
		out = append(out, Coerce(elem))
	}
	return out, true
}

// splitTopLevel splits on commas that are not nested inside brackets or
// quotes. Returns ok=false when brackets or quotes are unbalanced.
func splitTopLevel(s string) ([]string, bool) {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth < 0 {
				return nil, false
			}
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if depth != 0 || quote != 0 {
		return nil, false
	}
	parts = append(parts, s[start:])
	return parts, true
}

// asFloat reports a numeric value as float64. Booleans and strings are not
// numeric; coercion has already promoted numeric-looking strings.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
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
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// asInt reports an integer-typed value as int. Floats do not qualify even
// when integral, so integer arithmetic stays closed over genuine integers.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}

// asList reports a value as a []any sequence.
func asList(v any) ([]any, bool) {
	list, ok := v.([]any)
	return list, ok
}
