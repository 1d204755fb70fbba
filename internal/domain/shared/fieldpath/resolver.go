package fieldpath

import (
	"strconv"
	"strings"
)

// Lookup walks path against source and returns the value found there.
// The second return value is false when any segment is missing.
func Lookup(source any, path string) (any, bool) {
	if source == nil || path == "" {
		return nil, false
	}

	current := source
	for _, segment := range strings.Split(path, ".") {
		if current == nil {
			return nil, false
		}
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// IsPresent reports whether v counts as a resolved value: non-nil and not the
// empty string. Zero numbers and false are present.
func IsPresent(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok && s == "" {
		return false
	}
	return true
}

// First returns the first present value, trying every source for a path
// before moving to the next path. A path earlier in the list therefore wins
// over a later one even when the later path is satisfied by a
// higher-priority source.
func First(paths []string, sources ...any) (any, bool) {
	for _, path := range paths {
		for _, source := range sources {
			if source == nil {
				continue
			}
			if v, ok := Lookup(source, path); ok && IsPresent(v) {
				return v, true
			}
		}
	}
	return nil, false
}

// Resolve is First with a caller-supplied default.
func Resolve(paths []string, sources []any, def any) any {
	if v, ok := First(paths, sources...); ok {
		return v
	}
	return def
}

// ResolveString resolves a value and renders it as a string. Numbers are
// formatted without exponent, booleans as "true"/"false". Nested objects and
// arrays do not render and yield def.
func ResolveString(paths []string, sources []any, def string) string {
	v, ok := First(paths, sources...)
	if !ok {
		return def
	}
	if s, ok := AsString(v); ok {
		return s
	}
	return def
}
