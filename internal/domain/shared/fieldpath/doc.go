// Package fieldpath resolves values out of loosely-typed JSON-like trees.
//
// Sources are the values produced by encoding/json (or yaml.v3) decoding into
// `any`: nested map[string]any and []any with scalar leaves. A path is a
// dot-separated list of keys; numeric segments index into slices.
//
// Absence is never an error. Walking a path through a missing key, a nil, or a
// scalar simply reports "not found".
package fieldpath
