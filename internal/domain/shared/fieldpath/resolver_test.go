package fieldpath

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestLookup(t *testing.T) {
	src := decode(t, `{
		"delivery": {"branch": "595", "address": {"city": "Chicago"}},
		"lines": [{"sku": "A"}, {"sku": "B"}],
		"empty": null,
		"scalar": 5
	}`)

	tests := []struct {
		name   string
		path   string
		want   any
		wantOK bool
	}{
		{"top level object", "delivery.branch", "595", true},
		{"nested", "delivery.address.city", "Chicago", true},
		{"slice index", "lines.1.sku", "B", true},
		{"slice out of range", "lines.5.sku", nil, false},
		{"slice non-numeric", "lines.x", nil, false},
		{"missing key", "delivery.missing", nil, false},
		{"deep missing", "a.b.c.d.e", nil, false},
		{"through null", "empty.anything", nil, false},
		{"through scalar", "scalar.anything", nil, false},
		{"explicit null", "empty", nil, true},
		{"empty path", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(src, tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_NilSource(t *testing.T) {
	v, ok := Lookup(nil, "a")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestFirst_PathOrderWinsOverSourceOrder(t *testing.T) {
	primary := map[string]any{"branch_id": "from-primary-late-path"}
	secondary := map[string]any{"branchId": "from-secondary-early-path"}

	v, ok := First([]string{"branchId", "branch_id"}, primary, secondary)
	require.True(t, ok)
	assert.Equal(t, "from-secondary-early-path", v)
}

func TestFirst_SourceOrderBreaksTiesWithinPath(t *testing.T) {
	primary := map[string]any{"branchId": "primary"}
	secondary := map[string]any{"branchId": "secondary"}

	v, ok := First([]string{"branchId"}, primary, secondary)
	require.True(t, ok)
	assert.Equal(t, "primary", v)
}

func TestFirst_SkipsEmptyAndNil(t *testing.T) {
	primary := map[string]any{"po": "", "note": nil}
	secondary := map[string]any{"po": "PO-1", "note": "n"}

	v, ok := First([]string{"po"}, primary, secondary)
	require.True(t, ok)
	assert.Equal(t, "PO-1", v)

	v, ok = First([]string{"note"}, nil, primary, secondary)
	require.True(t, ok)
	assert.Equal(t, "n", v)
}

func TestFirst_ZeroAndFalseArePresent(t *testing.T) {
	src := map[string]any{"qty": float64(0), "hold": false}

	v, ok := First([]string{"qty"}, src)
	assert.True(t, ok)
	assert.Equal(t, float64(0), v)

	v, ok = First([]string{"hold"}, src)
	assert.True(t, ok)
	assert.Equal(t, false, v)
}

func TestResolve_Default(t *testing.T) {
	assert.Equal(t, "fallback", Resolve([]string{"missing"}, []any{map[string]any{}}, "fallback"))
	assert.Nil(t, Resolve(nil, nil, nil))
}

func TestResolveString(t *testing.T) {
	src := decode(t, `{"account": 123456, "flag": true, "obj": {"a": 1}, "big": 1234567890123}`)

	assert.Equal(t, "123456", ResolveString([]string{"account"}, []any{src}, ""))
	assert.Equal(t, "true", ResolveString([]string{"flag"}, []any{src}, ""))
	assert.Equal(t, "1234567890123", ResolveString([]string{"big"}, []any{src}, ""))
	assert.Equal(t, "def", ResolveString([]string{"obj"}, []any{src}, "def"))
	assert.Equal(t, "def", ResolveString([]string{"nope"}, []any{src}, "def"))
}

func TestClone_DoesNotAlias(t *testing.T) {
	original := decode(t, `{"shipTo": {"contacts": [{"name": "a"}]}, "lines": [1, 2]}`)
	cloned := Clone(original).(map[string]any)

	cloned["shipTo"].(map[string]any)["contacts"].([]any)[0].(map[string]any)["name"] = "changed"
	cloned["lines"] = append(cloned["lines"].([]any), 3)

	assert.Equal(t, "a", original["shipTo"].(map[string]any)["contacts"].([]any)[0].(map[string]any)["name"])
	assert.Len(t, original["lines"], 2)
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank("   "))
	assert.False(t, IsBlank("x"))
	assert.False(t, IsBlank(float64(0)))
}
