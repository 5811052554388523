package sanitizer_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formintake/pkg/sanitizer"
)

func TestStripAngleBrackets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "script tag", input: "<script>alert(1)</script>", expected: "scriptalert(1)/script"},
		{name: "no brackets", input: "hello world", expected: "hello world"},
		{name: "only brackets", input: "<<>>", expected: ""},
		{name: "empty", input: "", expected: ""},
		{name: "unicode preserved", input: "héllo <wörld>", expected: "héllo wörld"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripAngleBrackets(tt.input))
		})
	}
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", sanitizer.MaxLength("abcdef", 3))
	assert.Equal(t, "abc", sanitizer.MaxLength("abc", 10))
	assert.Equal(t, "", sanitizer.MaxLength("abc", 0))
	assert.Equal(t, "日本", sanitizer.MaxLength("日本語", 2))
	assert.Len(t, []rune(sanitizer.MaxLength(strings.Repeat("x", 300), 255)), 255)
}

func TestEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "User@Example.com", sanitizer.Email("  <User@Example.com> "))
}

func TestCompose(t *testing.T) {
	t.Parallel()

	clean := sanitizer.Compose(sanitizer.Trim, sanitizer.StripAngleBrackets)
	assert.Equal(t, "b", clean("  <b>  "))
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, sanitizer.Clamp(-5, 1, 100))
	assert.Equal(t, 100, sanitizer.Clamp(500, 1, 100))
	assert.Equal(t, 20, sanitizer.Clamp(20, 1, 100))
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("strips strings keys and array elements recursively", func(t *testing.T) {
		t.Parallel()

		var payload map[string]any
		raw := `{
			"<b>title</b>": "<i>hello</i>",
			"count": 3,
			"ok": true,
			"missing": null,
			"tags": ["<a>", "b>", 1.5],
			"nested": {"<k>": {"deep": ["<x>"]}}
		}`
		require.NoError(t, json.Unmarshal([]byte(raw), &payload))

		got := sanitizer.JSONObject(payload)

		assert.Equal(t, map[string]any{
			"btitle/b": "ihello/i",
			"count":    float64(3),
			"ok":       true,
			"missing":  nil,
			"tags":     []any{"a", "b", 1.5},
			"nested":   map[string]any{"k": map[string]any{"deep": []any{"x"}}},
		}, got)

		encoded, err := json.Marshal(got)
		require.NoError(t, err)
		assert.NotContains(t, string(encoded), "<")
		assert.NotContains(t, string(encoded), ">")
	})

	t.Run("does not mutate input", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{"<a>": "<b>", "list": []any{"<c>"}}
		_ = sanitizer.JSONObject(in)

		assert.Equal(t, "<b>", in["<a>"])
		assert.Equal(t, []any{"<c>"}, in["list"])
	})

	t.Run("primitives pass through", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, float64(42), sanitizer.JSON(float64(42)))
		assert.Equal(t, false, sanitizer.JSON(false))
		assert.Nil(t, sanitizer.JSON(nil))
		assert.Equal(t, "x", sanitizer.JSON("<x>"))
	})

	t.Run("nil object", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, sanitizer.JSONObject(nil))
	})
}
