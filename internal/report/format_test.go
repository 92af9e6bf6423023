package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/unifiable/internal/document"
	"github.com/dyluth/unifiable/pkg/unification"
)

func TestFormatTable(t *testing.T) {
	t.Run("empty bindings", func(t *testing.T) {
		var buf bytes.Buffer
		count := FormatTable(&buf, unification.Bindings{}, TableOptions{})
		assert.Equal(t, 0, count)
		assert.Equal(t, "No bindings\n", buf.String())
	})

	t.Run("sorted and aligned", func(t *testing.T) {
		var buf bytes.Buffer
		count := FormatTable(&buf, unification.Bindings{
			"_id":          "a1b2",
			"_a":           1,
			"_long_name_x": []any{1, unification.Symbol("_b")},
		}, TableOptions{})
		assert.Equal(t, 3, count)

		lines := strings.Split(buf.String(), "\n")
		require.GreaterOrEqual(t, len(lines), 6)
		assert.Equal(t, "PLACEHOLDER   VALUE", lines[0])
		assert.Equal(t, "------------  -----", lines[1])
		assert.Equal(t, "_a            1", lines[2])
		assert.Equal(t, "_id           \"a1b2\"", lines[3])
		assert.Equal(t, "_long_name_x  [1, _b]", lines[4])
		assert.Contains(t, buf.String(), "3 bindings")
	})

	t.Run("single binding count", func(t *testing.T) {
		var buf bytes.Buffer
		FormatTable(&buf, unification.Bindings{"_a": nil}, TableOptions{})
		assert.Contains(t, buf.String(), "_a           null")
		assert.Contains(t, buf.String(), "\n1 binding\n")
	})

	t.Run("long values truncated", func(t *testing.T) {
		var buf bytes.Buffer
		FormatTable(&buf, unification.Bindings{"_s": strings.Repeat("x", 100)}, TableOptions{MaxValueWidth: 10})
		assert.Contains(t, buf.String(), "\"xxxxxx...")
		assert.NotContains(t, buf.String(), strings.Repeat("x", 20))
	})

	t.Run("times use the configured layout", func(t *testing.T) {
		var buf bytes.Buffer
		when := time.Date(2025, 10, 29, 13, 4, 5, 0, time.UTC)
		FormatTable(&buf, unification.Bindings{"_t": when}, TableOptions{TimeFormat: "%Y/%m/%d %H:%M:%S"})
		assert.Contains(t, buf.String(), "2025/10/29 13:04:05")
	})
}

func TestFormatValue(t *testing.T) {
	when := time.Date(2025, 10, 29, 13, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "null"},
		{"string", "a b", `"a b"`},
		{"symbol", unification.Symbol("_x"), "_x"},
		{"int", 42, "42"},
		{"bool", true, "true"},
		{"time default", when, "2025-10-29T13:00:00Z"},
		{"sequence", []any{1, "a", []any{}}, `[1, "a", []]`},
		{"mapping", map[string]any{"b": 2, "a": map[string]any{}}, "{a: {}, b: 2}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatValue(tc.value, ""))
		})
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	err := FormatJSON(&buf, unification.Bindings{
		"_b": map[string]any{"x": unification.Symbol("_c")},
		"_a": 1,
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, map[string]any{
		"_a": float64(1),
		"_b": map[string]any{"x": "_c"},
	}, decoded)
	assert.True(t, strings.Index(buf.String(), "_a") < strings.Index(buf.String(), "_b"))

	buf.Reset()
	require.NoError(t, FormatJSON(&buf, nil))
	assert.Equal(t, "{}\n", buf.String())

	buf.Reset()
	err = FormatJSON(&buf, unification.Bindings{"_f": func() {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal bindings to JSON")
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	err := FormatYAML(&buf, map[string]any{"id": "abc", "tags": []any{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, "id: abc\ntags:\n    - 1\n    - 2\n", buf.String())
}

func TestFormatBindingsYAML(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	var buf bytes.Buffer
	err := FormatBindingsYAML(&buf, unification.Bindings{
		"_at":   at,
		"_kind": unification.Symbol("active"),
		"_list": []any{unification.Symbol("_x"), "plain"},
		"_n":    3,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "_kind: !sym active\n")

	path := filepath.Join(t.TempDir(), "bindings.yml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	loaded, err := document.NewLoader(unification.Options{}).LoadBindings(path)
	require.NoError(t, err)
	assert.Equal(t, unification.Symbol("active"), loaded["_kind"])
	assert.Equal(t, []any{unification.Symbol("_x"), "plain"}, loaded["_list"])
	assert.Equal(t, 3, loaded["_n"])
	loadedAt, ok := loaded["_at"].(time.Time)
	require.True(t, ok, "timestamps load back as time.Time, got %T", loaded["_at"])
	assert.True(t, at.Equal(loadedAt))
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer

	format, err := ResolveFormat("table", &buf)
	require.NoError(t, err)
	assert.Equal(t, OutputFormatTable, format)

	format, err = ResolveFormat("json", &buf)
	require.NoError(t, err)
	assert.Equal(t, OutputFormatJSON, format)

	format, err = ResolveFormat("yaml", &buf)
	require.NoError(t, err)
	assert.Equal(t, OutputFormatYAML, format)

	// A buffer is never a terminal.
	format, err = ResolveFormat("auto", &buf)
	require.NoError(t, err)
	assert.Equal(t, OutputFormatJSON, format)

	// Neither is a regular file.
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()
	format, err = ResolveFormat("", f)
	require.NoError(t, err)
	assert.Equal(t, OutputFormatJSON, format)

	_, err = ResolveFormat("xml", &buf)
	assert.Error(t, err)
}
