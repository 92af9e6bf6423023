package commands

import (
	"testing"
	"time"

	"github.com/dyluth/unifiable/internal/document"
	"github.com/dyluth/unifiable/pkg/unification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestApplyCommand(t *testing.T) {
	disableColor(t)

	testCases := []struct {
		name     string
		template string
		bindings string
		flags    []string
		want     any
		unbound  string
	}{
		{
			name:     "bound placeholders are replaced",
			template: "{user: _id, name: _name, tags: [_name, literal]}",
			bindings: `{"_id": 42, "_name": "alice"}`,
			want: map[string]any{
				"user": 42,
				"name": "alice",
				"tags": []any{"alice", "literal"},
			},
		},
		{
			name:     "unbound placeholders stay in place",
			template: "{user: _id, next: _other}",
			bindings: `{"_id": 1}`,
			want:     map[string]any{"user": 1, "next": "_other"},
			unbound:  "1 placeholder(s) left unbound: _other",
		},
		{
			name:     "bindings output of check round trips",
			template: "[_a, {b: _b}]",
			bindings: "_a: [1, 2]\n_b: {c: d}\n",
			want:     []any{[]any{1, 2}, map[string]any{"b": map[string]any{"c": "d"}}},
		},
		{
			name:     "empty bindings file",
			template: "[_a]",
			bindings: "",
			want:     []any{"_a"},
			unbound:  "1 placeholder(s) left unbound: _a",
		},
		{
			name:     "wildcard is not reported as unbound",
			template: "[_, _b, _c, _b]",
			bindings: "{}",
			want:     []any{"_", "_b", "_c", "_b"},
			unbound:  "2 placeholder(s) left unbound: _b, _c",
		},
		{
			name:     "custom pattern",
			template: "{id: $id, keep: _id}",
			bindings: `{"$id": 9}`,
			flags:    []string{"--pattern", `^\$`},
			want:     map[string]any{"id": 9, "keep": "_id"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			args := append([]string{"apply"}, tc.flags...)
			args = append(args,
				writeFile(t, dir, "template.yml", tc.template),
				writeFile(t, dir, "bindings.json", tc.bindings),
			)

			stdout, stderr, err := execute(t, args...)
			require.NoError(t, err)

			if tc.unbound == "" {
				assert.Empty(t, stderr)
			} else {
				assert.Contains(t, stderr, tc.unbound)
			}

			var got any
			require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestApplyCommand_YAMLBindingsFromCheck(t *testing.T) {
	disableColor(t)
	dir := t.TempDir()

	stdout, _, err := execute(t, "check", "--output", "yaml",
		writeFile(t, dir, "expected.yml", "{id: _id, at: _at, kind: _kind}"),
		writeFile(t, dir, "actual.yml", "{id: 7, at: 2025-01-02T03:04:05Z, kind: !sym active}"),
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "_kind: !sym active")
	bindingsPath := writeFile(t, dir, "bindings.yml", stdout)

	loaded, err := document.NewLoader(unification.Options{}).LoadBindings(bindingsPath)
	require.NoError(t, err)
	assert.Equal(t, unification.Symbol("active"), loaded["_kind"])
	assert.IsType(t, time.Time{}, loaded["_at"])

	stdout, stderr, err := execute(t, "apply",
		writeFile(t, dir, "template.yml", "{next: _id, since: _at, kind: _kind}"),
		bindingsPath,
	)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, 7, got["next"])
	assert.Equal(t, "active", got["kind"])
	assert.Contains(t, stdout, "since: 2025-01-02T03:04:05Z")
}

func TestApplyCommand_HelpNotesJSONLoss(t *testing.T) {
	stdout, _, err := execute(t, "apply", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "symbols and times come back as plain strings")
}

func TestApplyCommand_Errors(t *testing.T) {
	disableColor(t)
	dir := t.TempDir()
	template := writeFile(t, dir, "template.yml", "_a")

	_, stderr, err := execute(t, "apply", template, writeFile(t, dir, "bindings.yml", "[1, 2]"))
	require.Error(t, err)
	assert.Equal(t, "Failed to load bindings", err.Error())
	assert.Contains(t, stderr, "bindings must be a mapping")

	_, _, err = execute(t, "apply", writeFile(t, dir, "broken.yml", "{a: "), template)
	require.Error(t, err)
	assert.Equal(t, "Failed to load template", err.Error())

	_, _, err = execute(t, "apply", template)
	require.Error(t, err)
}
