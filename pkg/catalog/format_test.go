package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/textcat/pkg/catalog"
)

func TestReplacePlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		args     catalog.M
		expected string
	}{
		{
			name:     "no placeholders",
			template: "Hello, World!",
			args:     nil,
			expected: "Hello, World!",
		},
		{
			name:     "single placeholder",
			template: "Hello, {name}!",
			args:     catalog.M{"name": "John"},
			expected: "Hello, John!",
		},
		{
			name:     "multiple placeholders",
			template: "Unknown query label: {q_label} dear {user}",
			args:     catalog.M{"q_label": "FOO", "user": "Alice"},
			expected: "Unknown query label: FOO dear Alice",
		},
		{
			name:     "extra keys ignored",
			template: "Hello, {name}!",
			args:     catalog.M{"name": "Bob", "unused": 1},
			expected: "Hello, Bob!",
		},
		{
			name:     "integer value",
			template: "You have {count} items.",
			args:     catalog.M{"count": 42},
			expected: "You have 42 items.",
		},
		{
			name:     "repeated placeholder",
			template: "{name} is here. Hello, {name}!",
			args:     catalog.M{"name": "Charlie"},
			expected: "Charlie is here. Hello, Charlie!",
		},
		{
			name:     "substituted value is not rescanned",
			template: "outer {a} end",
			args:     catalog.M{"a": "{b}", "b": "inner"},
			expected: "outer {b} end",
		},
		{
			name:     "malformed token left verbatim",
			template: "set {1bad} and { } and {}",
			args:     catalog.M{},
			expected: "set {1bad} and { } and {}",
		},
		{
			name:     "unterminated brace left verbatim",
			template: "tail {name",
			args:     catalog.M{"name": "x"},
			expected: "tail {name",
		},
		{
			name:     "underscored names",
			template: "User {user_name} has {item_count} items",
			args:     catalog.M{"user_name": "Dave", "item_count": 10},
			expected: "User Dave has 10 items",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := catalog.ReplacePlaceholders(tt.template, tt.args)
			require.NoError(t, err)
			require.Equal(t, tt.expected, result)
		})
	}

	t.Run("missing key fails", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.ReplacePlaceholders("Hello, {name}!", catalog.M{})
		require.Error(t, err)
		require.ErrorIs(t, err, catalog.ErrFormat)
		assert.Contains(t, err.Error(), `"name"`)
	})
}

func TestFmt(t *testing.T) {
	t.Parallel()

	newCatalog := func(t *testing.T) *catalog.Catalog {
		t.Helper()
		cat, err := catalog.New(catalog.WithDefaultLanguage("EN"))
		require.NoError(t, err)
		_, err = cat.SetText("ERR_UNKNOWN_QUERY_LABEL", "EN", "Unknown query label: {q_label} dear {user}", true)
		require.NoError(t, err)
		return cat
	}

	t.Run("formats resolved text", func(t *testing.T) {
		t.Parallel()
		cat := newCatalog(t)

		text, err := cat.Fmt("ERR_UNKNOWN_QUERY_LABEL", "EN", catalog.M{"q_label": "FOO", "user": "Alice"})
		require.NoError(t, err)
		require.Equal(t, "Unknown query label: FOO dear Alice", text)
	})

	t.Run("missing placeholder key names label and language", func(t *testing.T) {
		t.Parallel()
		cat := newCatalog(t)

		_, err := cat.Fmt("ERR_UNKNOWN_QUERY_LABEL", "EN", catalog.M{"q_label": "FOO"})
		require.Error(t, err)
		require.ErrorIs(t, err, catalog.ErrFormat)
		assert.Contains(t, err.Error(), `"user"`)
		assert.Contains(t, err.Error(), "ERR_UNKNOWN_QUERY_LABEL")
		assert.Contains(t, err.Error(), "EN")
	})

	t.Run("missing text propagates", func(t *testing.T) {
		t.Parallel()
		cat := newCatalog(t)

		_, err := cat.Fmt("NOPE", "EN", nil)
		require.ErrorIs(t, err, catalog.ErrMissingText)
	})

	t.Run("empty lang uses default language", func(t *testing.T) {
		t.Parallel()
		cat := newCatalog(t)

		text, err := cat.Fmt("ERR_UNKNOWN_QUERY_LABEL", "", catalog.M{"q_label": "X", "user": "Y"})
		require.NoError(t, err)
		require.Equal(t, "Unknown query label: X dear Y", text)
	})
}
