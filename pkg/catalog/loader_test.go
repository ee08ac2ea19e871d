package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/textcat/pkg/catalog"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("object of objects", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		path := writeFile(t, "messages.json", `{
			"GREETING": {"EN": "Hello", "DE": "Hallo"},
			"FAREWELL": {"EN": "Bye"}
		}`)

		count, err := cat.LoadFile(path, true)
		require.NoError(t, err)
		require.Equal(t, 3, count)

		text, err := cat.GetText("GREETING", "DE")
		require.NoError(t, err)
		require.Equal(t, "Hallo", text)
	})

	t.Run("list of records", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		path := writeFile(t, "messages.json", `[
			{"label": "GREETING", "lang": "EN", "text": "Hello"},
			{"label": "GREETING", "lang": "DE", "text": "Hallo"}
		]`)

		count, err := cat.LoadFile(path, true)
		require.NoError(t, err)
		require.Equal(t, 2, count)

		text, err := cat.GetText("GREETING", "EN")
		require.NoError(t, err)
		require.Equal(t, "Hello", text)
	})

	t.Run("both shapes yield identical exports", func(t *testing.T) {
		t.Parallel()

		objPath := writeFile(t, "obj.json", `{
			"GREETING": {"EN": "Hello", "DE": "Hallo"},
			"FAREWELL": {"EN": "Bye"}
		}`)
		listPath := writeFile(t, "list.json", `[
			{"label": "GREETING", "lang": "EN", "text": "Hello"},
			{"label": "GREETING", "lang": "DE", "text": "Hallo"},
			{"label": "FAREWELL", "lang": "EN", "text": "Bye"}
		]`)

		fromObj, err := catalog.New()
		require.NoError(t, err)
		_, err = fromObj.LoadFile(objPath, true)
		require.NoError(t, err)

		fromList, err := catalog.New()
		require.NoError(t, err)
		_, err = fromList.LoadFile(listPath, true)
		require.NoError(t, err)

		require.Equal(t, fromObj.ToMap(), fromList.ToMap())
	})

	t.Run("yaml file", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		path := writeFile(t, "messages.yaml", "GREETING:\n  EN: Hello\n  DE: Hallo\n")

		count, err := cat.LoadFile(path, true)
		require.NoError(t, err)
		require.Equal(t, 2, count)

		text, err := cat.GetText("GREETING", "DE")
		require.NoError(t, err)
		require.Equal(t, "Hallo", text)
	})

	t.Run("malformed json fails with parse error", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		path := writeFile(t, "broken.json", `{"GREETING": `)
		_, err = cat.LoadFile(path, true)
		require.ErrorIs(t, err, catalog.ErrParse)
	})

	t.Run("unrecognized top-level shape fails with parse error", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		path := writeFile(t, "scalar.json", `"just a string"`)
		_, err = cat.LoadFile(path, true)
		require.ErrorIs(t, err, catalog.ErrParse)
	})

	t.Run("record missing field names its index", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		path := writeFile(t, "records.json", `[
			{"label": "A", "lang": "EN", "text": "a"},
			{"label": "B", "lang": "EN"}
		]`)
		_, err = cat.LoadFile(path, true)
		require.ErrorIs(t, err, catalog.ErrValidation)
		assert.Contains(t, err.Error(), "record 1")
	})

	t.Run("label mapping to non-object fails validation", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		path := writeFile(t, "bad.json", `{"GREETING": "not an object"}`)
		_, err = cat.LoadFile(path, true)
		require.ErrorIs(t, err, catalog.ErrValidation)
	})

	t.Run("invalid language aborts before any mutation", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New(catalog.WithAllowedLanguages("EN", "DE"))
		require.NoError(t, err)
		_, err = cat.SetText("KEPT", "EN", "still here", true)
		require.NoError(t, err)

		path := writeFile(t, "mixed.json", `[
			{"label": "A", "lang": "EN", "text": "a"},
			{"label": "B", "lang": "FR", "text": "b"}
		]`)

		_, err = cat.LoadFile(path, true)
		require.ErrorIs(t, err, catalog.ErrInvalidLanguage)

		// Nothing from the failed load was applied.
		require.Equal(t, []string{"KEPT"}, cat.ListLabels())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		_, err = cat.LoadFile(filepath.Join(t.TempDir(), "absent.json"), true)
		require.Error(t, err)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestAddFile(t *testing.T) {
	t.Parallel()

	cat, err := catalog.New()
	require.NoError(t, err)
	_, err = cat.SetText("GREETING", "EN", "original", true)
	require.NoError(t, err)

	path := writeFile(t, "extra.json", `{
		"GREETING": {"EN": "replacement"},
		"FAREWELL": {"EN": "Bye"}
	}`)

	count, err := cat.AddFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	text, err := cat.GetText("GREETING", "EN")
	require.NoError(t, err)
	require.Equal(t, "original", text)

	text, err = cat.GetText("FAREWELL", "EN")
	require.NoError(t, err)
	require.Equal(t, "Bye", text)
}

func TestLoadDomainFile(t *testing.T) {
	t.Parallel()

	t.Run("loads entries per domain", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New(catalog.WithDefaultLanguage("DE"))
		require.NoError(t, err)

		path := writeFile(t, "domains.json", `{
			"GLOBAL": {"DATA_NOT_FOUND": {"DE": "Keine Daten", "EN": "No data"}},
			"GLOBAL.DATABASE.ORACLE": {"DATA_NOT_FOUND": {"DE": "Keine Oracle-Daten"}}
		}`)

		count, err := cat.LoadDomainFile(path, true)
		require.NoError(t, err)
		require.Equal(t, 3, count)

		text, err := cat.GetText("DATA_NOT_FOUND", "DE", catalog.InDomain("GLOBAL.DATABASE.ORACLE"))
		require.NoError(t, err)
		require.Equal(t, "Keine Oracle-Daten", text)

		text, err = cat.GetText("DATA_NOT_FOUND", "EN", catalog.InDomain("GLOBAL.DATABASE.ORACLE"))
		require.NoError(t, err)
		require.Equal(t, "No data", text)
	})

	t.Run("rejects non-object top level", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		path := writeFile(t, "domains.json", `[1, 2, 3]`)
		_, err = cat.LoadDomainFile(path, true)
		require.ErrorIs(t, err, catalog.ErrParse)
	})
}

func TestLoadLanguageFile(t *testing.T) {
	t.Parallel()

	t.Run("object shape", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		path := writeFile(t, "de.json", `{"GREETING": "Hallo", "FAREWELL": "Tschuess"}`)
		count, err := cat.LoadLanguageFile("de", path, true)
		require.NoError(t, err)
		require.Equal(t, 2, count)

		text, err := cat.GetText("GREETING", "DE")
		require.NoError(t, err)
		require.Equal(t, "Hallo", text)
	})

	t.Run("list shape", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		path := writeFile(t, "de.json", `[{"label": "GREETING", "text": "Hallo"}]`)
		count, err := cat.LoadLanguageFile("DE", path, true)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	t.Run("empty language fails", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		_, err = cat.LoadLanguageFile("", "irrelevant.json", true)
		require.ErrorIs(t, err, catalog.ErrEmptyLanguage)
	})
}

func TestReloadFile(t *testing.T) {
	t.Parallel()

	t.Run("drops entries absent from the new file", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		first := writeFile(t, "first.json", `{"X": {"EN": "x"}, "Y": {"EN": "y"}}`)
		second := writeFile(t, "second.json", `{"Y": {"EN": "y2"}}`)

		_, err = cat.LoadFile(first, true)
		require.NoError(t, err)
		require.Contains(t, cat.ListLabels(), "X")

		_, err = cat.ReloadFile(second)
		require.NoError(t, err)
		require.NotContains(t, cat.ListLabels(), "X")

		text, err := cat.GetText("Y", "EN")
		require.NoError(t, err)
		require.Equal(t, "y2", text)
	})

	t.Run("failed reload leaves catalog empty", func(t *testing.T) {
		t.Parallel()
		cat, err := catalog.New()
		require.NoError(t, err)

		first := writeFile(t, "first.json", `{"X": {"EN": "x"}}`)
		broken := writeFile(t, "broken.json", `{"X": `)

		_, err = cat.LoadFile(first, true)
		require.NoError(t, err)

		_, err = cat.ReloadFile(broken)
		require.ErrorIs(t, err, catalog.ErrParse)
		require.Empty(t, cat.ListLabels())
	})
}
