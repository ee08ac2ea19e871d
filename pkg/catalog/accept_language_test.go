package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/textcat/pkg/catalog"
)

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	available := []string{"DE", "EN"}

	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "empty header returns first available", header: "", expected: "DE"},
		{name: "exact match case-insensitive", header: "en", expected: "EN"},
		{name: "region matches base language", header: "de-AT", expected: "DE"},
		{name: "quality order respected", header: "fr;q=0.9,en;q=0.8,de;q=0.7", expected: "EN"},
		{name: "wildcard ignored", header: "*", expected: "DE"},
		{name: "no match falls back to first available", header: "ja,ko;q=0.8", expected: "DE"},
		{name: "malformed quality treated as 1", header: "en;q=oops,de;q=0.5", expected: "EN"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, catalog.ParseAcceptLanguage(tt.header, available))
		})
	}

	t.Run("no available languages", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "", catalog.ParseAcceptLanguage("en", nil))
	})
}
