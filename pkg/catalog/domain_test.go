package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/textcat/pkg/catalog"
)

func TestNormalizeDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		domain   string
		expected string
	}{
		{name: "empty becomes root", domain: "", expected: "GLOBAL"},
		{name: "blank becomes root", domain: "   ", expected: "GLOBAL"},
		{name: "trimmed", domain: " GLOBAL.CSV ", expected: "GLOBAL.CSV"},
		{name: "passthrough", domain: "GLOBAL.DATABASE.ORACLE", expected: "GLOBAL.DATABASE.ORACLE"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, catalog.NormalizeDomain(tt.domain))
		})
	}
}
