// Package catalog provides a multi-language text catalog: a registry mapping
// case-sensitive labels and uppercase language codes to text values, with
// deterministic fallback resolution, parameterized placeholder substitution,
// and flat-file ingestion in two JSON (or YAML) shapes.
//
// # Basic Usage
//
// Create a Catalog, populate it, and resolve texts:
//
//	cat, err := catalog.New(
//		catalog.WithDefaultLanguage("EN"),
//		catalog.WithAllowedLanguages("EN", "DE"),
//	)
//
//	cat.SetText("DATA_NOT_FOUND", "EN", "No data found", true)
//	cat.SetText("DATA_NOT_FOUND", "DE", "Keine Daten gefunden", true)
//
//	text, err := cat.GetText("DATA_NOT_FOUND", "DE")
//	// Output: "Keine Daten gefunden"
//
// Language codes are normalized to uppercase on write and on lookup, so
// SetText("L", "en", ...) and GetText("L", "EN") refer to the same entry.
//
// # Fallback Resolution
//
// GetText tries the requested language, then an explicit fallback, then the
// catalog default language, then a literal default value:
//
//	text, err := cat.GetText("GREETING", "FR",
//		catalog.WithFallback("DE"),
//		catalog.WithDefault("hello"),
//	)
//
// Without WithDefault an exhausted chain fails with ErrMissingText.
//
// # Formatting
//
// Texts may embed {name} placeholders substituted at format time:
//
//	cat.SetText("DB_ERROR", "EN", "Database error: {message}", true)
//	msg, err := cat.Fmt("DB_ERROR", "EN", catalog.M{"message": "timeout"})
//	// Output: "Database error: timeout"
//
// A placeholder without a matching key fails with ErrFormat. Substitution is
// a single pass; substituted values are never re-scanned.
//
// # File Ingestion
//
// LoadFile accepts two shapes and detects which one it got:
//
//	{"LABEL": {"EN": "text", "DE": "text"}}
//	[{"label": "LABEL", "lang": "EN", "text": "text"}]
//
// Loads are atomic: the whole batch is validated before any entry is stored.
// ReloadFile clears the catalog first and repopulates it, so a failed reload
// leaves the catalog empty rather than stale.
//
// # Domains
//
// Entries live in hierarchical dot-separated domains rooted at "GLOBAL".
// Lookups walk the chain from the most specific domain to the root:
//
//	cat.SetContext("GLOBAL.DATABASE.ORACLE")
//	cat.GetText("DATA_NOT_FOUND", "DE")
//	// tries GLOBAL.DATABASE.ORACLE, GLOBAL.DATABASE, GLOBAL
//
// Flat catalog files always land in the root domain, so domains stay
// invisible until domain-aware files are loaded.
//
// # Concurrency
//
// A Catalog has no internal locking. Share one instance across goroutines
// only behind external synchronization, or use one instance per context.
package catalog
