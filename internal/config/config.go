// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/textcat/pkg/catalog"
	"github.com/dmitrymomot/textcat/pkg/db"
	"github.com/dmitrymomot/textcat/pkg/logger"
)

// Config is the full service configuration.
type Config struct {
	AppName         string        `env:"APP_NAME" envDefault:"textcat"`
	Environment     string        `env:"APP_ENV" envDefault:"dev"`
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Admin endpoints stay disabled until a token is configured.
	AdminToken string `env:"ADMIN_TOKEN"`

	// Text catalog bootstrap.
	MessagesPath        string   `env:"MESSAGES_PATH" envDefault:"config/messages.json"`
	MessagesDomainAware bool     `env:"MESSAGES_DOMAIN_AWARE" envDefault:"true"`
	DefaultLang         string   `env:"DEFAULT_LANG" envDefault:"DE"`
	AllowedLangs        []string `env:"ALLOWED_LANGS" envDefault:"DE,EN"`
	LanguageContext     string   `env:"LANGUAGE_CONTEXT" envDefault:"GLOBAL.CSV"`

	// Optional cron expression for periodic catalog reloads.
	ReloadSchedule string `env:"MESSAGES_RELOAD_CRON"`

	// CSV reporting.
	QueriesPath    string `env:"QUERIES_PATH" envDefault:"config/queries.json"`
	CSVConfigsPath string `env:"CSV_CONFIGS_PATH" envDefault:"config/csv_configs.json"`
	ReportsDir     string `env:"REPORTS_DIR" envDefault:"reports"`

	DB     db.Config
	Sentry logger.SentryConfig
}

// Load reads settings from the environment, merging an optional .env file
// first. Variables already present in the environment win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// BuildCatalog constructs and populates a catalog according to the
// configuration: default language, allowed set, ambient context, and the
// messages file in either the flat or the domain-aware shape.
func BuildCatalog(cfg Config) (*catalog.Catalog, error) {
	cat, err := catalog.New(
		catalog.WithDefaultLanguage(cfg.DefaultLang),
		catalog.WithAllowedLanguages(cfg.AllowedLangs...),
		catalog.WithContext(cfg.LanguageContext),
	)
	if err != nil {
		return nil, fmt.Errorf("creating catalog: %w", err)
	}

	if cfg.MessagesDomainAware {
		_, err = cat.LoadDomainFile(cfg.MessagesPath, true)
	} else {
		_, err = cat.LoadFile(cfg.MessagesPath, true)
	}
	if err != nil {
		return nil, fmt.Errorf("loading messages: %w", err)
	}
	return cat, nil
}
