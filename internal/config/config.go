package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures the runtime configuration, loaded from the environment.
type Config struct {
	Address     string        `env:"MBC_ADDR"          envDefault:":8080"`
	Environment string        `env:"MBC_ENV"           envDefault:"local"`
	ReadTimeout time.Duration `env:"MBC_READ_TIMEOUT"  envDefault:"15s"`

	// Localization
	LocalesDir    string `env:"MBC_LOCALES_DIR" envDefault:"locales"`
	DefaultLocale string `env:"MBC_DEFAULT_LOCALE" envDefault:"bg"`

	// Markdown content pages
	ContentDir string `env:"MBC_CONTENT_DIR" envDefault:"content"`

	// Sessions. The hash key is mandatory outside local runs; the block key
	// is optional and enables cookie payload encryption when present.
	SessionHashKey  string `env:"MBC_SESSION_HASH_KEY"`
	SessionBlockKey string `env:"MBC_SESSION_BLOCK_KEY"`

	// Firebase / Firestore. When the project ID is empty the server falls
	// back to the in-memory offer store and the passthrough authenticator.
	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID"`
	OffersCollection  string `env:"MBC_OFFERS_COLLECTION" envDefault:"offers"`
}

// Locales returns the supported locale set with the default first.
func (c Config) Locales() []string {
	if c.DefaultLocale == "en" {
		return []string{"en", "bg"}
	}
	return []string{"bg", "en"}
}

// IsLocal reports whether the server runs in the local environment, where
// missing session keys are tolerated with generated throwaways.
func (c Config) IsLocal() bool {
	return c.Environment == "local"
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if !cfg.IsLocal() && cfg.SessionHashKey == "" {
		return Config{}, fmt.Errorf("config: MBC_SESSION_HASH_KEY is required outside local")
	}
	return cfg, nil
}
