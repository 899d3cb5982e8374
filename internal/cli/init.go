// Package cli implements the ledger command surface and the shared process
// initialization (env file, logging, config, store lifecycle).
package cli

import (
	"log/slog"

	"github.com/joho/godotenv"

	"ledger/internal/config"
	"ledger/internal/log"
	"ledger/internal/storage"
)

// SetupLogger initializes structured logging at the given level and installs
// it as the process default.
func SetupLogger(level slog.Level) *log.Logger {
	logger := log.New(log.Config{
		Level:     level,
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// OpenStore opens the ledger store at the configured path. The caller owns
// the returned store and must Close it on every exit path.
func OpenStore(cfg *config.Config, logger *log.Logger) (*storage.Store, error) {
	return storage.Open(cfg.DBPath, logger)
}
