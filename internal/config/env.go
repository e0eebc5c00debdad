package config

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env files into the process environment before the YAML
// is expanded. Already-set variables win; missing files are not an error.
func loadEnvFiles() {
	for _, path := range []string{".env", ".env.local"} {
		if err := godotenv.Load(path); err == nil {
			slog.Debug("Loaded environment variables", "file", path)
		}
	}
}
