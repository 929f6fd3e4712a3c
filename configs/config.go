package configs

import (
	"os"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
)

// requiredVars must be present in the environment for the application to run.
var requiredVars = []string{
	"DB_HOST",
	"DB_PORT",
	"DB_USER",
	"DB_PASSWORD",
	"DB_NAME",
	"APP_PORT",
	"JWT_SECRET",
}

// LoadConfig reads a .env file (if present) into the process environment and
// verifies that every required variable is set. Missing variables are fatal.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		// Not fatal: in containerized deployments the environment is set directly.
		zlog.Warn().Msg("No .env file found, relying on environment variables")
	}

	missing := []string{}
	for _, key := range requiredVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		zlog.Fatal().Strs("missing", missing).Msg("Required environment variables are not set")
	}
}
