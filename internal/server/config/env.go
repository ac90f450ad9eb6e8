package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables win over it.
//
// Recognized variables: ADDRESS, MONGO_URI, MONGO_DB, JWT_SECRET,
// TOKEN_TTL, SHUTDOWN_TIMEOUT (Go duration strings), CORS_ORIGINS
// (comma-separated).
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		config.DatabaseURI = v
	}
	if v := os.Getenv("MONGO_DB"); v != "" {
		config.DatabaseName = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.ShutdownTimeout = d
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := []string{}
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			config.AllowedOrigins = origins
		}
	}
}
