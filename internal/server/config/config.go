// Package config handles configuration for the server, layering
// defaults, an optional JSON file, environment variables and
// command-line flags (later sources win).
package config

import (
	"errors"
	"time"
)

// Config holds the runtime settings.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabaseURI / DatabaseName: MongoDB connection string and database.
//   - SecretKey: HMAC secret for signing JWTs (HS256). No default; the
//     server refuses to start without it.
//   - TokenValidityDuration: bearer token lifetime.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
//   - AllowedOrigins: origins the CORS middleware accepts.
type Config struct {
	EndpointAddr          string
	DatabaseURI           string
	DatabaseName          string
	SecretKey             string
	TokenValidityDuration time.Duration
	ShutdownTimeout       time.Duration
	AllowedOrigins        []string
}

// LoadDefaults populates Config with development defaults. The secret
// key has intentionally no default.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":5000"
	c.DatabaseURI = "mongodb://localhost:27017"
	c.DatabaseName = "devorgs"
	c.TokenValidityDuration = 7 * 24 * time.Hour
	c.ShutdownTimeout = 10 * time.Second
	c.AllowedOrigins = []string{
		"http://localhost:5173",
		"http://localhost:3000",
	}
}

// Validate reports configuration the server cannot run with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("config: JWT secret key is not set")
	}
	if c.TokenValidityDuration <= 0 {
		return errors.New("config: token validity duration must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying
// values from an optional JSON file, the environment and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
