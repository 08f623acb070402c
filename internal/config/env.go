package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Credentials carries what the original console read from its .env file.
// Username/password are used once for the xAuth token exchange and then
// discarded; they are never written to the config file.
type Credentials struct {
	Username string
	Password string
}

// ApplyEnv loads a .env file when present and overlays INSTAPAPER_*
// environment variables onto the config. Returned credentials may be
// empty; callers fall back to the saved OAuth token.
func ApplyEnv(c *Config) Credentials {
	_ = godotenv.Load()

	if v := os.Getenv("INSTAPAPER_CONSUMER_KEY"); v != "" {
		c.ConsumerKey = v
	}
	if v := os.Getenv("INSTAPAPER_CONSUMER_SECRET"); v != "" {
		c.ConsumerSecret = v
	}
	if v := os.Getenv("INSTAPAPER_API_BASE"); v != "" {
		c.APIBase = v
	}
	return Credentials{
		Username: os.Getenv("INSTAPAPER_USERNAME"),
		Password: os.Getenv("INSTAPAPER_PASSWORD"),
	}
}
