// Package config loads vdeck settings from the environment.
//
// Values come from the process environment, optionally seeded from a .env
// file in the working directory. Commands may override any of them with
// flags after Load returns.
//
// Environment variables:
//   - VDECK_DIR: vCard directory (default ".")
//   - VDECK_ADDR: server listen address (default ":8080")
//   - VDECK_URL: server base URL used by the browser (default "http://localhost:8080")
//   - VDECK_STATIC: static files directory (default "static")
//   - VDECK_RAW_VIEWER: enable the raw vCard viewer (default true)
//   - VDECK_EDITOR: enable the contact editor (default true)
//   - LOG_LEVEL: debug, info, warn or error (default info)
//   - LOG_FILE: log file path, stderr when empty
//   - CARDDAV_URL, CARDDAV_USER, CARDDAV_PASSWORD: CardDAV import source
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	apperrors "github.com/emurenMRz/vdeck/internal/errors"
)

// Config holds every setting shared by the vdeck commands.
type Config struct {
	DeckDir   string
	Addr      string
	BaseURL   string
	StaticDir string

	RawViewer bool
	Editor    bool

	LogLevel string
	LogFile  string

	CardDAVURL      string
	CardDAVUser     string
	CardDAVPassword string
}

// Load reads the configuration. A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DeckDir:         getEnv("VDECK_DIR", "."),
		Addr:            getEnv("VDECK_ADDR", ":8080"),
		BaseURL:         getEnv("VDECK_URL", "http://localhost:8080"),
		StaticDir:       getEnv("VDECK_STATIC", "static"),
		RawViewer:       getBoolEnv("VDECK_RAW_VIEWER", true),
		Editor:          getBoolEnv("VDECK_EDITOR", true),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         os.Getenv("LOG_FILE"),
		CardDAVURL:      os.Getenv("CARDDAV_URL"),
		CardDAVUser:     os.Getenv("CARDDAV_USER"),
		CardDAVPassword: os.Getenv("CARDDAV_PASSWORD"),
	}
}

// Validate checks the settings every command relies on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DeckDir) == "" {
		return apperrors.ConfigError("VDECK_DIR must not be empty")
	}
	if c.Addr == "" {
		return apperrors.ConfigError("VDECK_ADDR must not be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return apperrors.ConfigError("VDECK_URL must be an absolute URL").WithContext("value", c.BaseURL)
	}
	if c.CardDAVURL != "" {
		if u, err := url.Parse(c.CardDAVURL); err != nil || u.Host == "" {
			return apperrors.ConfigError("CARDDAV_URL must be an absolute URL").WithContext("value", c.CardDAVURL)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
