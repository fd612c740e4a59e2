// Package config provides configuration loading and validation for jobpilot.
// Values come from the environment; a .env file is loaded by the caller first.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultBackendURL is used when no backend URL is configured.
const DefaultBackendURL = "http://localhost:8000"

// backendURLKeys are checked in order. VITE_BACKEND_URL is what earlier
// browser builds of the dashboard read.
var backendURLKeys = []string{"JOBPILOT_BACKEND_URL", "BACKEND_URL", "VITE_BACKEND_URL"}

// Config holds runtime settings. Nothing here is persisted by the application.
type Config struct {
	BackendURL   string `validate:"required,url"`
	LogLevel     string `validate:"oneof=debug info warn error"`
	LogDev       bool
	OTLPEndpoint string
	ServiceName  string `validate:"required"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		BackendURL:   lookupFirst(backendURLKeys, DefaultBackendURL),
		LogLevel:     strings.ToLower(getEnvString("JOBPILOT_LOG_LEVEL", "info")),
		LogDev:       getEnvBool("JOBPILOT_LOG_DEV", false),
		OTLPEndpoint: getEnvString("JOBPILOT_OTLP_ENDPOINT", ""),
		ServiceName:  getEnvString("JOBPILOT_SERVICE_NAME", "jobpilot"),
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// WithBackendURL returns a copy of c pointing at a different backend.
func (c *Config) WithBackendURL(u string) *Config {
	next := *c
	next.BackendURL = u
	next.normalize()
	return &next
}

// TracingEnabled reports whether spans should be exported.
func (c *Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}

func (c *Config) normalize() {
	c.BackendURL = strings.TrimRight(strings.TrimSpace(c.BackendURL), "/")
}

func lookupFirst(keys []string, defaultValue string) string {
	for _, key := range keys {
		if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return defaultValue
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
