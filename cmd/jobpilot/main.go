// Package main provides the jobpilot command line: an interactive dashboard
// plus one-shot commands against the jobpilot backend.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/config"
)

var (
	backendURL string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "jobpilot",
	Short: "Job search and application dashboard",
	Long: `jobpilot saves a candidate profile, searches for job postings and queues
applications through the jobpilot backend, which writes the cover letters.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend-url", "", "Backend base URL (overrides JOBPILOT_BACKEND_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if backendURL != "" {
		cfg = cfg.WithBackendURL(backendURL)
	}
	if logLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(logLevel))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
