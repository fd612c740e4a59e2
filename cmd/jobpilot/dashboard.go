package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/dashboard"
	"github.com/jonathan/jobpilot/internal/observability"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run the interactive dashboard",
	Long: `Run an interactive session: edit and save your profile, search for jobs,
queue applications and follow their status. Commands are read from stdin.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var ctrl *dashboard.Controller
	return withApp(ctx, cfg, func(ctx context.Context) error {
		return ctrl.Run(ctx, cmd.InOrStdin(), observability.NewPrinter(cmd.OutOrStdout()))
	}, &ctrl)
}
