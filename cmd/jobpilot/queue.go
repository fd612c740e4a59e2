package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/applications"
	"github.com/jonathan/jobpilot/internal/coordinator"
	"github.com/jonathan/jobpilot/internal/dashboard"
	"github.com/jonathan/jobpilot/internal/errors"
	"github.com/jonathan/jobpilot/internal/observability"
	"github.com/jonathan/jobpilot/internal/types"
)

var (
	queueEmail   string
	queueTitle   string
	queueURL     string
	queueCompany string
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Queue an application for a job posting",
	Long: `Queue an application for a job posting on behalf of a saved profile. The
backend generates the cover letter; the updated application list is printed.`,
	Example: `  jobpilot queue --email ana@example.com --title "Backend Engineer" --url https://x.co/jobs/1`,
	RunE:    runQueue,
}

func init() {
	queueCmd.Flags().StringVar(&queueEmail, "email", "", "Email of the saved profile")
	queueCmd.Flags().StringVar(&queueTitle, "title", "", "Job title")
	queueCmd.Flags().StringVar(&queueURL, "url", "", "Job posting URL")
	queueCmd.Flags().StringVar(&queueCompany, "company", "", "Company name")
	_ = queueCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(queueCmd)
}

func runQueue(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	listing := types.JobListing{Title: queueTitle, URL: queueURL}
	if queueCompany != "" {
		company := queueCompany
		listing.Company = &company
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	var (
		coord *coordinator.Coordinator
		cache *applications.Cache
	)
	return withApp(cmd.Context(), cfg, func(ctx context.Context) error {
		err := coord.Queue(ctx, listing, queueEmail)
		switch {
		case errors.IsMissingProfile(err):
			printer.Status(dashboard.MsgMissingProfile)
			return err
		case err != nil:
			printer.Status(dashboard.MsgQueueFailed)
			return err
		}
		printer.Status(dashboard.MsgQueued)

		apps, err := cache.Refresh(ctx, queueEmail)
		if err != nil {
			// the application exists; only the listing is unavailable
			return nil
		}
		printer.PrintApplications(apps, false)
		return nil
	}, &coord, &cache)
}
