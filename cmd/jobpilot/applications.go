package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/applications"
	"github.com/jonathan/jobpilot/internal/observability"
)

var (
	applicationsEmail        string
	applicationsCoverLetters bool
)

var applicationsCmd = &cobra.Command{
	Use:     "applications",
	Aliases: []string{"apps"},
	Short:   "List tracked applications",
	Long:    `List tracked applications for one candidate, or for everyone when --email is omitted.`,
	RunE:    runApplications,
}

func init() {
	applicationsCmd.Flags().StringVar(&applicationsEmail, "email", "", "Only show applications for this email")
	applicationsCmd.Flags().BoolVar(&applicationsCoverLetters, "cover-letters", false, "Include generated cover letters")
	rootCmd.AddCommand(applicationsCmd)
}

func runApplications(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	var cache *applications.Cache
	return withApp(cmd.Context(), cfg, func(ctx context.Context) error {
		apps, err := cache.Refresh(ctx, applicationsEmail)
		if err != nil {
			return err
		}
		printer.PrintApplications(apps, applicationsCoverLetters)
		return nil
	}, &cache)
}
