package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/dashboard"
	"github.com/jonathan/jobpilot/internal/discovery"
	"github.com/jonathan/jobpilot/internal/observability"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for job postings",
	Long: `Search for job postings. The query is passed to the backend verbatim and
defaults to the dashboard's starter query.`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	if query == "" {
		query = discovery.DefaultQuery
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	var client *discovery.Client
	return withApp(cmd.Context(), cfg, func(ctx context.Context) error {
		res, err := client.Search(ctx, query)
		if err != nil {
			return err
		}
		if res.Failed() {
			printer.Status(dashboard.MsgSearchFailed)
			return res.Err
		}
		printer.PrintListings(res.Listings().Collect())
		return nil
	}, &client)
}
