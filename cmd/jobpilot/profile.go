package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/dashboard"
	"github.com/jonathan/jobpilot/internal/observability"
	"github.com/jonathan/jobpilot/internal/profile"
	"github.com/jonathan/jobpilot/internal/types"
)

var (
	profileForm       = types.NewProfileForm()
	profileResumeFile string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the candidate profile",
}

var profileSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the candidate profile",
	Long: `Save the candidate profile to the backend. List flags take comma-separated
values; saving again with the same email replaces the stored profile.`,
	Example: `  jobpilot profile save --name "Ana Lee" --email ana@example.com --titles "Backend Engineer, SRE"`,
	RunE:    runProfileSave,
}

func init() {
	f := profileSaveCmd.Flags()
	f.StringVar(&profileForm.Name, "name", "", "Full name")
	f.StringVar(&profileForm.Email, "email", "", "Email address (identifies the profile)")
	f.StringVar(&profileForm.Phone, "phone", "", "Phone number")
	f.StringVar(&profileForm.ResumeText, "resume", "", "Resume text")
	f.StringVar(&profileResumeFile, "resume-file", "", "Read resume text from a file")
	f.StringVar(&profileForm.Titles, "titles", "", "Target job titles, comma separated")
	f.StringVar(&profileForm.Locations, "locations", "", "Preferred locations, comma separated")
	f.BoolVar(&profileForm.Remote, "remote", true, "Open to remote work")
	f.StringVar(&profileForm.IncludeKeywords, "include", "", "Keywords to include, comma separated")
	f.StringVar(&profileForm.ExcludeKeywords, "exclude", "", "Keywords to exclude, comma separated")

	profileCmd.AddCommand(profileSaveCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileSave(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	form := profileForm
	if profileResumeFile != "" {
		data, err := os.ReadFile(profileResumeFile)
		if err != nil {
			return fmt.Errorf("failed to read resume file: %w", err)
		}
		form.ResumeText = string(data)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	var manager *profile.Manager
	return withApp(cmd.Context(), cfg, func(ctx context.Context) error {
		if _, err := manager.Save(ctx, form); err != nil {
			printer.Status(dashboard.MsgSaveFailed)
			return err
		}
		printer.Status(dashboard.MsgSaved)
		printer.PrintProfile(profile.Normalize(form))
		return nil
	}, &manager)
}
