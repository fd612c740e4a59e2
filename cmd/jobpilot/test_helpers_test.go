package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/jobpilot/internal/backendtest"
	"github.com/jonathan/jobpilot/internal/types"
)

// execute runs the root command in process against srv and returns stdout.
// Flag variables are package level, so they are reset before every run.
func execute(t *testing.T, srv *backendtest.Server, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("JOBPILOT_LOG_LEVEL", "error")
	t.Setenv("JOBPILOT_OTLP_ENDPOINT", "")
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--backend-url", srv.URL))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	backendURL = ""
	logLevel = ""
	profileForm = types.NewProfileForm()
	profileResumeFile = ""
	queueEmail, queueTitle, queueURL, queueCompany = "", "", "", ""
	applicationsEmail = ""
	applicationsCoverLetters = false
}
