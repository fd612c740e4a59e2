package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/jobpilot/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintListings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	company := "X Corp"
	p.PrintListings([]types.JobListing{
		{Title: "Backend Engineer", Snippet: "Remote, Go", URL: "https://x.co/jobs/1", Company: &company},
		{Title: "SRE", URL: "https://y.io/sre"},
	})
	output := buf.String()

	assert.Contains(t, output, "RESULTS (2)")
	assert.Contains(t, output, "#1  Backend Engineer")
	assert.Contains(t, output, "X Corp")
	assert.Contains(t, output, "#2  SRE")
	assert.Contains(t, output, "https://y.io/sre")
}

func TestPrintListings_RendersEveryIndex(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	listings := make([]types.JobListing, 30)
	for i := range listings {
		listings[i] = types.JobListing{Title: fmt.Sprintf("Job %d", i+1), URL: fmt.Sprintf("https://x.co/jobs/%d", i+1)}
	}
	p.PrintListings(listings)

	out := buf.String()
	assert.Contains(t, out, "RESULTS (30)")
	assert.Contains(t, out, "#30  Job 30")
	assert.NotContains(t, out, "more")
}

func TestPrintListings_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintListings(nil)

	assert.Contains(t, buf.String(), "No results")
}

func TestPrintApplications(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	company := "X Corp"
	apps := []types.Application{
		{
			JobTitle:       "Backend Engineer",
			Company:        &company,
			JobURL:         "https://x.co/jobs/1",
			ApplicantEmail: "ana@example.com",
			Status:         types.StatusQueued,
			CoverLetter:    "Dear X Corp team, I would love to join.",
		},
	}

	p.PrintApplications(apps, false)
	assert.Contains(t, buf.String(), "Backend Engineer · X Corp")
	assert.Contains(t, buf.String(), "Status: queued")
	assert.NotContains(t, buf.String(), "Dear X Corp")

	buf.Reset()
	p.PrintApplications(apps, true)
	assert.Contains(t, buf.String(), "Cover letter:")
	assert.Contains(t, buf.String(), "Dear X Corp team")
}

func TestPrintApplications_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintApplications(nil, false)

	assert.Contains(t, buf.String(), "No applications yet")
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	phone := "555-0100"
	NewPrinter(&buf).PrintProfile(types.Profile{
		Name:   "Ana Lee",
		Email:  "ana@example.com",
		Phone:  &phone,
		Titles: []string{"Backend Engineer", "SRE"},
		Remote: true,
	})
	output := buf.String()

	assert.Contains(t, output, "Ana Lee")
	assert.Contains(t, output, "Backend Engineer, SRE")
	assert.Contains(t, output, "Locations: -")
	assert.Contains(t, output, "555-0100")
}

func TestStatus(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Status("Saved!")
	p.Status("")

	assert.Equal(t, "» Saved!\n", buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	assert.Contains(t, buf.String(), "...")
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four", 9)
	assert.Equal(t, []string{"one two", "three", "four"}, lines)
}
