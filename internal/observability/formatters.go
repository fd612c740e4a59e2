// Package observability provides logging, tracing and terminal output for the
// jobpilot dashboard.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/jobpilot/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 72

// Printer renders dashboard state as boxed text.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintText prints free-form content in a titled box.
func (p *Printer) PrintText(title, content string) {
	p.printBox(title, content)
}

// Status prints a one-line status message such as "Saved!".
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) Status(msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintf(p.out, "» %s\n", msg)
}

// PrintProfile outputs the profile that was last submitted.
func (p *Printer) PrintProfile(profile types.Profile) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Email:     %s\n", profile.Email))
	if profile.Phone != nil {
		sb.WriteString(fmt.Sprintf("Phone:     %s\n", *profile.Phone))
	}
	sb.WriteString(fmt.Sprintf("Titles:    %s\n", joinOrDash(profile.Titles)))
	sb.WriteString(fmt.Sprintf("Locations: %s\n", joinOrDash(profile.Locations)))
	sb.WriteString(fmt.Sprintf("Remote:    %t", profile.Remote))
	if profile.ResumeText != nil {
		sb.WriteString(fmt.Sprintf("\nResume:    %d characters", len(*profile.ResumeText)))
	}

	p.printBox("PROFILE", sb.String())
}

// PrintListings outputs every search hit numbered from 1, the index used to
// pick one for queuing.
func (p *Printer) PrintListings(listings []types.JobListing) {
	if len(listings) == 0 {
		p.printBox("RESULTS", "No results")
		return
	}

	var sb strings.Builder
	count := len(listings)
	for i := 0; i < count; i++ {
		l := listings[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, l.Title))
		if company := l.CompanyName(); company != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", company))
		}
		if l.Snippet != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", l.Snippet))
		}
		sb.WriteString(fmt.Sprintf("    %s", l.URL))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("RESULTS (%d)", len(listings)), sb.String())
}

// PrintApplications outputs the tracked applications. Cover letters are
// included when withCoverLetters is set.
func (p *Printer) PrintApplications(apps []types.Application, withCoverLetters bool) {
	if len(apps) == 0 {
		p.printBox("APPLICATIONS", "No applications yet")
		return
	}

	var sb strings.Builder
	for i, app := range apps {
		header := app.JobTitle
		if app.Company != nil && *app.Company != "" {
			header = fmt.Sprintf("%s · %s", app.JobTitle, *app.Company)
		}
		sb.WriteString(fmt.Sprintf("%s\n", header))
		sb.WriteString(fmt.Sprintf("  %s\n", app.JobURL))
		sb.WriteString(fmt.Sprintf("  Status: %s", app.Status))
		if withCoverLetters && app.CoverLetter != "" {
			sb.WriteString("\n  Cover letter:\n")
			for _, line := range wrap(app.CoverLetter, boxWidth-8) {
				sb.WriteString(fmt.Sprintf("    %s\n", line))
			}
			sb.WriteString("  ")
		}
		if i < len(apps)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox(fmt.Sprintf("APPLICATIONS (%d)", len(apps)), strings.TrimRight(sb.String(), " \n"))
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// wrap splits text into lines no wider than width, breaking on spaces.
func wrap(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}
