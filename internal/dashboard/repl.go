package dashboard

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/jobpilot/internal/observability"
	"github.com/jonathan/jobpilot/internal/profile"
)

const helpText = `set <field> <value>   edit the profile form (see "fields")
fields                list editable profile fields
form                  show the profile form as it will be sent
save                  save the profile
search [query]        search jobs (reuses the last query when omitted)
results               show the last search results
queue <n>             queue an application for result #n
refresh               reload applications
list                  show applications with cover letters
status                show operations in flight
quit                  leave the dashboard`

// Run starts the session and reads commands from in, one per line, until EOF,
// "quit" or cancellation of ctx. All output goes through p from a single
// goroutine.
func (c *Controller) Run(ctx context.Context, in io.Reader, p *observability.Printer) error {
	c.Start(ctx)

	rendered := make(chan struct{})
	go func() {
		defer close(rendered)
		for ev := range c.Events() {
			c.render(p, ev)
		}
	}()

	c.show(func(p *observability.Printer) {
		p.Status(fmt.Sprintf("Search query: %s", c.Query()))
		p.Status(`Type "help" for commands`)
	})

	done := make(chan struct{})
	lines, scanErr := readLines(in, done)

loop:
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("dashboard interrupted", zap.Error(ctx.Err()))
			break loop
		case line, ok := <-lines:
			if !ok || c.handleLine(strings.TrimSpace(line)) {
				break loop
			}
		}
	}
	close(done)

	err := c.Wait()
	<-rendered

	select {
	case serr := <-scanErr:
		if serr != nil {
			return fmt.Errorf("reading commands: %w", serr)
		}
	default:
	}
	return err
}

// readLines scans in on its own goroutine so the caller can stop waiting for
// input. A read blocked on in is abandoned when done closes; the scan error,
// if any, is delivered before lines is closed.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
	}()
	return lines, scanErr
}

func (c *Controller) show(view func(p *observability.Printer)) {
	c.emit(Event{Kind: EventView, view: view})
}

func (c *Controller) status(msg string) {
	c.emit(Event{Kind: EventStatus, Status: msg})
}

// handleLine executes one input line and reports whether the user quit.
func (c *Controller) handleLine(line string) bool {
	if line == "" {
		return false
	}
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "quit", "exit":
		return true
	case "help":
		c.show(func(p *observability.Printer) { p.PrintText("COMMANDS", helpText) })
	case "fields":
		var sb strings.Builder
		for i, f := range FormFields() {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(fmt.Sprintf("%-10s %s", f[0], f[1]))
		}
		c.show(func(p *observability.Printer) { p.PrintText("PROFILE FIELDS", sb.String()) })
	case "set":
		field, value, _ := strings.Cut(rest, " ")
		if err := c.SetField(field, strings.TrimSpace(value)); err != nil {
			c.status(err.Error())
		}
	case "form":
		preview := profile.Normalize(c.Form())
		c.show(func(p *observability.Printer) { p.PrintProfile(preview) })
	case "save":
		c.Dispatch(SaveProfile{Form: c.Form()})
	case "search":
		if rest != "" {
			c.SetQuery(rest)
		}
		c.Dispatch(Search{Query: c.Query()})
	case "results":
		listings := c.Displayed()
		c.show(func(p *observability.Printer) { p.PrintListings(listings) })
	case "queue":
		n, err := strconv.Atoi(rest)
		if err != nil {
			c.status("Usage: queue <n>")
			return false
		}
		c.Dispatch(Queue{Index: n})
	case "refresh":
		c.Dispatch(Refresh{})
	case "list":
		apps := c.Applications()
		c.show(func(p *observability.Printer) { p.PrintApplications(apps, true) })
	case "status":
		loading := c.Loading()
		if len(loading) == 0 {
			c.status("Idle")
		} else {
			c.status(strings.Join(loading, " "))
		}
	default:
		c.status(fmt.Sprintf("Unknown command %q, try \"help\"", verb))
	}
	return false
}

func (c *Controller) render(p *observability.Printer, ev Event) {
	if ev.Err != nil {
		c.logger.Debug("operation failed", zap.String("event", string(ev.Kind)), zap.Error(ev.Err))
	}

	switch ev.Kind {
	case EventView:
		ev.view(p)
	case EventProfileSaved:
		p.Status(ev.Status)
		if ev.Profile != nil {
			p.PrintProfile(*ev.Profile)
		}
	case EventSearched:
		if ev.Status == MsgSearchFailed {
			p.Status(ev.Status)
			return
		}
		p.PrintListings(ev.Listings)
	case EventQueued:
		p.Status(ev.Status)
		if ev.Applications != nil {
			p.PrintApplications(ev.Applications, false)
		}
	case EventRefreshed:
		p.PrintApplications(ev.Applications, false)
	default:
		p.Status(ev.Status)
	}
}
