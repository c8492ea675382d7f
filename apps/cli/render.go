package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/course"
	"github.com/trezcool/classbook/core/person"
	"github.com/trezcool/classbook/core/registry"
)

const clearScreenSeq = "\033[H\033[2J"

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorSuccess = lipgloss.Color("#04B575")
	colorDanger  = lipgloss.Color("#FF5F87")
	colorMuted   = lipgloss.Color("#6C6C6C")
)

var (
	styleBanner = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Border(lipgloss.DoubleBorder()).BorderForeground(colorPrimary).Padding(0, 2)
	styleMenu   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	styleAccept = lipgloss.NewStyle().Foreground(colorSuccess)
	styleReject = lipgloss.NewStyle().Foreground(colorDanger)
	styleHint   = lipgloss.NewStyle().Foreground(colorMuted)
)

func renderBanner(appName, build string) string {
	return styleBanner.Render(fmt.Sprintf("%s\nbuild %s", appName, build))
}

func renderMenu(appName string, items []menuItem) string {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render(strings.ToUpper(appName)))
	for _, item := range items {
		fmt.Fprintf(&sb, "\n%2s. %s", item.key, item.label)
	}
	fmt.Fprintf(&sb, "\n%2s. %s", exitKey, "Exit")
	return styleMenu.Render(sb.String())
}

func renderHeader(title string) string {
	return styleTitle.Render("=== " + strings.ToUpper(title) + " ===")
}

func renderOutcome(o core.Outcome) string {
	if o.Accepted {
		return styleAccept.Render(o.Message)
	}
	return styleReject.Render(o.Message)
}

func renderError(msg string) string {
	return styleReject.Render(msg)
}

// renderChoice renders a selectable person as "Ana (ID: P1)".
func renderChoice(p person.Person) string {
	return fmt.Sprintf("%s (ID: %s)", p.Name(), p.ID())
}

func printChoices(w io.Writer, choices []string) {
	for i, c := range choices {
		fmt.Fprintf(w, "%d. %s\n", i+1, c)
	}
}

func printPayments(w io.Writer, results []registry.PaymentResult) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintln(w, renderError(fmt.Sprintf("Payment error for %s: %v", res.Name, res.Err)))
			continue
		}
		fmt.Fprintf(w, "Payment for %s: %s\n", res.Name, core.FormatMoney(res.Amount))
	}
}

func printAverages(w io.Writer, results []registry.AverageResult) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintln(w, renderError(fmt.Sprintf("Average error for %s: %v", res.Name, res.Err)))
			continue
		}
		fmt.Fprintf(w, "Average for %s: %s\n", res.Name, core.FormatNumber(res.Average))
	}
}

func printDescriptions(w io.Writer, descs []string) {
	for _, d := range descs {
		fmt.Fprintln(w, d)
		fmt.Fprintln(w)
	}
}

// emptyMessage maps the registry emptiness errors to what the user reads.
func emptyMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, registry.ErrNoPeople):
		return "No people registered.", true
	case errors.Is(err, registry.ErrNoCourses):
		return "No courses registered.", true
	case errors.Is(err, registry.ErrNoInstructors):
		return "No instructors registered.", true
	case errors.Is(err, registry.ErrNoStudents):
		return "No students registered.", true
	}
	return "", false
}

func courseNotFound(name, suggestion string, ok bool) string {
	msg := fmt.Sprintf("No course found matching %q.", name)
	if ok {
		msg += " " + styleHint.Render(fmt.Sprintf("Did you mean %q?", suggestion))
	}
	return msg
}

func courseChoice(c *course.Course) string {
	return fmt.Sprintf("%s (%d enrolled)", c.Name, c.Size())
}
