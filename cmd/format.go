package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

const rule = "───────────────────────────────────────────────────────────────"

var (
	headingStyle = lipgloss.NewStyle().Bold(true)

	statusOK = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	statusCritical = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

func printBanner(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "     %s\n", title)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(w)
}

func printHeading(w io.Writer, title string) {
	fmt.Fprintln(w, headingStyle.Render(strings.ToUpper(title)+":"))
	fmt.Fprintln(w, rule)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// failureStatus colours the share of failed trajectories.
func failureStatus(failed, total int) string {
	share := float64(failed) / float64(total)
	text := fmt.Sprintf("%d / %d (%.1f%%)", failed, total, 100*share)
	switch {
	case failed == 0:
		return statusOK.Render(text)
	case share < 0.5:
		return statusWarning.Render(text)
	default:
		return statusCritical.Render(text)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
