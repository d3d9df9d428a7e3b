package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/agribot/internal/llm"
	"github.com/alexanderramin/agribot/internal/repository"
	"github.com/charmbracelet/lipgloss"
)

var callColumns = []string{"ID", "WHEN", "TASK", "MODEL", "LATENCY", "RESULT"}

const columnGap = "  "

// FormatCalls renders recorded generation calls as a table, newest first.
func FormatCalls(events []llm.CallEvent, now time.Time) string {
	if len(events) == 0 {
		return Dim("  No generation calls recorded.")
	}

	rows := make([][]string, 0, len(events))
	for _, e := range events {
		result := StyleGreen.Render("ok")
		if !e.Success {
			result = StyleRed.Render(strings.ToLower(e.ErrorCode))
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			HumanTimestampFrom(e.CreatedAt, now),
			string(e.Task),
			e.Model,
			fmt.Sprintf("%dms", e.LatencyMs),
			result,
		})
	}
	return renderCallTable(rows)
}

// renderCallTable aligns cells on their visible width under a ruled header.
// Every row has one cell per call column; the last column is not padded.
func renderCallTable(rows [][]string) string {
	widths := make([]int, len(callColumns))
	measure := func(cells []string) {
		for i, cell := range cells {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	measure(callColumns)
	for _, r := range rows {
		measure(r)
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i, cell := range cells {
			b.WriteString(style(cell))
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)) + columnGap)
			}
		}
		b.WriteString("\n")
	}

	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("─", w)
	}
	writeRow(callColumns, func(s string) string { return StyleHeader.Render(s) })
	writeRow(rules, Dim)
	for _, r := range rows {
		writeRow(r, func(s string) string { return s })
	}
	return b.String()
}

// FormatCallSummary renders per-task totals with a success-rate bar.
func FormatCallSummary(summary []repository.TaskSummary) string {
	if len(summary) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(Header("Summary"))
	b.WriteString("\n")
	for _, s := range summary {
		rate := 0.0
		if s.Calls > 0 {
			rate = float64(s.Successes) / float64(s.Calls)
		}
		fmt.Fprintf(&b, "  %-8s %s  %s\n",
			string(s.Task),
			RenderProgress(rate, 20),
			Dim(fmt.Sprintf("%d calls, avg %dms", s.Calls, s.AvgLatencyMs)),
		)
	}
	return b.String()
}
