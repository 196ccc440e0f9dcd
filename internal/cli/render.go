// Package cli renders simulation output for the terminal.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4"))
)

// RenderTitle renders a bordered title line.
func RenderTitle(title string) string {
	return titleStyle.Render(title)
}

// RenderWarning renders an attention line (shortfalls, non-convergence).
func RenderWarning(msg string) string {
	return warnStyle.Render("! " + msg)
}

// Table is a simple aligned text table.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTable renders an aligned table. The first column is left-aligned,
// the rest right-aligned (numeric convention).
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	if len(t.Headers) > 0 {
		b.WriteString("  ")
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(h, widths[i], i == 0)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("  "))
			}
		}
		b.WriteString("\n  ")
		b.WriteString(dimStyle.Render(strings.Repeat("─", totalWidth(widths))))
		b.WriteString("\n")
	}

	for _, row := range t.Rows {
		b.WriteString("  ")
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(pad(cell, widths[i], i == 0))
			if i < numCols-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderKV renders aligned label/value pairs for summaries.
func RenderKV(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", width, p[0])))
		b.WriteString("  ")
		b.WriteString(p[1])
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, width int, left bool) string {
	if left {
		return fmt.Sprintf("%-*s", width, s)
	}
	return fmt.Sprintf("%*s", width, s)
}

func totalWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w + 2
	}
	if total >= 2 {
		total -= 2
	}
	return total
}
