package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"
	"github.com/standardrb/standardgo/internal/domain"
)

var summaryLabelStyle = lipgloss.NewStyle().Foreground(dim)

// RenderSummary returns a pass/fail line followed by the remaining offense
// count per cop, most frequent first.
func RenderSummary(report *domain.Report, colored bool) string {
	paint := func(style lipgloss.Style, s string) string {
		if !colored {
			return s
		}
		return style.Render(s)
	}

	var b strings.Builder
	files := report.Summary.InspectedFileCount
	remaining := report.UncorrectedCount()

	if remaining == 0 {
		line := fmt.Sprintf("standard: passed, %d %s inspected", files, pluralize(files, "file"))
		if n := report.CorrectedCount(); n > 0 {
			line += fmt.Sprintf(", %d %s fixed", n, pluralize(n, "problem"))
		}
		b.WriteString(paint(passStyle, line))
		b.WriteString("\n")
		return b.String()
	}

	offending := len(report.OffendingFiles())
	line := fmt.Sprintf("standard: failed, %d %s in %d of %d %s",
		remaining, pluralize(remaining, "problem"), offending, files, pluralize(files, "file"))
	if n := report.CorrectedCount(); n > 0 {
		line += fmt.Sprintf(", %d fixed", n)
	}
	b.WriteString(paint(failStyle, line))
	b.WriteString("\n")

	counts := report.CopCounts()
	cops := make([]string, 0, len(counts))
	width := 0
	for cop := range counts {
		cops = append(cops, cop)
		width = max(width, len(HumanizeCop(cop)))
	}
	sort.Slice(cops, func(i, j int) bool {
		if counts[cops[i]] != counts[cops[j]] {
			return counts[cops[i]] > counts[cops[j]]
		}
		return cops[i] < cops[j]
	})

	for _, cop := range cops {
		label := fmt.Sprintf("  %-*s", width, HumanizeCop(cop))
		b.WriteString(paint(summaryLabelStyle, label))
		fmt.Fprintf(&b, "  %d\n", counts[cop])
	}
	return b.String()
}

// HumanizeCop turns "Style/FrozenStringLiteralComment" into
// "Style: Frozen String Literal Comment".
func HumanizeCop(cop string) string {
	dept, name, found := strings.Cut(cop, "/")
	if !found {
		return strings.Join(camelcase.Split(cop), " ")
	}
	return dept + ": " + strings.Join(camelcase.Split(name), " ")
}
