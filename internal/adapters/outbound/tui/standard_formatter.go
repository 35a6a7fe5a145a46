package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/standardrb/standardgo/internal/domain"
)

const greeting = "standard: Use Ruby Standard Style (https://github.com/standardrb/standard)"

var (
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	danger  = lipgloss.Color("#EF4444") // red
	success = lipgloss.Color("#22C55E") // green
	dim     = lipgloss.Color("#6B7280") // muted gray

	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	offenseStyle  = lipgloss.NewStyle().Foreground(danger)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	greetingStyle = lipgloss.NewStyle().Foreground(danger)
)

// StandardFormatter renders a report the way standardrb prints it:
// a greeting, one line per remaining offense, then a hint to run the fixer.
// It implements domain.ReportRenderer.
type StandardFormatter struct {
	colored bool
}

// NewStandardFormatter creates a StandardFormatter. colored enables ANSI
// styling and should only be set when writing to a terminal.
func NewStandardFormatter(colored bool) *StandardFormatter {
	return &StandardFormatter{colored: colored}
}

func (f *StandardFormatter) Render(w io.Writer, report *domain.Report, opts domain.RubocopOptions) error {
	var b strings.Builder

	if opts.TodoFile != "" && len(opts.TodoIgnoreFiles) > 0 {
		b.WriteString(f.paint(warnStyle, fmt.Sprintf(
			"WARNING: this project is being migrated to standard gradually via `%s` and is ignoring these files:",
			opts.TodoFile)))
		b.WriteString("\n")
		for _, path := range opts.TodoIgnoreFiles {
			b.WriteString(f.paint(warnStyle, "  "+path))
			b.WriteString("\n")
		}
	}

	greeted := false
	for _, file := range report.Files {
		uncorrected := file.Uncorrected()
		if len(uncorrected) == 0 {
			continue
		}
		if !greeted {
			b.WriteString(f.paint(greetingStyle, greeting))
			b.WriteString("\n")
			greeted = true
		}
		for _, o := range uncorrected {
			location := fmt.Sprintf("  %s:%d:%d:", file.Path, o.Line(), o.Column())
			b.WriteString(f.paint(dimStyle, location))
			b.WriteString(" ")
			b.WriteString(f.paint(offenseStyle, flatten(o.Message)))
			b.WriteString("\n")
		}
	}

	if n := report.CorrectableCount(); n > 0 {
		mode := "fix"
		if opts.Autocorrect && opts.SafeAutocorrect {
			mode = "fix-unsafely"
		}
		b.WriteString("\n")
		b.WriteString(f.paint(warnStyle, fmt.Sprintf(
			"standard: Run `standardrb --%s` to fix up %d %s.", mode, n, pluralize(n, "problem"))))
		b.WriteString("\n")
	}

	if opts.TodoFile != "" && len(opts.TodoIgnoreFiles) == 0 {
		b.WriteString(f.paint(passStyle, fmt.Sprintf(
			"Congratulations, you've successfully migrated this project to Standard! Delete `%s` in celebration.",
			opts.TodoFile)))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *StandardFormatter) paint(style lipgloss.Style, s string) string {
	if !f.colored {
		return s
	}
	return style.Render(s)
}

// flatten puts a multi-line engine message on one line.
func flatten(msg string) string {
	return strings.TrimSpace(strings.ReplaceAll(msg, "\n", " "))
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
