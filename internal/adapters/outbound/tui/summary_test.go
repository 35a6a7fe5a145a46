package tui_test

import (
	"testing"

	"github.com/standardrb/standardgo/internal/adapters/outbound/tui"
	"github.com/standardrb/standardgo/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHumanizeCop(t *testing.T) {
	assert.Equal(t, "Style: Frozen String Literal Comment", tui.HumanizeCop("Style/FrozenStringLiteralComment"))
	assert.Equal(t, "Naming: Method Name", tui.HumanizeCop("Naming/MethodName"))
	assert.Equal(t, "Syntax", tui.HumanizeCop("Syntax"))
}

func TestRenderSummary_Failed(t *testing.T) {
	report := agreeableReport()
	report.Files = append(report.Files, domain.FileReport{Path: "lib/other.rb", Offenses: []domain.Offense{
		offense("Naming/MethodName", "bad name", 3, 5, false, false),
	}})
	report.Summary.InspectedFileCount = 3

	got := tui.RenderSummary(report, false)

	assert.Equal(t, "standard: failed, 3 problems in 2 of 3 files, 1 fixed\n"+
		"  Naming: Method Name                   2\n"+
		"  Style: Frozen String Literal Comment  1\n", got)
}

func TestRenderSummary_Passed(t *testing.T) {
	report := &domain.Report{
		Files: []domain.FileReport{{Path: "a.rb", Offenses: []domain.Offense{
			offense("Layout/TrailingWhitespace", "x", 1, 9, true, true),
		}}},
		Summary: domain.ReportSummary{InspectedFileCount: 1},
	}

	assert.Equal(t, "standard: passed, 1 file inspected, 1 problem fixed\n", tui.RenderSummary(report, false))
}
