package domain

import "slices"

// Severity is an engine offense severity.
type Severity string

const (
	SeverityInfo       Severity = "info"
	SeverityRefactor   Severity = "refactor"
	SeverityConvention Severity = "convention"
	SeverityWarning    Severity = "warning"
	SeverityError      Severity = "error"
	SeverityFatal      Severity = "fatal"
)

// Code returns the one-letter code the engine prints in text reports.
func (s Severity) Code() string {
	switch s {
	case SeverityInfo:
		return "I"
	case SeverityRefactor:
		return "R"
	case SeverityConvention:
		return "C"
	case SeverityWarning:
		return "W"
	case SeverityError:
		return "E"
	case SeverityFatal:
		return "F"
	default:
		return "?"
	}
}

// Location is the 1-based source range of an offense.
type Location struct {
	StartLine   int `json:"start_line"`
	StartColumn int `json:"start_column"`
	LastLine    int `json:"last_line"`
	LastColumn  int `json:"last_column"`
	Length      int `json:"length"`
	Line        int `json:"line"`
	Column      int `json:"column"`
}

// Offense is one reported violation of a rule.
type Offense struct {
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	CopName     string   `json:"cop_name"`
	Corrected   bool     `json:"corrected"`
	Correctable bool     `json:"correctable"`
	Location    Location `json:"location"`
}

// Line returns the offense's starting line.
func (o Offense) Line() int {
	if o.Location.StartLine != 0 {
		return o.Location.StartLine
	}
	return o.Location.Line
}

// Column returns the offense's 1-based starting column.
func (o Offense) Column() int {
	if o.Location.StartColumn != 0 {
		return o.Location.StartColumn
	}
	return o.Location.Column
}

// FileReport holds the offenses found in one file.
type FileReport struct {
	Path     string    `json:"path"`
	Offenses []Offense `json:"offenses"`
}

// Uncorrected returns the offenses the engine left in place.
func (f FileReport) Uncorrected() []Offense {
	var out []Offense
	for _, o := range f.Offenses {
		if !o.Corrected {
			out = append(out, o)
		}
	}
	return out
}

// ReportMetadata describes the engine that produced a report.
type ReportMetadata struct {
	RubocopVersion string `json:"rubocop_version"`
	RubyEngine     string `json:"ruby_engine"`
	RubyVersion    string `json:"ruby_version"`
	RubyPlatform   string `json:"ruby_platform"`
}

// ReportSummary carries the engine's totals.
type ReportSummary struct {
	OffenseCount       int `json:"offense_count"`
	TargetFileCount    int `json:"target_file_count"`
	InspectedFileCount int `json:"inspected_file_count"`
}

// Report is the structured result of one engine run.
type Report struct {
	Metadata ReportMetadata `json:"metadata"`
	Files    []FileReport   `json:"files"`
	Summary  ReportSummary  `json:"summary"`

	// Dir is the directory relative file paths were reported from.
	Dir string `json:"-"`
}

// OffenseCount returns the number of offenses across all files.
func (r *Report) OffenseCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Offenses)
	}
	return n
}

// CorrectedCount returns the number of offenses the engine corrected.
func (r *Report) CorrectedCount() int {
	return r.count(func(o Offense) bool { return o.Corrected })
}

// CorrectableCount returns the number of uncorrected offenses that could be
// corrected automatically.
func (r *Report) CorrectableCount() int {
	return r.count(func(o Offense) bool { return o.Correctable && !o.Corrected })
}

// UncorrectedCount returns the number of offenses left in place.
func (r *Report) UncorrectedCount() int {
	return r.count(func(o Offense) bool { return !o.Corrected })
}

func (r *Report) count(pred func(Offense) bool) int {
	n := 0
	for _, f := range r.Files {
		for _, o := range f.Offenses {
			if pred(o) {
				n++
			}
		}
	}
	return n
}

// OffendingFiles returns the files with at least one uncorrected offense.
func (r *Report) OffendingFiles() []FileReport {
	var out []FileReport
	for _, f := range r.Files {
		if len(f.Uncorrected()) > 0 {
			out = append(out, f)
		}
	}
	return out
}

// CopCounts returns uncorrected offense counts per cop, keyed by cop name.
func (r *Report) CopCounts() map[string]int {
	counts := make(map[string]int)
	for _, f := range r.Files {
		for _, o := range f.Uncorrected() {
			counts[o.CopName]++
		}
	}
	return counts
}

// CopsByFile returns, per file with uncorrected offenses, the sorted set of
// cops that flagged it.
func (r *Report) CopsByFile() map[string][]string {
	out := make(map[string][]string)
	for _, f := range r.Files {
		for _, o := range f.Uncorrected() {
			if !slices.Contains(out[f.Path], o.CopName) {
				out[f.Path] = append(out[f.Path], o.CopName)
			}
		}
	}
	for path := range out {
		slices.Sort(out[path])
	}
	return out
}
