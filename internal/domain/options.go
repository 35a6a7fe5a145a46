package domain

import "slices"

// Formatter names understood by the engine, plus the Go-side Standard formatter.
const (
	FormatterStandard = "standard"
	FormatterQuiet    = "quiet"
	FormatterProgress = "progress"
	FormatterSimple   = "simple"
	FormatterJSON     = "json"
	FormatterFiles    = "files"
)

// CorrectedSourceSeparator is the line the engine prints on the report
// channel before the corrected source of a stdin run.
const CorrectedSourceSeparator = "===================="

// Formatter selects a report format and where it is written. An empty Output
// means the engine's report channel (stdout, or stderr with Stderr set).
type Formatter struct {
	Name   string `json:"name"             yaml:"name"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

// RubocopOptions is the option bag forwarded to the engine.
type RubocopOptions struct {
	Formatters      []Formatter `json:"formatters,omitempty"`
	Autocorrect     bool        `json:"autocorrect,omitempty"`
	SafeAutocorrect bool        `json:"safe_autocorrect,omitempty"`
	Parallel        bool        `json:"parallel,omitempty"`
	Stderr          bool        `json:"stderr,omitempty"`
	// Stdin holds the source to lint when reading standard input; nil means
	// the engine lints the configured paths.
	Stdin          *string  `json:"stdin,omitempty"`
	Only           []string `json:"only,omitempty"`
	Except         []string `json:"except,omitempty"`
	Debug          bool     `json:"debug,omitempty"`
	Cache          *bool    `json:"cache,omitempty"`
	ForceExclusion bool     `json:"force_exclusion,omitempty"`

	TodoFile        string   `json:"todo_file,omitempty"`
	TodoIgnoreFiles []string `json:"todo_ignore_files,omitempty"`

	// CollectReport asks the engine adapter for a structured Report in
	// addition to whatever the formatters print.
	CollectReport bool `json:"collect_report,omitempty"`

	// Extra is appended to the engine's argv verbatim.
	Extra []string `json:"extra,omitempty"`
}

// ReadsStdin reports whether the engine reads its source from stdin.
func (o RubocopOptions) ReadsStdin() bool {
	return o.Stdin != nil
}

// UnsafeAutocorrect reports whether corrections that may change behavior are enabled.
func (o RubocopOptions) UnsafeAutocorrect() bool {
	return o.Autocorrect && !o.SafeAutocorrect
}

// WithStdin returns a copy of o reading source from stdin.
func (o RubocopOptions) WithStdin(source string) RubocopOptions {
	n := o.clone()
	n.Stdin = &source
	return n
}

func (o RubocopOptions) clone() RubocopOptions {
	n := o
	n.Formatters = slices.Clone(o.Formatters)
	n.Only = slices.Clone(o.Only)
	n.Except = slices.Clone(o.Except)
	n.TodoIgnoreFiles = slices.Clone(o.TodoIgnoreFiles)
	n.Extra = slices.Clone(o.Extra)
	if o.Stdin != nil {
		s := *o.Stdin
		n.Stdin = &s
	}
	if o.Cache != nil {
		c := *o.Cache
		n.Cache = &c
	}
	return n
}
