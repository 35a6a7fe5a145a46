package domain

import (
	"fmt"
	"slices"
)

// RunnerKind selects which runner services an invocation.
type RunnerKind string

const (
	RunnerRubocop        RunnerKind = "rubocop"
	RunnerVersion        RunnerKind = "version"
	RunnerVerboseVersion RunnerKind = "verbose_version"
	RunnerGenerateTodo   RunnerKind = "genignore"
)

// ValidRunners enumerates all recognized runner kinds.
var ValidRunners = []RunnerKind{
	RunnerRubocop,
	RunnerVersion,
	RunnerVerboseVersion,
	RunnerGenerateTodo,
}

// Config describes one invocation of the lint engine: which runner handles
// it, what it targets, the engine options and the engine's config store.
// A Config is a value. Normalize and Clone return copies and never touch
// the receiver's slices.
type Config struct {
	Runner  RunnerKind     `json:"runner"`
	Paths   []string       `json:"paths"`
	Options RubocopOptions `json:"options"`
	Store   ConfigStore    `json:"store"`
}

// NewConfig returns a rubocop-runner Config over paths.
func NewConfig(paths []string, opts RubocopOptions, store ConfigStore) Config {
	return Config{
		Runner:  RunnerRubocop,
		Paths:   slices.Clone(paths),
		Options: opts.clone(),
		Store:   store.clone(),
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	return Config{
		Runner:  c.Runner,
		Paths:   slices.Clone(c.Paths),
		Options: c.Options.clone(),
		Store:   c.Store.clone(),
	}
}

// Normalize returns a copy of c with the options the engine would reject for
// this invocation mode removed. Parallel workers need a file work list, so
// parallel is dropped when the source comes from stdin. Everything else
// passes through unchanged.
func (c Config) Normalize() Config {
	n := c.Clone()
	if n.Runner == "" {
		n.Runner = RunnerRubocop
	}
	if n.Options.ReadsStdin() {
		n.Options.Parallel = false
	}
	return n
}

// StdinPath is the display path the engine reports stdin content under.
func (c Config) StdinPath() string {
	if !c.Options.ReadsStdin() || len(c.Paths) == 0 {
		return ""
	}
	return c.Paths[0]
}

// Validate checks the config for combinations that cannot be normalized away.
func (c Config) Validate() error {
	if c.Runner != "" && !slices.Contains(ValidRunners, c.Runner) {
		return fmt.Errorf("%w: unknown runner %q", ErrInvalidConfig, c.Runner)
	}

	if c.Options.ReadsStdin() && len(c.Paths) != 1 {
		return fmt.Errorf("%w: --stdin needs exactly one path to report the source as (got %d)", ErrInvalidConfig, len(c.Paths))
	}

	for i, f := range c.Options.Formatters {
		if f.Name == "" {
			return fmt.Errorf("%w: formatters[%d] has no name", ErrInvalidConfig, i)
		}
	}

	return nil
}
