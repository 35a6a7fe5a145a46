package domain

import (
	"context"
	"io"
)

// Streams are the writers an engine run relays its output to. A nil writer
// discards that stream.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Outcome is what the engine returns for one run. Report is set only when
// the run collected one.
type Outcome struct {
	Status ExitStatus `json:"status"`
	Report *Report    `json:"report,omitempty"`
}

// Invocation is an outcome together with both captured streams.
type Invocation struct {
	Status ExitStatus `json:"status"`
	Stdout string     `json:"stdout"`
	Stderr string     `json:"stderr"`
	Report *Report    `json:"report,omitempty"`
}

// Engine runs the external lint engine.
type Engine interface {
	// Run executes one invocation, writing the engine's output to streams.
	// Offenses and rule faults are reported through the exit status; an
	// error means the engine itself could not be run to completion.
	Run(ctx context.Context, cfg Config, streams Streams) (*Outcome, error)
	Version(ctx context.Context) (string, error)
}

// ReportRenderer renders a Report in a format the engine does not provide.
type ReportRenderer interface {
	Render(w io.Writer, report *Report, opts RubocopOptions) error
}

// StoreWriter materializes a ConfigStore as a file the engine can read.
// The returned cleanup removes it.
type StoreWriter interface {
	Write(store ConfigStore) (path string, cleanup func() error, err error)
}

// SettingsLoader loads .standard.yml.
type SettingsLoader interface {
	Load(projectPath string) (Settings, error)
	LoadFile(path string) (Settings, error)
}

// TodoStore reads and writes .standard_todo.yml.
type TodoStore interface {
	Load(projectPath string) (*Todo, error)
	Save(projectPath string, todo Todo) error
}

// ChangedFiles lists files changed in a project's working tree.
type ChangedFiles interface {
	IsGitRepo(projectPath string) bool
	ChangedFiles(projectPath string) ([]string, error)
}
