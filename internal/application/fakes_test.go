package application_test

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/standardrb/standardgo/internal/domain"
	"github.com/standardrb/standardgo/internal/testutil/fakerubocop"
)

func TestMain(m *testing.M) {
	fakerubocop.Main()
	os.Exit(m.Run())
}

// recordingEngine is a domain.Engine that records the configs it receives
// and replays canned output.
type recordingEngine struct {
	calls   []domain.Config
	outcome domain.Outcome
	stdout  string
	stderr  string
	err     error
	version string
}

func (e *recordingEngine) Run(_ context.Context, cfg domain.Config, streams domain.Streams) (*domain.Outcome, error) {
	e.calls = append(e.calls, cfg)
	if e.err != nil {
		return nil, e.err
	}
	if streams.Stdout != nil {
		_, _ = io.WriteString(streams.Stdout, e.stdout)
	}
	if streams.Stderr != nil {
		_, _ = io.WriteString(streams.Stderr, e.stderr)
	}
	outcome := e.outcome
	return &outcome, nil
}

func (e *recordingEngine) Version(context.Context) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.version, nil
}

type stubSettings struct {
	settings   domain.Settings
	err        error
	loadedFrom string
}

func (s *stubSettings) Load(projectPath string) (domain.Settings, error) {
	s.loadedFrom = projectPath
	return s.settings, s.err
}

func (s *stubSettings) LoadFile(path string) (domain.Settings, error) {
	s.loadedFrom = path
	return s.settings, s.err
}

type memTodos struct {
	todo    *domain.Todo
	saved   *domain.Todo
	savedAt string
	err     error
}

func (m *memTodos) Load(string) (*domain.Todo, error) {
	return m.todo, m.err
}

func (m *memTodos) Save(projectPath string, todo domain.Todo) error {
	if m.err != nil {
		return m.err
	}
	m.saved = &todo
	m.savedAt = projectPath
	return nil
}

type stubChanges struct {
	files  []string
	err    error
	notGit bool
}

func (s stubChanges) IsGitRepo(string) bool {
	return !s.notGit
}

func (s stubChanges) ChangedFiles(string) ([]string, error) {
	return s.files, s.err
}
