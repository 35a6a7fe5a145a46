package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/standardrb/standardgo/internal/domain"
)

// TodoService writes .standard_todo.yml excusing every offense the engine
// currently reports, so a project can adopt Standard file by file.
type TodoService struct {
	runner *RunnerService
	todos  domain.TodoStore
	logger *slog.Logger
}

func NewTodoService(runner *RunnerService, todos domain.TodoStore, logger *slog.Logger) *TodoService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoService{runner: runner, todos: todos, logger: logger}
}

// Generate lints cfg's targets without correcting anything and saves the
// resulting todo next to the project settings. Engine diagnostics go to
// stderr; the report itself is not printed.
func (s *TodoService) Generate(ctx context.Context, cfg domain.Config, stderr io.Writer) (domain.Todo, error) {
	run := cfg.Clone()
	run.Runner = domain.RunnerRubocop
	run.Options.Autocorrect = false
	run.Options.SafeAutocorrect = false
	run.Options.Formatters = []domain.Formatter{{Name: domain.FormatterQuiet}}
	run.Options.CollectReport = true
	run.Options.TodoFile = ""
	run.Options.TodoIgnoreFiles = nil

	outcome, err := s.runner.Call(ctx, run, domain.Streams{Stderr: stderr})
	if err != nil {
		return domain.Todo{}, err
	}
	if outcome.Report == nil {
		return domain.Todo{}, fmt.Errorf("%w: no report (exit status %s)", domain.ErrEngine, outcome.Status)
	}

	todo := domain.TodoFromReport(rebase(outcome.Report, cfg.Store.Root))
	if err := s.todos.Save(cfg.Store.Root, todo); err != nil {
		return domain.Todo{}, fmt.Errorf("saving todo file: %w", err)
	}
	s.logger.Debug("todo.saved", "root", cfg.Store.Root, "files", len(todo.Entries))
	return todo, nil
}

// rebase returns report with file paths made relative to root, the
// directory todo ignores resolve from on later runs.
func rebase(report *domain.Report, root string) *domain.Report {
	if root == "" {
		return report
	}
	out := *report
	out.Files = make([]domain.FileReport, len(report.Files))
	for i, f := range report.Files {
		path := f.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(report.Dir, path)
		}
		if rel, err := filepath.Rel(root, path); err == nil {
			f.Path = filepath.ToSlash(rel)
		}
		out.Files[i] = f
	}
	return &out
}
