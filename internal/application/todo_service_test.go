package application_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/standardrb/standardgo/internal/application"
	"github.com/standardrb/standardgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoService_Generate(t *testing.T) {
	report := &domain.Report{Files: []domain.FileReport{
		{Path: "lib/b.rb", Offenses: []domain.Offense{{CopName: "Style/Semicolon"}, {CopName: "Lint/Void"}}},
		{Path: "lib/a.rb", Offenses: []domain.Offense{{CopName: "Naming/MethodName"}, {CopName: "Layout/TrailingWhitespace", Corrected: true}}},
	}}
	engine := &recordingEngine{outcome: domain.Outcome{Status: domain.ExitOffenses, Report: report}, stdout: "noise"}
	todos := &memTodos{}
	svc := application.NewTodoService(application.NewRunnerService(engine, nil), todos, nil)

	cfg := domain.NewConfig([]string{"lib"}, domain.RubocopOptions{
		Autocorrect:     true,
		SafeAutocorrect: true,
		Formatters:      []domain.Formatter{{Name: domain.FormatterStandard}},
		TodoFile:        domain.TodoFileName,
	}, domain.ConfigStore{Root: "/project"})
	cfg.Runner = domain.RunnerGenerateTodo

	var stderr bytes.Buffer
	todo, err := svc.Generate(context.Background(), cfg, &stderr)
	require.NoError(t, err)

	assert.Equal(t, []domain.TodoEntry{
		{Path: "lib/a.rb", Cops: []string{"Naming/MethodName"}},
		{Path: "lib/b.rb", Cops: []string{"Lint/Void", "Style/Semicolon"}},
	}, todo.Entries)
	require.NotNil(t, todos.saved)
	assert.Equal(t, todo, *todos.saved)
	assert.Equal(t, "/project", todos.savedAt)

	require.Len(t, engine.calls, 1)
	run := engine.calls[0]
	assert.Equal(t, domain.RunnerRubocop, run.Runner)
	assert.False(t, run.Options.Autocorrect, "todo generation never corrects")
	assert.True(t, run.Options.CollectReport)
	assert.Equal(t, []domain.Formatter{{Name: domain.FormatterQuiet}}, run.Options.Formatters)
	assert.Empty(t, run.Options.TodoFile)
}

func TestTodoService_NoReport(t *testing.T) {
	engine := &recordingEngine{outcome: domain.Outcome{Status: domain.ExitError}}
	todos := &memTodos{}
	svc := application.NewTodoService(application.NewRunnerService(engine, nil), todos, nil)

	_, err := svc.Generate(context.Background(), domain.NewConfig([]string{"lib"}, domain.RubocopOptions{}, domain.ConfigStore{}), nil)

	assert.ErrorIs(t, err, domain.ErrEngine)
	assert.Nil(t, todos.saved)
}

func TestTodoService_PathsRelativeToSettingsDir(t *testing.T) {
	report := &domain.Report{Dir: "/work", Files: []domain.FileReport{
		{Path: "proj/lib/a.rb", Offenses: []domain.Offense{{CopName: "Style/Semicolon"}}},
		{Path: "/work/proj/lib/b.rb", Offenses: []domain.Offense{{CopName: "Lint/Void"}}},
	}}
	engine := &recordingEngine{outcome: domain.Outcome{Status: domain.ExitOffenses, Report: report}}
	todos := &memTodos{}
	svc := application.NewTodoService(application.NewRunnerService(engine, nil), todos, nil)

	cfg := domain.NewConfig([]string{"proj/lib"}, domain.RubocopOptions{}, domain.ConfigStore{Root: "/work/proj"})
	todo, err := svc.Generate(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, []domain.TodoEntry{
		{Path: "lib/a.rb", Cops: []string{"Style/Semicolon"}},
		{Path: "lib/b.rb", Cops: []string{"Lint/Void"}},
	}, todo.Entries)
	assert.Equal(t, "proj/lib/a.rb", report.Files[0].Path, "engine report is left alone")
}
