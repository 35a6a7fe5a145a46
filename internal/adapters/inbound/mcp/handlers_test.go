package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardrb/standardgo/internal/adapters/outbound/config"
	"github.com/standardrb/standardgo/internal/adapters/outbound/rubocop"
	"github.com/standardrb/standardgo/internal/adapters/outbound/scanner"
	"github.com/standardrb/standardgo/internal/adapters/outbound/tui"
	"github.com/standardrb/standardgo/internal/application"
	"github.com/standardrb/standardgo/internal/domain"
	"github.com/standardrb/standardgo/internal/logging"
	"github.com/standardrb/standardgo/internal/testutil/fakerubocop"
)

func TestMain(m *testing.M) {
	fakerubocop.Main()
	os.Exit(m.Run())
}

func newHandlers(t *testing.T) *handlers {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "agreeable.rb"), []byte(fakerubocop.AgreeableSource), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# readme\n"), 0644))

	logger := logging.Discard()
	engine := rubocop.New(
		rubocop.WithCommand(fakerubocop.Command()),
		rubocop.WithEnv(fakerubocop.Env(fakerubocop.ScenarioFixture)),
		rubocop.WithDir(dir),
		rubocop.WithStoreWriter(config.NewStoreWriter("")),
		rubocop.WithRenderer(domain.FormatterStandard, tui.NewStandardFormatter(false)),
		rubocop.WithLogger(logger),
	)
	settings := config.New()
	todos := config.NewTodoFile()

	return &handlers{projectPath: dir, svc: Services{
		Builder:  application.NewConfigBuilder(settings, todos, nil),
		Runner:   application.NewRunnerService(engine, logger),
		Versions: application.NewVersionService(engine, "1.2.3"),
		Settings: settings,
		Todos:    todos,
		Files:    scanner.New(),
	}}
}

func callRequest(args map[string]any) mcplib.CallToolRequest {
	req := mcplib.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcplib.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleCheck_Fix(t *testing.T) {
	h := newHandlers(t)

	result, err := h.handleCheck(context.Background(), callRequest(map[string]any{
		"source": fakerubocop.AgreeableSource,
		"path":   "lib/agreeable.rb",
		"fix":    true,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	var got checkResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &got))

	assert.Equal(t, "offenses", got.Status)
	assert.Equal(t, 1, got.ExitCode)
	assert.Equal(t, fakerubocop.AgreeableFixed, got.Source)
	assert.Contains(t, got.Report, "lib/agreeable.rb:1:5: Naming/MethodName: Use snake_case for method names.")
	assert.NotContains(t, got.Report, domain.CorrectedSourceSeparator)
	assert.Len(t, got.Offenses, 6)
}

func TestHandleCheck_MissingSource(t *testing.T) {
	h := newHandlers(t)

	result, err := h.handleCheck(context.Background(), callRequest(map[string]any{"path": "a.rb"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleCheckFiles(t *testing.T) {
	h := newHandlers(t)

	result, err := h.handleCheckFiles(context.Background(), callRequest(map[string]any{
		"paths": []any{"lib"},
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	var got checkResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &got))
	assert.Equal(t, 1, got.ExitCode)
	assert.Empty(t, got.Source)
	assert.Contains(t, got.Report, "standard: Use Ruby Standard Style")
	require.Len(t, got.Offenses, 6)
	assert.Equal(t, "Style/FrozenStringLiteralComment", got.Offenses[0].CopName)
}

func TestHandleCheckFiles_Empty(t *testing.T) {
	h := newHandlers(t)

	result, err := h.handleCheckFiles(context.Background(), callRequest(map[string]any{"paths": []any{}}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleListFiles(t *testing.T) {
	h := newHandlers(t)

	result, err := h.handleListFiles(context.Background(), callRequest(nil))
	require.NoError(t, err)

	var files []string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &files))
	assert.Equal(t, []string{"lib/agreeable.rb"}, files)

	result, err = h.handleListFiles(context.Background(), callRequest(map[string]any{"exclude": "lib, tmp"}))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", resultText(t, result))
}

func TestHandleVersion(t *testing.T) {
	h := newHandlers(t)

	result, err := h.handleVersion(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "Standard version: 1.2.3\nRuboCop version: "+fakerubocop.Version+"\n", resultText(t, result))
}

func TestConfigResource(t *testing.T) {
	h := newHandlers(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.projectPath, ".standard.yml"),
		[]byte("ruby_version: 3.2\nparallel: true\n"), 0644))

	contents, err := h.handleConfigResource(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "standard://config", text.URI)

	var settings domain.Settings
	require.NoError(t, json.Unmarshal([]byte(text.Text), &settings))
	assert.Equal(t, "3.2", settings.RubyVersion)
	assert.True(t, settings.Parallel)
}

func TestTodoResource(t *testing.T) {
	h := newHandlers(t)

	contents, err := h.handleTodoResource(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	text := contents[0].(mcplib.TextResourceContents)
	assert.JSONEq(t, `{"entries": []}`, text.Text)

	require.NoError(t, h.svc.Todos.Save(h.projectPath, domain.Todo{Entries: []domain.TodoEntry{
		{Path: "lib/agreeable.rb", Cops: []string{"Naming/MethodName"}},
	}}))

	contents, err = h.handleTodoResource(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	text = contents[0].(mcplib.TextResourceContents)
	assert.JSONEq(t, `{"entries": [{"path": "lib/agreeable.rb", "cops": ["Naming/MethodName"]}]}`, text.Text)
}
