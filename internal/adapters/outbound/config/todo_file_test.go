package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/standardrb/standardgo/internal/adapters/outbound/config"
	"github.com/standardrb/standardgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoFile_MissingReturnsNil(t *testing.T) {
	todo, err := appconfig.NewTodoFile().Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, todo)
}

func TestTodoFile_SaveWritesHeaderAndEntries(t *testing.T) {
	dir := t.TempDir()
	todo := domain.Todo{Entries: []domain.TodoEntry{
		{Path: "lib/a.rb", Cops: []string{"Lint/Void", "Style/Semicolon"}},
		{Path: "lib/b.rb"},
	}}

	require.NoError(t, appconfig.NewTodoFile().Save(dir, todo))

	data, err := os.ReadFile(filepath.Join(dir, appconfig.TodoFileName))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# Auto generated files with errors to ignore.\n# Remove from this list as you refactor files.\n---\n")
	assert.Contains(t, content, "ignore:\n")
	assert.Contains(t, content, "lib/a.rb:")
	assert.Contains(t, content, "- Lint/Void")
	assert.Contains(t, content, "- lib/b.rb")
}

func TestTodoFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := appconfig.NewTodoFile()
	todo := domain.Todo{Entries: []domain.TodoEntry{
		{Path: "lib/a.rb", Cops: []string{"Lint/Void"}},
		{Path: "lib/b.rb"},
	}}
	require.NoError(t, store.Save(dir, todo))

	got, err := store.Load(dir)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, todo, *got)
}

func TestTodoFile_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, appconfig.TodoFileName), []byte("ignore: {{"), 0644))

	_, err := appconfig.NewTodoFile().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .standard_todo.yml")
}
