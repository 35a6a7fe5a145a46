package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/standardrb/standardgo/internal/domain"
	"gopkg.in/yaml.v3"
)

// TodoFileName is where the todo is kept, relative to the project.
const TodoFileName = domain.TodoFileName

const todoHeader = "# Auto generated files with errors to ignore.\n# Remove from this list as you refactor files.\n---\n"

// TodoFile implements domain.TodoStore.
type TodoFile struct{}

// NewTodoFile creates a TodoFile.
func NewTodoFile() *TodoFile { return &TodoFile{} }

type todoDoc struct {
	Ignore []yaml.Node `yaml:"ignore"`
}

// Load reads the todo file in projectPath. It returns nil when there is none.
func (t *TodoFile) Load(projectPath string) (*domain.Todo, error) {
	path := filepath.Join(projectPath, TodoFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var doc todoDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", TodoFileName, err)
	}
	ignores, err := decodeIgnores(doc.Ignore)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", TodoFileName, err)
	}

	todo := &domain.Todo{Entries: make([]domain.TodoEntry, 0, len(ignores))}
	for _, ig := range ignores {
		todo.Entries = append(todo.Entries, domain.TodoEntry{Path: ig.Pattern, Cops: ig.Cops})
	}
	return todo, nil
}

// Save writes todo to the todo file in projectPath, replacing it.
func (t *TodoFile) Save(projectPath string, todo domain.Todo) error {
	entries := make([]any, 0, len(todo.Entries))
	for _, e := range todo.Entries {
		if len(e.Cops) == 0 {
			entries = append(entries, e.Path)
			continue
		}
		entries = append(entries, map[string][]string{e.Path: e.Cops})
	}

	var buf bytes.Buffer
	buf.WriteString(todoHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"ignore": entries}); err != nil {
		return fmt.Errorf("encoding %s: %w", TodoFileName, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding %s: %w", TodoFileName, err)
	}

	return os.WriteFile(filepath.Join(projectPath, TodoFileName), buf.Bytes(), 0644)
}
