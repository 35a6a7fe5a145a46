package domain

import (
	"slices"
	"sort"
)

// TodoFileName is the file listing offenses a project is excused from while
// it migrates to Standard.
const TodoFileName = ".standard_todo.yml"

// TodoEntry lists the cops a file is temporarily excused from. An entry
// without cops excuses the file from every cop.
type TodoEntry struct {
	Path string   `json:"path"`
	Cops []string `json:"cops,omitempty"`
}

// Todo is the content of .standard_todo.yml: files being migrated to
// Standard gradually.
type Todo struct {
	Entries []TodoEntry `json:"entries"`
}

// TodoFromReport builds a todo excusing every uncorrected offense in report.
// Entries and their cops are sorted.
func TodoFromReport(report *Report) Todo {
	byFile := report.CopsByFile()
	paths := make([]string, 0, len(byFile))
	for p := range byFile {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	todo := Todo{Entries: make([]TodoEntry, 0, len(paths))}
	for _, p := range paths {
		todo.Entries = append(todo.Entries, TodoEntry{Path: p, Cops: byFile[p]})
	}
	return todo
}

// IgnoredFiles returns the excused paths in file order.
func (t Todo) IgnoredFiles() []string {
	out := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		out = append(out, e.Path)
	}
	return out
}

// Ignores converts the todo into config store ignores.
func (t Todo) Ignores() []Ignore {
	out := make([]Ignore, 0, len(t.Entries))
	for _, e := range t.Entries {
		out = append(out, Ignore{Pattern: e.Path, Cops: slices.Clone(e.Cops)})
	}
	return out
}
