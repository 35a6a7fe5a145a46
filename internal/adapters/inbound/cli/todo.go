package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/standardrb/standardgo/internal/adapters/outbound/config"
	"github.com/standardrb/standardgo/internal/domain"
)

func newTodoCmd() *cobra.Command {
	var (
		path       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "List the files " + domain.TodoFileName + " excuses",
		Long: "Print the files and cops excused by " + domain.TodoFileName + ". " +
			"Regenerate it with standardrb --generate-todo.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := config.NewTodoFile().Load(path)
			if err != nil {
				return fmt.Errorf("loading %s: %w", domain.TodoFileName, err)
			}
			out := cmd.OutOrStdout()

			if jsonOutput {
				if todo == nil {
					todo = &domain.Todo{Entries: []domain.TodoEntry{}}
				}
				data, err := json.MarshalIndent(todo, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling todo: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if todo == nil || len(todo.Entries) == 0 {
				fmt.Fprintf(out, "No %s in %s\n", domain.TodoFileName, filepath.Clean(path))
				return nil
			}
			for _, e := range todo.Entries {
				if len(e.Cops) == 0 {
					fmt.Fprintf(out, "%s: all cops\n", e.Path)
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", e.Path, strings.Join(e.Cops, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
