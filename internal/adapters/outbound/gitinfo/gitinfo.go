package gitinfo

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/standardrb/standardgo/internal/adapters/outbound/scanner"
)

// GitInfoAdapter implements domain.ChangedFiles using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

// IsGitRepo reports whether projectPath is inside a git working tree.
func (g *GitInfoAdapter) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

// ChangedFiles returns the Ruby files under projectPath that are modified,
// added or untracked in the working tree, relative to projectPath and sorted.
// Deleted files are left out.
func (g *GitInfoAdapter) ChangedFiles(projectPath string) ([]string, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	repo, err := open(absPath)
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}

	root := wt.Filesystem.Root()
	var files []string
	for name, st := range status {
		if st.Staging == git.Deleted || st.Worktree == git.Deleted {
			continue
		}
		if st.Staging == git.Unmodified && st.Worktree == git.Unmodified {
			continue
		}
		if !scanner.IsRubyFile(name) {
			continue
		}
		rel, err := filepath.Rel(absPath, filepath.Join(root, filepath.FromSlash(name)))
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		files = append(files, filepath.ToSlash(rel))
	}
	sort.Strings(files)
	return files, nil
}

func open(projectPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
}
