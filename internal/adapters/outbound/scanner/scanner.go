package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"tmp":          true,
	".bundle":      true,
}

var rubyExts = map[string]bool{
	".rb":      true,
	".rake":    true,
	".gemspec": true,
	".ru":      true,
	".ruby":    true,
}

var rubyNames = map[string]bool{
	"Gemfile":     true,
	"Rakefile":    true,
	"Guardfile":   true,
	"Capfile":     true,
	".pryrc":      true,
	".irbrc":      true,
	"Thorfile":    true,
	"Vagrantfile": true,
}

// IsRubyFile reports whether path names a file the engine inspects by default.
func IsRubyFile(path string) bool {
	name := filepath.Base(path)
	return rubyNames[name] || rubyExts[strings.ToLower(filepath.Ext(name))]
}

// FileScanner finds Ruby sources by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan returns the Ruby files under projectPath, relative to it, skipping
// dependency and VCS directories plus any extra directory names given.
func (s *FileScanner) Scan(projectPath string, excludeDirs ...string) ([]string, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	// Merge extra excludes with built-in skip dirs.
	extraSkip := make(map[string]bool, len(excludeDirs))
	for _, p := range excludeDirs {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	var files []string
	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != absPath && (skipDirs[d.Name()] || extraSkip[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}

		if IsRubyFile(d.Name()) {
			relPath, _ := filepath.Rel(absPath, path)
			files = append(files, filepath.ToSlash(relPath))
		}
		return nil
	})

	return files, err
}
