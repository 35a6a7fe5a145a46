package application

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/standardrb/standardgo/internal/domain"
)

// BuildRequest is what the command line asked for, before settings apply.
type BuildRequest struct {
	// ProjectPath is where .standard.yml is looked up; defaults to ".".
	ProjectPath string
	// ConfigPath names a settings file to use instead of .standard.yml.
	ConfigPath string
	Paths      []string
	// Stdin holds the source read from standard input, if any.
	Stdin *string

	Fix         bool
	FixUnsafely bool
	NoFix       bool
	Format      string
	Parallel    bool
	Stderr      bool
	Only        []string
	Except      []string
	Debug       bool
	NoCache     bool
	Changed     bool
	Summary     bool
	Extra       []string

	GenerateTodo   bool
	Version        bool
	VerboseVersion bool
}

// ConfigBuilder merges command-line flags over project settings into the
// Config an invocation runs with.
type ConfigBuilder struct {
	settings domain.SettingsLoader
	todos    domain.TodoStore
	changes  domain.ChangedFiles
}

func NewConfigBuilder(settings domain.SettingsLoader, todos domain.TodoStore, changes domain.ChangedFiles) *ConfigBuilder {
	return &ConfigBuilder{settings: settings, todos: todos, changes: changes}
}

// Build returns the config for req. With Changed set and nothing changed it
// returns domain.ErrNoChangedFiles.
func (b *ConfigBuilder) Build(req BuildRequest) (domain.Config, error) {
	project := req.ProjectPath
	if project == "" {
		project = "."
	}
	root, err := filepath.Abs(project)
	if err != nil {
		return domain.Config{}, err
	}

	settings, err := b.loadSettings(root, req.ConfigPath)
	if err != nil {
		return domain.Config{}, fmt.Errorf("loading settings: %w", err)
	}
	settingsDir := root
	if settings.Path != "" {
		settingsDir = filepath.Dir(settings.Path)
	}

	opts := domain.RubocopOptions{
		Parallel: req.Parallel || settings.Parallel,
		Stderr:   req.Stderr,
		Only:     slices.Clone(req.Only),
		Except:   slices.Clone(req.Except),
		Debug:    req.Debug,
		Extra:    slices.Clone(req.Extra),

		CollectReport: req.Summary,
	}

	switch {
	case req.NoFix:
	case req.FixUnsafely:
		opts.Autocorrect = true
	case req.Fix, settings.Fix:
		opts.Autocorrect, opts.SafeAutocorrect = true, true
	}

	format := req.Format
	if format == "" {
		format = settings.Format
	}
	if format == "" {
		format = domain.FormatterStandard
	}
	opts.Formatters = []domain.Formatter{{Name: format}}

	if req.NoCache {
		off := false
		opts.Cache = &off
	}

	store := domain.ConfigStore{
		Preset:            true,
		Root:              settingsDir,
		TargetRubyVersion: settings.EffectiveRubyVersion(),
		Extends:           settings.ExtendConfig,
		Plugins:           settings.Plugins,
	}
	if settings.UsesDefaultIgnores() {
		store.Ignores = append(store.Ignores, domain.DefaultIgnores...)
	}
	store.Ignores = append(store.Ignores, settings.Ignore...)

	if !req.GenerateTodo && b.todos != nil {
		todo, err := b.todos.Load(settingsDir)
		if err != nil {
			return domain.Config{}, fmt.Errorf("loading todo file: %w", err)
		}
		if todo != nil {
			opts.TodoFile = domain.TodoFileName
			opts.TodoIgnoreFiles = todo.IgnoredFiles()
			store.Ignores = append(store.Ignores, todo.Ignores()...)
		}
	}

	paths := slices.Clone(req.Paths)
	if req.Changed {
		paths, err = b.changedPaths(project)
		if err != nil {
			return domain.Config{}, err
		}
	}

	if req.Stdin != nil {
		// Editors pipe every buffer through; excluded files stay quiet.
		opts = opts.WithStdin(*req.Stdin)
		opts.ForceExclusion = true
	}

	cfg := domain.NewConfig(paths, opts, store)
	switch {
	case req.Version:
		cfg.Runner = domain.RunnerVersion
	case req.VerboseVersion:
		cfg.Runner = domain.RunnerVerboseVersion
	case req.GenerateTodo:
		cfg.Runner = domain.RunnerGenerateTodo
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func (b *ConfigBuilder) loadSettings(root, configPath string) (domain.Settings, error) {
	if configPath != "" {
		return b.settings.LoadFile(configPath)
	}
	return b.settings.Load(root)
}

func (b *ConfigBuilder) changedPaths(project string) ([]string, error) {
	if b.changes == nil || !b.changes.IsGitRepo(project) {
		return nil, fmt.Errorf("%w: --changed needs a git repository", domain.ErrInvalidConfig)
	}
	changed, err := b.changes.ChangedFiles(project)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}
	if len(changed) == 0 {
		return nil, domain.ErrNoChangedFiles
	}
	paths := make([]string, 0, len(changed))
	for _, p := range changed {
		paths = append(paths, filepath.Join(project, p))
	}
	return paths, nil
}
