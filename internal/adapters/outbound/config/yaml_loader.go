package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/standardrb/standardgo/internal/domain"
	"gopkg.in/yaml.v3"
)

// SettingsFile is the project settings file name.
const SettingsFile = ".standard.yml"

// YAMLLoader implements domain.SettingsLoader by reading .standard.yml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// settingsFile mirrors .standard.yml. ruby_version is kept as a node so 3.10
// is not read back as 3.1; ignore entries are either a pattern or a pattern
// mapped to the cops it is excused from.
type settingsFile struct {
	Fix            bool        `yaml:"fix"`
	Format         string      `yaml:"format"`
	Parallel       bool        `yaml:"parallel"`
	RubyVersion    yaml.Node   `yaml:"ruby_version"`
	DefaultIgnores *bool       `yaml:"default_ignores"`
	Ignore         []yaml.Node `yaml:"ignore"`
	ExtendConfig   []string    `yaml:"extend_config"`
	Plugins        []yaml.Node `yaml:"plugins"`
}

// Load finds .standard.yml in projectPath or the nearest parent directory.
// Returns DefaultSettings if there is none.
func (l *YAMLLoader) Load(projectPath string) (domain.Settings, error) {
	dir, err := filepath.Abs(projectPath)
	if err != nil {
		return domain.Settings{}, err
	}
	for {
		path := filepath.Join(dir, SettingsFile)
		if _, err := os.Stat(path); err == nil {
			return l.LoadFile(path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return domain.Settings{}, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return domain.DefaultSettings(), nil
		}
		dir = parent
	}
}

// LoadFile reads settings from an explicit path, which must exist.
func (l *YAMLLoader) LoadFile(path string) (domain.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Settings{}, err
	}

	var raw settingsFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Settings{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	settings, err := raw.toDomain()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	settings.Path = path

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return settings, nil
}

func (f settingsFile) toDomain() (domain.Settings, error) {
	s := domain.Settings{
		Fix:            f.Fix,
		Format:         f.Format,
		Parallel:       f.Parallel,
		DefaultIgnores: f.DefaultIgnores,
		ExtendConfig:   f.ExtendConfig,
	}

	if f.RubyVersion.Kind == yaml.ScalarNode {
		s.RubyVersion = f.RubyVersion.Value
	}

	ignores, err := decodeIgnores(f.Ignore)
	if err != nil {
		return domain.Settings{}, err
	}
	s.Ignore = ignores

	for i, n := range f.Plugins {
		name, err := pluginName(n)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("plugins[%d]: %w", i, err)
		}
		s.Plugins = append(s.Plugins, name)
	}
	return s, nil
}

func decodeIgnores(nodes []yaml.Node) ([]domain.Ignore, error) {
	var out []domain.Ignore
	for i, n := range nodes {
		switch {
		case n.Kind == yaml.ScalarNode:
			out = append(out, domain.Ignore{Pattern: n.Value})
		case n.Kind == yaml.MappingNode && len(n.Content) == 2:
			var cops []string
			if err := n.Content[1].Decode(&cops); err != nil {
				return nil, fmt.Errorf("ignore[%d]: cops for %q must be a list: %w", i, n.Content[0].Value, err)
			}
			out = append(out, domain.Ignore{Pattern: n.Content[0].Value, Cops: cops})
		default:
			return nil, fmt.Errorf("ignore[%d]: expected a pattern or a pattern mapped to a list of cops", i)
		}
	}
	return out, nil
}

// pluginName accepts "name" or a single-key mapping {name: {...}}.
func pluginName(n yaml.Node) (string, error) {
	switch {
	case n.Kind == yaml.ScalarNode:
		return n.Value, nil
	case n.Kind == yaml.MappingNode && len(n.Content) == 2:
		return n.Content[0].Value, nil
	default:
		return "", errors.New("expected a plugin name")
	}
}
