package domain

import "slices"

// DefaultRubyVersion is the target Ruby version when .standard.yml sets none.
const DefaultRubyVersion = "3.0"

// AllCops is the pseudo cop name that scopes an ignore to every cop.
const AllCops = "AllCops"

// Ignore excludes files matching Pattern from Cops, or from every cop when
// Cops is empty.
type Ignore struct {
	Pattern string   `json:"pattern"        yaml:"pattern"`
	Cops    []string `json:"cops,omitempty" yaml:"cops,omitempty"`
}

// AppliesToAllCops reports whether the ignore excludes files from every cop.
func (i Ignore) AppliesToAllCops() bool {
	return len(i.Cops) == 0 || slices.Contains(i.Cops, AllCops)
}

// DefaultIgnores are excluded unless .standard.yml sets default_ignores: false.
var DefaultIgnores = []Ignore{
	{Pattern: ".git/**/*"},
	{Pattern: "node_modules/**/*"},
	{Pattern: "vendor/**/*"},
	{Pattern: "bin/*"},
	{Pattern: "db/*schema.rb"},
	{Pattern: "tmp/**/*"},
}

// ConfigStore is the engine configuration an invocation runs under. The zero
// value means the engine's own defaults.
type ConfigStore struct {
	// Preset layers the bundled Standard rule set under everything else.
	Preset bool `json:"preset,omitempty"`
	// Root is the directory relative ignore patterns and extends resolve from.
	Root              string   `json:"root,omitempty"`
	TargetRubyVersion string   `json:"target_ruby_version,omitempty"`
	Ignores           []Ignore `json:"ignores,omitempty"`
	Extends           []string `json:"extends,omitempty"`
	Plugins           []string `json:"plugins,omitempty"`
}

// IsZero reports whether the store carries nothing beyond engine defaults.
func (s ConfigStore) IsZero() bool {
	return !s.Preset &&
		s.TargetRubyVersion == "" &&
		len(s.Ignores) == 0 &&
		len(s.Extends) == 0 &&
		len(s.Plugins) == 0
}

func (s ConfigStore) clone() ConfigStore {
	n := s
	n.Ignores = make([]Ignore, 0, len(s.Ignores))
	for _, ig := range s.Ignores {
		n.Ignores = append(n.Ignores, Ignore{Pattern: ig.Pattern, Cops: slices.Clone(ig.Cops)})
	}
	if len(s.Ignores) == 0 {
		n.Ignores = nil
	}
	n.Extends = slices.Clone(s.Extends)
	n.Plugins = slices.Clone(s.Plugins)
	return n
}
