package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/standardrb/standardgo/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed preset/standard.yml
var presetYAML []byte

// StoreWriter implements domain.StoreWriter by rendering the store as a
// rubocop config file in a temporary directory.
type StoreWriter struct {
	dir string
}

// NewStoreWriter creates a StoreWriter writing to dir, or the system temp
// directory when dir is empty.
func NewStoreWriter(dir string) *StoreWriter {
	return &StoreWriter{dir: dir}
}

// Write renders store to a new file and returns its path and a cleanup
// that removes it.
func (w *StoreWriter) Write(store domain.ConfigStore) (string, func() error, error) {
	data, err := Render(store)
	if err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp(w.dir, "standardrb-*.yml")
	if err != nil {
		return "", nil, fmt.Errorf("creating engine config: %w", err)
	}
	path := f.Name()
	cleanup := func() error { return os.Remove(path) }

	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = cleanup()
		return "", nil, fmt.Errorf("writing engine config: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = cleanup()
		return "", nil, fmt.Errorf("writing engine config: %w", err)
	}
	return path, cleanup, nil
}

// Render returns the rubocop config for store. Layers apply in order:
// the preset, target Ruby version, extends and plugins, then ignores.
func Render(store domain.ConfigStore) ([]byte, error) {
	doc := map[string]any{}
	if store.Preset {
		if err := yaml.Unmarshal(presetYAML, &doc); err != nil {
			return nil, fmt.Errorf("parsing preset: %w", err)
		}
	}

	if store.TargetRubyVersion != "" {
		section(doc, domain.AllCops)["TargetRubyVersion"] = &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!float",
			Value: majorMinor(store.TargetRubyVersion),
		}
	}

	if len(store.Extends) > 0 {
		inherit := make([]any, 0, len(store.Extends))
		for _, e := range store.Extends {
			inherit = append(inherit, absolute(store.Root, e))
		}
		doc["inherit_from"] = inherit
	}
	if len(store.Plugins) > 0 {
		plugins := make([]any, 0, len(store.Plugins))
		for _, p := range store.Plugins {
			plugins = append(plugins, p)
		}
		doc["plugins"] = plugins
	}

	for _, ig := range store.Ignores {
		pattern := absolute(store.Root, ig.Pattern)
		if ig.AppliesToAllCops() {
			appendList(section(doc, domain.AllCops), "Exclude", pattern)
			continue
		}
		for _, cop := range ig.Cops {
			appendList(section(doc, cop), "Exclude", pattern)
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding engine config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding engine config: %w", err)
	}
	return buf.Bytes(), nil
}

// section returns doc[key] as a mapping, creating it if needed.
func section(doc map[string]any, key string) map[string]any {
	if m, ok := doc[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	doc[key] = m
	return m
}

func appendList(m map[string]any, key string, values ...string) {
	list, _ := m[key].([]any)
	for _, v := range values {
		list = append(list, v)
	}
	m[key] = list
}

func absolute(root, pattern string) string {
	if root == "" || filepath.IsAbs(pattern) {
		return pattern
	}
	return filepath.Join(root, pattern)
}

// majorMinor trims a Ruby version to the precision rubocop accepts.
func majorMinor(version string) string {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}
