package rubocop

import (
	"strings"

	"github.com/standardrb/standardgo/internal/domain"
)

// buildArgs maps a normalized config to rubocop's argv. configPath is the
// materialized config store and sidecar the JSON report file; either may be
// empty. Formatters named in goSide are rendered in-process and are not
// passed to the engine.
func buildArgs(cfg domain.Config, configPath, sidecar string, goSide map[string]domain.ReportRenderer) []string {
	opts := cfg.Options
	var args []string

	switch {
	case opts.UnsafeAutocorrect():
		args = append(args, "--autocorrect-all")
	case opts.Autocorrect:
		args = append(args, "--autocorrect")
	}
	if opts.Parallel {
		args = append(args, "--parallel")
	}
	if opts.Stderr {
		args = append(args, "--stderr")
	}
	if opts.ReadsStdin() {
		args = append(args, "--stdin", cfg.StdinPath())
	}
	if len(opts.Only) > 0 {
		args = append(args, "--only", strings.Join(opts.Only, ","))
	}
	if len(opts.Except) > 0 {
		args = append(args, "--except", strings.Join(opts.Except, ","))
	}
	if opts.Debug {
		args = append(args, "--debug")
	}
	if opts.Cache != nil {
		if *opts.Cache {
			args = append(args, "--cache", "true")
		} else {
			args = append(args, "--cache", "false")
		}
	}
	if opts.ForceExclusion {
		args = append(args, "--force-exclusion")
	}

	for _, f := range opts.Formatters {
		if _, ok := goSide[f.Name]; ok {
			continue
		}
		args = append(args, "--format", f.Name)
		if f.Output != "" {
			args = append(args, "--out", f.Output)
		}
	}
	if sidecar != "" {
		args = append(args, "--format", domain.FormatterJSON, "--out", sidecar)
	}

	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	args = append(args, opts.Extra...)

	if !opts.ReadsStdin() {
		args = append(args, cfg.Paths...)
	}
	return args
}
