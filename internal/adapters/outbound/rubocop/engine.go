// Package rubocop runs the rubocop executable as the lint engine.
package rubocop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/standardrb/standardgo/internal/domain"
)

// EnvCommand overrides the command used to start rubocop, e.g.
// "bundle exec rubocop".
const EnvCommand = "STANDARDRB_RUBOCOP"

// CommandFromEnv returns the rubocop command line from EnvCommand, or
// "rubocop" when it is unset.
func CommandFromEnv() []string {
	if fields := strings.Fields(os.Getenv(EnvCommand)); len(fields) > 0 {
		return fields
	}
	return []string{"rubocop"}
}

// Engine implements domain.Engine by executing rubocop.
type Engine struct {
	command   []string
	dir       string
	env       []string
	stores    domain.StoreWriter
	renderers map[string]domain.ReportRenderer
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCommand sets the command line that starts rubocop.
func WithCommand(command []string) Option {
	return func(e *Engine) {
		if len(command) > 0 {
			e.command = command
		}
	}
}

// WithDir sets the engine's working directory.
func WithDir(dir string) Option {
	return func(e *Engine) { e.dir = dir }
}

// WithEnv adds KEY=value entries to the engine's environment.
func WithEnv(env ...string) Option {
	return func(e *Engine) { e.env = append(e.env, env...) }
}

// WithStoreWriter sets how config stores are handed to the engine.
func WithStoreWriter(w domain.StoreWriter) Option {
	return func(e *Engine) { e.stores = w }
}

// WithRenderer renders the named formatter in-process from the engine's
// JSON report instead of asking the engine for it.
func WithRenderer(name string, r domain.ReportRenderer) Option {
	return func(e *Engine) { e.renderers[name] = r }
}

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		command:   CommandFromEnv(),
		renderers: make(map[string]domain.ReportRenderer),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes rubocop for cfg. The config is normalized first, so callers
// may pass options the current mode cannot honor.
func (e *Engine) Run(ctx context.Context, cfg domain.Config, streams domain.Streams) (*domain.Outcome, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, &domain.OpError{Op: "rubocop.run", Kind: domain.KindInvalidConfig, Err: err}
	}

	stdout, stderr := orDiscard(streams.Stdout), orDiscard(streams.Stderr)

	var configPath string
	if !cfg.Store.IsZero() {
		if e.stores == nil {
			return nil, &domain.OpError{Op: "rubocop.run", Kind: domain.KindInvalidConfig, Err: errors.New("config store set but no store writer configured")}
		}
		path, cleanup, err := e.stores.Write(cfg.Store)
		if err != nil {
			return nil, &domain.OpError{Op: "rubocop.config", Kind: domain.KindIO, Err: err}
		}
		defer func() {
			if err := cleanup(); err != nil {
				e.logger.Warn("removing engine config", "path", path, "error", err)
			}
		}()
		configPath = path
	}

	goSide := e.inProcessFormatters(cfg.Options)

	var sidecar string
	if len(goSide) > 0 || cfg.Options.CollectReport {
		f, err := os.CreateTemp("", "standardrb-report-*.json")
		if err != nil {
			return nil, &domain.OpError{Op: "rubocop.report", Kind: domain.KindIO, Err: err}
		}
		sidecar = f.Name()
		f.Close()
		defer os.Remove(sidecar)
	}

	args := buildArgs(cfg, configPath, sidecar, e.renderers)
	cmd := exec.CommandContext(ctx, e.command[0], append(e.command[1:len(e.command):len(e.command)], args...)...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), e.env...)
	if cfg.Options.ReadsStdin() {
		cmd.Stdin = strings.NewReader(*cfg.Options.Stdin)
	}

	// In-process formatters print before anything the engine wrote, so the
	// engine's streams are held back until the report is rendered.
	var outBuf, errBuf bytes.Buffer
	if len(goSide) > 0 {
		cmd.Stdout, cmd.Stderr = &outBuf, &errBuf
	} else {
		cmd.Stdout, cmd.Stderr = stdout, stderr
	}

	e.logger.Debug("running rubocop", "command", e.command, "args", args, "dir", e.dir)
	status, err := exitStatus(cmd.Run())
	if err != nil {
		return nil, &domain.OpError{Op: "rubocop.run", Kind: domain.KindEngine, Path: e.dir, Err: err}
	}
	e.logger.Debug("rubocop exited", "status", status.String())

	outcome := &domain.Outcome{Status: status}
	if sidecar != "" {
		report, err := readReport(sidecar)
		switch {
		case err == nil:
			report.Dir, err = e.workDir()
			if err != nil {
				return nil, &domain.OpError{Op: "rubocop.report", Kind: domain.KindIO, Err: err}
			}
			outcome.Report = report
		case status != domain.ExitSuccess:
			// The engine gave up before writing its report; stderr says why.
			e.logger.Debug("no report from failed run", "error", err)
		default:
			return nil, &domain.OpError{Op: "rubocop.report", Kind: domain.KindEngine, Path: sidecar, Err: err}
		}
	}

	if len(goSide) > 0 {
		reportW := stdout
		if cfg.Options.Stderr {
			reportW = stderr
		}
		if outcome.Report != nil {
			for _, f := range goSide {
				if err := e.render(reportW, f, outcome.Report, cfg.Options); err != nil {
					return nil, err
				}
			}
		}
		if _, err := io.Copy(stdout, &outBuf); err != nil {
			return nil, &domain.OpError{Op: "rubocop.relay", Kind: domain.KindIO, Err: err}
		}
		if _, err := io.Copy(stderr, &errBuf); err != nil {
			return nil, &domain.OpError{Op: "rubocop.relay", Kind: domain.KindIO, Err: err}
		}
	}

	return outcome, nil
}

// Version returns the engine's version string.
func (e *Engine) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, e.command[0], append(e.command[1:len(e.command):len(e.command)], "--version")...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), e.env...)

	out, err := cmd.Output()
	if err != nil {
		return "", &domain.OpError{Op: "rubocop.version", Kind: domain.KindEngine, Err: err}
	}
	return strings.TrimSpace(string(out)), nil
}

func (e *Engine) inProcessFormatters(opts domain.RubocopOptions) []domain.Formatter {
	var out []domain.Formatter
	for _, f := range opts.Formatters {
		if _, ok := e.renderers[f.Name]; ok {
			out = append(out, f)
		}
	}
	return out
}

// workDir returns the absolute directory the engine runs in.
func (e *Engine) workDir() (string, error) {
	if e.dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(e.dir)
}

func (e *Engine) render(w io.Writer, f domain.Formatter, report *domain.Report, opts domain.RubocopOptions) error {
	if f.Output != "" {
		// Engine-side --out paths resolve from the engine's directory; match it.
		path := f.Output
		if e.dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(e.dir, path)
		}
		file, err := os.Create(path)
		if err != nil {
			return &domain.OpError{Op: "rubocop.render", Kind: domain.KindIO, Path: path, Err: err}
		}
		defer file.Close()
		w = file
	}
	if err := e.renderers[f.Name].Render(w, report, opts); err != nil {
		return &domain.OpError{Op: "rubocop.render", Kind: domain.KindIO, Path: f.Output, Err: fmt.Errorf("%s formatter: %w", f.Name, err)}
	}
	return nil
}

func readReport(path string) (*domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing engine report: %w", err)
	}
	return &report, nil
}

// exitStatus turns the result of cmd.Run into the engine's exit status. An
// error is returned only when the engine did not exit on its own.
func exitStatus(err error) (domain.ExitStatus, error) {
	if err == nil {
		return domain.ExitSuccess, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return domain.ExitStatus(exitErr.ExitCode()), nil
	}
	return domain.ExitError, err
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
