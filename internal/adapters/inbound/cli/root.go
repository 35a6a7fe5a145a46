package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/standardrb/standardgo/internal/adapters/outbound/tui"
	"github.com/standardrb/standardgo/internal/application"
	"github.com/standardrb/standardgo/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

type rootFlags struct {
	path       string
	configPath string

	fix         bool
	fixUnsafely bool
	noFix       bool
	format      string
	parallel    bool
	stdin       string
	stderr      bool
	only        []string
	except      []string
	debug       bool
	noCache     bool
	changed     bool
	summary     bool

	generateTodo   bool
	version        bool
	verboseVersion bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "standardrb [flags] [paths...] [-- rubocop-flags...]",
		Short: "Ruby style guide, linter, and formatter",
		Long: "standardrb lints Ruby files against the Standard style guide by running RuboCop " +
			"with Standard's configuration. With --stdin it lints source read from standard input " +
			"and, when fixing, prints the corrected source after the report. Arguments after -- " +
			"are passed to RuboCop unchanged.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStandard(cmd, f, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.path, "path", ".", "Project path .standard.yml is looked up from")
	flags.StringVarP(&f.configPath, "config", "c", "", "Settings file to use instead of .standard.yml")
	flags.BoolVar(&f.fix, "fix", false, "Automatically fix offenses that are safe to correct")
	flags.BoolVar(&f.fixUnsafely, "fix-unsafely", false, "Automatically fix all offenses, including unsafe corrections")
	flags.BoolVar(&f.noFix, "no-fix", false, "Do not fix anything, even when fix is set in .standard.yml")
	flags.StringVarP(&f.format, "format", "f", "", "Report format (standard, progress, simple, quiet, json, ...)")
	flags.BoolVar(&f.parallel, "parallel", false, "Inspect files in parallel (ignored with --stdin)")
	flags.StringVarP(&f.stdin, "stdin", "s", "", "Lint source from standard input, reported as `PATH`")
	flags.BoolVar(&f.stderr, "stderr", false, "Write the report to stderr so stdout only carries corrected source")
	flags.StringSliceVar(&f.only, "only", nil, "Run only the given cops")
	flags.StringSliceVar(&f.except, "except", nil, "Run all cops except the given ones")
	flags.BoolVar(&f.debug, "debug", false, "Print debug logs and pass --debug to rubocop")
	flags.BoolVar(&f.noCache, "no-cache", false, "Disable rubocop's result cache")
	flags.BoolVar(&f.changed, "changed", false, "Lint only Ruby files changed in the git working tree")
	flags.BoolVar(&f.summary, "summary", false, "Print a per-cop summary to stderr after the report")
	flags.BoolVar(&f.generateTodo, "generate-todo", false, "Write "+domain.TodoFileName+" excusing every current offense")
	flags.BoolVarP(&f.version, "version", "v", false, "Print the Standard version")
	flags.BoolVarP(&f.verboseVersion, "verbose-version", "V", false, "Print the Standard and RuboCop versions")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newTodoCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the root command. Errors other than lint failures are
// printed to stderr; use ExitCode to turn the result into a process status.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil && !errors.Is(err, domain.ErrLintFailed) {
		fmt.Fprintf(os.Stderr, "standardrb: %v\n", err)
	}
	return err
}

// lintError carries a non-success engine status out of a command.
type lintError struct {
	status domain.ExitStatus
}

func (e *lintError) Error() string {
	return fmt.Sprintf("lint failed: rubocop exited with status %d (%s)", int(e.status), e.status)
}

func (e *lintError) Is(target error) bool {
	return target == domain.ErrLintFailed
}

// ExitCode maps an Execute result to a process exit status: the engine's
// own status for lint failures, 2 for anything else that went wrong.
func ExitCode(err error) int {
	if err == nil {
		return int(domain.ExitSuccess)
	}
	var le *lintError
	if errors.As(err, &le) {
		return int(le.status)
	}
	return int(domain.ExitError)
}

func (f *rootFlags) request(args []string) application.BuildRequest {
	return application.BuildRequest{
		ProjectPath:    f.path,
		ConfigPath:     f.configPath,
		Paths:          args,
		Fix:            f.fix,
		FixUnsafely:    f.fixUnsafely,
		NoFix:          f.noFix,
		Format:         f.format,
		Parallel:       f.parallel,
		Stderr:         f.stderr,
		Only:           f.only,
		Except:         f.except,
		Debug:          f.debug,
		NoCache:        f.noCache,
		Changed:        f.changed,
		Summary:        f.summary,
		GenerateTodo:   f.generateTodo,
		Version:        f.version,
		VerboseVersion: f.verboseVersion,
	}
}

func runStandard(cmd *cobra.Command, f *rootFlags, args []string) error {
	ctx := cmd.Context()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	reportOut := stdout
	if f.stderr {
		reportOut = stderr
	}
	d := newDeps(depsOptions{logOut: stderr, debug: f.debug, colored: colorEnabled(reportOut)})

	paths, extra := args, []string(nil)
	if n := cmd.ArgsLenAtDash(); n >= 0 {
		paths, extra = args[:n], args[n:]
	}

	req := f.request(paths)
	req.Extra = extra
	if f.stdin != "" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		source := string(src)
		req.Stdin = &source
		req.Paths = append([]string{f.stdin}, paths...)
	}

	cfg, err := d.builder.Build(req)
	if errors.Is(err, domain.ErrNoChangedFiles) {
		d.logger.Debug("cli.nothing_changed", "path", f.path)
		return nil
	}
	if err != nil {
		return err
	}

	switch cfg.Runner {
	case domain.RunnerVersion:
		fmt.Fprintln(stdout, d.versions.Version())
		return nil

	case domain.RunnerVerboseVersion:
		text, err := d.versions.Verbose(ctx)
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, text)
		return nil

	case domain.RunnerGenerateTodo:
		todo, err := d.todos.Generate(ctx, cfg, stderr)
		if err != nil {
			return fmt.Errorf("generating todo: %w", err)
		}
		fmt.Fprintf(stdout, "Wrote %s excusing %s\n",
			filepath.Join(cfg.Store.Root, domain.TodoFileName), countFiles(len(todo.Entries)))
		return nil
	}

	outcome, err := d.runner.Call(ctx, cfg, domain.Streams{Stdout: stdout, Stderr: stderr})
	if err != nil {
		return err
	}

	if f.summary && outcome.Report != nil {
		fmt.Fprint(stderr, tui.RenderSummary(outcome.Report, colorEnabled(stderr)))
	}

	if !outcome.Status.Success() {
		return &lintError{status: outcome.Status}
	}
	return nil
}

func countFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}
