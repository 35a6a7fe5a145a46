package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/standardrb/standardgo/internal/adapters/outbound/config"
	"github.com/standardrb/standardgo/internal/adapters/outbound/gitinfo"
	"github.com/standardrb/standardgo/internal/adapters/outbound/rubocop"
	"github.com/standardrb/standardgo/internal/adapters/outbound/tui"
	"github.com/standardrb/standardgo/internal/application"
	"github.com/standardrb/standardgo/internal/domain"
	"github.com/standardrb/standardgo/internal/logging"
)

// EnvLogFormat switches debug logging to JSON when set to "json".
const EnvLogFormat = "STANDARDRB_LOG_FORMAT"

// deps is the wired application for one command run.
type deps struct {
	logger   *slog.Logger
	settings *config.YAMLLoader
	todoFile *config.TodoFile
	builder  *application.ConfigBuilder
	runner   *application.RunnerService
	todos    *application.TodoService
	versions *application.VersionService
}

type depsOptions struct {
	logOut  io.Writer
	debug   bool
	colored bool
	engine  []rubocop.Option
}

func newDeps(o depsOptions) *deps {
	logger := logging.New(logging.Config{
		Out:   o.logOut,
		Debug: o.debug,
		JSON:  os.Getenv(EnvLogFormat) == "json",
	})

	engineOpts := []rubocop.Option{
		rubocop.WithStoreWriter(config.NewStoreWriter("")),
		rubocop.WithRenderer(domain.FormatterStandard, tui.NewStandardFormatter(o.colored)),
		rubocop.WithLogger(logger),
	}
	engine := rubocop.New(append(engineOpts, o.engine...)...)

	settings := config.New()
	todoFile := config.NewTodoFile()
	runner := application.NewRunnerService(engine, logger)

	return &deps{
		logger:   logger,
		settings: settings,
		todoFile: todoFile,
		builder:  application.NewConfigBuilder(settings, todoFile, gitinfo.New()),
		runner:   runner,
		todos:    application.NewTodoService(runner, todoFile, logger),
		versions: application.NewVersionService(engine, version),
	}
}

// colorEnabled reports whether output written to w should carry ANSI colors.
func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
