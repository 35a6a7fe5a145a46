// Package logging builds the slog logger the CLI and MCP server inject
// into services.
package logging

import (
	"io"
	"log/slog"
	"time"
)

type Config struct {
	Out   io.Writer
	Debug bool
	JSON  bool
}

// New returns a logger writing to cfg.Out at debug level when cfg.Debug is
// set, and a discarding logger otherwise. Diagnostics belong to the engine's
// streams, so nothing is logged by default.
func New(cfg Config) *slog.Logger {
	if !cfg.Debug || cfg.Out == nil {
		return Discard()
	}

	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				t := a.Value.Time().UTC()
				a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
			}
			return a
		},
	}

	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(cfg.Out, opts))
	}
	return slog.New(slog.NewTextHandler(cfg.Out, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
