package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/standardrb/standardgo/internal/adapters/inbound/mcp"
	"github.com/standardrb/standardgo/internal/adapters/outbound/rubocop"
	"github.com/standardrb/standardgo/internal/adapters/outbound/scanner"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the standardrb MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var (
		projectPath string
		debug       bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start standardrb MCP server (stdio)",
		Long:  "Start the standardrb MCP server using stdio transport. This lets AI coding assistants lint and fix Ruby source against the project's Standard settings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			// stdout carries the protocol.
			d := newDeps(depsOptions{
				logOut: cmd.ErrOrStderr(),
				debug:  debug,
				engine: []rubocop.Option{rubocop.WithDir(projectPath)},
			})
			s := mcpadapter.NewStandardMCPServer(projectPath, version, mcpadapter.Services{
				Builder:  d.builder,
				Runner:   d.runner,
				Versions: d.versions,
				Settings: d.settings,
				Todos:    d.todoFile,
				Files:    scanner.New(),
			})
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log each lint run to stderr")

	return cmd
}
