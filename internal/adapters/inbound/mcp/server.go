package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/standardrb/standardgo/internal/application"
	"github.com/standardrb/standardgo/internal/domain"
)

// FileLister lists the Ruby files under a project.
type FileLister interface {
	Scan(projectPath string, excludeDirs ...string) ([]string, error)
}

// Services are what the MCP tools and resources call into.
type Services struct {
	Builder  *application.ConfigBuilder
	Runner   *application.RunnerService
	Versions *application.VersionService
	Settings domain.SettingsLoader
	Todos    domain.TodoStore
	Files    FileLister
}

// NewStandardMCPServer creates an MCP server with the lint tools and
// resources registered. projectPath is the project the tools lint; the
// engine behind svc.Runner should run from it.
func NewStandardMCPServer(projectPath, version string, svc Services) *server.MCPServer {
	s := server.NewMCPServer(
		"standardrb",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{projectPath: projectPath, svc: svc}
	registerTools(s, h)
	registerResources(s, h)

	return s
}

type handlers struct {
	projectPath string
	svc         Services
}
