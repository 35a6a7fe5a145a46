package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/acarl005/stripansi"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/standardrb/standardgo/internal/application"
	"github.com/standardrb/standardgo/internal/domain"
)

// registerTools registers the lint tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	// 1. standard_check
	s.AddTool(
		mcplib.NewTool("standard_check",
			mcplib.WithDescription("Lint Ruby source against Standard and return the report, offenses and, when fixing, the corrected source"),
			mcplib.WithString("source",
				mcplib.Required(),
				mcplib.Description("Ruby source code to lint"),
			),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path the source is reported under, relative to the project (decides which settings and ignores apply)"),
			),
			mcplib.WithBoolean("fix", mcplib.Description("Apply safe corrections")),
			mcplib.WithBoolean("fix_unsafely", mcplib.Description("Apply all corrections, including ones that may change behavior")),
		),
		h.handleCheck,
	)

	// 2. standard_check_files
	s.AddTool(
		mcplib.NewTool("standard_check_files",
			mcplib.WithDescription("Lint files in the project against Standard and return the report and offenses"),
			mcplib.WithArray("paths",
				mcplib.Required(),
				mcplib.Description("Files or directories relative to the project root"),
				mcplib.WithStringItems(),
			),
			mcplib.WithBoolean("fix", mcplib.Description("Apply safe corrections in place")),
			mcplib.WithBoolean("fix_unsafely", mcplib.Description("Apply all corrections in place")),
		),
		h.handleCheckFiles,
	)

	// 3. standard_list_files
	s.AddTool(
		mcplib.NewTool("standard_list_files",
			mcplib.WithDescription("List the Ruby files in the project, skipping vendored and dependency directories"),
			mcplib.WithString("exclude", mcplib.Description("Comma-separated extra directory names to skip")),
		),
		h.handleListFiles,
	)

	// 4. standard_version
	s.AddTool(
		mcplib.NewTool("standard_version",
			mcplib.WithDescription("Returns the Standard and RuboCop versions in use"),
		),
		h.handleVersion,
	)
}

// checkResult is what the check tools return.
type checkResult struct {
	Status   string           `json:"status"`
	ExitCode int              `json:"exit_code"`
	Report   string           `json:"report"`
	Source   string           `json:"source,omitempty"`
	Offenses []domain.Offense `json:"offenses"`
}

func (h *handlers) handleCheck(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	source, err := request.RequireString("source")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	path, err := request.RequireString("path")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	req := h.buildRequest(request)
	req.Paths = []string{path}
	req.Stdin = &source
	return h.check(ctx, req)
}

func (h *handlers) handleCheckFiles(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	paths, err := request.RequireStringSlice("paths")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	if len(paths) == 0 {
		return errorResult("paths must not be empty"), nil
	}

	req := h.buildRequest(request)
	req.Paths = paths
	return h.check(ctx, req)
}

func (h *handlers) buildRequest(request mcplib.CallToolRequest) application.BuildRequest {
	return application.BuildRequest{
		ProjectPath: h.projectPath,
		Fix:         request.GetBool("fix", false),
		FixUnsafely: request.GetBool("fix_unsafely", false),
		Format:      domain.FormatterStandard,
		Stderr:      true,
		Summary:     true,
	}
}

func (h *handlers) check(ctx context.Context, req application.BuildRequest) (*mcplib.CallToolResult, error) {
	cfg, err := h.svc.Builder.Build(req)
	if err != nil {
		return errorResult(fmt.Sprintf("building config failed: %v", err)), nil
	}

	inv, err := h.svc.Runner.Capture(ctx, cfg)
	if err != nil {
		return errorResult(fmt.Sprintf("lint failed: %v", err)), nil
	}

	result := checkResult{
		Status:   inv.Status.String(),
		ExitCode: int(inv.Status),
		Report:   stripansi.Strip(strings.Replace(inv.Stderr, domain.CorrectedSourceSeparator+"\n", "", 1)),
		Source:   inv.Stdout,
		Offenses: []domain.Offense{},
	}
	if inv.Report != nil {
		for _, f := range inv.Report.Files {
			result.Offenses = append(result.Offenses, f.Offenses...)
		}
	}
	return jsonResult(result)
}

func (h *handlers) handleListFiles(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	var exclude []string
	if raw := request.GetString("exclude", ""); raw != "" {
		for _, e := range strings.Split(raw, ",") {
			if e = strings.TrimSpace(e); e != "" {
				exclude = append(exclude, e)
			}
		}
	}

	files, err := h.svc.Files.Scan(h.projectPath, exclude...)
	if err != nil {
		return errorResult(fmt.Sprintf("listing files failed: %v", err)), nil
	}
	if files == nil {
		files = []string{}
	}
	return jsonResult(files)
}

func (h *handlers) handleVersion(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	text, err := h.svc.Versions.Verbose(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrEngine) {
			return errorResult(fmt.Sprintf("rubocop is not available: %v", err)), nil
		}
		return errorResult(err.Error()), nil
	}
	return textResult(text), nil
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
