package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"stlcctl/internal/stlc"
	"stlcctl/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const subsystem = "MCPServer"

// Tool names.
const (
	ToolRunSTLC      = "run_stlc"
	ToolListSections = "stlc_sections"
)

// Output formats of run_stlc.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// GeneratorFactory returns the generator used for one tool call.
type GeneratorFactory func() stlc.Generator

// Server exposes STLC generation as MCP tools.
type Server struct {
	name      string
	version   string
	generator GeneratorFactory
	mcp       *server.MCPServer
}

// NewServer registers the STLC tools on a new MCP server.
func NewServer(name, version string, generator GeneratorFactory) *Server {
	s := &Server{
		name:      name,
		version:   version,
		generator: generator,
	}

	s.mcp = server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
	)
	s.mcp.AddTool(runSTLCTool(), s.handleRunSTLC)
	s.mcp.AddTool(listSectionsTool(), s.handleListSections)
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves the tools over the given streams until ctx is done or
// stdin closes.
func (s *Server) ServeStdio(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	logging.Info(subsystem, "Starting MCP server %s %s on stdio", s.name, s.version)
	stdio := server.NewStdioServer(s.mcp)
	if err := stdio.Listen(ctx, stdin, stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp stdio server failed: %w", err)
	}
	return nil
}

func runSTLCTool() mcp.Tool {
	return mcp.NewTool(ToolRunSTLC,
		mcp.WithDescription("Generate test cases, test data, automated scripts and release advice for the given software requirements"),
		mcp.WithString("requirements",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Software requirements, at most %d characters", stlc.MaxRequirementsLength)),
		),
		mcp.WithString("user_stories",
			mcp.Description("Optional user stories"),
		),
		mcp.WithString("code_diffs",
			mcp.Description("Optional code diffs; enables change impact analysis"),
		),
		mcp.WithString("previous_test_results",
			mcp.Description("Optional results of a previous test run"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: text (labelled sections) or json (section list)"),
			mcp.Enum(FormatText, FormatJSON),
		),
	)
}

func listSectionsTool() mcp.Tool {
	return mcp.NewTool(ToolListSections,
		mcp.WithDescription("List the result sections run_stlc can return, in display order"),
	)
}

func (s *Server) handleRunSTLC(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requirements, err := request.RequireString("requirements")
	if err != nil || requirements == "" {
		return mcp.NewToolResultError("requirements parameter is required"), nil
	}
	args := request.GetArguments()

	format := stringArg(args, "format")
	if format == "" {
		format = FormatText
	}
	if format != FormatText && format != FormatJSON {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q", format)), nil
	}

	session := stlc.NewSession(s.generator(), noClipboard)
	if stored := session.SetField(stlc.FieldRequirements, requirements); stored != requirements {
		logging.Warn(subsystem, "Requirements truncated to %d characters", stlc.MaxRequirementsLength)
	}
	session.SetField(stlc.FieldUserStories, stringArg(args, "user_stories"))
	session.SetField(stlc.FieldCodeDiffs, stringArg(args, "code_diffs"))
	session.SetField(stlc.FieldPreviousTestResults, stringArg(args, "previous_test_results"))

	outcome, _ := session.Submit(ctx)
	if outcome.Phase == stlc.PhaseFailed {
		return mcp.NewToolResultError(fmt.Sprintf("STLC generation failed: %s", outcome.Reason)), nil
	}

	sections := session.Sections()
	if format == FormatJSON {
		return sectionsJSON(sections)
	}
	if len(sections) == 0 {
		return mcp.NewToolResultText("The STLC run returned no sections."), nil
	}
	return mcp.NewToolResultText(stlc.FormatAll(sections)), nil
}

func (s *Server) handleListSections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type sectionInfo struct {
		Key   string `json:"key"`
		Field string `json:"field"`
		Label string `json:"label"`
	}
	var infos []sectionInfo
	for _, key := range stlc.SectionKeys() {
		infos = append(infos, sectionInfo{Key: key.String(), Field: key.Field(), Label: key.Label()})
	}
	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format sections: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func sectionsJSON(sections []stlc.DisplaySection) (*mcp.CallToolResult, error) {
	type sectionOut struct {
		Key     string `json:"key"`
		Label   string `json:"label"`
		Content string `json:"content"`
	}
	out := make([]sectionOut, 0, len(sections))
	for _, section := range sections {
		out = append(out, sectionOut{Key: section.Key.String(), Label: section.Label, Content: section.Content})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format sections: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func stringArg(args map[string]interface{}, key string) string {
	value, _ := args[key].(string)
	return value
}

var noClipboard = stlc.ClipboardFunc(func(string) error {
	return errors.New("clipboard is not available to MCP clients")
})
