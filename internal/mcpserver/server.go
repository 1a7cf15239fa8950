// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the portfolio for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/folio/internal/portfolio"
	"github.com/starford/folio/internal/source"
)

// Server wraps the MCP server with portfolio tools.
type Server struct {
	mcp    *server.MCPServer
	src    source.Source
	logger *slog.Logger
}

// New creates a new MCP server reading projects from src. Every tool call
// fetches the collection once.
func New(src source.Source, version string, logger *slog.Logger) *Server {
	s := &Server{src: src, logger: logger}

	s.mcp = server.NewMCPServer(
		"Folio",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List portfolio projects with the same filters as the listing page. "+
			"Returns cards, tag filters, the table of contents and counts as JSON."),
		mcp.WithString("tag", mcp.Description("Exact tag to filter by (empty or ALL for every project)")),
		mcp.WithString("query", mcp.Description("Case-insensitive text to search for")),
		mcp.WithString("sort", mcp.Description("Sort order"), mcp.Enum("new", "old", "title")),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Get one project with its detail sections and previous/next neighbours."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Project slug")),
	), s.getProject)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List every tag used in the portfolio, ALL first."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("get_highlight_contract",
		mcp.WithDescription("Returns the project record format, including the highlight labels "+
			"that split a project into detail sections."),
	), s.getHighlightContract)

	s.mcp.AddResource(
		mcp.NewResource(HighlightFormatURI, "Highlight Format Contract",
			mcp.WithResourceDescription("How project records and labelled highlights are structured."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readHighlightFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.src.Fetch(ctx)
	if err != nil {
		return s.fetchFailed(err), nil
	}

	st := portfolio.NewState()
	st.SelectTag(req.GetString("tag", ""))
	st.SetQuery(req.GetString("query", ""))
	st.SetSort(req.GetString("sort", ""))

	return jsonResult(portfolio.BuildList(projects, st))
}

func (s *Server) getProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	projects, err := s.src.Fetch(ctx)
	if err != nil {
		return s.fetchFailed(err), nil
	}

	v := portfolio.BuildDetail(projects, slug, "")
	if v.Status != portfolio.DetailFound {
		return mcp.NewToolResultError(v.Title + ": " + slug), nil
	}
	return jsonResult(v)
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.src.Fetch(ctx)
	if err != nil {
		return s.fetchFailed(err), nil
	}
	return jsonResult(portfolio.AllTags(projects))
}

func (s *Server) getHighlightContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(HighlightFormatContract), nil
}

func (s *Server) readHighlightFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      HighlightFormatURI,
			MIMEType: "text/markdown",
			Text:     HighlightFormatContract,
		},
	}, nil
}

func (s *Server) fetchFailed(err error) *mcp.CallToolResult {
	s.logger.Error("mcp: fetch projects failed", slog.String("error", err.Error()))
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
