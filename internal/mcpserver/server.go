// Package mcpserver exposes the commit convention to MCP clients over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huimingz/cz-oca-go/internal/log"
	"github.com/huimingz/cz-oca-go/pkg/convention"
)

// Server serves the convention tools
type Server struct {
	engine *convention.Engine
	mcp    *server.MCPServer
}

// New creates a server with every tool registered
func New(engine *convention.Engine, version string) *Server {
	s := &Server{
		engine: engine,
		mcp:    server.NewMCPServer(engine.Name(), version),
	}

	s.mcp.AddTool(mcp.NewTool("list_change_types",
		mcp.WithDescription("List the change types a commit message can start with"),
	), s.handleListChangeTypes)

	s.mcp.AddTool(mcp.NewTool("build_message",
		mcp.WithDescription("Build a commit message from the answers of the commit questions"),
		mcp.WithString("prefix",
			mcp.Required(),
			mcp.Description("Change type code"),
			mcp.Enum(codes(engine)...),
		),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module modified"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Short and imperative summary of the code changes"),
		),
		mcp.WithString("body",
			mcp.Description("Additional contextual information, may span lines"),
		),
	), s.handleBuildMessage)

	s.mcp.AddTool(mcp.NewTool("check_message",
		mcp.WithDescription("Check that a commit message follows the convention and return its subject"),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Full commit message"),
		),
	), s.handleCheckMessage)

	s.mcp.AddTool(mcp.NewTool("parse_message",
		mcp.WithDescription("Split a conforming commit message into type, module, subject and body"),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Full commit message"),
		),
	), s.handleParseMessage)

	s.mcp.AddTool(mcp.NewTool("schema",
		mcp.WithDescription("Abstract format of a commit message"),
	), s.text(engine.Schema))

	s.mcp.AddTool(mcp.NewTool("example",
		mcp.WithDescription("A commit message that follows the convention"),
	), s.text(engine.Example))

	s.mcp.AddTool(mcp.NewTool("info",
		mcp.WithDescription("Explanation of the commit convention"),
	), s.text(engine.HelpText))

	return s
}

// ServeStdio blocks serving requests on stdin/stdout
func (s *Server) ServeStdio() error {
	log.Debug("Serving %s over MCP stdio", s.engine.Name())
	return server.ServeStdio(s.mcp)
}

func codes(engine *convention.Engine) []string {
	var out []string
	for _, c := range engine.ListChangeTypes() {
		out = append(out, c.Value)
	}
	return out
}

func (s *Server) text(fn func() string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(fn()), nil
	}
}

func (s *Server) handleListChangeTypes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, c := range s.engine.ListChangeTypes() {
		fmt.Fprintf(&b, "%s\t%s\n", c.Value, c.Name)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleBuildMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := make(map[string]string, 4)
	for _, q := range s.engine.QuestionSpecs() {
		v, _ := request.Params.Arguments[q.Name].(string)
		raw[q.Name] = v
	}

	answers, err := convention.NewAnswers(raw).Normalize(s.engine.Grammar())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.engine.BuildMessage(answers)), nil
}

func messageArg(request mcp.CallToolRequest) (string, error) {
	msg, ok := request.Params.Arguments["message"].(string)
	if !ok {
		return "", fmt.Errorf("message must be a string")
	}
	return msg, nil
}

func (s *Server) handleCheckMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msg, err := messageArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	subject, ok := s.engine.Parse(msg)
	if !ok {
		return mcp.NewToolResultError((&convention.NoMatchError{Message: msg}).Error()), nil
	}
	return mcp.NewToolResultText(subject), nil
}

func (s *Server) handleParseMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msg, err := messageArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pc, ok := s.engine.Grammar().ParseCommit(msg)
	if !ok {
		return mcp.NewToolResultError((&convention.NoMatchError{Message: msg}).Error()), nil
	}

	data, err := json.Marshal(pc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parsed commit: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
