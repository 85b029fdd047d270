// Package mcpserver exposes the planner to MCP clients: task and space CRUD,
// the day layout, and suggestions, over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"dayplan/internal/app"
	"dayplan/internal/suggest"
)

const version = "0.1.0"

func NewServer(svc *app.Service, suggests *suggest.Service) *server.MCPServer {
	srv := server.NewMCPServer(
		"dayplan MCP",
		version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Plan and inspect tasks, task spaces, schedules, and reminders."),
		server.WithRecovery(),
	)
	registerTools(srv, svc, suggests)
	return srv
}

func ServeStdio(svc *app.Service, suggests *suggest.Service) error {
	return server.ServeStdio(NewServer(svc, suggests))
}
