// ABOUTME: MCP tool definitions and registration for the chatter server
// ABOUTME: Exposes training, responding and graph inspection as MCP tools
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/chatter/internal/core"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, bot *core.ChatBot, logger *slog.Logger) *Handlers {
	handlers := NewHandlers(bot, logger)

	// 1. train_conversation - fold one conversation into the statement graph
	server.AddTool(mcp.Tool{
		Name:        "train_conversation",
		Description: "Train the bot on one conversation. Each statement is recorded as a response to the one before it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"statements": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Statements in conversation order",
				},
			},
			Required: []string{"statements"},
		},
	}, handlers.TrainConversation)

	// 2. get_response - run one response cycle
	server.AddTool(mcp.Tool{
		Name:        "get_response",
		Description: "Get the bot's reply to a message. The exchange is learned as it happens.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Message to respond to. Blank input gets a random known statement.",
				},
				"speaker": map[string]interface{}{
					"type":        "string",
					"description": "Name of the speaker (default: user; \"bot\" is reserved)",
					"default":     core.DefaultSpeaker,
				},
			},
			Required: []string{"text"},
		},
	}, handlers.GetResponse)

	// 3. list_statements - list every known statement text
	server.AddTool(mcp.Tool{
		Name:        "list_statements",
		Description: "List the text of every statement the bot knows.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListStatements)

	// 4. get_statement - inspect one statement's counts
	server.AddTool(mcp.Tool{
		Name:        "get_statement",
		Description: "Get a statement's occurrence count and the statements it was given in response to.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Exact statement text",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.GetStatement)

	// 5. get_history - recent turns from the turn log
	server.AddTool(mcp.Tool{
		Name:        "get_history",
		Description: "Get the most recent conversation turns, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of turns to return (default: 10)",
					"default":     10,
				},
			},
		},
	}, handlers.GetHistory)

	return handlers
}
