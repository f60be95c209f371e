// ABOUTME: MCP tool handler implementations for the chatter server
// ABOUTME: Tool failures are reported as error results, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/chatter/internal/core"
	"github.com/harper/chatter/internal/models"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	bot    *core.ChatBot
	logger *slog.Logger
}

// NewHandlers creates handlers for bot. A nil logger discards output.
func NewHandlers(bot *core.ChatBot, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{bot: bot, logger: logger}
}

// TrainConversation handles the train_conversation tool
func (h *Handlers) TrainConversation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	statements, err := stringSlice(request.GetArguments(), "statements")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.bot.Train(ctx, statements); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("training failed: %v", err)), nil
	}
	h.logger.Info("trained conversation", "statements", len(statements))

	return jsonResult(map[string]interface{}{
		"trained": len(statements),
	})
}

// GetResponse handles the get_response tool
func (h *Handlers) GetResponse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	speaker := request.GetString("speaker", core.DefaultSpeaker)
	if err := core.ValidateSpeaker(speaker); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	record, err := h.bot.GetResponseData(ctx, models.Input{Speaker: speaker, Text: text})
	if errors.Is(err, core.ErrNoCandidateStatements) {
		return mcp.NewToolResultError("the bot has no statements yet; train it first"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("response failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"reply":    record.Reply.Text,
		"response": record,
	})
}

// ListStatements handles the list_statements tool
func (h *Handlers) ListStatements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	texts, err := h.bot.Engine().Store().ListStatements(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list statements: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"statements": texts,
		"count":      len(texts),
	})
}

// GetStatement handles the get_statement tool
func (h *Handlers) GetStatement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	stmt, err := h.bot.Engine().Store().Find(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load statement: %v", err)), nil
	}
	if stmt == nil {
		return mcp.NewToolResultError(fmt.Sprintf("statement not found: %s", text)), nil
	}

	return jsonResult(stmt)
}

// GetHistory handles the get_history tool
func (h *Handlers) GetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	history, ok := h.bot.Engine().Store().(core.TurnHistory)
	if !ok {
		return mcp.NewToolResultError("this storage backend does not keep a turn log"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be positive, got %d", limit)), nil
	}

	turns, err := history.RecentTurns(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load history: %v", err)), nil
	}
	if turns == nil {
		turns = []models.Turn{}
	}

	return jsonResult(map[string]interface{}{
		"turns": turns,
	})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// stringSlice reads a required array-of-strings argument
func stringSlice(args map[string]interface{}, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("%s argument is required", key)
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a string", key, i)
		}
		out = append(out, s)
	}
	return out, nil
}
