// ABOUTME: ChatBot ties the engine to a presenter and the turn log
// ABOUTME: Entry point used by the CLI and MCP layers
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/harper/chatter/internal/models"
)

// ChatBot is a named bot answering through a presenter
type ChatBot struct {
	name      string
	engine    *Engine
	presenter Presenter
	logger    *slog.Logger
}

// NewChatBot creates a bot over an engine and presenter
func NewChatBot(name string, engine *Engine, presenter Presenter, logger *slog.Logger) (*ChatBot, error) {
	if engine == nil {
		return nil, errors.New("engine is required")
	}
	if presenter == nil {
		return nil, errors.New("presenter is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ChatBot{name: name, engine: engine, presenter: presenter, logger: logger}, nil
}

// Name returns the bot's display name
func (b *ChatBot) Name() string {
	return b.name
}

// Engine returns the underlying conversation engine
func (b *ChatBot) Engine() *Engine {
	return b.engine
}

// Train folds one conversation into the bot's store
func (b *ChatBot) Train(ctx context.Context, conversation []string) error {
	return b.engine.Train(ctx, conversation)
}

// GetResponseData runs one response cycle and logs the turn when the store keeps one
func (b *ChatBot) GetResponseData(ctx context.Context, input models.Input) (*models.ResponseRecord, error) {
	record, err := b.engine.Respond(ctx, input)
	if err != nil {
		return nil, err
	}

	if recorder, ok := b.engine.Store().(TurnRecorder); ok {
		turn, err := models.NewTurn(record)
		if err != nil {
			return nil, fmt.Errorf("building turn: %w", err)
		}
		if err := recorder.RecordTurn(ctx, turn); err != nil {
			// The graph is already updated; a lost history entry is not fatal
			b.logger.Warn("failed to record turn", "error", err)
		}
	}

	return record, nil
}

// GetResponse returns the rendered reply to text from speaker
func (b *ChatBot) GetResponse(ctx context.Context, text, speaker string) (string, error) {
	if speaker == "" {
		speaker = DefaultSpeaker
	}
	record, err := b.GetResponseData(ctx, models.Input{Speaker: speaker, Text: text})
	if err != nil {
		return "", err
	}
	return b.presenter.Render(record)
}

// GetInput reads one raw utterance from the presenter
func (b *ChatBot) GetInput() (string, error) {
	return b.presenter.ReadInput()
}
