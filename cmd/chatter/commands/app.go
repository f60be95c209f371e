// ABOUTME: Builds the bot from environment configuration for each command
// ABOUTME: Selects the storage backend, matcher and presenter
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/harper/chatter/internal/charm"
	"github.com/harper/chatter/internal/config"
	"github.com/harper/chatter/internal/core"
	"github.com/harper/chatter/internal/llm"
	"github.com/harper/chatter/internal/logging"
	"github.com/harper/chatter/internal/match"
	"github.com/harper/chatter/internal/storage/charmkv"
	"github.com/harper/chatter/internal/storage/memory"
	"github.com/harper/chatter/internal/storage/sqlite"
	"github.com/harper/chatter/internal/terminal"
)

// app is everything a command needs to talk to the bot
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   core.StatementStore
	bot     *core.ChatBot
	closers []func() error
}

// openApp loads .env and configuration and builds the bot.
// Callers must Close the result.
func openApp(cmd *cobra.Command) (*app, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(logging.Options{
		Output: cmd.ErrOrStderr(),
		Level:  logging.LevelFor(cfg.LogLevel, verbose, quiet),
		Format: cfg.LogFormat,
		Prefix: "chatter",
	})

	a := &app{cfg: cfg, logger: logger}
	if err := a.openStore(); err != nil {
		return nil, err
	}

	matcher, err := a.newMatcher()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	engine, err := core.NewEngine(a.store, matcher,
		core.WithLogger(logger),
		core.WithRecentWindow(cfg.RecentWindow),
		core.WithTrainingCarryOver(cfg.TrainCarryOver),
	)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.bot, err = core.NewChatBot(cfg.BotName, engine, newPresenter(cmd.InOrStdin()), logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	logger.Debug("bot ready", "storage", cfg.Storage, "matcher", cfg.Matcher, "threshold", cfg.MatchThreshold)
	return a, nil
}

func (a *app) openStore() error {
	switch a.cfg.Storage {
	case config.StorageMemory:
		a.store = memory.New()
	case config.StorageCharm:
		client, err := charm.NewClient(&charm.Config{
			Host:     a.cfg.CharmHost,
			DBName:   a.cfg.CharmDBName,
			AutoSync: a.cfg.AutoSync,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Charm: %w", err)
		}
		a.store = charmkv.New(client)
		a.closers = append(a.closers, client.Close)
	default:
		path := a.cfg.DBPath
		if path == "" {
			path = sqlite.DefaultDBPath()
		}
		store, err := sqlite.NewStorageWithPath(path)
		if err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		a.store = store
		a.closers = append(a.closers, store.Close)
	}
	return nil
}

func (a *app) newMatcher() (core.Matcher, error) {
	if a.cfg.Matcher != config.MatcherEmbedding {
		return match.NewClosestMatcher(a.cfg.MatchThreshold), nil
	}

	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:         a.cfg.OpenAIKey,
		EmbeddingModel: openai.EmbeddingModel(a.cfg.EmbeddingModel),
		Timeout:        a.cfg.Timeout,
		MaxRetries:     a.cfg.MaxRetries,
		RetryDelay:     a.cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}
	matcher, err := match.NewEmbeddingMatcher(client, a.cfg.MatchThreshold, a.logger)
	if err != nil {
		return nil, err
	}
	return matcher, nil
}

func newPresenter(in io.Reader) core.Presenter {
	if jsonOutput() {
		return terminal.NewJSONAdapter(in, true)
	}
	return terminal.NewTextAdapter(in)
}

// Close releases the store
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// turnHistory returns the store's turn log, if it keeps one
func (a *app) turnHistory() (core.TurnHistory, bool) {
	h, ok := a.store.(core.TurnHistory)
	return h, ok
}
