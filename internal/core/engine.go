// ABOUTME: Conversation graph engine: occurrence counts, response adjacency, recent window
// ABOUTME: Drives the training and response pipelines over an injected store and matcher
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"sync"

	"github.com/harper/chatter/internal/models"
)

// DefaultSpeaker is used when an input carries no speaker name
const DefaultSpeaker = "user"

// ValidateSpeaker rejects speaker names that would collide with the bot's own
// key in a response mapping
func ValidateSpeaker(speaker string) error {
	if speaker == models.BotSpeaker {
		return fmt.Errorf("%w: %q", ErrReservedSpeaker, speaker)
	}
	return nil
}

// Engine maintains the statement graph and selects replies.
// Train and Respond are serialized; the store must not be shared with
// another Engine writing concurrently.
type Engine struct {
	store     StatementStore
	matcher   Matcher
	logger    *slog.Logger
	window    *recentWindow
	carryOver bool
	mu        sync.Mutex
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecentWindow sets how many recent statements are remembered
func WithRecentWindow(size int) EngineOption {
	return func(e *Engine) {
		e.window = newRecentWindow(size)
	}
}

// WithTrainingCarryOver controls whether training reads and extends the live
// recent window. It is on by default, so each conversation chains onto whatever
// was said last; pass false to start every training conversation without a
// predecessor.
func WithTrainingCarryOver(enabled bool) EngineOption {
	return func(e *Engine) {
		e.carryOver = enabled
	}
}

// NewEngine creates an engine over the given store and matcher
func NewEngine(store StatementStore, matcher Matcher, opts ...EngineOption) (*Engine, error) {
	if store == nil {
		return nil, errors.New("statement store is required")
	}
	if matcher == nil {
		return nil, errors.New("matcher is required")
	}

	e := &Engine{
		store:     store,
		matcher:   matcher,
		logger:    slog.New(slog.DiscardHandler),
		window:    newRecentWindow(DefaultRecentWindow),
		carryOver: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Store returns the statement store the engine writes to
func (e *Engine) Store() StatementStore {
	return e.store
}

// UpdateOccurrenceCount returns the statement's occurrence plus one (1 when absent)
func UpdateOccurrenceCount(stmt *models.Statement) int {
	if stmt == nil {
		return 1
	}
	return stmt.Occurrence + 1
}

// UpdateResponseList returns a new in_response_to mapping with previous's entry
// incremented. A nil previous returns an unchanged copy.
func UpdateResponseList(stmt *models.Statement, previous *models.Statement) map[string]int {
	out := map[string]int{}
	if stmt != nil {
		maps.Copy(out, stmt.InResponseTo)
	}
	if previous != nil {
		out[previous.Text]++
	}
	return out
}

// LastStatement returns the most recently observed statement text
func (e *Engine) LastStatement() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.window.last()
}

// MostFrequentResponse returns the statement given most often in response to
// text, or nil when nothing has ever followed it. Equal weights resolve to the
// lexicographically smallest text.
func (e *Engine) MostFrequentResponse(ctx context.Context, text string) (*models.Statement, error) {
	responses, err := e.responsesTo(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("finding responses to %q: %w", text, err)
	}

	var best *models.Statement
	bestWeight := 0
	for _, r := range responses {
		w := r.ResponseWeight(text)
		if w <= 0 {
			continue
		}
		if best == nil || w > bestWeight || (w == bestWeight && r.Text < best.Text) {
			best, bestWeight = r, w
		}
	}
	return best, nil
}

func (e *Engine) responsesTo(ctx context.Context, text string) ([]*models.Statement, error) {
	if rf, ok := e.store.(ResponseFinder); ok {
		return rf.ResponsesTo(ctx, text)
	}

	texts, err := e.store.ListStatements(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Statement
	for _, t := range texts {
		stmt, err := e.store.Find(ctx, t)
		if err != nil {
			return nil, err
		}
		if stmt.ResponseWeight(text) > 0 {
			out = append(out, stmt)
		}
	}
	return out, nil
}

// Train folds an ordered conversation into the store. Training is frequency
// learning: feeding the same conversation twice doubles its counts.
func (e *Engine) Train(ctx context.Context, conversation []string) error {
	for i, text := range conversation {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("%w: position %d", ErrEmptyStatement, i)
		}
	}
	if len(conversation) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var previous *models.Statement
	if e.carryOver {
		if last, ok := e.window.last(); ok {
			previous = &models.Statement{Text: last}
		}
	}

	for _, text := range conversation {
		stmt, err := e.observe(ctx, text, previous, "")
		if err != nil {
			return fmt.Errorf("training on %q: %w", text, err)
		}
		if e.carryOver {
			e.window.append(text)
		}
		previous = stmt
	}

	e.logger.Debug("trained conversation", "statements", len(conversation))
	return nil
}

// TrainAll trains each conversation in order and returns the number of
// statements folded into the store
func (e *Engine) TrainAll(ctx context.Context, conversations [][]string) (int, error) {
	total := 0
	for i, conv := range conversations {
		if err := e.Train(ctx, conv); err != nil {
			return total, fmt.Errorf("conversation %d: %w", i, err)
		}
		total += len(conv)
	}
	return total, nil
}

// Respond selects a reply for input, updates the graph for both the input
// and the reply, and returns the resulting record
func (e *Engine) Respond(ctx context.Context, input models.Input) (*models.ResponseRecord, error) {
	if input.Speaker == "" {
		input.Speaker = DefaultSpeaker
	}
	if err := ValidateSpeaker(input.Speaker); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	reply, err := e.selectReply(ctx, input)
	if err != nil {
		return nil, err
	}

	record := &models.ResponseRecord{
		Speaker: input.Speaker,
		Input:   models.Statement{Text: input.Text, InResponseTo: map[string]int{}},
	}

	var previous *models.Statement
	if last, ok := e.window.last(); ok {
		previous = &models.Statement{Text: last}
	}

	if !input.IsBlank() {
		in, err := e.observe(ctx, input.Text, previous, input.Speaker)
		if err != nil {
			return nil, fmt.Errorf("recording input: %w", err)
		}
		e.window.append(in.Text)
		record.Input = *in
		previous = in
	}

	out, err := e.observe(ctx, reply.Text, previous, "")
	if err != nil {
		return nil, fmt.Errorf("recording reply: %w", err)
	}
	e.window.append(out.Text)
	record.Reply = *out

	e.logger.Debug("responded", "speaker", input.Speaker, "input", input.Text, "reply", out.Text)
	return record, nil
}

func (e *Engine) selectReply(ctx context.Context, input models.Input) (*models.Statement, error) {
	if input.IsBlank() {
		return e.randomStatement(ctx)
	}

	texts, err := e.store.ListStatements(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing statements: %w", err)
	}
	if len(texts) == 0 {
		return nil, ErrNoCandidateStatements
	}

	match, ok, err := e.matcher.Match(ctx, input.Text, texts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		e.logger.Warn("matcher unavailable, using random reply", "error", err)
		ok = false
	}
	if !ok {
		return e.randomStatement(ctx)
	}

	reply, err := e.MostFrequentResponse(ctx, match)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		e.logger.Debug("no recorded responses", "match", match)
		return e.randomStatement(ctx)
	}
	return reply, nil
}

func (e *Engine) randomStatement(ctx context.Context) (*models.Statement, error) {
	stmt, err := e.store.GetRandom(ctx)
	if err != nil {
		return nil, fmt.Errorf("picking random statement: %w", err)
	}
	if stmt == nil {
		return nil, ErrNoCandidateStatements
	}
	return stmt, nil
}

// observe records one sighting of text following previous and persists it
func (e *Engine) observe(ctx context.Context, text string, previous *models.Statement, speaker string) (*models.Statement, error) {
	existing, err := e.store.Find(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("finding statement: %w", err)
	}

	stmt := existing.Clone()
	if stmt == nil {
		stmt = &models.Statement{Text: text}
	}
	stmt.Occurrence = UpdateOccurrenceCount(existing)
	stmt.InResponseTo = UpdateResponseList(existing, previous)
	if speaker != "" {
		stmt.Name = speaker
	}

	if err := e.store.Update(ctx, stmt); err != nil {
		return nil, fmt.Errorf("updating statement: %w", err)
	}
	return stmt, nil
}
