// ABOUTME: Tests for the ChatBot facade
// ABOUTME: Verifies rendering, turn logging and input passthrough
package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/chatter/internal/models"
	"github.com/harper/chatter/internal/storage/memory"
)

type stubPresenter struct {
	inputs   []string
	rendered []*models.ResponseRecord
}

func (p *stubPresenter) Render(rec *models.ResponseRecord) (string, error) {
	p.rendered = append(p.rendered, rec)
	return "> " + rec.Reply.Text, nil
}

func (p *stubPresenter) ReadInput() (string, error) {
	if len(p.inputs) == 0 {
		return "", errors.New("no more input")
	}
	next := p.inputs[0]
	p.inputs = p.inputs[1:]
	return next, nil
}

func newTestBot(t *testing.T, store StatementStore, p Presenter) *ChatBot {
	t.Helper()
	e := newTestEngine(t, store, &fixedMatcher{match: "hello", ok: true})
	bot, err := NewChatBot("Polly", e, p, nil)
	require.NoError(t, err)
	return bot
}

func TestNewChatBot_RequiresCollaborators(t *testing.T) {
	e := newTestEngine(t, memory.New(), &fixedMatcher{})

	_, err := NewChatBot("x", nil, &stubPresenter{}, nil)
	assert.Error(t, err)

	_, err = NewChatBot("x", e, nil, nil)
	assert.Error(t, err)
}

func TestChatBot_GetResponse(t *testing.T) {
	store := memory.New()
	p := &stubPresenter{}
	bot := newTestBot(t, store, p)
	ctx := context.Background()

	require.NoError(t, bot.Train(ctx, []string{"hello", "hi there"}))

	out, err := bot.GetResponse(ctx, "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "> hi there", out)
	assert.Equal(t, "Polly", bot.Name())

	require.Len(t, p.rendered, 1)
	assert.Equal(t, DefaultSpeaker, p.rendered[0].Speaker)

	turns, err := store.RecentTurns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "hello", turns[0].Input)
	assert.Equal(t, "hi there", turns[0].Reply)
	assert.Equal(t, DefaultSpeaker, turns[0].Speaker)
}

func TestChatBot_GetResponse_PropagatesErrors(t *testing.T) {
	bot := newTestBot(t, memory.New(), &stubPresenter{})

	_, err := bot.GetResponse(context.Background(), "hello", "u")
	assert.ErrorIs(t, err, ErrNoCandidateStatements)
}

func TestChatBot_GetResponseData_WithoutTurnLog(t *testing.T) {
	store := scanOnlyStore{memory.New()}
	bot := newTestBot(t, store, &stubPresenter{})
	ctx := context.Background()

	require.NoError(t, bot.Train(ctx, []string{"hello", "hi there"}))

	rec, err := bot.GetResponseData(ctx, models.Input{Speaker: "bob", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "bob", rec.Speaker)
	assert.Equal(t, "hi there", rec.Reply.Text)
}

func TestChatBot_GetInput(t *testing.T) {
	p := &stubPresenter{inputs: []string{"first", "second"}}
	bot := newTestBot(t, memory.New(), p)

	got, err := bot.GetInput()
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = bot.GetInput()
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	_, err = bot.GetInput()
	assert.Error(t, err)
}
