// ABOUTME: Capability interfaces the conversation engine is built against
// ABOUTME: Storage, matching and presentation are injected at construction time
package core

import (
	"context"

	"github.com/harper/chatter/internal/models"
)

// StatementStore persists statements keyed by their text
type StatementStore interface {
	// Find returns nil, nil when no statement with this text exists
	Find(ctx context.Context, text string) (*models.Statement, error)
	// Update upserts the statement, fully replacing occurrence and in_response_to
	Update(ctx context.Context, stmt *models.Statement) error
	// GetRandom returns nil, nil when the store is empty
	GetRandom(ctx context.Context) (*models.Statement, error)
	ListStatements(ctx context.Context) ([]string, error)
}

// ResponseFinder is implemented by stores that can look up the statements
// recorded in response to a text without a full scan
type ResponseFinder interface {
	ResponsesTo(ctx context.Context, text string) ([]*models.Statement, error)
}

// TurnRecorder is implemented by stores that keep a turn log
type TurnRecorder interface {
	RecordTurn(ctx context.Context, turn *models.Turn) error
}

// Matcher picks the best known statement for an input.
// ok is false when nothing matches.
type Matcher interface {
	Match(ctx context.Context, input string, candidates []string) (match string, ok bool, err error)
}

// Presenter renders response records and reads raw input for a transport
type Presenter interface {
	Render(record *models.ResponseRecord) (string, error)
	ReadInput() (string, error)
}

// TurnHistory is implemented by stores that can replay their turn log
type TurnHistory interface {
	RecentTurns(ctx context.Context, limit int) ([]models.Turn, error)
}
