// ABOUTME: Turn represents one exchange between a speaker and the bot
// ABOUTME: Appended to the turn log after every response cycle
package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Turn represents a single conversation turn
type Turn struct {
	TurnID    string    `json:"turn_id" yaml:"turn_id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Speaker   string    `json:"speaker" yaml:"speaker"`
	Input     string    `json:"input" yaml:"input"`
	Reply     string    `json:"reply" yaml:"reply"`
}

// NewTurn creates a new Turn from a finished response record
func NewTurn(record *ResponseRecord) (*Turn, error) {
	if record == nil {
		return nil, errors.New("response record cannot be nil")
	}
	if record.Reply.Text == "" {
		return nil, errors.New("reply cannot be empty")
	}
	return &Turn{
		TurnID:    generateTurnID(),
		Timestamp: time.Now().UTC(),
		Speaker:   record.Speaker,
		Input:     record.Input.Text,
		Reply:     record.Reply.Text,
	}, nil
}

// generateTurnID generates a unique turn identifier
func generateTurnID() string {
	return fmt.Sprintf("turn_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
