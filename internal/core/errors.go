// ABOUTME: Sentinel errors returned by the conversation engine
// ABOUTME: Callers match them with errors.Is
package core

import "errors"

var (
	// ErrNoCandidateStatements means a random reply was needed but the store is empty.
	// Train the bot before asking it for responses.
	ErrNoCandidateStatements = errors.New("no candidate statements: train the bot first")

	// ErrEmptyStatement is returned when a training conversation contains blank text
	ErrEmptyStatement = errors.New("statement text cannot be empty")

	// ErrReservedSpeaker is returned when an input claims the bot's own speaker name
	ErrReservedSpeaker = errors.New("speaker name is reserved for the bot")
)
