// ABOUTME: Statement is a unit of conversation with learned frequency metadata
// ABOUTME: Identity is the text; occurrence and in_response_to are merged, never duplicated
package models

import (
	"errors"
	"maps"
	"strings"
)

// Statement represents a known piece of conversation text
type Statement struct {
	Text         string         `json:"text" yaml:"text"`
	Occurrence   int            `json:"occurrence" yaml:"occurrence"`
	InResponseTo map[string]int `json:"in_response_to" yaml:"in_response_to"`
	Name         string         `json:"name,omitempty" yaml:"name,omitempty"`
}

// NewStatement creates an unseen statement with empty metadata
func NewStatement(text string) (*Statement, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("statement text cannot be empty")
	}
	return &Statement{
		Text:         text,
		InResponseTo: map[string]int{},
	}, nil
}

// Clone returns a deep copy so callers can merge without aliasing store state
func (s *Statement) Clone() *Statement {
	if s == nil {
		return nil
	}
	c := *s
	c.InResponseTo = make(map[string]int, len(s.InResponseTo))
	maps.Copy(c.InResponseTo, s.InResponseTo)
	return &c
}

// ResponseWeight returns how many times this statement followed previous
func (s *Statement) ResponseWeight(previous string) int {
	if s == nil || s.InResponseTo == nil {
		return 0
	}
	return s.InResponseTo[previous]
}

// Input is one incoming utterance
type Input struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// IsBlank reports whether the utterance carries no text
func (i Input) IsBlank() bool {
	return strings.TrimSpace(i.Text) == ""
}
