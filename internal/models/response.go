// ABOUTME: ResponseRecord pairs the speaker's input with the bot's chosen reply
// ABOUTME: Encodes as {speaker: {input: meta}, "bot": {reply: meta}}
package models

import (
	"encoding/json"
	"fmt"
)

// BotSpeaker is the fixed key the reply is reported under
const BotSpeaker = "bot"

// StatementMeta is the per-statement metadata inside a response record
type StatementMeta struct {
	Occurrence   int            `json:"occurrence" yaml:"occurrence"`
	InResponseTo map[string]int `json:"in_response_to" yaml:"in_response_to"`
	Name         string         `json:"name,omitempty" yaml:"name,omitempty"`
}

// ResponseRecord is the structured output of one response cycle
type ResponseRecord struct {
	Speaker string
	Input   Statement
	Reply   Statement
}

func metaOf(s Statement) StatementMeta {
	irt := s.InResponseTo
	if irt == nil {
		irt = map[string]int{}
	}
	return StatementMeta{Occurrence: s.Occurrence, InResponseTo: irt, Name: s.Name}
}

// Mapping returns the two-key logical shape of the record
func (r *ResponseRecord) Mapping() map[string]map[string]StatementMeta {
	return map[string]map[string]StatementMeta{
		r.Speaker:  {r.Input.Text: metaOf(r.Input)},
		BotSpeaker: {r.Reply.Text: metaOf(r.Reply)},
	}
}

// MarshalJSON encodes the record as its two-key mapping
func (r *ResponseRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Mapping())
}

// UnmarshalJSON decodes the two-key mapping back into a record
func (r *ResponseRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]StatementMeta
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("response record must have 2 top-level keys, got %d", len(raw))
	}
	bot, ok := raw[BotSpeaker]
	if !ok || len(bot) != 1 {
		return fmt.Errorf("response record missing single %q entry", BotSpeaker)
	}
	for speaker, entry := range raw {
		if speaker == BotSpeaker {
			continue
		}
		if len(entry) != 1 {
			return fmt.Errorf("speaker %q must map to exactly one statement", speaker)
		}
		r.Speaker = speaker
		for text, meta := range entry {
			r.Input = Statement{Text: text, Occurrence: meta.Occurrence, InResponseTo: meta.InResponseTo, Name: meta.Name}
		}
	}
	for text, meta := range bot {
		r.Reply = Statement{Text: text, Occurrence: meta.Occurrence, InResponseTo: meta.InResponseTo, Name: meta.Name}
	}
	return nil
}
