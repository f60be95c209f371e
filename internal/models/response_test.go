// ABOUTME: Tests for the ResponseRecord wire shape
// ABOUTME: Verifies the two-key speaker/bot mapping
package models

import (
	"encoding/json"
	"testing"
)

func TestResponseRecord_MarshalJSON(t *testing.T) {
	rec := &ResponseRecord{
		Speaker: "alice",
		Input:   Statement{Text: "hello", Occurrence: 1, InResponseTo: map[string]int{}, Name: "alice"},
		Reply:   Statement{Text: "hi there", Occurrence: 2, InResponseTo: map[string]int{"hello": 2}},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(raw) != 2 {
		t.Fatalf("top-level keys = %d, want 2 (%s)", len(raw), data)
	}
	if _, ok := raw["alice"]["hello"]; !ok {
		t.Errorf("missing alice/hello entry: %s", data)
	}
	if _, ok := raw["bot"]["hi there"]; !ok {
		t.Errorf("missing bot/hi there entry: %s", data)
	}
	if raw["alice"]["hello"]["name"] != "alice" {
		t.Errorf("input name = %v, want alice", raw["alice"]["hello"]["name"])
	}
}

func TestResponseRecord_UnmarshalJSON(t *testing.T) {
	data := []byte(`{"u":{"hey":{"occurrence":1,"in_response_to":{},"name":"u"}},"bot":{"hello":{"occurrence":4,"in_response_to":{"hey":1}}}}`)

	var rec ResponseRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if rec.Speaker != "u" {
		t.Errorf("Speaker = %q, want u", rec.Speaker)
	}
	if rec.Input.Text != "hey" || rec.Input.Name != "u" {
		t.Errorf("Input = %+v", rec.Input)
	}
	if rec.Reply.Text != "hello" || rec.Reply.Occurrence != 4 || rec.Reply.InResponseTo["hey"] != 1 {
		t.Errorf("Reply = %+v", rec.Reply)
	}
}

func TestResponseRecord_UnmarshalJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"one key", `{"bot":{"hi":{"occurrence":1}}}`},
		{"missing bot", `{"a":{"hi":{}},"b":{"yo":{}}}`},
		{"two inputs", `{"a":{"hi":{},"yo":{}},"bot":{"x":{}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec ResponseRecord
			if err := json.Unmarshal([]byte(tt.data), &rec); err == nil {
				t.Errorf("Unmarshal(%s) should fail", tt.data)
			}
		})
	}
}
