// ABOUTME: Tests for logger construction and level selection
// ABOUTME: Output is captured in a buffer and inspected
package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf, Level: "warn"})

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=value")
}

func TestNew_UnknownLevelMeansInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf, Level: "chatty"})

	logger.Debug("debug line")
	logger.Info("info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf, Level: "debug", Format: "json"})

	logger.Debug("trained", "statements", 3)

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "trained", entry["msg"])
	assert.Contains(t, entry, "statements")
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		configured     string
		verbose, quiet bool
		want           string
	}{
		{"", false, false, "info"},
		{"warn", false, false, "warn"},
		{"warn", true, false, "debug"},
		{"warn", false, true, "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.configured, tt.verbose, tt.quiet))
	}
}
