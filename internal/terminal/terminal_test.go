// ABOUTME: Tests for the text and JSON terminal presenters
// ABOUTME: Uses in-memory readers for input
package terminal

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/chatter/internal/models"
)

func sampleRecord() *models.ResponseRecord {
	return &models.ResponseRecord{
		Speaker: "alice",
		Input:   models.Statement{Text: "hello", Occurrence: 2, InResponseTo: map[string]int{}, Name: "alice"},
		Reply:   models.Statement{Text: "hi there", Occurrence: 3, InResponseTo: map[string]int{"hello": 3}},
	}
}

func TestTextAdapter_Render(t *testing.T) {
	a := NewTextAdapter(nil)

	out, err := a.Render(sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, "hi there", out)

	_, err = a.Render(nil)
	assert.Error(t, err)
}

func TestJSONAdapter_Render(t *testing.T) {
	for _, indent := range []bool{false, true} {
		a := NewJSONAdapter(nil, indent)

		out, err := a.Render(sampleRecord())
		require.NoError(t, err)

		var mapping map[string]map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(out), &mapping))
		assert.Len(t, mapping, 2)
		assert.Contains(t, mapping["alice"], "hello")
		assert.Contains(t, mapping[models.BotSpeaker], "hi there")
		assert.Equal(t, indent, strings.Contains(out, "\n"))
	}
}

func TestReadInput(t *testing.T) {
	a := NewTextAdapter(strings.NewReader("hello\r\n\nlast line"))

	line, err := a.ReadInput()
	require.NoError(t, err)
	assert.Equal(t, "hello", line)

	line, err = a.ReadInput()
	require.NoError(t, err)
	assert.Equal(t, "", line)

	line, err = a.ReadInput()
	require.NoError(t, err)
	assert.Equal(t, "last line", line)

	_, err = a.ReadInput()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadInput_NoReader(t *testing.T) {
	_, err := NewJSONAdapter(nil, false).ReadInput()
	assert.ErrorIs(t, err, io.EOF)
}
