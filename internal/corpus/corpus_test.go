// ABOUTME: Tests for corpus parsing and file loading
// ABOUTME: Uses temp directories for file and directory loading
package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greetingsYAML = `categories:
- greetings
conversations:
- - Hello
  - Hi
- - How are you?
  - I am fine.
  - 42
- []
`

const greetingsJSON = `{
  "categories": ["greetings"],
  "conversations": [["Hello", "Hi"], ["Good morning", "Morning!"]]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse_YAML(t *testing.T) {
	c, err := Parse(strings.NewReader(greetingsYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"greetings"}, c.Categories)
	require.Len(t, c.Conversations, 2)
	assert.Equal(t, []string{"Hello", "Hi"}, c.Conversations[0])
	assert.Equal(t, []string{"How are you?", "I am fine.", "42"}, c.Conversations[1])
	assert.Equal(t, 5, c.Statements())
}

func TestParse_JSON(t *testing.T) {
	c, err := Parse(strings.NewReader(greetingsJSON), FormatJSON)
	require.NoError(t, err)

	require.Len(t, c.Conversations, 2)
	assert.Equal(t, []string{"Good morning", "Morning!"}, c.Conversations[1])
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, c.Conversations)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"unknown yaml field", "dialogues:\n- - hi\n", FormatYAML},
		{"yaml wrong shape", "conversations: hello\n", FormatYAML},
		{"unknown json field", `{"dialogues": []}`, FormatJSON},
		{"broken json", `{"conversations": [[`, FormatJSON},
		{"unknown format", "conversations: []", Format("toml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestFormatFor(t *testing.T) {
	for path, want := range map[string]Format{
		"a.yml":  FormatYAML,
		"a.YAML": FormatYAML,
		"a.json": FormatJSON,
	} {
		got, err := FormatFor(path)
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFor("notes.txt")
	assert.Error(t, err)
}

func TestLoad_SetsName(t *testing.T) {
	path := writeFile(t, t.TempDir(), "greetings.yml", greetingsYAML)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "greetings", c.Name)
}

func TestLoad_ErrorNamesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.json", "{")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
}

func TestLoadDir_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b/weather.json", greetingsJSON)
	writeFile(t, dir, "a.yml", greetingsYAML)
	writeFile(t, dir, "README.md", "# not a corpus")

	corpora, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, corpora, 2)
	assert.Equal(t, "a", corpora[0].Name)
	assert.Equal(t, "weather", corpora[1].Name)
}

func TestLoadPath(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "one.yaml", greetingsYAML)

	single, err := LoadPath(file)
	require.NoError(t, err)
	assert.Len(t, single, 1)

	all, err := LoadPath(dir)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = LoadPath(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
