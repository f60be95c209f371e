// ABOUTME: Terminal presenters that render replies and read raw input lines
// ABOUTME: Text prints only the bot's reply; JSON prints the full response mapping
package terminal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/harper/chatter/internal/models"
)

// lineReader reads newline-terminated input
type lineReader struct {
	in *bufio.Reader
}

// ReadInput returns the next line without its line ending.
// io.EOF is returned only when no text remains.
func (r *lineReader) ReadInput() (string, error) {
	if r.in == nil {
		return "", io.EOF
	}
	line, err := r.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", io.EOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// TextAdapter renders the reply text alone
type TextAdapter struct {
	lineReader
}

// NewTextAdapter reads input from in. in may be nil for output-only use.
func NewTextAdapter(in io.Reader) *TextAdapter {
	return &TextAdapter{lineReader{in: newReader(in)}}
}

// Render returns the bot's reply text
func (a *TextAdapter) Render(record *models.ResponseRecord) (string, error) {
	if record == nil {
		return "", errors.New("nothing to render")
	}
	return record.Reply.Text, nil
}

// JSONAdapter renders the two-key response mapping as JSON
type JSONAdapter struct {
	lineReader
	indent bool
}

// NewJSONAdapter reads input from in; indent pretty-prints the output
func NewJSONAdapter(in io.Reader, indent bool) *JSONAdapter {
	return &JSONAdapter{lineReader: lineReader{in: newReader(in)}, indent: indent}
}

// Render returns the record's JSON mapping
func (a *JSONAdapter) Render(record *models.ResponseRecord) (string, error) {
	if record == nil {
		return "", errors.New("nothing to render")
	}

	var (
		data []byte
		err  error
	)
	if a.indent {
		data, err = json.MarshalIndent(record, "", "  ")
	} else {
		data, err = json.Marshal(record)
	}
	if err != nil {
		return "", fmt.Errorf("marshaling response: %w", err)
	}
	return string(data), nil
}

func newReader(in io.Reader) *bufio.Reader {
	if in == nil {
		return nil
	}
	return bufio.NewReader(in)
}
