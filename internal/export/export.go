// ABOUTME: Snapshot export and import of a statement graph and its turn log
// ABOUTME: Writes YAML, JSON or Markdown; reads YAML or JSON back into any store
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harper/chatter/internal/core"
	"github.com/harper/chatter/internal/models"
)

// FormatVersion is written into every snapshot
const FormatVersion = "1.0"

// Format of an export file
type Format string

// Supported formats
const (
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts a format name or a file extension
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported export format %q: want yaml, json or markdown", s)
	}
}

// Data is the complete exportable snapshot
type Data struct {
	Version    string        `yaml:"version" json:"version"`
	ExportedAt string        `yaml:"exported_at" json:"exported_at"`
	Tool       string        `yaml:"tool" json:"tool"`
	Bot        string        `yaml:"bot,omitempty" json:"bot,omitempty"`
	Statements []Statement   `yaml:"statements" json:"statements"`
	Turns      []models.Turn `yaml:"turns,omitempty" json:"turns,omitempty"`
}

// Statement is one node of the graph with its incoming edges
type Statement struct {
	Text         string         `yaml:"text" json:"text"`
	Occurrence   int            `yaml:"occurrence" json:"occurrence"`
	Name         string         `yaml:"name,omitempty" json:"name,omitempty"`
	InResponseTo map[string]int `yaml:"in_response_to,omitempty" json:"in_response_to,omitempty"`
}

// Snapshot reads every statement from store, plus the turn log when the
// store keeps one. Statements are ordered by text, turns newest first.
func Snapshot(ctx context.Context, store core.StatementStore, bot string) (*Data, error) {
	data := &Data{
		Version:    FormatVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Tool:       "chatter",
		Bot:        bot,
	}

	texts, err := store.ListStatements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	slices.Sort(texts)

	data.Statements = make([]Statement, 0, len(texts))
	for _, text := range texts {
		stmt, err := store.Find(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to load statement %q: %w", text, err)
		}
		if stmt == nil {
			continue
		}
		out := Statement{
			Text:       stmt.Text,
			Occurrence: stmt.Occurrence,
			Name:       stmt.Name,
		}
		if len(stmt.InResponseTo) > 0 {
			out.InResponseTo = stmt.InResponseTo
		}
		data.Statements = append(data.Statements, out)
	}

	if history, ok := store.(core.TurnHistory); ok {
		turns, err := history.RecentTurns(ctx, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to read turn log: %w", err)
		}
		data.Turns = turns
	}

	return data, nil
}

// Write encodes data to w in the given format
func Write(w io.Writer, data *Data, format Format) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatMarkdown:
		return writeMarkdown(w, data)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteFile writes data to path, creating parent directories
func WriteFile(path string, data *Data, format Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(file, data, format); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func writeMarkdown(w io.Writer, data *Data) error {
	var b strings.Builder

	title := "Chatter Export"
	if data.Bot != "" {
		title += " - " + data.Bot
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Generated: %s\n\n", data.ExportedAt)

	if len(data.Statements) > 0 {
		b.WriteString("## Statements\n\n")
		b.WriteString("| Statement | Occurrence | In response to |\n")
		b.WriteString("|-----------|------------|----------------|\n")
		for _, s := range data.Statements {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", escapeCell(s.Text), s.Occurrence, escapeCell(formatEdges(s.InResponseTo)))
		}
		b.WriteString("\n")
	}

	if len(data.Turns) > 0 {
		b.WriteString("## Turns\n\n")
		for _, t := range data.Turns {
			fmt.Fprintf(&b, "**%s** (%s): %s\n\n", t.Speaker, t.Timestamp.Format(time.RFC3339), t.Input)
			fmt.Fprintf(&b, "**bot:** %s\n\n", t.Reply)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatEdges(edges map[string]int) string {
	keys := make([]string, 0, len(edges))
	for k := range edges {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s (%d)", k, edges[k]))
	}
	return strings.Join(parts, ", ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Read decodes a YAML or JSON snapshot
func Read(r io.Reader, format Format) (*Data, error) {
	var data Data
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&data); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&data); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("cannot import %s snapshots", format)
	}
	return &data, nil
}

// Restore writes every statement in data into store, replacing existing
// statements with the same text. The whole snapshot is validated before
// anything is written, and repeated texts are merged by summing their counts.
// Turns are replayed when the store keeps a turn log. Returns the number of
// statements written.
func Restore(ctx context.Context, store core.StatementStore, data *Data) (int, error) {
	stmts, err := mergeStatements(data.Statements)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, stmt := range stmts {
		if err := store.Update(ctx, stmt); err != nil {
			return n, fmt.Errorf("failed to restore %q: %w", stmt.Text, err)
		}
		n++
	}

	if recorder, ok := store.(core.TurnRecorder); ok {
		// oldest first so the log keeps its order
		for i := len(data.Turns) - 1; i >= 0; i-- {
			turn := data.Turns[i]
			if err := recorder.RecordTurn(ctx, &turn); err != nil {
				return n, fmt.Errorf("failed to restore turn %s: %w", turn.TurnID, err)
			}
		}
	}
	return n, nil
}

// mergeStatements checks counts and folds repeated texts together, keeping
// first-seen order
func mergeStatements(in []Statement) ([]*models.Statement, error) {
	byText := make(map[string]*models.Statement, len(in))
	var out []*models.Statement
	for i, s := range in {
		if s.Occurrence < 0 {
			return nil, fmt.Errorf("statement %d (%q): occurrence cannot be negative, got %d", i, s.Text, s.Occurrence)
		}
		for prev, w := range s.InResponseTo {
			if strings.TrimSpace(prev) == "" {
				return nil, fmt.Errorf("statement %d (%q): in_response_to has a blank text", i, s.Text)
			}
			if w <= 0 {
				return nil, fmt.Errorf("statement %d (%q): weight for %q must be positive, got %d", i, s.Text, prev, w)
			}
		}

		stmt, ok := byText[s.Text]
		if !ok {
			var err error
			stmt, err = models.NewStatement(s.Text)
			if err != nil {
				return nil, fmt.Errorf("statement %d: %w", i, err)
			}
			byText[s.Text] = stmt
			out = append(out, stmt)
		}
		stmt.Occurrence += s.Occurrence
		if s.Name != "" {
			stmt.Name = s.Name
		}
		for prev, w := range s.InResponseTo {
			stmt.InResponseTo[prev] += w
		}
	}
	return out, nil
}
