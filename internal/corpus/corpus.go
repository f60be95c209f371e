// ABOUTME: Loads training conversations from YAML or JSON corpus files
// ABOUTME: Layout is {categories: [...], conversations: [[statement, ...], ...]}
package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format of a corpus document
type Format string

// Supported formats
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Corpus is one file's worth of training data
type Corpus struct {
	Name          string     `json:"-" yaml:"-"`
	Categories    []string   `json:"categories,omitempty" yaml:"categories,omitempty"`
	Conversations [][]string `json:"conversations" yaml:"conversations"`
}

// Statements returns the number of statements across all conversations
func (c *Corpus) Statements() int {
	n := 0
	for _, conv := range c.Conversations {
		n += len(conv)
	}
	return n
}

// FormatFor picks a format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported corpus file %s: want .yml, .yaml or .json", path)
	}
}

// Parse decodes a corpus document. Empty conversations are dropped.
func Parse(r io.Reader, format Format) (*Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}

	var c Corpus
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && err != io.EOF {
			return nil, fmt.Errorf("parsing YAML corpus: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("parsing JSON corpus: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown corpus format %q", format)
	}

	c.Conversations = slices.DeleteFunc(c.Conversations, func(conv []string) bool {
		return len(conv) == 0
	})
	return &c, nil
}

// Load reads one corpus file
func Load(path string) (*Corpus, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- path is an operator-supplied corpus file
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	c, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return c, nil
}

// LoadDir loads every corpus file under dir, in lexical path order
func LoadDir(dir string) ([]*Corpus, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ferr := FormatFor(path); ferr == nil {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	slices.Sort(paths)

	corpora := make([]*Corpus, 0, len(paths))
	for _, p := range paths {
		c, err := Load(p)
		if err != nil {
			return nil, err
		}
		corpora = append(corpora, c)
	}
	return corpora, nil
}

// LoadPath loads a single file or every corpus file in a directory
func LoadPath(path string) ([]*Corpus, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	return []*Corpus{c}, nil
}
