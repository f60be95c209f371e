// ABOUTME: Structured logging setup for the CLI and MCP server
// ABOUTME: slog front end rendered by a charmbracelet/log handler
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Options configures New
type Options struct {
	Output io.Writer
	// Level is debug, info, warn or error. Unknown values mean info.
	Level string
	// Format is text, json or logfmt
	Format string
	Prefix string
}

// New builds a slog.Logger backed by charmbracelet/log
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level, err := charmlog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = charmlog.InfoLevel
	}

	formatter := charmlog.TextFormatter
	switch strings.ToLower(opts.Format) {
	case "json":
		formatter = charmlog.JSONFormatter
	case "logfmt":
		formatter = charmlog.LogfmtFormatter
	}

	handler := charmlog.NewWithOptions(out, charmlog.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		Formatter:       formatter,
		ReportTimestamp: formatter != charmlog.TextFormatter,
	})
	return slog.New(handler)
}

// LevelFor maps the CLI's verbosity flags onto a level name
func LevelFor(configured string, verbose, quiet bool) string {
	switch {
	case verbose:
		return "debug"
	case quiet:
		return "error"
	case configured == "":
		return "info"
	default:
		return configured
	}
}
