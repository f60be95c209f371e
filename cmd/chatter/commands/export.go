// ABOUTME: CLI commands to export the statement graph and import it back
// ABOUTME: Snapshots are YAML, JSON or Markdown (export only)
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harper/chatter/internal/export"
)

var (
	exportOutput string
	exportFormat string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the statement graph and turn log",
		Long: `Export every statement and the turn log.

Without --output the snapshot is written to stdout. The format defaults
to the output file's extension, or YAML.

Examples:
  chatter export > backup.yaml
  chatter export --output backup.json
  chatter export --output graph.md --export-format markdown`,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&exportFormat, "export-format", "", "yaml, json or markdown")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := snapshotFormat(exportFormat, exportOutput)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	data, err := export.Snapshot(cmd.Context(), a.store, a.bot.Name())
	if err != nil {
		return err
	}

	if exportOutput == "" {
		return export.Write(cmd.OutOrStdout(), data, format)
	}
	if err := export.WriteFile(exportOutput, data, format); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d statement(s) and %d turn(s) to %s\n",
			len(data.Statements), len(data.Turns), exportOutput)
	}
	return nil
}

// NewImportCmd creates the import command
func NewImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a YAML or JSON snapshot",
		Long: `Import a snapshot written by 'chatter export'.

Statements in the snapshot replace statements with the same text.

Examples:
  chatter import backup.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := snapshotFormat("", path)
	if err != nil {
		return err
	}

	file, err := os.Open(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := export.Read(file, format)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	n, err := export.Restore(cmd.Context(), a.store, data)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d statement(s)\n", n)
	}
	return nil
}

func snapshotFormat(explicit, path string) (export.Format, error) {
	if explicit != "" {
		return export.ParseFormat(explicit)
	}
	if ext := filepath.Ext(path); ext != "" {
		return export.ParseFormat(ext)
	}
	return export.FormatYAML, nil
}
