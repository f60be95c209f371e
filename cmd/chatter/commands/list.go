// ABOUTME: CLI command to list known statements
// ABOUTME: Shows occurrence and how many statements each one answers
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	listLimit int
)

// statementRow is one line of the list output
type statementRow struct {
	Text       string `json:"text"`
	Occurrence int    `json:"occurrence"`
	Answers    int    `json:"answers"`
}

// NewListCmd creates list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known statements",
		Long: `List every statement the bot knows.

OCCURRENCE counts how often the statement was seen. ANSWERS counts the
distinct statements it has followed.

Examples:
  chatter list
  chatter list --limit 20
  chatter list --format json`,
		RunE: runList,
	}

	cmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Maximum statements to show (0 for all)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	if listLimit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", listLimit)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx := cmd.Context()
	texts, err := a.store.ListStatements(ctx)
	if err != nil {
		return fmt.Errorf("listing statements: %w", err)
	}
	total := len(texts)
	if listLimit > 0 && len(texts) > listLimit {
		texts = texts[:listLimit]
	}

	rows := make([]statementRow, 0, len(texts))
	for _, text := range texts {
		stmt, err := a.store.Find(ctx, text)
		if err != nil {
			return fmt.Errorf("loading statement: %w", err)
		}
		if stmt == nil {
			continue
		}
		rows = append(rows, statementRow{Text: stmt.Text, Occurrence: stmt.Occurrence, Answers: len(stmt.InResponseTo)})
	}

	if jsonOutput() {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	if len(rows) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No statements yet, run 'chatter train' first")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "STATEMENT\tOCCURRENCE\tANSWERS\n")
	fmt.Fprintf(w, "---------\t----------\t-------\n")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\n", truncate(row.Text, 50), row.Occurrence, row.Answers)
	}
	_ = w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d statement(s)\n", total)
	}
	return nil
}
