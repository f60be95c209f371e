// ABOUTME: CLI command to show recent conversation turns
// ABOUTME: Reads the turn log of stores that keep one
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversation turns",
		Long: `Show recent conversation turns, newest first.

Examples:
  chatter history
  chatter history --limit 50 --format json`,
		RunE: runHistory,
	}

	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of turns to show")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(historyLimit, "limit"); err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	history, ok := a.turnHistory()
	if !ok {
		return errors.New("this storage backend does not keep a turn log")
	}

	turns, err := history.RecentTurns(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if jsonOutput() {
		data, err := json.MarshalIndent(turns, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	if len(turns) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No conversation history")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "WHEN\tSPEAKER\tINPUT\tREPLY\n")
	fmt.Fprintf(w, "----\t-------\t-----\t-----\n")
	for _, turn := range turns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			formatTime(turn.Timestamp),
			turn.Speaker,
			truncate(turn.Input, 40),
			truncate(turn.Reply, 40))
	}
	return w.Flush()
}
