// ABOUTME: CLI command to inspect one statement in the graph
// ABOUTME: Prints its metadata, its predecessors and its most frequent response
package commands

import (
	"encoding/json"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/chatter/internal/models"
)

// statementDetail is the show command's JSON shape
type statementDetail struct {
	Statement    *models.Statement `json:"statement"`
	MostFrequent *models.Statement `json:"most_frequent_response,omitempty"`
}

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <text>",
		Short: "Inspect one statement",
		Long: `Inspect one statement.

Shows how often the statement was seen, which statements it followed,
and the reply the bot would give to it.

Examples:
  chatter show "Hello"
  chatter show --format json "Hello"`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx := cmd.Context()
	stmt, err := a.store.Find(ctx, args[0])
	if err != nil {
		return fmt.Errorf("loading statement: %w", err)
	}
	if stmt == nil {
		return fmt.Errorf("unknown statement %q", args[0])
	}

	best, err := a.bot.Engine().MostFrequentResponse(ctx, stmt.Text)
	if err != nil {
		return fmt.Errorf("finding response: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		data, err := json.MarshalIndent(statementDetail{Statement: stmt, MostFrequent: best}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", data)
		return nil
	}

	fmt.Fprintf(out, "Statement:  %s\n", stmt.Text)
	fmt.Fprintf(out, "Occurrence: %d\n", stmt.Occurrence)
	if stmt.Name != "" {
		fmt.Fprintf(out, "Speaker:    %s\n", stmt.Name)
	}
	if best != nil {
		fmt.Fprintf(out, "Reply:      %s\n", best.Text)
	} else {
		fmt.Fprintf(out, "Reply:      (none recorded)\n")
	}

	if len(stmt.InResponseTo) == 0 {
		return nil
	}

	previous := make([]string, 0, len(stmt.InResponseTo))
	for p := range stmt.InResponseTo {
		previous = append(previous, p)
	}
	slices.Sort(previous)

	fmt.Fprintf(out, "\nIn response to:\n")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, p := range previous {
		fmt.Fprintf(w, "  %s\t%d\n", truncate(p, 50), stmt.InResponseTo[p])
	}
	return w.Flush()
}
