// ABOUTME: CLI command to train the bot from corpus files or inline text
// ABOUTME: Each conversation is folded into the statement graph in order
package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/chatter/internal/corpus"
)

var (
	trainStatements []string
)

// NewTrainCmd creates the train command
func NewTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train [path...]",
		Short: "Train the bot on conversations",
		Long: `Train the bot on conversations.

Paths may be corpus files (.yml, .yaml, .json) or directories of them.
A corpus lists conversations, each an ordered list of statements:

  categories:
  - greetings
  conversations:
  - - Hello
    - Hi there!

Use --say to train a single conversation from the command line.

Examples:
  chatter train ./corpus
  chatter train greetings.yml weather.json
  chatter train --say "Hello" --say "Hi there!"`,
		RunE: runTrain,
	}

	cmd.Flags().StringArrayVar(&trainStatements, "say", nil, "Statement of an inline conversation (repeatable, in order)")

	return cmd
}

type trainSummary struct {
	Corpora       int `json:"corpora"`
	Conversations int `json:"conversations"`
	Statements    int `json:"statements"`
}

func runTrain(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(trainStatements) == 0 {
		return errors.New("nothing to train: pass corpus paths or --say")
	}

	var conversations [][]string
	summary := trainSummary{}
	for _, path := range args {
		corpora, err := corpus.LoadPath(path)
		if err != nil {
			return err
		}
		for _, c := range corpora {
			conversations = append(conversations, c.Conversations...)
			summary.Corpora++
		}
	}
	if len(trainStatements) > 0 {
		conversations = append(conversations, trainStatements)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	n, err := a.bot.Engine().TrainAll(cmd.Context(), conversations)
	if err != nil {
		return fmt.Errorf("training: %w", err)
	}
	summary.Conversations = len(conversations)
	summary.Statements = n

	if jsonOutput() {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Trained %d conversation(s), %d statement(s)\n", summary.Conversations, summary.Statements)
	}
	return nil
}
