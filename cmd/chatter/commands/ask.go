// ABOUTME: CLI command to get a single reply from the bot
// ABOUTME: The exchange is learned and logged like any chat turn
package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/chatter/internal/core"
)

var (
	askSpeaker string
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [text]",
		Short: "Get one reply from the bot",
		Long: `Get one reply from the bot.

With no text the bot picks a random statement it knows.

Examples:
  chatter ask "Hello"
  chatter ask --speaker alice "How are you?"
  chatter ask --format json "Good morning"`,
		RunE: runAsk,
	}

	cmd.Flags().StringVar(&askSpeaker, "speaker", core.DefaultSpeaker, "Name of the speaker")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := core.ValidateSpeaker(askSpeaker); err != nil {
		return fmt.Errorf("--speaker: %w", err)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	reply, err := a.bot.GetResponse(cmd.Context(), strings.Join(args, " "), askSpeaker)
	if errors.Is(err, core.ErrNoCandidateStatements) {
		return fmt.Errorf("%s doesn't know anything yet, run 'chatter train' first", a.bot.Name())
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}
