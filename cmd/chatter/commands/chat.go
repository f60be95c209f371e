// ABOUTME: Interactive chat loop reading from stdin
// ABOUTME: Ends on EOF or when the user types quit or exit
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/chatter/internal/core"
)

var (
	chatSpeaker string
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the bot interactively",
		Long: `Talk to the bot interactively.

Each line you type is answered and learned. An empty line asks the bot
to say something it knows. Type quit or exit, or send EOF, to leave.`,
		RunE: runChat,
	}

	cmd.Flags().StringVar(&chatSpeaker, "speaker", core.DefaultSpeaker, "Name of the speaker")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	if err := core.ValidateSpeaker(chatSpeaker); err != nil {
		return fmt.Errorf("--speaker: %w", err)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	out := cmd.OutOrStdout()
	if !quiet {
		fmt.Fprintf(out, "Talking to %s. Type quit to leave.\n", a.bot.Name())
	}

	for {
		if !quiet {
			fmt.Fprint(out, "> ")
		}

		text, err := a.bot.GetInput()
		if errors.Is(err, io.EOF) {
			if !quiet {
				fmt.Fprintln(out)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(text)) {
		case "quit", "exit":
			return nil
		}

		reply, err := a.bot.GetResponse(cmd.Context(), text, chatSpeaker)
		if errors.Is(err, core.ErrNoCandidateStatements) {
			fmt.Fprintf(out, "%s doesn't know anything yet, run 'chatter train' first\n", a.bot.Name())
			continue
		}
		if err != nil {
			return err
		}

		if quiet || jsonOutput() {
			fmt.Fprintln(out, reply)
		} else {
			fmt.Fprintf(out, "%s: %s\n", a.bot.Name(), reply)
		}
	}
}
