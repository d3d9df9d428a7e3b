package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/agribot/internal/cli/formatter"
	"github.com/alexanderramin/agribot/internal/intelligence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newChatCmd(app *App) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start a conversation with AgriBot",
		Long: `Start a conversation with AgriBot. Questions about known crops,
pests, diseases and weather are answered from the built-in knowledge base;
open-ended questions go to the configured language model when available.

Commands during chat:
  /tip       Show a random farming tip
  /history   Show the conversation so far
  /quit      Exit the chat

Examples:
  agribot chat
  agribot chat --plain < questions.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return startChat(cmd, app, plain)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "use the line-based chat even on a terminal")
	return cmd
}

func startChat(cmd *cobra.Command, app *App, plain bool) error {
	session := app.Assistant.NewSession()
	app.logger().Debug("chat started", zap.String("session", session.ID))

	if !plain && app.interactive() {
		return runChatTUI(cmd.Context(), session, cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return runChat(cmd.Context(), session, cmd.InOrStdin(), cmd.OutOrStdout(), app.interactive())
}

// runChat is the line-based chat loop. The spinner is only drawn when out is
// a terminal.
func runChat(ctx context.Context, session *intelligence.Session, in io.Reader, out io.Writer, spin bool) error {
	fmt.Fprint(out, formatter.FormatChatWelcome())
	fmt.Fprintln(out, formatter.FormatReply(session.Greet()))

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "\n"+formatter.FormatUserTurn(""))
		line, err := readPromptLine(reader)
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "/quit", "/exit", "/q":
			return nil
		case "/tip":
			fmt.Fprintln(out, formatter.FormatReply(session.Tip()))
			continue
		case "/history":
			fmt.Fprintln(out, formatter.FormatHistory(session.History()))
			continue
		}

		stop := func() {}
		if spin {
			stop = formatter.StartSpinnerTo(out, "Thinking...")
		}
		reply := session.ProcessMessage(ctx, input)
		stop()

		for _, w := range session.Warnings() {
			fmt.Fprintln(out, formatter.FormatWarning(w))
		}
		fmt.Fprintln(out, formatter.FormatReply(reply))
	}
}
