package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agribot/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question and print the answer",
		Example: `  agribot ask "how do I grow rice"
  agribot ask what fertilizer for potato`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return fmt.Errorf("question is empty")
			}

			out := cmd.OutOrStdout()
			session := app.Assistant.NewSession()

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinnerTo(cmd.ErrOrStderr(), "Thinking...")
			}
			reply := session.ProcessMessage(cmd.Context(), question)
			stop()

			for _, w := range session.Warnings() {
				fmt.Fprintln(out, formatter.FormatWarning(w))
			}
			fmt.Fprintln(out, formatter.FormatReply(reply))
			return nil
		},
	}
}
