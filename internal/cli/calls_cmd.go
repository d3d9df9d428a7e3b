package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/agribot/internal/cli/formatter"
	"github.com/alexanderramin/agribot/internal/llm"
	"github.com/spf13/cobra"
)

// errCallLogOff is returned by `calls` when no call store is configured.
var errCallLogOff = errors.New("call logging is off; set AGRIBOT_LLM_LOG_CALLS=true or AGRIBOT_LLM_CALLS_DB")

func newCallsCmd(app *App) *cobra.Command {
	var (
		limit   int
		session string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "calls",
		Short: "Show recorded language model calls",
		Long: `Show recorded generation calls, newest first: task, model,
latency and result. Calls are only recorded when call logging is on.`,
		Example: `  agribot calls --limit 5
  agribot calls --summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Calls == nil {
				return errCallLogOff
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if summary {
				s, err := app.Calls.Summary(ctx)
				if err != nil {
					return fmt.Errorf("summarizing calls: %w", err)
				}
				if len(s) == 0 {
					fmt.Fprintln(out, formatter.Dim("  No generation calls recorded."))
					return nil
				}
				fmt.Fprintln(out, formatter.FormatCallSummary(s))
				return nil
			}

			var (
				events []llm.CallEvent
				err    error
			)
			if session != "" {
				events, err = app.Calls.ListBySession(ctx, session)
			} else {
				events, err = app.Calls.ListRecent(ctx, limit)
			}
			if err != nil {
				return fmt.Errorf("listing calls: %w", err)
			}
			fmt.Fprintln(out, formatter.FormatCalls(events, time.Now().UTC()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of calls to show")
	cmd.Flags().StringVar(&session, "session", "", "only show calls from this chat session")
	cmd.Flags().BoolVar(&summary, "summary", false, "show per-task totals instead of individual calls")
	return cmd
}
