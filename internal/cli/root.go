package cli

import (
	"github.com/alexanderramin/agribot/internal/intelligence"
	"github.com/alexanderramin/agribot/internal/logger"
	"github.com/alexanderramin/agribot/internal/repository"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// App holds everything the CLI commands need.
type App struct {
	Assistant *intelligence.Assistant

	// Calls is nil when call logging is off.
	Calls repository.CallEventRepo

	Log *zap.Logger

	// LogLevel, when set, is adjusted by --log-level.
	LogLevel *zap.AtomicLevel

	// IsInteractive reports whether stdin and stdout are a terminal.
	IsInteractive func() bool

	// Picker chooses one of names. Nil uses a huh select form.
	Picker func(title string, names []string) (string, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Log == nil {
		return zap.NewNop()
	}
	return a.Log
}

// NewRootCmd creates the top-level "agribot" command and registers all
// subcommands against the provided App. With no subcommand it starts a chat.
func NewRootCmd(app *App) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "agribot",
		Short:         "Agricultural assistant for crops, pests, diseases and weather",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" && app.LogLevel != nil {
				app.LogLevel.SetLevel(logger.ParseLevel(logLevel))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return startChat(cmd, app, false)
		},
	}
	addLogLevelFlag(root.PersistentFlags(), &logLevel)

	root.AddCommand(
		newChatCmd(app),
		newAskCmd(app),
		newCropsCmd(app),
		newPestsCmd(app),
		newDiseasesCmd(app),
		newWeatherCmd(app),
		newTipCmd(app),
		newCallsCmd(app),
	)

	return root
}

func addLogLevelFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVar(target, "log-level", "", "log level on stderr: debug, info, warn or error")
}
