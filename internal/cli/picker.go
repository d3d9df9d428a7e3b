package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/agribot/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// errPickerAborted is returned when the user leaves a picker without choosing.
var errPickerAborted = errors.New("no selection made")

// agribotHuhTheme returns a huh theme matching the formatter palette.
func agribotHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// selectForm builds a single-select form over names, labelled in title case.
func selectForm(title string, names []string, result *string) *huh.Form {
	options := make([]huh.Option[string], len(names))
	for i, n := range names {
		options[i] = huh.NewOption(formatter.Title(n), n)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(result),
		),
	).WithTheme(agribotHuhTheme()).WithShowHelp(false)
}

func huhPick(title string, names []string) (string, error) {
	var choice string
	if err := selectForm(title, names, &choice).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errPickerAborted
		}
		return "", err
	}
	return choice, nil
}

// chooseTopic resolves the topic for a reference command: the argument when
// given, otherwise a picker on a terminal.
func (a *App) chooseTopic(args []string, kind string, names []string) (string, error) {
	if len(args) > 0 {
		return strings.ToLower(strings.TrimSpace(strings.Join(args, " "))), nil
	}
	if !a.interactive() {
		return "", fmt.Errorf("specify a %s: %s", kind, strings.Join(names, ", "))
	}
	pick := a.Picker
	if pick == nil {
		pick = huhPick
	}
	return pick(fmt.Sprintf("Select a %s", kind), names)
}

func unknownTopic(kind, name string, names []string) error {
	return fmt.Errorf("unknown %s %q (known: %s)", kind, name, strings.Join(names, ", "))
}
