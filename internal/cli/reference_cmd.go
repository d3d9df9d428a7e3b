package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/agribot/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCropsCmd(app *App) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "crops [crop]",
		Short: "Show growing details for a crop",
		Example: `  agribot crops rice
  agribot crops --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb := app.Assistant.Knowledge()
			out := cmd.OutOrStdout()
			if list {
				fmt.Fprintln(out, formatter.FormatCropList(kb.CropNames()))
				return nil
			}

			name, err := app.chooseTopic(args, "crop", kb.CropNames())
			if err != nil {
				return quietAbort(err)
			}
			crop, ok := kb.Crop(name)
			if !ok {
				return unknownTopic("crop", name, kb.CropNames())
			}
			fmt.Fprintln(out, formatter.FormatCropPage(name, crop))
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list supported crops")
	return cmd
}

func newPestsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "pests [pest]",
		Short:   "Show management advice for a pest",
		Example: `  agribot pests aphids`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kb := app.Assistant.Knowledge()
			name, err := app.chooseTopic(args, "pest", kb.PestNames())
			if err != nil {
				return quietAbort(err)
			}
			solution, ok := kb.PestSolution(name)
			if !ok {
				return unknownTopic("pest", name, kb.PestNames())
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPestPage(name, solution, kb.Prevention().Pests))
			return nil
		},
	}
}

func newDiseasesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "diseases [disease]",
		Short:   "Show management advice for a crop disease",
		Example: `  agribot diseases blight`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kb := app.Assistant.Knowledge()
			name, err := app.chooseTopic(args, "disease", kb.DiseaseNames())
			if err != nil {
				return quietAbort(err)
			}
			solution, ok := kb.DiseaseSolution(name)
			if !ok {
				return unknownTopic("disease", name, kb.DiseaseNames())
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDiseasePage(name, solution, kb.Prevention().Diseases))
			return nil
		},
	}
}

func newWeatherCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "weather [condition]",
		Short:   "Show farming advice for a weather condition",
		Example: `  agribot weather rainy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kb := app.Assistant.Knowledge()
			name, err := app.chooseTopic(args, "weather condition", kb.WeatherConditions())
			if err != nil {
				return quietAbort(err)
			}
			advice, ok := kb.WeatherAdvice(name)
			if !ok {
				return unknownTopic("weather condition", name, kb.WeatherConditions())
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWeatherPage(name, advice, kb.Prevention().Weather))
			return nil
		},
	}
}

func newTipCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tip",
		Short: "Show a random farming tip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTip(app.Assistant.RandomTip()))
			return nil
		},
	}
}

// quietAbort turns a cancelled picker into a clean exit.
func quietAbort(err error) error {
	if errors.Is(err, errPickerAborted) {
		return nil
	}
	return err
}
