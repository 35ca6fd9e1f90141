package main

import (
	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/observability"
	"github.com/spf13/cobra"
)

var weightsCmd = &cobra.Command{
	Use:   "weights [job-type]",
	Short: "Show category weight profiles",
	Long:  "Show the weight profile used for a job type, or every profile when no type is given. Unknown types fall back to the default profile.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWeights,
}

func init() {
	rootCmd.AddCommand(weightsCmd)
}

func runWeights(cmd *cobra.Command, args []string) error {
	printer := observability.NewPrinter(cmd.OutOrStdout())
	if len(args) == 1 {
		printer.PrintWeightProfile(matching.WeightsFor(args[0]))
		return nil
	}

	for _, name := range matching.ProfileNames() {
		printer.PrintWeightProfile(matching.WeightsFor(name))
	}
	printer.PrintWeightProfile(matching.WeightsFor(matching.DefaultProfileName))
	return nil
}
