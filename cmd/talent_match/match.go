package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/observability"
	"github.com/jonathan/talent-match/internal/schemas"
	"github.com/jonathan/talent-match/internal/types"
	embedded "github.com/jonathan/talent-match/schemas"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score one candidate against one job",
	Long:  "Score a candidate profile against job requirements, both read from JSON or YAML files validated against the embedded schemas.",
	RunE:  runMatch,
}

var (
	matchCandidateFile string
	matchJobFile       string
	matchOutputFile    string
	matchVerbose       bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchCandidateFile, "candidate", "c", "", "Path to candidate profile (JSON or YAML)")
	matchCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "Path to job requirements (JSON or YAML)")
	matchCmd.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Write the match result JSON to this file")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Also print the weight profile used")

	_ = matchCmd.MarkFlagRequired("candidate")
	_ = matchCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	candidate, err := loadDocument[types.CandidateProfile](matchCandidateFile, embedded.CandidateProfile)
	if err != nil {
		return err
	}
	job, err := loadDocument[types.JobRequirements](matchJobFile, embedded.JobRequirements)
	if err != nil {
		return err
	}

	result := matching.NewEngine().Match(candidate, job)
	return writeMatch(cmd.OutOrStdout(), &result, job.Type, matchOutputFile, matchVerbose)
}

// writeMatch prints result and, when outPath is set, writes it as schema-checked JSON.
func writeMatch(w io.Writer, result *types.MatchResult, jobType, outPath string, verbose bool) error {
	printer := observability.NewPrinter(w)
	if verbose {
		printer.PrintWeightProfile(matching.WeightsFor(jobType))
	}
	printer.PrintMatchResult(result)

	if outPath == "" {
		return nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal match result: %w", err)
	}
	if err := schemas.Validate(embedded.MatchResult, data); err != nil {
		return fmt.Errorf("match result failed schema validation: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Fprintf(w, "Match result written to %s\n", outPath)
	return nil
}
