package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/talent-match/internal/export"
	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/observability"
	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/server"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the candidate shortlist of a job posting to Excel",
	Long:  "Rank every stored candidate against a job posting and write the shortlist to an .xlsx workbook with summary, ranking and recommendation sheets.",
	RunE:  runExport,
}

var (
	exportJobID    string
	exportOutput   string
	exportLimit    int
	exportMinScore float64
)

func init() {
	exportCmd.Flags().StringVar(&exportJobID, "job-id", "", "Job posting ID")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output workbook path (.xlsx is appended when missing)")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 10, "Maximum candidates in the shortlist (0 keeps all)")
	exportCmd.Flags().Float64Var(&exportMinScore, "min-score", 0, "Minimum overall score")

	_ = exportCmd.MarkFlagRequired("job-id")
	_ = exportCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	jobID, err := uuid.Parse(exportJobID)
	if err != nil {
		return fmt.Errorf("invalid --job-id: %w", err)
	}
	if exportLimit < 0 {
		return fmt.Errorf("--limit must be non-negative")
	}
	if exportMinScore < 0 || exportMinScore > 100 {
		return fmt.Errorf("--min-score must be between 0 and 100")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := ranking.Options{Limit: exportLimit, MinScore: exportMinScore}
	return exportShortlist(ctx, cmd.OutOrStdout(), store, jobID, opts, exportOutput)
}

// exportShortlist ranks the candidates of jobID and saves the workbook at path.
func exportShortlist(ctx context.Context, w io.Writer, store server.Store, jobID uuid.UUID, opts ranking.Options, path string) error {
	job, err := store.GetJobPosting(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load job posting: %w", err)
	}
	if job == nil {
		return &server.ErrNotFound{Resource: "job posting", ID: jobID.String()}
	}

	ranked, err := server.NewMatchService(store, matching.NewEngine()).BestCandidates(ctx, jobID, opts)
	if err != nil {
		return err
	}

	observability.NewPrinter(w).PrintShortlist(job.Title, ranked)

	saved, err := export.SaveShortlist(&export.Shortlist{
		JobTitle:    job.Title,
		JobType:     job.JobType,
		GeneratedAt: time.Now(),
		Candidates:  ranked,
	}, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Shortlist written to %s\n", saved)
	return nil
}
