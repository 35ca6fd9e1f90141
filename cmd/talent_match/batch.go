package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jonathan/talent-match/internal/batch"
	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Match stored candidates and job postings",
	Long: `Score stored pairs and upsert every result into job_matching.

  --job-id        one job posting against every candidate
  --candidate-id  one candidate against every published job posting
  --all           every published job posting against every candidate`,
	RunE: runBatch,
}

var (
	batchJobID       string
	batchCandidateID string
	batchAll         bool
)

func init() {
	batchCmd.Flags().StringVar(&batchJobID, "job-id", "", "Job posting ID")
	batchCmd.Flags().StringVar(&batchCandidateID, "candidate-id", "", "Candidate ID")
	batchCmd.Flags().BoolVar(&batchAll, "all", false, "Match every published job posting against every candidate")

	batchCmd.MarkFlagsMutuallyExclusive("job-id", "candidate-id", "all")
	batchCmd.MarkFlagsOneRequired("job-id", "candidate-id", "all")

	rootCmd.AddCommand(batchCmd)
}

// batchTarget is the parsed selection of a batch run
type batchTarget struct {
	jobID       uuid.UUID
	candidateID uuid.UUID
	all         bool
}

func parseBatchTarget(jobID, candidateID string, all bool) (batchTarget, error) {
	var target batchTarget
	switch {
	case all:
		target.all = true
	case jobID != "":
		id, err := uuid.Parse(jobID)
		if err != nil {
			return target, fmt.Errorf("invalid --job-id: %w", err)
		}
		target.jobID = id
	case candidateID != "":
		id, err := uuid.Parse(candidateID)
		if err != nil {
			return target, fmt.Errorf("invalid --candidate-id: %w", err)
		}
		target.candidateID = id
	default:
		return target, fmt.Errorf("one of --job-id, --candidate-id or --all is required")
	}
	return target, nil
}

func runBatch(cmd *cobra.Command, _ []string) error {
	target, err := parseBatchTarget(batchJobID, batchCandidateID, batchAll)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := runTarget(ctx, newRunner(cfg, store, log), target)
	if err != nil {
		return err
	}

	log.Info("batch complete", zap.Int("processed", report.Processed), zap.Int("failed", report.Failed))
	observability.NewPrinter(cmd.OutOrStdout()).PrintBatchReport(report)
	return nil
}

func newRunner(cfg *config.Config, store batch.Store, log *zap.Logger) *batch.Runner {
	runner := batch.NewRunner(store, matching.NewEngine(), log)
	runner.Concurrency = cfg.Batch.Concurrency
	runner.MaxRetries = cfg.Batch.MaxRetries
	runner.RetryBaseDelay = cfg.Batch.RetryBaseDelay
	return runner
}

func runTarget(ctx context.Context, runner *batch.Runner, target batchTarget) (*batch.Report, error) {
	switch {
	case target.all:
		return runner.MatchAll(ctx)
	case target.jobID != uuid.Nil:
		return runner.MatchJob(ctx, target.jobID, nil)
	default:
		return runner.MatchCandidate(ctx, target.candidateID, nil)
	}
}
