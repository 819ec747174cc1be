package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/subtrail/subtrail/internal/cli"
	"github.com/subtrail/subtrail/internal/common"
	"github.com/subtrail/subtrail/internal/config"
	"github.com/subtrail/subtrail/internal/engine"
	"github.com/subtrail/subtrail/internal/gmail"
	"github.com/subtrail/subtrail/internal/llm"
	"github.com/subtrail/subtrail/internal/model"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan your inbox for subscriptions",
		Long: `Searches your Gmail for billing emails from the lookback window, scores
senders locally, asks the AI about the most promising ones, and walks you
through the resulting candidates.`,
		RunE: runScan,
	}

	cmd.Flags().Int("months", 12, "how many months of email to scan")
	cmd.Flags().Int("max-senders", 0, "cap on senders sent to the AI (0 = default)")
	cmd.Flags().Bool("yes", false, "accept all candidates without prompting")

	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	months, _ := cmd.Flags().GetInt("months")
	maxSenders, _ := cmd.Flags().GetInt("max-senders")
	acceptAll, _ := cmd.Flags().GetBool("yes")

	interrupt := cli.NewInterruptHandler(os.Stdout)
	ctx = interrupt.HandleInterrupts(ctx, true)

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "Failed to close storage", nil)
		}
	}()

	mail, err := gmail.NewClient(ctx, config.Dir())
	if err != nil {
		return fmt.Errorf("failed to connect to Gmail (run 'subtrail auth' first): %w", err)
	}

	llmCfg, err := config.LoadLLMConfig()
	if err != nil {
		return err
	}
	ai, err := llm.NewClient(*llmCfg)
	if err != nil {
		return fmt.Errorf("failed to create AI client: %w", err)
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Scanning the last %d months of email...", months)))

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Analyzing inbox"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
	)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	eng := engine.NewWithConfig(mail, ai, store, engine.Config{MaxAISenders: maxSenders})
	started := time.Now()
	result, err := eng.Scan(ctx, months)
	close(done)
	_ = bar.Finish()
	fmt.Println()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	common.LogInfo("Scan complete", common.Fields{
		"emails":     result.EmailsScanned,
		"senders":    result.SendersScanned,
		"analyzed":   result.SendersAnalyzed,
		"candidates": len(result.Candidates),
	})

	if saveErr := store.RecordScanRun(ctx, model.ScanRun{
		ID:              uuid.New(),
		StartedAt:       started,
		LookbackMonths:  months,
		EmailsScanned:   result.EmailsScanned,
		SendersAnalyzed: result.SendersAnalyzed,
		CandidatesFound: len(result.Candidates),
	}); saveErr != nil {
		slog.Warn("Failed to record scan run", "error", saveErr)
	}

	if len(result.Candidates) == 0 {
		fmt.Println(cli.FormatInfo("No new subscriptions found."))
		return nil
	}

	decisions, err := collectDecisions(ctx, result.Candidates, acceptAll)
	if err != nil {
		return err
	}

	saved := 0
	for _, d := range decisions {
		if !d.Accepted {
			continue
		}
		sub := model.FromCandidate(&d.Candidate, time.Now())
		if err := store.SaveSubscription(ctx, sub); err != nil {
			return fmt.Errorf("failed to save %q: %w", sub.Name, err)
		}
		saved++
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %d of %d candidates.", saved, len(result.Candidates))))
	return nil
}

func collectDecisions(ctx context.Context, candidates []model.SubscriptionCandidate, acceptAll bool) ([]cli.ReviewDecision, error) {
	if acceptAll {
		decisions := make([]cli.ReviewDecision, 0, len(candidates))
		for _, c := range candidates {
			decisions = append(decisions, cli.ReviewDecision{Candidate: c, Accepted: true})
		}
		return decisions, nil
	}

	reviewer := cli.NewReviewer(os.Stdin, os.Stdout)
	return reviewer.ReviewCandidates(ctx, candidates)
}
