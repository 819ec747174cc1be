package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrail/subtrail/internal/model"
)

// ReviewDecision captures what the user chose to do with one candidate.
type ReviewDecision struct {
	Candidate model.SubscriptionCandidate
	Accepted  bool
}

// Reviewer walks the user through detected subscription candidates one at a
// time, letting them accept, adjust, or skip each before anything is saved.
type Reviewer struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewReviewer creates a reviewer reading from reader and writing to writer.
// Nil arguments default to stdin and stdout.
func NewReviewer(reader io.Reader, writer io.Writer) *Reviewer {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Reviewer{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// ReviewCandidates presents each candidate and collects decisions. A quit
// choice skips all remaining candidates.
func (r *Reviewer) ReviewCandidates(ctx context.Context, candidates []model.SubscriptionCandidate) ([]ReviewDecision, error) {
	decisions := make([]ReviewDecision, 0, len(candidates))

	for i, candidate := range candidates {
		select {
		case <-ctx.Done():
			return decisions, ctx.Err()
		default:
		}

		header := fmt.Sprintf("Candidate %d of %d", i+1, len(candidates))
		if _, err := fmt.Fprintln(r.writer, RenderBox(header, r.formatCandidate(candidate))); err != nil {
			return decisions, fmt.Errorf("failed to write candidate: %w", err)
		}

		fmt.Fprintln(r.writer, "  [A] Accept")
		fmt.Fprintln(r.writer, "  [E] Edit cost, then accept")
		fmt.Fprintln(r.writer, "  [S] Skip")
		fmt.Fprintln(r.writer, "  [Q] Skip all remaining")
		fmt.Fprintln(r.writer)

		choice, err := r.promptChoice(ctx, "Choice", []string{"a", "e", "s", "q"})
		if err != nil {
			return decisions, err
		}

		switch choice {
		case "a":
			decisions = append(decisions, ReviewDecision{Candidate: candidate, Accepted: true})
			fmt.Fprintln(r.writer, FormatSuccess("Accepted "+candidate.Name))
		case "e":
			cost, err := r.promptCost(ctx)
			if err != nil {
				return decisions, err
			}
			candidate.Cost = cost
			candidate.CostSource = model.CostExtracted
			candidate.IsEstimated = false
			decisions = append(decisions, ReviewDecision{Candidate: candidate, Accepted: true})
			fmt.Fprintln(r.writer, FormatSuccess(fmt.Sprintf("Accepted %s at %s", candidate.Name, cost.StringFixed(2))))
		case "s":
			decisions = append(decisions, ReviewDecision{Candidate: candidate, Accepted: false})
		case "q":
			for _, rest := range candidates[i:] {
				decisions = append(decisions, ReviewDecision{Candidate: rest, Accepted: false})
			}
			return decisions, nil
		}
	}

	return decisions, nil
}

func (r *Reviewer) formatCandidate(c model.SubscriptionCandidate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Service:"), c.Name)

	cost := c.Cost.StringFixed(2)
	if c.IsEstimated {
		cost += SubtleStyle.Render(" (estimated)")
	}
	fmt.Fprintf(&b, "%s %s", BoldStyle.Render("Cost:"), cost)
	if c.BillingCycle != "" {
		fmt.Fprintf(&b, " / %s", c.BillingCycle)
	}
	b.WriteString("\n")

	status := string(c.SubscriptionStatus)
	if c.SubscriptionStatus == model.StatusCanceled {
		status = WarningStyle.Render(status)
		if c.StatusEffectiveDate != nil {
			status += SubtleStyle.Render(" since " + c.StatusEffectiveDate.Format("2006-01-02"))
		}
	}
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Status:"), status)

	if c.RenewalDate != nil {
		fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Renews:"), c.RenewalDate.Format("2006-01-02"))
	}
	if c.Category != "" {
		fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Category:"), c.Category)
	}

	fmt.Fprintf(&b, "%s %.0f%% from %d emails\n",
		BoldStyle.Render("Confidence:"), c.EffectiveLifecycleConfidence()*100, c.SourceEmailCount)

	if c.Evidence != "" {
		fmt.Fprintf(&b, "%s %s", BoldStyle.Render("Evidence:"), SubtleStyle.Render(c.Evidence))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (r *Reviewer) promptChoice(ctx context.Context, prompt string, valid []string) (string, error) {
	for {
		if _, err := fmt.Fprint(r.writer, FormatPrompt(prompt)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := r.reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(strings.TrimSpace(line))
		for _, v := range valid {
			if choice == v {
				return choice, nil
			}
		}

		fmt.Fprintln(r.writer, FormatWarning(fmt.Sprintf("Please enter one of: %s", strings.Join(valid, ", "))))
	}
}

func (r *Reviewer) promptCost(ctx context.Context) (decimal.Decimal, error) {
	deadline := time.Now().Add(5 * time.Minute)
	for time.Now().Before(deadline) {
		if _, err := fmt.Fprint(r.writer, FormatPrompt("Monthly cost")); err != nil {
			return decimal.Zero, fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := r.reader.ReadLine(ctx)
		if err != nil {
			return decimal.Zero, err
		}

		line = strings.TrimPrefix(strings.TrimSpace(line), "$")
		cost, err := decimal.NewFromString(line)
		if err != nil || cost.IsNegative() {
			fmt.Fprintln(r.writer, FormatWarning("Enter a non-negative amount like 9.99"))
			continue
		}
		return cost, nil
	}
	return decimal.Zero, fmt.Errorf("no valid cost entered")
}
