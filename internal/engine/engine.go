// Package engine orchestrates a scan run: it turns per-sender email groups
// into ranked billing evidence, runs the bounded AI pass, reconciles the
// model's opinion against local signals, resolves lifecycle status, and
// deduplicates the result against known subscriptions.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/subtrail/subtrail/internal/lifecycle"
	"github.com/subtrail/subtrail/internal/model"
	"github.com/subtrail/subtrail/internal/normalize"
	"github.com/subtrail/subtrail/internal/signal"
)

// ScanEngine coordinates the mail, AI, and storage collaborators for one
// scan run. The classification work it delegates to is pure; the engine
// owns all the sequencing and I/O.
type ScanEngine struct {
	mail         MailClient
	ai           AIClient
	storage      Storage
	maxAISenders int
}

// Config holds configuration options for the scan engine.
type Config struct {
	// MaxAISenders caps how many ranked senders are handed to the costly
	// AI pass per run.
	MaxAISenders int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{MaxAISenders: 15}
}

// New creates a scan engine with the given collaborators.
func New(mail MailClient, ai AIClient, storage Storage) *ScanEngine {
	return NewWithConfig(mail, ai, storage, DefaultConfig())
}

// NewWithConfig creates a scan engine with custom configuration.
func NewWithConfig(mail MailClient, ai AIClient, storage Storage, cfg Config) *ScanEngine {
	if cfg.MaxAISenders <= 0 {
		cfg.MaxAISenders = DefaultConfig().MaxAISenders
	}
	return &ScanEngine{
		mail:         mail,
		ai:           ai,
		storage:      storage,
		maxAISenders: cfg.MaxAISenders,
	}
}

// ScanResult is everything one run produced.
type ScanResult struct {
	Lifecycles      map[string]model.LifecycleResult
	Candidates      []model.SubscriptionCandidate
	SendersScanned  int
	SendersAnalyzed int
	EmailsScanned   int
}

// Scan executes a full scan over the given lookback window.
func (e *ScanEngine) Scan(ctx context.Context, lookbackMonths int) (*ScanResult, error) {
	groups, err := e.mail.FetchSenderGroups(ctx, lookbackMonths)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sender groups: %w", err)
	}

	senders := make([]model.SenderSummary, 0, len(groups))
	emailsScanned := 0
	for _, emails := range groups {
		if len(emails) == 0 {
			continue
		}
		emailsScanned += len(emails)
		senders = append(senders, BuildSenderSummary(emails))
	}

	slog.Info("Scan evidence assembled",
		"senders", len(senders),
		"emails", emailsScanned,
		"lookback_months", lookbackMonths)

	ranked := RankSenders(senders)
	if len(ranked) > e.maxAISenders {
		ranked = ranked[:e.maxAISenders]
	}

	for i := range ranked {
		e.maybeFetchBody(ctx, &ranked[i], groups)
	}

	candidates, err := e.ai.ProposeCandidates(ctx, ranked)
	if err != nil {
		return nil, fmt.Errorf("AI analysis failed: %w", err)
	}
	slog.Info("AI analysis returned", "candidates", len(candidates))

	lifecycles := make(map[string]model.LifecycleResult, len(ranked))
	for i := range candidates {
		e.reconcile(&candidates[i], ranked, lifecycles)
	}

	existingNames, err := e.storage.SubscriptionNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load known subscriptions: %w", err)
	}

	final := FilterActionable(DeduplicateCandidates(candidates, existingNames))

	return &ScanResult{
		Candidates:      final,
		Lifecycles:      lifecycles,
		SendersScanned:  len(senders),
		SendersAnalyzed: len(ranked),
		EmailsScanned:   emailsScanned,
	}, nil
}

// reconcile cross-checks one AI candidate against local signals from its
// matching sender: charge type validation, amount backfill, and timeline
// lifecycle resolution.
func (e *ScanEngine) reconcile(c *model.SubscriptionCandidate, senders []model.SenderSummary, lifecycles map[string]model.LifecycleResult) {
	sender := findSender(c.Name, senders)
	if sender == nil {
		return
	}

	validated := signal.ValidateChargeType(c.ChargeType, sender.LatestSubject, sender.LatestSnippet)
	c.ChargeType = validated.Type
	c.Confidence = validated.Confidence
	c.SourceEmailCount = sender.EmailCount

	if c.Cost.IsZero() && len(sender.Amounts) > 0 {
		c.Cost = sender.Amounts[0]
		c.CostSource = model.CostExtracted
		c.IsEstimated = false
	}

	resolved, effectiveDate := lifecycle.Resolve(sender.RecentEmails, c.SubscriptionStatus, c.StatusEffectiveDate)
	c.SubscriptionStatus = resolved.Status
	c.StatusEffectiveDate = effectiveDate
	c.LifecycleConfidence = &resolved.Confidence
	lifecycles[sender.SenderName] = resolved
}

// maybeFetchBody pulls the latest message body for senders whose evidence
// warrants it and attaches the excerpt to the summary and its timeline.
func (e *ScanEngine) maybeFetchBody(ctx context.Context, sender *model.SenderSummary, groups map[string][]model.EmailMetadata) {
	if !signal.NeedsBodyFetch(sender.EmailCount, len(sender.Amounts), sender.BillingScore) {
		return
	}

	latestID := latestMessageID(sender, groups)
	if latestID == "" {
		return
	}

	body, err := e.mail.FetchBody(ctx, latestID)
	if err != nil {
		slog.Debug("Body fetch failed, continuing without it",
			"sender", sender.SenderName, "error", err)
		return
	}
	if len(body) > model.MaxBodyExcerptLen {
		body = body[:model.MaxBodyExcerptLen]
	}

	sender.BodyText = body
	if len(sender.RecentEmails) > 0 {
		sender.RecentEmails[0].BodyExcerpt = body
	}

	// Body text can surface an amount the metadata did not.
	for _, amt := range signal.ExtractAllAmounts(sender.LatestSubject, sender.LatestSnippet, body) {
		sender.Amounts = append(sender.Amounts, amt.Value)
	}
}

// BuildSenderSummary aggregates one sender's emails into scan evidence.
// Amounts are extracted across all emails and deduplicated by value;
// the billing score is the strongest single email's score.
func BuildSenderSummary(emails []model.EmailMetadata) model.SenderSummary {
	sorted := make([]model.EmailMetadata, len(emails))
	copy(sorted, emails)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	latest := sorted[0]
	name, domain := parseFrom(latest.From)

	summary := model.SenderSummary{
		SenderName:    name,
		SenderDomain:  domain,
		QueryDomain:   domain,
		EmailCount:    len(sorted),
		LatestSubject: latest.Subject,
		LatestSnippet: latest.Snippet,
		LatestDate:    latest.Date,
	}

	if proc := signal.DetectProcessor(domain, latest.Subject); proc.IsProcessor {
		// Query by the processor's real domain; display the merchant.
		summary.QueryDomain = domain
		if proc.ServiceName != "" {
			summary.SenderName = proc.ServiceName
		} else {
			summary.SenderName = proc.ProcessorName
		}
	}

	seen := make(map[string]bool)
	for _, email := range sorted {
		if len(summary.RecentEmails) < model.MaxRecentEmails {
			summary.RecentEmails = append(summary.RecentEmails,
				model.NewEmailSummary(email.Date, email.Subject, email.Snippet, ""))
		}

		if score := signal.BillingScore(email.Subject, email.Snippet); score > summary.BillingScore {
			summary.BillingScore = score
		}

		for _, amt := range signal.ExtractAllAmounts(email.Subject, email.Snippet, "") {
			key := amt.Value.String()
			if !seen[key] {
				seen[key] = true
				summary.Amounts = append(summary.Amounts, amt.Value)
			}
		}
	}

	sortAmounts(summary.Amounts)
	return summary
}

func sortAmounts(amounts []decimal.Decimal) {
	sort.Slice(amounts, func(i, j int) bool {
		return amounts[i].GreaterThan(amounts[j])
	})
}

// findSender locates the ranked sender a candidate's name refers to.
func findSender(name string, senders []model.SenderSummary) *model.SenderSummary {
	for i := range senders {
		if normalize.NamesMatch(name, senders[i].SenderName) {
			return &senders[i]
		}
	}
	return nil
}

// latestMessageID finds the newest message ID in the sender's group.
func latestMessageID(sender *model.SenderSummary, groups map[string][]model.EmailMetadata) string {
	var bestID string
	for _, emails := range groups {
		for _, email := range emails {
			if email.Subject == sender.LatestSubject && email.Date.Equal(sender.LatestDate) {
				bestID = email.ID
			}
		}
	}
	return bestID
}

// parseFrom splits an RFC 5322 From header into a display name and domain.
// "Netflix <info@netflix.com>" yields ("Netflix", "netflix.com"); a bare
// address falls back to its local part as the name.
func parseFrom(from string) (name, domain string) {
	addr := from
	if start := strings.Index(from, "<"); start >= 0 {
		if end := strings.Index(from[start:], ">"); end > 0 {
			addr = from[start+1 : start+end]
			name = strings.Trim(strings.TrimSpace(from[:start]), `"`)
		}
	}

	addr = strings.TrimSpace(addr)
	if at := strings.LastIndex(addr, "@"); at >= 0 {
		domain = strings.ToLower(addr[at+1:])
		if name == "" {
			name = addr[:at]
		}
	} else if name == "" {
		name = addr
	}
	return name, domain
}
