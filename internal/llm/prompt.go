package llm

import (
	"fmt"
	"strings"

	"github.com/subtrail/subtrail/internal/model"
)

const analysisInstructions = `You are analyzing email evidence to identify paid subscriptions.
For each sender below, decide whether it represents a subscription or other recurring charge.
Respond with ONLY a JSON array. Each element must use these keys:
service_name, cost, billing_cycle, category, confidence, cost_source,
is_estimated, evidence, renewal_date, notes, charge_type, subscription_status,
status_effective_date.
Use charge_type values: recurring_subscription, usage_topup, addon_credits,
one_time_purchase, refund_or_reversal, unknown.
Use subscription_status values: active, canceled.
Dates are YYYY-MM-DD. Omit senders that are clearly not billing-related.`

// BuildAnalysisPrompt renders the per-sender evidence block sent to the
// model. Amounts and the recent-email timeline are included when present;
// body text is already capped upstream.
func BuildAnalysisPrompt(senders []model.SenderSummary) string {
	var b strings.Builder
	b.WriteString(analysisInstructions)
	b.WriteString("\n\nSENDERS:\n")

	for i := range senders {
		s := &senders[i]
		fmt.Fprintf(&b, "\n--- %s (%s) ---\n", s.SenderName, s.SenderDomain)
		fmt.Fprintf(&b, "emails: %d, billing score: %.2f\n", s.EmailCount, s.BillingScore)
		fmt.Fprintf(&b, "latest: %s | %s\n", s.LatestDate.Format("2006-01-02"), s.LatestSubject)
		if s.LatestSnippet != "" {
			fmt.Fprintf(&b, "snippet: %s\n", s.LatestSnippet)
		}
		if len(s.Amounts) > 0 {
			amounts := make([]string, len(s.Amounts))
			for j, a := range s.Amounts {
				amounts[j] = a.String()
			}
			fmt.Fprintf(&b, "amounts seen: %s\n", strings.Join(amounts, ", "))
		}
		for _, e := range s.RecentEmails {
			fmt.Fprintf(&b, "  %s: %s\n", e.Date.Format("2006-01-02"), e.Subject)
		}
		if s.BodyText != "" {
			fmt.Fprintf(&b, "body excerpt: %s\n", s.BodyText)
		}
	}

	return b.String()
}
