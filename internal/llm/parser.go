package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrail/subtrail/internal/model"
)

// candidateRecord mirrors the loosely-typed JSON objects the model emits.
// Every field except service_name is optional and may be malformed; the
// parser resolves each to a documented conservative default rather than
// failing.
type candidateRecord struct {
	ServiceName         string          `json:"service_name"`
	BillingCycle        string          `json:"billing_cycle"`
	Category            string          `json:"category"`
	CostSource          string          `json:"cost_source"`
	Evidence            string          `json:"evidence"`
	RenewalDate         string          `json:"renewal_date"`
	Notes               string          `json:"notes"`
	ChargeType          string          `json:"charge_type"`
	SubscriptionStatus  string          `json:"subscription_status"`
	StatusEffectiveDate string          `json:"status_effective_date"`
	Cost                json.RawMessage `json:"cost"`
	IsEstimated         *bool           `json:"is_estimated"`
	Confidence          float64         `json:"confidence"`
}

// ParseCandidates parses a JSON array of candidate records into typed
// candidates. Records without a service name are skipped entirely;
// individual records that fail to decode are skipped rather than aborting
// the batch. Only a malformed top-level array is an error.
func ParseCandidates(data []byte) ([]model.SubscriptionCandidate, error) {
	var rawRecords []json.RawMessage
	if err := json.Unmarshal(data, &rawRecords); err != nil {
		return nil, fmt.Errorf("failed to parse candidate array: %w", err)
	}

	candidates := make([]model.SubscriptionCandidate, 0, len(rawRecords))
	for _, raw := range rawRecords {
		var rec candidateRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if strings.TrimSpace(rec.ServiceName) == "" {
			continue
		}
		candidates = append(candidates, rec.toCandidate())
	}

	return candidates, nil
}

func (r *candidateRecord) toCandidate() model.SubscriptionCandidate {
	c := model.SubscriptionCandidate{
		Name:                strings.TrimSpace(r.ServiceName),
		Cost:                parseCost(r.Cost),
		BillingCycle:        r.BillingCycle,
		Category:            r.Category,
		Confidence:          clampConfidence(r.Confidence),
		Notes:               r.Notes,
		Evidence:            r.Evidence,
		ChargeType:          model.ParseChargeType(r.ChargeType),
		SubscriptionStatus:  model.ParseSubscriptionStatus(r.SubscriptionStatus),
		RenewalDate:         parseDate(r.RenewalDate),
		StatusEffectiveDate: parseDate(r.StatusEffectiveDate),
		CostSource:          model.CostSource(r.CostSource),
	}

	estimated := r.CostSource == "" || r.CostSource == string(model.CostEstimated)
	if r.IsEstimated != nil {
		estimated = *r.IsEstimated
	}
	if estimated {
		c.MarkEstimated()
	} else if c.CostSource == "" {
		c.CostSource = model.CostExtracted
	}

	return c
}

// parseCost coerces an integer, decimal, or numeric-string cost to a
// decimal. Anything unparseable is zero.
func parseCost(raw json.RawMessage) decimal.Decimal {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(s)
	if err != nil || value.IsNegative() {
		return decimal.Zero
	}
	return value
}

// parseDate parses a plain calendar date; absent or malformed yields nil.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
