package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostSource records where a candidate's cost figure came from.
type CostSource string

// Cost source constants.
const (
	CostExtracted CostSource = "extracted"
	CostEstimated CostSource = "estimated"
)

// SubscriptionCandidate is a proposed subscription assembled from AI output
// and local email evidence, prior to user confirmation.
type SubscriptionCandidate struct {
	RenewalDate         *time.Time
	StatusEffectiveDate *time.Time
	// LifecycleConfidence is set when the lifecycle resolver produced a
	// timeline-derived status; nil means only the AI's overall confidence
	// is available.
	LifecycleConfidence *float64
	Name                string
	BillingCycle        string
	Category            string
	Notes               string
	Evidence            string
	CostSource          CostSource
	ChargeType          ChargeType
	SubscriptionStatus  SubscriptionStatus
	Cost                decimal.Decimal
	Confidence          float64
	SourceEmailCount    int
	IsSelected          bool
	IsEstimated         bool
}

// EffectiveLifecycleConfidence is the single number downstream logic must
// gate against before trusting a status change: the resolver's confidence
// when present, the AI confidence otherwise.
func (c *SubscriptionCandidate) EffectiveLifecycleConfidence() float64 {
	if c.LifecycleConfidence != nil {
		return *c.LifecycleConfidence
	}
	return c.Confidence
}

// MarkEstimated flags the cost as an estimate. CostSource is forced to
// CostEstimated whenever IsEstimated is set; the reverse does not hold.
func (c *SubscriptionCandidate) MarkEstimated() {
	c.IsEstimated = true
	c.CostSource = CostEstimated
}
