package signal

import (
	"strings"

	"github.com/subtrail/subtrail/internal/model"
)

// WeakSignalThreshold is the minimum cluster weight a match needs to be
// classified at all. Matches below it fall back to unknown. Tunable;
// characterization tests pin the current behavior before changing it.
const WeakSignalThreshold = 0.4

// Charge-type keyword clusters. Each cluster contributes independently;
// the refund cluster always wins a tie with the recurring cluster.
var (
	recurringKeywords = []keywordWeight{
		{"subscription renewal", 0.9},
		{"your subscription", 0.8},
		{"subscription", 0.7},
		{"renewal", 0.8},
		{"monthly charge", 0.8},
		{"annual charge", 0.8},
		{"autopay", 0.8},
		{"auto-renew", 0.8},
		{"membership", 0.7},
		{"billing period", 0.8},
		{"monthly plan", 0.8},
		{"your plan", 0.5},
	}

	usageKeywords = []keywordWeight{
		{"top up", 0.85},
		{"top-up", 0.85},
		{"credits added", 0.85},
		{"credits", 0.8},
		{"tokens", 0.8},
		{"api usage", 0.85},
		{"usage charge", 0.85},
		{"pay-as-you-go", 0.85},
		{"pay as you go", 0.85},
		{"prepaid", 0.8},
	}

	addonKeywords = []keywordWeight{
		{"add-on", 0.8},
		{"addon", 0.8},
		{"one-time purchase", 0.85},
		{"one-time", 0.75},
		{"lifetime access", 0.85},
		{"lifetime", 0.7},
	}

	refundKeywords = []keywordWeight{
		{"refund", 0.9},
		{"refunded", 0.9},
		{"chargeback", 0.85},
		{"reversal", 0.85},
		{"reversed", 0.8},
	}
)

// antiSignals suppress classification entirely: marketing, trial, and
// shipping language looks like billing but represents no charge event.
var antiSignals = []string{
	"free trial",
	"trial ends",
	"start your trial",
	"limited time offer",
	"special offer",
	"discount",
	"% off",
	"promo code",
	"coupon",
	"has shipped",
	"out for delivery",
	"your delivery",
	"shipping confirmation",
	"track your package",
	"order has been shipped",
}

func hasAntiSignal(text string) bool {
	for _, phrase := range antiSignals {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// ClassifyChargeType classifies an email into the charge-type taxonomy
// from its subject and snippet alone. An anti-signal anywhere suppresses
// the result regardless of cluster matches, and refund language overrides
// a co-occurring recurring-subscription match.
func ClassifyChargeType(subject, snippet string) model.ClassificationResult {
	text := strings.ToLower(subject + " " + snippet)

	if hasAntiSignal(text) {
		return model.ClassificationResult{Type: model.ChargeUnknown, Confidence: 0}
	}

	if w := maxKeywordWeight(text, refundKeywords); w >= WeakSignalThreshold {
		return model.ClassificationResult{Type: model.ChargeRefundOrReversal, Confidence: w}
	}

	best := model.ClassificationResult{Type: model.ChargeUnknown, Confidence: 0}
	clusters := []struct {
		chargeType model.ChargeType
		table      []keywordWeight
	}{
		{model.ChargeRecurringSubscription, recurringKeywords},
		{model.ChargeUsageTopup, usageKeywords},
		{model.ChargeAddonCredits, addonKeywords},
	}
	for _, cluster := range clusters {
		if w := maxKeywordWeight(text, cluster.table); w > best.Confidence {
			best = model.ClassificationResult{Type: cluster.chargeType, Confidence: w}
		}
	}

	if best.Confidence < WeakSignalThreshold {
		return model.ClassificationResult{Type: model.ChargeUnknown, Confidence: 0}
	}
	return best
}

// ValidateChargeType reconciles an externally supplied charge type against
// the local classifier. Local refund detection overrides unconditionally;
// agreement boosts confidence, disagreement keeps the external type at a
// flat penalty, and a local unknown defers to the external opinion.
func ValidateChargeType(aiType model.ChargeType, subject, snippet string) model.ClassificationResult {
	local := ClassifyChargeType(subject, snippet)

	switch {
	case local.Type == model.ChargeRefundOrReversal:
		conf := local.Confidence
		if conf < 0.8 {
			conf = 0.8
		}
		return model.ClassificationResult{Type: model.ChargeRefundOrReversal, Confidence: conf}
	case local.Type == model.ChargeUnknown:
		return model.ClassificationResult{Type: aiType, Confidence: 0.7}
	case local.Type == aiType:
		conf := local.Confidence
		if conf < 0.8 {
			conf = 0.8
		}
		return model.ClassificationResult{Type: aiType, Confidence: conf}
	default:
		return model.ClassificationResult{Type: aiType, Confidence: 0.5}
	}
}
