package engine

import (
	"github.com/subtrail/subtrail/internal/model"
	"github.com/subtrail/subtrail/internal/normalize"
)

// DeduplicateCandidates merges candidates whose normalized names match,
// then drops active candidates that duplicate an already-known
// subscription. A canceled candidate matching a known name is always
// retained: it is new lifecycle information, not a duplicate.
func DeduplicateCandidates(candidates []model.SubscriptionCandidate, existingNames []string) []model.SubscriptionCandidate {
	merged := make([]model.SubscriptionCandidate, 0, len(candidates))

	for _, c := range candidates {
		matched := false
		for i := range merged {
			if normalize.NamesMatch(merged[i].Name, c.Name) {
				merged[i] = mergeCandidates(merged[i], c)
				matched = true
				break
			}
		}
		if !matched {
			merged = append(merged, c)
		}
	}

	result := make([]model.SubscriptionCandidate, 0, len(merged))
	for _, c := range merged {
		if c.SubscriptionStatus == model.StatusActive && matchesAny(c.Name, existingNames) {
			continue
		}
		result = append(result, c)
	}
	return result
}

// FilterActionable keeps candidates worth surfacing: anything with real
// extracted or estimated spend, plus anything reporting a non-active
// status. A zero-cost canceled candidate survives because cancellation
// evidence matters even without an amount; a zero-cost active candidate
// is noise.
func FilterActionable(candidates []model.SubscriptionCandidate) []model.SubscriptionCandidate {
	result := make([]model.SubscriptionCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Cost.IsPositive() || c.SubscriptionStatus != model.StatusActive {
			result = append(result, c)
		}
	}
	return result
}

// mergeCandidates folds b into a, preferring the side with the more
// trustworthy lifecycle verdict and filling in cost evidence the winner
// lacks.
func mergeCandidates(a, b model.SubscriptionCandidate) model.SubscriptionCandidate {
	base, other := a, b
	if b.EffectiveLifecycleConfidence() > a.EffectiveLifecycleConfidence() {
		base, other = b, a
	}

	if base.Cost.IsZero() && other.Cost.IsPositive() {
		base.Cost = other.Cost
		base.CostSource = other.CostSource
		base.IsEstimated = other.IsEstimated
	}
	if base.RenewalDate == nil {
		base.RenewalDate = other.RenewalDate
	}
	if base.Evidence == "" {
		base.Evidence = other.Evidence
	}
	base.SourceEmailCount = a.SourceEmailCount + b.SourceEmailCount

	return base
}

func matchesAny(name string, names []string) bool {
	for _, n := range names {
		if normalize.NamesMatch(name, n) {
			return true
		}
	}
	return false
}
