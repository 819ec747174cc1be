// Package lifecycle resolves a subscription's current status from a
// sender's email timeline. Resolution is a pure left-fold over the
// chronologically sorted emails; the most recent email carrying a real
// signal determines the outcome, which is how a charge arriving after a
// cancellation reactivates a subscription.
package lifecycle

import (
	"sort"
	"time"

	"github.com/subtrail/subtrail/internal/model"
	"github.com/subtrail/subtrail/internal/signal"
)

// CancellationThreshold is the minimum cancellation score that counts as
// a real lifecycle signal rather than stray phrasing.
const CancellationThreshold = 0.80

// fallbackConfidence is returned when the timeline carries no usable
// signal and the externally supplied status is all we have.
const fallbackConfidence = 0.5

// timelineConfidence is the floor for a status the resolver derived from
// the emails themselves.
const timelineConfidence = 0.85

// Resolve walks a sender's emails in ascending date order and returns the
// status implied by the most recent charge or cancellation signal, along
// with the date of that signal. Emails with no signal on either axis,
// including cancellations neutralized by false-positive phrasing, are
// ignored. An empty or signal-free timeline defers to aiStatus and
// aiStatusDate at low confidence.
//
// Input order does not matter; Resolve sorts internally.
func Resolve(emails []model.EmailSummary, aiStatus model.SubscriptionStatus, aiStatusDate *time.Time) (model.LifecycleResult, *time.Time) {
	sorted := make([]model.EmailSummary, len(emails))
	copy(sorted, emails)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var (
		status     model.SubscriptionStatus
		confidence float64
		signalDate *time.Time
	)

	for i := range sorted {
		email := &sorted[i]

		if cancelScore := signal.DetectCancellationSignal(email.Subject, email.Snippet, email.BodyExcerpt); cancelScore >= CancellationThreshold {
			status = model.StatusCanceled
			confidence = maxFloat(cancelScore, timelineConfidence)
			signalDate = &email.Date
			continue
		}

		if isChargeSignal(email) {
			status = model.StatusActive
			confidence = timelineConfidence
			signalDate = &email.Date
		}
	}

	if signalDate == nil {
		return model.LifecycleResult{Status: aiStatus, Confidence: fallbackConfidence}, aiStatusDate
	}
	return model.LifecycleResult{Status: status, Confidence: confidence}, signalDate
}

// isChargeSignal reports whether an email is billing-positive evidence of
// an active subscription. Refunds are money moving the wrong way and do
// not count.
func isChargeSignal(email *model.EmailSummary) bool {
	if signal.BillingScore(email.Subject, email.Snippet) <= 0 {
		return false
	}
	return signal.ClassifyChargeType(email.Subject, email.Snippet).Type != model.ChargeRefundOrReversal
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
