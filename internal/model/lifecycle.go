package model

// SubscriptionStatus is the binary lifecycle state of a subscription.
// There is deliberately no paused or trialing state; evidence that weak
// resolves to active.
type SubscriptionStatus string

// Subscription status constants.
const (
	StatusActive   SubscriptionStatus = "active"
	StatusCanceled SubscriptionStatus = "canceled"
)

// ParseSubscriptionStatus maps an externally supplied string to a status.
// Unrecognized or empty input yields StatusActive, the conservative
// default: a subscription is never marked canceled without evidence.
func ParseSubscriptionStatus(s string) SubscriptionStatus {
	if s == string(StatusCanceled) {
		return StatusCanceled
	}
	return StatusActive
}

// LifecycleResult is the resolver's verdict for one sender's timeline.
type LifecycleResult struct {
	Status     SubscriptionStatus
	Confidence float64
}
