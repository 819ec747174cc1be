package model

// ChargeType classifies what kind of monetary event an email represents.
type ChargeType string

// Charge type constants.
const (
	ChargeRecurringSubscription ChargeType = "recurring_subscription"
	ChargeUsageTopup            ChargeType = "usage_topup"
	ChargeAddonCredits          ChargeType = "addon_credits"
	ChargeOneTimePurchase       ChargeType = "one_time_purchase"
	ChargeRefundOrReversal      ChargeType = "refund_or_reversal"
	ChargeUnknown               ChargeType = "unknown"
)

// IsRecurring reports whether the charge represents an ongoing subscription.
func (c ChargeType) IsRecurring() bool {
	return c == ChargeRecurringSubscription
}

// IsNonRecurring reports whether the charge is a discrete purchase event.
// Refunds and unknowns are neither recurring nor non-recurring.
func (c ChargeType) IsNonRecurring() bool {
	switch c {
	case ChargeUsageTopup, ChargeAddonCredits, ChargeOneTimePurchase:
		return true
	}
	return false
}

// ParseChargeType maps an externally supplied string to a ChargeType.
// Unrecognized or empty input yields ChargeUnknown, never an error.
func ParseChargeType(s string) ChargeType {
	switch s {
	case string(ChargeRecurringSubscription), "recurring", "subscription":
		return ChargeRecurringSubscription
	case string(ChargeUsageTopup), "topup", "usage":
		return ChargeUsageTopup
	case string(ChargeAddonCredits), "addon", "add_on", "credits":
		return ChargeAddonCredits
	case string(ChargeOneTimePurchase), "one_time", "purchase":
		return ChargeOneTimePurchase
	case string(ChargeRefundOrReversal), "refund", "reversal", "chargeback":
		return ChargeRefundOrReversal
	}
	return ChargeUnknown
}

// ClassificationResult is the outcome of local charge-type classification.
type ClassificationResult struct {
	Type       ChargeType
	Confidence float64
}
