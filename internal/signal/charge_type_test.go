package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/subtrail/subtrail/internal/model"
)

func TestClassifyChargeType(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		snippet  string
		wantType model.ChargeType
		wantMin  float64
	}{
		{
			name:     "subscription renewal is recurring",
			subject:  "Your subscription renewal receipt",
			snippet:  "",
			wantType: model.ChargeRecurringSubscription,
			wantMin:  0.8,
		},
		{
			name:     "membership is recurring",
			subject:  "Membership payment received",
			snippet:  "",
			wantType: model.ChargeRecurringSubscription,
			wantMin:  0.7,
		},
		{
			name:     "top up is usage",
			subject:  "Top up successful",
			snippet:  "Your account balance has been updated",
			wantType: model.ChargeUsageTopup,
			wantMin:  0.8,
		},
		{
			name:     "api usage is usage",
			subject:  "API usage invoice",
			snippet:  "pay-as-you-go charges for March",
			wantType: model.ChargeUsageTopup,
			wantMin:  0.8,
		},
		{
			name:     "one-time purchase is addon",
			subject:  "Your one-time purchase",
			snippet:  "lifetime access unlocked",
			wantType: model.ChargeAddonCredits,
			wantMin:  0.7,
		},
		{
			name:     "refund is refund",
			subject:  "Your refund has been processed",
			snippet:  "",
			wantType: model.ChargeRefundOrReversal,
			wantMin:  0.8,
		},
		{
			name:     "no billing language is unknown",
			subject:  "Lunch on Friday?",
			snippet:  "There's a new ramen place",
			wantType: model.ChargeUnknown,
			wantMin:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyChargeType(tt.subject, tt.snippet)
			assert.Equal(t, tt.wantType, got.Type)
			assert.GreaterOrEqual(t, got.Confidence, tt.wantMin)
		})
	}
}

func TestClassifyChargeTypeRefundOverride(t *testing.T) {
	// Refund language always beats a co-occurring recurring match.
	texts := []struct {
		subject string
		snippet string
	}{
		{"Refund for your subscription renewal", ""},
		{"Your subscription", "a refund of $9.99 was issued"},
		{"Chargeback notice", "monthly plan payment reversed"},
	}

	for _, tt := range texts {
		got := ClassifyChargeType(tt.subject, tt.snippet)
		assert.Equal(t, model.ChargeRefundOrReversal, got.Type, "subject=%q snippet=%q", tt.subject, tt.snippet)
	}
}

func TestClassifyChargeTypeAntiSignals(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		snippet string
	}{
		{name: "free trial suppresses subscription match", subject: "Start your free trial subscription", snippet: ""},
		{name: "promo suppresses", subject: "Renewal special offer: 50% off", snippet: "use promo code SAVE"},
		{name: "shipping suppresses", subject: "Your order has been shipped", snippet: "your one-time purchase is on the way"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyChargeType(tt.subject, tt.snippet)
			assert.Equal(t, model.ChargeUnknown, got.Type)
			assert.Zero(t, got.Confidence)
		})
	}
}

func TestClassifyChargeTypeWeakSignal(t *testing.T) {
	// Characterization: "your plan" alone sits above the weak-signal
	// threshold but classifies at low confidence.
	got := ClassifyChargeType("About your plan", "")
	if got.Type != model.ChargeUnknown {
		assert.Equal(t, model.ChargeRecurringSubscription, got.Type)
		assert.LessOrEqual(t, got.Confidence, 0.6)
	}
}

func TestValidateChargeType(t *testing.T) {
	tests := []struct {
		name     string
		aiType   model.ChargeType
		subject  string
		snippet  string
		wantType model.ChargeType
		wantConf func(t *testing.T, conf float64)
	}{
		{
			name:     "local refund overrides AI unconditionally",
			aiType:   model.ChargeUsageTopup,
			subject:  "Your refund has been issued",
			snippet:  "",
			wantType: model.ChargeRefundOrReversal,
			wantConf: func(t *testing.T, conf float64) { assert.GreaterOrEqual(t, conf, 0.8) },
		},
		{
			name:     "agreement boosts confidence",
			aiType:   model.ChargeRecurringSubscription,
			subject:  "Your subscription renewal",
			snippet:  "",
			wantType: model.ChargeRecurringSubscription,
			wantConf: func(t *testing.T, conf float64) { assert.GreaterOrEqual(t, conf, 0.8) },
		},
		{
			name:     "disagreement keeps AI type at flat penalty",
			aiType:   model.ChargeUsageTopup,
			subject:  "Your subscription renewal",
			snippet:  "",
			wantType: model.ChargeUsageTopup,
			wantConf: func(t *testing.T, conf float64) { assert.InDelta(t, 0.5, conf, 1e-9) },
		},
		{
			name:     "local unknown trusts AI",
			aiType:   model.ChargeOneTimePurchase,
			subject:  "Thanks!",
			snippet:  "",
			wantType: model.ChargeOneTimePurchase,
			wantConf: func(t *testing.T, conf float64) { assert.InDelta(t, 0.7, conf, 1e-9) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateChargeType(tt.aiType, tt.subject, tt.snippet)
			assert.Equal(t, tt.wantType, got.Type)
			tt.wantConf(t, got.Confidence)
		})
	}
}
