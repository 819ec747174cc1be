package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCancellationSignal(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		snippet string
		body    string
		wantMin float64
		wantMax float64
	}{
		{
			name:    "explicit cancellation with farewell",
			subject: "Your subscription has been canceled",
			snippet: "We're sorry to see you go",
			wantMin: 0.95,
			wantMax: 1.0,
		},
		{
			name:    "cancellation confirmed",
			subject: "Cancellation confirmed",
			snippet: "",
			wantMin: 0.95,
			wantMax: 1.0,
		},
		{
			name:    "account closed",
			subject: "Your account closed as requested",
			snippet: "",
			wantMin: 0.85,
			wantMax: 1.0,
		},
		{
			name:    "subscription expired",
			subject: "Your subscription has expired",
			snippet: "",
			wantMin: 0.85,
			wantMax: 1.0,
		},
		{
			name:    "body-only signal",
			subject: "An update on your account",
			snippet: "",
			body:    "your membership canceled effective today",
			wantMin: 0.9,
			wantMax: 1.0,
		},
		{
			name:    "no cancellation language",
			subject: "Your receipt for $9.99",
			snippet: "Thanks for your payment",
			wantMin: 0,
			wantMax: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCancellationSignal(tt.subject, tt.snippet, tt.body)
			assert.GreaterOrEqual(t, got, tt.wantMin)
			assert.LessOrEqual(t, got, tt.wantMax)
		})
	}
}

func TestDetectCancellationSignalFalsePositivePrecedence(t *testing.T) {
	// Any false-positive phrase anywhere forces the score to zero, even
	// alongside a strong cancellation phrase.
	tests := []struct {
		name    string
		subject string
		snippet string
		body    string
	}{
		{
			name:    "marketing reassurance",
			subject: "Try Premium — cancel anytime",
			snippet: "",
		},
		{
			name:    "how-to instructions",
			subject: "How to cancel your subscription",
			snippet: "",
		},
		{
			name:    "false positive neutralizes real phrase in same email",
			subject: "Your subscription has been canceled",
			snippet: "Remember, you can cancel and rejoin anytime",
		},
		{
			name:    "false positive in body neutralizes subject phrase",
			subject: "Subscription ended",
			snippet: "",
			body:    "it was easy to cancel, and easy to come back",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Zero(t, DetectCancellationSignal(tt.subject, tt.snippet, tt.body))
		})
	}
}
