package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBillingScore(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		snippet string
		wantMin float64
		wantMax float64
	}{
		{
			name:    "receipt is definitive",
			subject: "Your receipt from Spotify",
			snippet: "Thanks for listening",
			wantMin: 1.0,
			wantMax: 1.0,
		},
		{
			name:    "invoice in snippet is definitive",
			subject: "March statement",
			snippet: "Your invoice is attached",
			wantMin: 1.0,
			wantMax: 1.0,
		},
		{
			name:    "subscription keyword scores at least 0.7",
			subject: "Your subscription is confirmed",
			snippet: "",
			wantMin: 0.7,
			wantMax: 0.89,
		},
		{
			name:    "renewal keyword scores at least 0.7",
			subject: "Renewal notice",
			snippet: "",
			wantMin: 0.7,
			wantMax: 0.89,
		},
		{
			name:    "both fields matching reinforce to 0.9",
			subject: "Your subscription renewal",
			snippet: "You were charged for this billing cycle",
			wantMin: 0.9,
			wantMax: 1.0,
		},
		{
			name:    "no billing language scores zero",
			subject: "Team standup moved to 10am",
			snippet: "See you there",
			wantMin: 0,
			wantMax: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BillingScore(tt.subject, tt.snippet)
			assert.GreaterOrEqual(t, got, tt.wantMin)
			assert.LessOrEqual(t, got, tt.wantMax)
		})
	}
}

func TestNeedsBodyFetch(t *testing.T) {
	tests := []struct {
		name         string
		emailCount   int
		amountCount  int
		billingScore float64
		want         bool
	}{
		{name: "no amounts and strong billing score", emailCount: 3, amountCount: 0, billingScore: 0.9, want: true},
		{name: "amount already extracted skips fetch", emailCount: 3, amountCount: 1, billingScore: 0.9, want: false},
		{name: "weak billing score skips fetch", emailCount: 3, amountCount: 0, billingScore: 0.5, want: false},
		{name: "boundary score qualifies", emailCount: 1, amountCount: 0, billingScore: 0.7, want: true},
		{name: "no emails skips fetch", emailCount: 0, amountCount: 0, billingScore: 1.0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsBodyFetch(tt.emailCount, tt.amountCount, tt.billingScore))
		})
	}
}
