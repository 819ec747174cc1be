package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SenderSummary aggregates the billing evidence for one sender. It is the
// unit of work for ranking, body fetching, and the AI pass; one summary is
// built per sender per scan run and discarded afterwards.
type SenderSummary struct {
	LatestDate   time.Time
	SenderName   string
	SenderDomain string
	// QueryDomain differs from SenderDomain only when a payment processor
	// split occurred: the mail search must target the processor's real
	// domain even though the display name is the underlying merchant.
	QueryDomain   string
	LatestSubject string
	LatestSnippet string
	BodyText      string
	Amounts       []decimal.Decimal
	RecentEmails  []EmailSummary
	EmailCount    int
	BillingScore  float64
}
