package model

import "github.com/shopspring/decimal"

// AmountSource records which email field an amount was extracted from.
// Subject-sourced amounts are preferred over snippet, snippet over body.
type AmountSource string

// Amount source constants, in preference order.
const (
	SourceSubject AmountSource = "subject"
	SourceSnippet AmountSource = "snippet"
	SourceBody    AmountSource = "body"
)

// Rank returns the provenance preference of the source; lower is better.
func (s AmountSource) Rank() int {
	switch s {
	case SourceSubject:
		return 0
	case SourceSnippet:
		return 1
	case SourceBody:
		return 2
	}
	return 3
}

// ExtractedAmount is a monetary value found in email text. Value is always
// positive and below the plausibility ceiling; anything else is discarded
// at extraction time rather than represented here.
type ExtractedAmount struct {
	Value    decimal.Decimal
	Currency string
	Source   AmountSource
}
