// Package signal provides the pure text classifiers that turn raw email
// metadata into billing evidence: billing-likelihood scoring, charge-type
// classification, cancellation detection, amount extraction, and payment
// processor recognition. Every function here is stateless and safe for
// concurrent use; the natural unit of parallelism is one sender's emails.
package signal

import "strings"

// keywordWeight pairs a lowercase phrase with its signal strength.
// Evaluation is data-driven iteration over these tables; weights are
// tunable constants, not behavior.
type keywordWeight struct {
	phrase string
	weight float64
}

// billingKeywords score how likely an email concerns money changing hands.
var billingKeywords = []keywordWeight{
	{"receipt", 1.0},
	{"invoice", 1.0},
	{"subscription", 0.7},
	{"renewal", 0.7},
	{"renewed", 0.7},
	{"payment confirmation", 0.8},
	{"payment received", 0.8},
	{"your payment", 0.7},
	{"billing statement", 0.8},
	{"order confirmation", 0.6},
	{"charged", 0.6},
	{"amount due", 0.6},
}

// maxKeywordWeight returns the strongest table phrase present in text,
// or 0 when none match. Text must already be lowercased.
func maxKeywordWeight(text string, table []keywordWeight) float64 {
	best := 0.0
	for _, kw := range table {
		if strings.Contains(text, kw.phrase) && kw.weight > best {
			best = kw.weight
		}
	}
	return best
}

// BillingScore rates how billing-related an email is, in [0,1]. Receipt
// and invoice language is definitive. When subject and snippet each carry
// an independent billing keyword the signals reinforce each other.
func BillingScore(subject, snippet string) float64 {
	subjectScore := maxKeywordWeight(strings.ToLower(subject), billingKeywords)
	snippetScore := maxKeywordWeight(strings.ToLower(snippet), billingKeywords)

	score := subjectScore
	if snippetScore > score {
		score = snippetScore
	}
	if score == 0 {
		return 0
	}
	if subjectScore > 0 && snippetScore > 0 && score < 0.9 {
		score = 0.9
	}
	return score
}

// NeedsBodyFetch decides whether a sender's emails warrant fetching full
// bodies: only when no amount was already extracted from subject or
// snippet and the billing score is convincing. Body fetches are the
// expensive path; an extracted amount makes them redundant.
func NeedsBodyFetch(emailCount, amountCount int, billingScore float64) bool {
	return emailCount > 0 && amountCount == 0 && billingScore >= 0.7
}
