// Package gmail implements the mail-search collaborator on top of the
// Gmail API: OAuth setup, the bounded search-query set, metadata fetching
// with a worker pool, and per-sender grouping.
package gmail

import "fmt"

// queryTemplates partition the billing vocabulary into targeted searches.
// Several narrow queries recall more than one giant OR because mail-search
// relevance truncates long disjunctions.
var queryTemplates = []string{
	`(receipt OR invoice OR "billing statement") newer_than:%dm`,
	`(subscription OR renewal OR membership) newer_than:%dm`,
	`("top up" OR "top-up" OR credits OR tokens OR "api usage") newer_than:%dm`,
	`("pay-as-you-go" OR prepaid OR "usage charge") newer_than:%dm`,
	`(refund OR chargeback OR reversal) newer_than:%dm`,
	`("subscription canceled" OR "subscription cancelled" OR cancellation OR unsubscribe OR "membership canceled") newer_than:%dm`,
}

// BuildSearchQueries returns the fixed set of search queries for the given
// lookback window, one per vocabulary partition.
func BuildSearchQueries(lookbackMonths int) []string {
	if lookbackMonths <= 0 {
		lookbackMonths = 12
	}

	queries := make([]string, len(queryTemplates))
	for i, tmpl := range queryTemplates {
		queries[i] = fmt.Sprintf(tmpl, lookbackMonths)
	}
	return queries
}
