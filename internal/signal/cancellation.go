package signal

import "strings"

// cancellationPhrases is the explicit-cancellation table. Weights reflect
// how unambiguous the phrasing is.
var cancellationPhrases = []keywordWeight{
	{"has been canceled", 0.95},
	{"has been cancelled", 0.95},
	{"cancellation confirmed", 0.95},
	{"cancellation confirmation", 0.95},
	{"subscription canceled", 0.9},
	{"subscription cancelled", 0.9},
	{"membership canceled", 0.9},
	{"membership cancelled", 0.9},
	{"account closed", 0.85},
	{"account has been closed", 0.9},
	{"unsubscribed", 0.85},
	{"subscription ended", 0.9},
	{"subscription has ended", 0.9},
	{"subscription expired", 0.85},
	{"subscription has expired", 0.9},
	{"sorry to see you go", 0.85},
}

// cancellationFalsePositives are phrases that mention cancellation without
// reporting one: marketing reassurances and how-to instructions. Any hit
// forces the whole result to zero, no matter what else matched.
var cancellationFalsePositives = []string{
	"cancel anytime",
	"cancel at any time",
	"easy to cancel",
	"how to cancel",
	"instructions to cancel",
	"you can cancel",
	"if you wish to cancel",
	"if you want to cancel",
	"want to cancel?",
	"before you cancel",
	"manage or cancel",
}

// DetectCancellationSignal scores explicit cancellation language across
// the union of subject, snippet, and optional body text. A false-positive
// phrase anywhere in the union takes absolute precedence and yields 0.
func DetectCancellationSignal(subject, snippet, bodyText string) float64 {
	text := strings.ToLower(subject + " " + snippet + " " + bodyText)

	for _, phrase := range cancellationFalsePositives {
		if strings.Contains(text, phrase) {
			return 0
		}
	}

	best := 0.0
	matched := 0
	for _, kw := range cancellationPhrases {
		if strings.Contains(text, kw.phrase) {
			matched++
			if kw.weight > best {
				best = kw.weight
			}
		}
	}

	// Multiple independent phrases corroborate each other.
	if matched > 1 && best < 0.98 {
		best += 0.03
		if best > 0.98 {
			best = 0.98
		}
	}

	return best
}
