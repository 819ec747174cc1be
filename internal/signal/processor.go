package signal

import (
	"regexp"
	"strings"
)

// processorDomains maps known payment-intermediary domains to display names.
var processorDomains = map[string]string{
	"stripe.com":       "Stripe",
	"paddle.com":       "Paddle",
	"paypal.com":       "PayPal",
	"squareup.com":     "Square",
	"lemonsqueezy.com": "Lemon Squeezy",
	"gumroad.com":      "Gumroad",
	"fastspring.com":   "FastSpring",
	"2checkout.com":    "2Checkout",
	"chargebee.com":    "Chargebee",
}

// merchantPatternRe recovers the underlying merchant from processor email
// subjects like "Your receipt from Notion" or "Payment for Figma". The
// capitalized-word requirement avoids swallowing prose ("from your account").
var merchantPatternRe = regexp.MustCompile(`\b(?:from|for|to)\s+([A-Z][A-Za-z0-9&.\-]*(?:\s+[A-Z][A-Za-z0-9&.\-]*){0,2})`)

// ProcessorResult describes whether a sending domain is a payment
// intermediary and, when recoverable, which merchant it charged for.
// ServiceName is empty when the subject carried no recognizable merchant.
type ProcessorResult struct {
	ProcessorName string
	ServiceName   string
	IsProcessor   bool
}

// DetectProcessor checks a sending domain against the known processor set
// and, on a match, scans the subject for a "from/for/to <Service>" pattern
// to recover the real merchant. Processor-routed senders must keep being
// queried by the processor's domain, so callers split the query domain
// from the extracted service name.
func DetectProcessor(domain, subject string) ProcessorResult {
	d := strings.ToLower(strings.TrimSpace(domain))

	name, ok := processorDomains[d]
	if !ok {
		// Subdomains like mail.stripe.com route through the same processor.
		for pd, pn := range processorDomains {
			if strings.HasSuffix(d, "."+pd) {
				name, ok = pn, true
				break
			}
		}
	}
	if !ok {
		return ProcessorResult{}
	}

	result := ProcessorResult{IsProcessor: true, ProcessorName: name}
	if m := merchantPatternRe.FindStringSubmatch(subject); m != nil {
		service := strings.TrimRight(m[1], ".-")
		// The processor's own name is not a merchant.
		if !strings.EqualFold(service, name) {
			result.ServiceName = service
		}
	}
	return result
}
