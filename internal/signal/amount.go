package signal

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/subtrail/subtrail/internal/model"
)

// maxPlausibleAmount guards against order numbers and reference IDs being
// misread as currency. A wrong answer derived from an ID is worse than no
// answer, so implausible values are dropped silently.
var maxPlausibleAmount = decimal.NewFromInt(100000)

var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
}

// knownCurrencyCodes limits suffix matching to real ISO codes; "100 API"
// is not an amount.
var knownCurrencyCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "CAD": true, "AUD": true,
	"JPY": true, "CHF": true, "INR": true, "SEK": true, "NOK": true,
	"DKK": true, "NZD": true, "SGD": true, "BRL": true,
}

// The comma-grouped alternative must require at least one separator so a
// bare digit run like "123456" is consumed whole and rejected as
// implausible, not truncated to its first three digits.
const numberPattern = `\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?`

var (
	// $1,234.56 / €9.99 / £20
	symbolAmountRe = regexp.MustCompile(`([$€£])\s?(` + numberPattern + `)`)
	// 200 USD / 49.99 EUR
	codeAmountRe = regexp.MustCompile(`(` + numberPattern + `)\s?([A-Z]{3})\b`)
)

// ExtractAmounts scans free text for monetary values: currency-symbol
// prefixed numbers and numbers suffixed with a 3-letter currency code.
// Values at or above the plausibility ceiling are excluded.
func ExtractAmounts(text string, source model.AmountSource) []model.ExtractedAmount {
	var amounts []model.ExtractedAmount

	for _, m := range symbolAmountRe.FindAllStringSubmatch(text, -1) {
		if amt, ok := parseAmount(m[2], currencySymbols[m[1]], source); ok {
			amounts = append(amounts, amt)
		}
	}

	for _, m := range codeAmountRe.FindAllStringSubmatch(text, -1) {
		if !knownCurrencyCodes[m[2]] {
			continue
		}
		if amt, ok := parseAmount(m[1], m[2], source); ok {
			amounts = append(amounts, amt)
		}
	}

	return amounts
}

func parseAmount(raw, currency string, source model.AmountSource) (model.ExtractedAmount, bool) {
	value, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return model.ExtractedAmount{}, false
	}
	if !value.IsPositive() || value.GreaterThanOrEqual(maxPlausibleAmount) {
		return model.ExtractedAmount{}, false
	}
	return model.ExtractedAmount{Value: value, Currency: currency, Source: source}, true
}

// ExtractAllAmounts runs extraction over subject and snippet, deduplicating
// by numeric value with subject provenance winning ties. Body text is only
// consulted as a fallback when subject and snippet together yielded
// nothing, in which case body-sourced amounts are returned in full.
func ExtractAllAmounts(subject, snippet, bodyText string) []model.ExtractedAmount {
	found := ExtractAmounts(subject, model.SourceSubject)
	found = append(found, ExtractAmounts(snippet, model.SourceSnippet)...)

	if len(found) == 0 && bodyText != "" {
		found = ExtractAmounts(bodyText, model.SourceBody)
	}

	return dedupeByValue(found)
}

// dedupeByValue keeps one amount per numeric value, preferring the entry
// with the better provenance rank.
func dedupeByValue(amounts []model.ExtractedAmount) []model.ExtractedAmount {
	byValue := make(map[string]int, len(amounts))
	result := make([]model.ExtractedAmount, 0, len(amounts))

	for _, amt := range amounts {
		key := amt.Value.String()
		if idx, seen := byValue[key]; seen {
			if amt.Source.Rank() < result[idx].Source.Rank() {
				result[idx] = amt
			}
			continue
		}
		byValue[key] = len(result)
		result = append(result, amt)
	}

	return result
}
