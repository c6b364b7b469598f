package pages

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Epsilon is the tolerance for comparing displayed amounts
const Epsilon = 0.01

// Label prefixes of the checkout overview summary
const (
	CurrencyPrefix  = "$"
	ItemTotalPrefix = "Item total: $"
	TaxPrefix       = "Tax: $"
	TotalPrefix     = "Total: $"
)

var amountBody = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ParseError reports page text that does not have the expected format
type ParseError struct {
	Text   string
	Prefix string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as %q amount: %s", e.Text, e.Prefix+"X.YY", e.Reason)
}

// ParseAmount parses a price such as "$29.99"
func ParseAmount(text string) (float64, error) {
	return ParseLabeledAmount(CurrencyPrefix, text)
}

// ParseItemTotal parses the overview subtotal such as "Item total: $39.98"
func ParseItemTotal(text string) (float64, error) {
	return ParseLabeledAmount(ItemTotalPrefix, text)
}

// ParseLabeledAmount strips the literal prefix from text and parses the rest
// as a non-negative decimal, rounded to cents. Surrounding whitespace is
// ignored; anything else that deviates from the format is a *ParseError.
func ParseLabeledAmount(prefix, text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	body, ok := strings.CutPrefix(trimmed, prefix)
	if !ok {
		return 0, &ParseError{Text: text, Prefix: prefix, Reason: "prefix mismatch"}
	}
	if !amountBody.MatchString(body) {
		return 0, &ParseError{Text: text, Prefix: prefix, Reason: "not a decimal number"}
	}
	v, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return 0, &ParseError{Text: text, Prefix: prefix, Reason: err.Error()}
	}
	return roundCents(v), nil
}

// AmountsEqual reports whether a and b agree within Epsilon
func AmountsEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon+1e-9
}

// Sum adds amounts and rounds the result to cents
func Sum(amounts []float64) float64 {
	var total float64
	for _, a := range amounts {
		total += a
	}
	return roundCents(total)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
