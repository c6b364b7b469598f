package pages

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseLabeledAmount(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		text   string
		want   float64
		reason string
	}{
		{name: "price", prefix: CurrencyPrefix, text: "$29.99", want: 29.99},
		{name: "whole dollars", prefix: CurrencyPrefix, text: "$7", want: 7},
		{name: "surrounding whitespace", prefix: CurrencyPrefix, text: "  $9.99\n", want: 9.99},
		{name: "rounded to cents", prefix: CurrencyPrefix, text: "$1.006", want: 1.01},
		{name: "item total", prefix: ItemTotalPrefix, text: "Item total: $39.98", want: 39.98},
		{name: "tax", prefix: TaxPrefix, text: "Tax: $3.20", want: 3.20},
		{name: "total", prefix: TotalPrefix, text: "Total: $43.18", want: 43.18},
		{name: "missing currency", prefix: CurrencyPrefix, text: "29.99", reason: "prefix mismatch"},
		{name: "wrong label", prefix: TaxPrefix, text: "Total: $43.18", reason: "prefix mismatch"},
		{name: "label case matters", prefix: ItemTotalPrefix, text: "item total: $39.98", reason: "prefix mismatch"},
		{name: "negative", prefix: CurrencyPrefix, text: "$-1.00", reason: "not a decimal number"},
		{name: "exponent", prefix: CurrencyPrefix, text: "$1e3", reason: "not a decimal number"},
		{name: "thousands separator", prefix: CurrencyPrefix, text: "$1,000.00", reason: "not a decimal number"},
		{name: "empty body", prefix: CurrencyPrefix, text: "$", reason: "not a decimal number"},
		{name: "trailing dot", prefix: CurrencyPrefix, text: "$5.", reason: "not a decimal number"},
		{name: "space after prefix", prefix: TaxPrefix, text: "Tax: $ 3.20", reason: "not a decimal number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLabeledAmount(tt.prefix, tt.text)
			if tt.reason == "" {
				require.NoError(t, err)
				assert.InDelta(t, tt.want, got, 1e-9)
				return
			}

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.text, perr.Text)
			assert.Equal(t, tt.prefix, perr.Prefix)
			assert.Equal(t, tt.reason, perr.Reason)
			assert.Contains(t, err.Error(), tt.text)
		})
	}
}

func TestParseAmountAndItemTotal(t *testing.T) {
	v, err := ParseAmount("$15.99")
	require.NoError(t, err)
	assert.InDelta(t, 15.99, v, 1e-9)

	v, err = ParseItemTotal("Item total: $39.98")
	require.NoError(t, err)
	assert.InDelta(t, 39.98, v, 1e-9)

	_, err = ParseItemTotal("$39.98")
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestAmountsEqual(t *testing.T) {
	assert.True(t, AmountsEqual(43.18, 43.18))
	assert.True(t, AmountsEqual(43.18, 43.19))
	assert.True(t, AmountsEqual(0.1+0.2, 0.3))
	assert.False(t, AmountsEqual(43.18, 43.20))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0.0, Sum(nil))
	assert.InDelta(t, 39.98, Sum([]float64{29.99, 9.99}), 1e-9)
	assert.InDelta(t, 0.3, Sum([]float64{0.1, 0.2}), 1e-9)
}

func TestParseAmount_RoundTripsCents(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(0, 100_000_000).Draw(t, "cents")
		text := fmt.Sprintf("$%d.%02d", cents/100, cents%100)

		got, err := ParseAmount(text)
		if err != nil {
			t.Fatalf("ParseAmount(%q) error = %v", text, err)
		}
		if want := float64(cents) / 100; math.Abs(got-want) > 1e-9 {
			t.Fatalf("ParseAmount(%q) = %v, want %v", text, got, want)
		}
	})
}

func TestParseLabeledAmount_RejectsForeignPrefixes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(0, 1_000_000).Draw(t, "cents")
		label := rapid.SampledFrom([]string{ItemTotalPrefix, TaxPrefix, TotalPrefix}).Draw(t, "label")
		other := rapid.SampledFrom([]string{ItemTotalPrefix, TaxPrefix, TotalPrefix}).Filter(func(s string) bool {
			return s != label
		}).Draw(t, "other")

		text := fmt.Sprintf("%s%d.%02d", label, cents/100, cents%100)
		if _, err := ParseLabeledAmount(label, text); err != nil {
			t.Fatalf("ParseLabeledAmount(%q, %q) error = %v", label, text, err)
		}
		if _, err := ParseLabeledAmount(other, text); err == nil {
			t.Fatalf("ParseLabeledAmount(%q, %q) accepted a foreign label", other, text)
		}
	})
}

func TestSum_MatchesCentArithmetic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.SliceOfN(rapid.Int64Range(0, 1_000_000), 0, 20).Draw(t, "cents")

		var total int64
		amounts := make([]float64, len(cents))
		for i, c := range cents {
			amounts[i] = float64(c) / 100
			total += c
		}

		if got := Sum(amounts); !AmountsEqual(got, float64(total)/100) {
			t.Fatalf("Sum(%v) = %v, want %v", amounts, got, float64(total)/100)
		}
	})
}

func TestAmountsEqual_Symmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float64Range(0, 1e6).Draw(t, "a")
		b := rapid.Float64Range(0, 1e6).Draw(t, "b")
		if AmountsEqual(a, b) != AmountsEqual(b, a) {
			t.Fatalf("AmountsEqual is not symmetric for %v, %v", a, b)
		}
		if !AmountsEqual(a, a) {
			t.Fatalf("AmountsEqual(%v, %v) = false", a, a)
		}
	})
}
