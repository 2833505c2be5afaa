package format

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency_RoundTrip(t *testing.T) {

	amount := decimal.NewFromInt(4_000_000)

	formatted := FormatCurrency(amount)

	assert.True(t, strings.HasPrefix(formatted, "$ "), formatted)
	assert.True(t, ParseCurrency(formatted).Equal(amount), formatted)
}

func TestFormatCurrency_TruncatesCents(t *testing.T) {

	formatted := FormatCurrency(decimal.RequireFromString("1234567.89"))

	assert.True(t, ParseCurrency(formatted).Equal(decimal.NewFromInt(1_234_567)), formatted)
}

func TestFormatCurrency_Negative(t *testing.T) {

	formatted := FormatCurrency(decimal.NewFromInt(-2500))

	assert.True(t, strings.HasPrefix(formatted, "-$ "), formatted)
}

func TestFormatCurrencyFloat_NaN(t *testing.T) {

	assert.Equal(t, "$ 0", FormatCurrencyFloat(math.NaN()))
	assert.Equal(t, "$ 0", FormatCurrencyFloat(math.Inf(-1)))
}

func TestParseCurrency_Garbage(t *testing.T) {

	assert.True(t, ParseCurrency("").IsZero())
	assert.True(t, ParseCurrency("abc").IsZero())
	assert.True(t, ParseCurrency("$ 1.300.000").Equal(decimal.NewFromInt(1_300_000)))
}

func TestFormatPercent(t *testing.T) {

	tests := []struct {
		rate    float64
		pattern string
	}{
		{1.2, `^1[,.]2%$`},
		{1.25, `^1[,.]25%$`},
		{2.0, `^2%$`},
		{10, `^10%$`},
		{0, `^0%$`},
		{math.NaN(), `^0%$`},
	}

	for _, tt := range tests {
		assert.Regexp(t, tt.pattern, FormatPercent(tt.rate), "rate %v", tt.rate)
	}
}

func TestParseNumber(t *testing.T) {

	tests := []struct {
		input    string
		expected float64
	}{
		{"", 0},
		{"abc", 0},
		{"  42 ", 42},
		{"1.300.000", 1_300_000},
		{"$ 1.299.999", 1_299_999},
		{"1.300.000,50", 1_300_000.5},
		{"1,300,000.50", 1_300_000.5},
		{"2,5", 2.5},
		{"2.5", 2.5},
		{"35%", 35},
		{"1,2,3", 0},
		{"2.500", 2500},
		{"$ 2.500", 2500},
		{"1.300", 1300},
		{"1,300,000", 1_300_000},
		{"-1.300", -1300},
		{"0.500", 0.5},
		{"12.34", 12.34},
		{"1.5000", 1.5},
		{"1234.567", 1234.567},
		{"1.30.000", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseNumber(tt.input), "input %q", tt.input)
	}
}

func TestParseNumber_ReadsFormattedCurrency(t *testing.T) {

	for _, v := range []float64{2500, 1300, 999_999, 1_300_000, 45_000_000} {
		formatted := FormatCurrencyFloat(v)
		assert.Equal(t, v, ParseNumber(formatted), "formatted %q", formatted)
	}
}
