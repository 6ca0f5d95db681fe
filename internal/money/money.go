package money

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code (e.g. "USD", "JPY")
type Currency string

// Common errors
var (
	ErrMalformedAmount = errors.New("amount is not a valid decimal string")
	ErrInvalidCurrency = errors.New("invalid currency code")
)

// amountPattern accepts plain decimal strings only - no exponents, no
// thousands separators, no leading plus sign
var amountPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// currencyPattern matches three-letter ISO 4217 codes
var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// zeroDecimalCurrencies have no minor unit (1 JPY is the smallest amount)
var zeroDecimalCurrencies = map[Currency]bool{
	"BIF": true, "CLP": true, "DJF": true, "GNF": true,
	"ISK": true, "JPY": true, "KMF": true, "KRW": true,
	"PYG": true, "RWF": true, "UGX": true, "VND": true,
	"VUV": true, "XAF": true, "XOF": true, "XPF": true,
}

// threeDecimalCurrencies use a thousandth as the minor unit
var threeDecimalCurrencies = map[Currency]bool{
	"BHD": true, "IQD": true, "JOD": true, "KWD": true,
	"LYD": true, "OMR": true, "TND": true,
}

// Parse converts a decimal string from the wire into an exact decimal value.
// Money never crosses the boundary as a binary float, so anything that is not
// a plain decimal string is rejected before computation begins.
func Parse(s string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	return d, nil
}

// Valid reports whether the currency code is well-formed
func (c Currency) Valid() bool {
	return currencyPattern.MatchString(string(c))
}

// Exponent returns the number of minor-unit digits for the currency
// (2 for USD, 0 for JPY, 3 for KWD)
func (c Currency) Exponent() int32 {
	switch {
	case zeroDecimalCurrencies[c]:
		return 0
	case threeDecimalCurrencies[c]:
		return 3
	default:
		return 2
	}
}

// MinorUnit returns the smallest representable amount in the currency
// (0.01 for USD, 1 for JPY)
func (c Currency) MinorUnit() decimal.Decimal {
	return decimal.New(1, -c.Exponent())
}

// Round rounds an amount to the currency's minor-unit precision
// (round half away from zero)
func (c Currency) Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(c.Exponent())
}

// Floor truncates an amount down to the currency's minor-unit precision
func (c Currency) Floor(d decimal.Decimal) decimal.Decimal {
	return d.RoundFloor(c.Exponent())
}

// Format renders an amount as a decimal string at the currency's precision,
// the only form in which money leaves this module
func (c Currency) Format(d decimal.Decimal) string {
	return d.StringFixed(c.Exponent())
}
