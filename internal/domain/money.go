package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a computation has no line to take a currency from.
const DefaultCurrency = "USD"

// ratioPrecision is the number of fractional digits kept by Ratio.
const ratioPrecision = 28

// currencyPlaces lists currencies whose display precision is not 2.
var currencyPlaces = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"VND": 0,
	"CLP": 0,
	"ISK": 0,
	"BHD": 3,
	"JOD": 3,
	"KWD": 3,
	"OMR": 3,
	"TND": 3,
}

// CurrencyPlaces returns the display precision of a currency code.
func CurrencyPlaces(currency string) int32 {
	if places, ok := currencyPlaces[strings.ToUpper(currency)]; ok {
		return places
	}
	return 2
}

// Money is an exact decimal amount tagged with a currency code.
// Arithmetic never rounds; rounding happens only through Round/RoundDisplay.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney creates a Money value. The currency code is upper-cased.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: strings.ToUpper(currency)}
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return NewMoney(decimal.Zero, currency)
}

// ParseMoney parses a decimal string such as "15.00".
func ParseMoney(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return NewMoney(d, currency), nil
}

// MustParseMoney is ParseMoney for constants. Panics on malformed input.
func MustParseMoney(amount, currency string) Money {
	m, err := ParseMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) sameCurrency(other Money) error {
	if m.Currency != other.Currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return nil
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub returns m - other.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// Scale multiplies the amount by a scalar.
func (m Money) Scale(factor decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(factor), Currency: m.Currency}
}

// Share returns m * part / whole. The product is taken before dividing so
// the result is rounded once, to ratioPrecision digits.
func (m Money) Share(part, whole Money) (Money, error) {
	if err := m.sameCurrency(part); err != nil {
		return Money{}, err
	}
	if err := part.sameCurrency(whole); err != nil {
		return Money{}, err
	}
	if whole.Amount.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	return Money{Amount: m.Amount.Mul(part.Amount).DivRound(whole.Amount, ratioPrecision), Currency: m.Currency}, nil
}

// Round rounds half away from zero to the given number of places.
func (m Money) Round(places int32) Money {
	return Money{Amount: m.Amount.Round(places), Currency: m.Currency}
}

// RoundDisplay rounds to the currency's display precision.
func (m Money) RoundDisplay() Money {
	return m.Round(CurrencyPlaces(m.Currency))
}

// MinorUnit is the smallest displayable amount of the currency (0.01 for USD).
func (m Money) MinorUnit() Money {
	return Money{Amount: decimal.New(1, -CurrencyPlaces(m.Currency)), Currency: m.Currency}
}

func (m Money) IsZero() bool     { return m.Amount.IsZero() }
func (m Money) IsNegative() bool { return m.Amount.IsNegative() }

// Equal compares currency and numeric value (trailing zeros are ignored).
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return m.Amount.StringFixed(CurrencyPlaces(m.Currency)) + " " + m.Currency
}
