package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidCurrency  = errors.New("money: invalid currency code")
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
	ErrInvalidAmount    = errors.New("money: invalid decimal amount")
)

// Money keeps decimal amounts as integer minor units (two fraction digits).
type Money struct {
	Minor    int64
	Currency string
}

// New constructs Money validating the currency code.
func New(minor int64, currency string) (Money, error) {
	if len(currency) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	return Money{Minor: minor, Currency: strings.ToUpper(currency)}, nil
}

// Must creates Money and panics if validation fails; useful in tests and fixtures.
func Must(minor int64, currency string) Money {
	m, err := New(minor, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseDecimal reads amounts such as "120", "120.5" or "-3.75". Only a
// single leading minus is accepted; both parts must be plain digits.
func ParseDecimal(raw, currency string) (Money, error) {
	raw = strings.TrimSpace(raw)
	neg := strings.HasPrefix(raw, "-")
	digits := strings.TrimPrefix(raw, "-")
	whole, frac, hasFrac := strings.Cut(digits, ".")
	if !isDigits(whole) || (hasFrac && (!isDigits(frac) || len(frac) > 2)) {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > (math.MaxInt64-99)/100 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	var cents int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, _ = strconv.ParseInt(frac, 10, 64)
	}
	minor := units*100 + cents
	if neg {
		minor = -minor
	}
	return New(minor, currency)
}

func isDigits(s string) bool {
	return s != "" && !strings.ContainsFunc(s, func(r rune) bool { return r < '0' || r > '9' })
}

// Decimal renders the amount with two fraction digits.
func (m Money) Decimal() string {
	minor := m.Minor
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// Add adds two money values ensuring currencies match. A zero value adopts
// the other operand's currency so sums can start from Money{}.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency == "" && m.Minor == 0 {
		return other, nil
	}
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Minor: m.Minor + other.Minor, Currency: m.Currency}, nil
}

// IsZero returns true if the amount equals zero.
func (m Money) IsZero() bool {
	return m.Minor == 0
}

func (m Money) ensureSameCurrency(other Money) error {
	if m.Currency == "" || other.Currency == "" {
		return ErrInvalidCurrency
	}
	if m.Currency != other.Currency {
		return ErrCurrencyMismatch
	}
	return nil
}
