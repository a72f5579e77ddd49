package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Defaults used when a configuration carries no group locale or currency
const (
	DefaultLocale   = "pt-BR"
	DefaultCurrency = "BRL"
)

// Money formats amounts for one locale and currency
type Money struct {
	printer *message.Printer
	unit    currency.Unit
}

var defaultMoney = mustMoney(DefaultLocale, DefaultCurrency)

// NewMoney builds a formatter for a BCP 47 locale and an ISO 4217 code.
// Empty values fall back to pt-BR and BRL.
func NewMoney(locale, code string) (*Money, error) {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	if strings.TrimSpace(code) == "" {
		code = DefaultCurrency
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}

	return &Money{printer: message.NewPrinter(tag), unit: unit}, nil
}

// MoneyFor returns the formatter for a group's locale and currency, falling
// back to the defaults when either is invalid
func MoneyFor(locale, code string) *Money {
	m, err := NewMoney(locale, code)
	if err != nil {
		return defaultMoney
	}
	return m
}

func mustMoney(locale, code string) *Money {
	m, err := NewMoney(locale, code)
	if err != nil {
		panic(err)
	}
	return m
}

// Currency renders an amount with the currency symbol, e.g. "R$ 1.859,00"
func (m *Money) Currency(amount decimal.Decimal) string {
	return m.printer.Sprint(currency.Symbol(m.unit.Amount(amount.InexactFloat64())))
}

// Number renders an amount with two decimals and locale grouping
func (m *Money) Number(amount decimal.Decimal) string {
	return m.printer.Sprintf("%.2f", amount.InexactFloat64())
}

// Percent renders a percentage value (0.5 means 0.5%)
func (m *Money) Percent(value decimal.Decimal) string {
	return m.printer.Sprintf("%.2f%%", value.InexactFloat64())
}

// FormatCurrency formats an amount in the default locale (R$)
func FormatCurrency(amount decimal.Decimal) string {
	return defaultMoney.Currency(amount)
}

// FormatPercentage formats a percentage in the default locale
func FormatPercentage(value decimal.Decimal) string {
	return defaultMoney.Percent(value)
}
