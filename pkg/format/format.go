// Package format renders prices and product metadata the way the
// storefront pages present them.
package format

import (
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Price renders a money amount with its currency symbol. Non-finite values
// render as zero; an unknown currency code falls back to USD.
func Price(value float64, code string) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	return printer.Sprint(currency.Symbol(unit.Amount(value)))
}

// Tags renders up to three tags as a "#tag · #tag" line, with a stock
// label when the product has none.
func Tags(tags []string) string {
	if len(tags) == 0 {
		return "New arrival"
	}
	if len(tags) > 3 {
		tags = tags[:3]
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, "#"+tag)
	}
	return strings.Join(parts, " · ")
}
