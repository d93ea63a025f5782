package shared

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders an amount as US dollars with two decimals and grouping, e.g. "$1,234.50".
func FormatMoney(amount float64) string {
	if amount < 0 {
		return moneyPrinter.Sprintf("-$%.2f", -amount)
	}
	return moneyPrinter.Sprintf("$%.2f", amount)
}

// Capitalize upper-cases the first letter of every word and lower-cases the rest.
func Capitalize(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	// cases.Caser keeps state, so a fresh one per call is required for concurrent use.
	caser := cases.Title(language.AmericanEnglish)
	return caser.String(strings.Join(fields, " "))
}
