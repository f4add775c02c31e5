package search

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"propcomfy/internal/domain"
)

var printer = message.NewPrinter(language.English)

// FormatNaira renders an amount with thousands separators, e.g. ₦100,000.
func FormatNaira(n int64) string {
	return printer.Sprintf("₦%d", n)
}

// Describe is the one-line summary shown above search results.
func Describe(c domain.Criteria) string {
	var b strings.Builder
	if c.City != nil {
		b.WriteString(*c.City)
	} else {
		b.WriteString("All Lagos")
	}
	if c.Bedrooms != nil {
		if *c.Bedrooms == 0 {
			b.WriteString(" • Studio")
		} else {
			b.WriteString(printer.Sprintf(" • %d BD", *c.Bedrooms))
		}
	}
	if c.Budget != nil && *c.Budget > 0 {
		b.WriteString(" • under " + FormatNaira(*c.Budget))
	}
	return b.String()
}
