package templates

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count renders n with thousands separators.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Money renders d as dollars with thousands separators. Whole amounts drop
// the cents. Amounts of any size render exactly.
func Money(d decimal.Decimal) string {
	places := int32(2)
	if d.IsInteger() {
		places = 0
	}

	s := d.StringFixed(places)
	sign := ""
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		sign, s = "-", rest
	}
	whole, cents, hasCents := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteByte('$')
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasCents {
		b.WriteByte('.')
		b.WriteString(cents)
	}
	return b.String()
}
