package observ

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with digit grouping and a naively pluralized noun,
// e.g. "1,048,576 cells".
func FormatCount(n int, noun string) string {
	if n == 1 {
		return printer.Sprintf("%d %s", n, noun)
	}
	return printer.Sprintf("%d %ss", n, noun)
}

// FormatNumber renders n with digit grouping.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}
