// Package ayah holds the request pipeline that turns a surah/ayah selection
// into a formatted "ayah of the day" text.
package ayah

import (
	"strconv"
	"strings"
)

var arabicIndicDigits = [10]rune{'٠', '١', '٢', '٣', '٤', '٥', '٦', '٧', '٨', '٩'}

// ToArabicDigits renders n with Arabic-Indic digit glyphs, e.g. 105 -> "١٠٥".
func ToArabicDigits(n int) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return arabicIndicDigits[r-'0']
		}
		return r
	}, strconv.Itoa(n))
}
