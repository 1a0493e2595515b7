package locale

import (
	"math"
	"strconv"
	"strings"
)

// FormatIndian groups digits the Indian way: the last three, then pairs
// (150000 -> "1,50,000"). Fractions are kept to two places when present.
func FormatIndian(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	whole := math.Floor(amount)
	frac := math.Round((amount - whole) * 100)
	if frac >= 100 {
		whole++
		frac = 0
	}

	digits := strconv.FormatFloat(whole, 'f', 0, 64)
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}

	if len(digits) <= 3 {
		b.WriteString(digits)
	} else {
		head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
		lead := len(head) % 2
		if lead == 1 {
			b.WriteString(head[:1])
		}
		for i := lead; i < len(head); i += 2 {
			if b.Len() > 0 && !(negative && b.Len() == 1) {
				b.WriteByte(',')
			}
			b.WriteString(head[i : i+2])
		}
		b.WriteByte(',')
		b.WriteString(tail)
	}

	if frac > 0 {
		b.WriteByte('.')
		f := strconv.Itoa(int(frac))
		if len(f) == 1 {
			f = "0" + f
		}
		b.WriteString(f)
	}
	return b.String()
}

// FormatRupees renders amount with the Indian currency prefix, e.g. "Rs. 70,000".
func FormatRupees(amount float64) string {
	return Countries[DefaultCountry].CurrencySymbol + " " + FormatIndian(amount)
}
