package utils

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseRupiah extracts the amount from a free-form rupiah string such as
// "Rp 150.000", "150000" or "Rp150,000". Range strings like
// "Rp 50.000 - 100.000" resolve to the lower bound. Returns 0 when the string
// carries no digits.
func ParseRupiah(s string) int64 {
	s = strings.TrimSpace(s)
	if idx := strings.IndexAny(s, "-–"); idx >= 0 {
		s = s[:idx]
	}

	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatRupiah renders an amount with dot thousand separators, e.g. "Rp 150.000".
func FormatRupiah(amount int64) string {
	raw := strconv.FormatInt(amount, 10)
	var grouped strings.Builder
	for i, d := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}
	return fmt.Sprintf("Rp %s", grouped.String())
}
