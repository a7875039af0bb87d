package report

import "strings"

// FormatINR renders a two-decimal amount string in Indian Rupee notation,
// grouping digits the Indian way (₹1,23,45,678.90).
func FormatINR(amount string) string {
	return withGrouping("₹", amount)
}

// FormatRs is FormatINR with the "Rs " prefix used in PDF output, whose
// built-in fonts have no rupee glyph.
func FormatRs(amount string) string {
	return withGrouping("Rs ", amount)
}

func withGrouping(symbol, amount string) string {
	negative := strings.HasPrefix(amount, "-")
	amount = strings.TrimPrefix(amount, "-")

	intPart, decPart, hasDec := strings.Cut(amount, ".")
	result := symbol + applyIndianGrouping(intPart)
	if hasDec {
		result += "." + decPart
	}
	if negative {
		result = "-" + result
	}
	return result
}

// applyIndianGrouping keeps the rightmost three digits together and groups
// the rest in pairs.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}
	return result
}
