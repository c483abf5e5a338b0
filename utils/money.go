package utils

import (
	"strconv"
	"strings"
)

// FormatINR formats an integer rupee amount as a string like "₹12,34,500".
// Uses the Indian grouping convention: the last three digits form one group,
// every group before that has two digits.
func FormatINR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	if len(s) <= 3 {
		if neg {
			return "-₹" + s
		}
		return "₹" + s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/2 + 4)
	if neg {
		b.WriteString("-₹")
	} else {
		b.WriteString("₹")
	}

	head := s[:len(s)-3]
	tail := s[len(s)-3:]

	rem := len(head) % 2
	if rem == 0 {
		rem = 2
	}
	b.WriteString(head[:rem])
	for i := rem; i < len(head); i += 2 {
		b.WriteByte(',')
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)

	return b.String()
}
