package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"9876543210", true},
		{"6000000000", true},
		{"7123456789", true},
		{"8999999999", true},
		{"5876543210", false}, // leading digit below 6
		{"0876543210", false},
		{"987654321", false},   // 9 digits
		{"98765432100", false}, // 11 digits
		{"98765 4321", false},  // embedded space
		{"abcdefghij", false},
		{"", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ValidatePhone(tt.phone), "phone %q", tt.phone)
	}
}

func TestValidateEmail(t *testing.T) {
	require.True(t, ValidateEmail("ravi@example.com"))
	require.True(t, ValidateEmail("a.b+c@farm.co.in"))
	require.False(t, ValidateEmail("bad"))
	require.False(t, ValidateEmail("no-at.example.com"))
	require.False(t, ValidateEmail("nodomain@"))
	require.False(t, ValidateEmail("no@dot"))
	require.False(t, ValidateEmail("spaces in@example.com"))
}

func TestSanitizeInput(t *testing.T) {
	require.Equal(t, "hello", SanitizeInput("  hello  "))
	out := SanitizeInput("<script>alert(1)</script>")
	require.NotContains(t, out, "<")
	require.NotContains(t, out, ">")
	require.Equal(t, "scriptalert(1)/script", out)
	// Quotes and ampersands pass through untouched
	require.Equal(t, `"a" & 'b'`, SanitizeInput(`"a" & 'b'`))
}

func TestTruncateText(t *testing.T) {
	require.Equal(t, "short", TruncateText("short", 10))
	require.Equal(t, "long ...", TruncateText("long text here", 5))
}

func TestGenerateWhatsAppLink(t *testing.T) {
	link := GenerateWhatsAppLink("9876543210", "Hello")
	require.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="))
	require.Contains(t, link, "Hello")

	// Country code not doubled when already present
	link = GenerateWhatsAppLink("919876543210", "Hi")
	require.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="))
}

func TestFormatINR(t *testing.T) {
	require.Equal(t, "₹0", FormatINR(0))
	require.Equal(t, "₹500", FormatINR(500))
	require.Equal(t, "₹1,500", FormatINR(1500))
	require.Equal(t, "₹12,500", FormatINR(12500))
	require.Equal(t, "₹1,00,000", FormatINR(100000))
	require.Equal(t, "₹12,34,567", FormatINR(1234567))
	require.Equal(t, "₹1,23,45,678", FormatINR(12345678))
	require.Equal(t, "-₹12,500", FormatINR(-12500))
}
