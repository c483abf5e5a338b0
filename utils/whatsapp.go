package utils

import (
	"net/url"
	"strings"
)

const whatsappFooter = "\n\n━━━━━━━━━━━━━━━━━━━━━━━━━\n🏭 *KISANAGRO* - Premium Fruit Protection\n🌐 www.kisanagro.com\n⭐ Quality • Reliability • Trust"

// GenerateWhatsAppLink builds a wa.me link for the given phone and message.
// Adds the company footer to the message and the 91 country code when the
// number does not already carry it.
func GenerateWhatsAppLink(phone, message string) string {
	formatted := phone
	if !strings.HasPrefix(phone, "91") {
		formatted = "91" + phone
	}
	return "https://wa.me/" + formatted + "?text=" + url.QueryEscape(message+whatsappFooter)
}
