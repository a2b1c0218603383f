// Package notify builds WhatsApp notification links for laundry requests.
// Delivery is link-based and fire-and-forget: the service produces a
// click-to-chat URL and the surrounding system decides how to surface it.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/resline/laundromat-go/internal/models"
)

// Sender is the outbound notification channel. Send returns an opaque
// delivery reference (for the link channel, the link itself).
type Sender interface {
	Send(contact, message string) (string, error)
	Ready() bool
}

// LinkSender generates wa.me click-to-chat links instead of talking to a
// messaging gateway. It is always ready.
type LinkSender struct {
	CountryCode string
}

// NewLinkSender creates a link-based sender with the given country code prefix
func NewLinkSender(countryCode string) *LinkSender {
	return &LinkSender{CountryCode: countryCode}
}

// Send builds the click-to-chat link for the given contact and message
func (s *LinkSender) Send(contact, message string) (string, error) {
	number := FormatPhoneNumber(contact, s.CountryCode)
	if number == "" {
		return "", fmt.Errorf("contact %q has no usable digits", contact)
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message)), nil
}

// Ready always reports true: link generation needs no session
func (s *LinkSender) Ready() bool {
	return true
}

// FormatPhoneNumber normalizes a raw contact number for WhatsApp: strips all
// non-digit characters, replaces a leading trunk prefix 0 with the country
// code, and otherwise prepends the country code if not already present.
func FormatPhoneNumber(raw, countryCode string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}

	if strings.HasPrefix(digits, "0") {
		return countryCode + digits[1:]
	}
	if !strings.HasPrefix(digits, countryCode) {
		return countryCode + digits
	}
	return digits
}

// ReadyMessage is the notification sent when laundry enters Completed status
func ReadyMessage(req *models.LaundryRequest, publicURL string) string {
	return fmt.Sprintf(
		"🎉 Hello %s! Your laundry is ready for collection!\n\n"+
			"📋 Reference: %s\n"+
			"👕 Items: %d pieces\n"+
			"📍 Please collect from the laundromat\n\n"+
			"📝 Complete collection form: %s/collection\n\n"+
			"Thank you for using our service!",
		req.Name, req.ReferenceNumber, req.ClothesCount, publicURL)
}

// StatusMessage is an on-demand progress update for any status
func StatusMessage(req *models.LaundryRequest) string {
	return fmt.Sprintf(
		"📱 Hi %s! Status Update\n\n"+
			"📋 Reference: %s\n"+
			"📊 Status: %s\n"+
			"👕 Items: %d pieces\n\n"+
			"We'll notify you when it's ready for collection!",
		req.Name, req.ReferenceNumber, req.Status, req.ClothesCount)
}
