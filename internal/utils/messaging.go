package utils

import (
	"net/url"
	"strings"
)

// DefaultConciergeMessage is the prefilled text used when the visitor has not
// written their own message.
const DefaultConciergeMessage = "Hello, I would like to speak with a concierge about your services."

// BuildMessagingLink constructs the outbound WhatsApp deep link for the given
// phone number and message. The phone number is reduced to digits (a leading
// "+" and separators are tolerated in input); the message is URL-encoded. An
// empty message falls back to DefaultConciergeMessage. Returns "" when no
// usable phone number remains, so callers can hide the affordance instead of
// emitting a broken link.
func BuildMessagingLink(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}
	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = DefaultConciergeMessage
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(msg)
}
