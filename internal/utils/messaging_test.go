package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMessagingLink(t *testing.T) {
	link := BuildMessagingLink("+33 6 12 34 56 78", "Bonjour !")
	require.Equal(t, "https://wa.me/33612345678?text=Bonjour+%21", link)
}

func TestBuildMessagingLinkDefaultsMessage(t *testing.T) {
	link := BuildMessagingLink("33612345678", "  ")
	require.Contains(t, link, "https://wa.me/33612345678?text=")
	require.Contains(t, link, "concierge")
}

func TestBuildMessagingLinkNoDigits(t *testing.T) {
	require.Equal(t, "", BuildMessagingLink("", "hello there"))
	require.Equal(t, "", BuildMessagingLink("call me", "hello there"))
}
