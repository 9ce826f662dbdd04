package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupExact(t *testing.T) {
	tr, ok := Lookup("fr")
	require.True(t, ok)
	require.NotEmpty(t, tr.Nav.Properties)

	en, ok := Lookup("en")
	require.True(t, ok)
	require.NotEqual(t, en.Nav.Properties, tr.Nav.Properties)
}

func TestLookupPrimarySubtag(t *testing.T) {
	fr, ok := Lookup("fr-FR")
	require.True(t, ok)
	exact, _ := Lookup("fr")
	require.Equal(t, exact, fr)

	_, ok = Lookup("de-CH")
	require.False(t, ok)
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("xx")
	require.False(t, ok)
	_, ok = Lookup("")
	require.False(t, ok)
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	require.Contains(t, langs, DefaultLanguage)
	require.Contains(t, langs, "fr")
}
