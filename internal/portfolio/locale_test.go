package portfolio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocale_Valid(t *testing.T) {
	for _, l := range SupportedLocales() {
		require.True(t, l.Valid(), "locale %s", l)
	}
	require.False(t, Locale("de").Valid())
	require.False(t, Locale("").Valid())
}

func TestLocale_DisplayName(t *testing.T) {
	require.Equal(t, "English", LocaleEN.DisplayName())
	require.Equal(t, "Ukrainian", LocaleUA.DisplayName())
	require.Equal(t, "Russian", LocaleRU.DisplayName())
	require.Equal(t, "Polish", LocalePL.DisplayName())
	// Unknown codes fall back to the raw code.
	require.Equal(t, "xx", Locale("xx").DisplayName())
}

func TestLocalizedString_Get(t *testing.T) {
	s := LocalizedString{LocaleEN: "Hello", LocaleUA: "Привіт"}
	require.Equal(t, "Hello", s.Get(LocaleEN))
	require.Equal(t, "Привіт", s.Get(LocaleUA))
	require.Empty(t, s.Get(LocalePL))

	var nilStr LocalizedString
	require.Empty(t, nilStr.Get(LocaleEN))
}
