package portfolio

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Locale is a supported display-language code.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleUA Locale = "ua"
	LocaleRU Locale = "ru"
	LocalePL Locale = "pl"
)

// SupportedLocales returns the fixed set of locales the builder understands,
// in canonical order.
func SupportedLocales() []Locale {
	return []Locale{LocaleEN, LocaleUA, LocaleRU, LocalePL}
}

// Valid reports whether l is one of the supported locale codes.
func (l Locale) Valid() bool {
	switch l {
	case LocaleEN, LocaleUA, LocaleRU, LocalePL:
		return true
	}
	return false
}

// localeTags maps locale codes to BCP 47 tags. "ua" is a legacy code kept for
// document compatibility; it resolves to Ukrainian ("uk").
var localeTags = map[Locale]language.Tag{
	LocaleEN: language.English,
	LocaleUA: language.Ukrainian,
	LocaleRU: language.Russian,
	LocalePL: language.Polish,
}

// DisplayName returns the English display name of the locale ("Ukrainian").
func (l Locale) DisplayName() string {
	tag, ok := localeTags[l]
	if !ok {
		return string(l)
	}
	return display.English.Tags().Name(tag)
}

// NativeName returns the locale's name in its own language ("Українська").
func (l Locale) NativeName() string {
	tag, ok := localeTags[l]
	if !ok {
		return string(l)
	}
	return cases.Title(tag).String(display.Self.Name(tag))
}

// LocalizedString maps locale codes to display strings. Missing entries read
// as empty strings; completeness for enabled locales is enforced by the
// validator, not here.
type LocalizedString map[Locale]string

// Get returns the string for the given locale, or "" when absent.
func (s LocalizedString) Get(l Locale) string {
	if s == nil {
		return ""
	}
	return s[l]
}
