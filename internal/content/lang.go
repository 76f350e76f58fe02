package content

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported content language code.
type Lang string

const (
	French  Lang = "fr"
	English Lang = "en"
)

// DefaultLang is the language a page starts in and the resolver fallback.
const DefaultLang = French

// Langs lists the supported languages in display order.
var Langs = []Lang{French, English}

// ParseLang normalizes a code such as "EN" or "en-US". Unknown or empty codes yield DefaultLang.
func ParseLang(s string) Lang {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLang
	}
	if tag, err := language.Parse(s); err == nil {
		base, _ := tag.Base()
		s = base.String()
	} else if i := strings.IndexAny(s, "-_"); i != -1 {
		s = s[:i]
	}
	s = strings.ToLower(s)
	switch Lang(s) {
	case French, English:
		return Lang(s)
	}
	return DefaultLang
}

// Toggle returns the other language.
func (l Lang) Toggle() Lang {
	if l == English {
		return French
	}
	return English
}

// Code returns the upper-cased code shown on toggle controls.
func (l Lang) Code() string { return strings.ToUpper(string(l)) }

func (l Lang) String() string { return string(l) }
