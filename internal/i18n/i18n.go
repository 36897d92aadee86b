// Package i18n negotiates the response language and holds the translated
// user-facing messages.  English is the fallback for everything.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Supported lists the response languages; the first entry is the default.
var Supported = []language.Tag{language.English, language.Albanian, language.Macedonian}

var matcher = language.NewMatcher(Supported)

// Match picks the best supported language for an Accept-Language value.
func Match(accept string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return Supported[idx]
}

// FromRequest negotiates the language of r.  A ?lang= query parameter wins
// over the Accept-Language header.
func FromRequest(r *http.Request) language.Tag {
	if q := strings.TrimSpace(r.URL.Query().Get("lang")); q != "" {
		return Match(q)
	}
	return Match(r.Header.Get("Accept-Language"))
}

// Description returns the description matching tag, falling back to the
// English one when the translation is missing or blank.
func Description(tag language.Tag, en, sq, mk *string) *string {
	var pick *string
	switch tag {
	case language.Albanian:
		pick = sq
	case language.Macedonian:
		pick = mk
	}
	if pick != nil && strings.TrimSpace(*pick) != "" {
		return pick
	}
	return en
}
