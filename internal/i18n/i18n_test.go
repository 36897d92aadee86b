package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	cases := map[string]language.Tag{
		"":               language.English,
		"sq":             language.Albanian,
		"sq-AL,sq;q=0.9": language.Albanian,
		"mk-MK":          language.Macedonian,
		"de-DE,mk;q=0.5": language.Macedonian,
		"fr":             language.English,
		"en-US,en;q=0.9": language.English,
	}
	for in, want := range cases {
		assert.Equal(t, want, Match(in), "Accept-Language %q", in)
	}
}

func TestFromRequest_QueryWins(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/venues?lang=mk", nil)
	r.Header.Set("Accept-Language", "sq")
	assert.Equal(t, language.Macedonian, FromRequest(r))

	r = httptest.NewRequest("GET", "/v1/venues", nil)
	r.Header.Set("Accept-Language", "sq")
	assert.Equal(t, language.Albanian, FromRequest(r))
}

func TestDescription(t *testing.T) {
	en, sq, blank := "Garden hall", "Sallë me kopsht", "  "

	assert.Equal(t, &sq, Description(language.Albanian, &en, &sq, nil))
	assert.Equal(t, &en, Description(language.Macedonian, &en, &sq, nil))
	assert.Equal(t, &en, Description(language.Albanian, &en, &blank, nil))
	assert.Nil(t, Description(language.English, nil, &sq, nil))
}

func TestT(t *testing.T) {
	assert.Equal(t, "this date is already booked, please choose another", T(language.English, MsgDateConflict))
	assert.Equal(t, "nuk u gjet", T(language.Albanian, MsgNotFound))
	assert.Equal(t, "internal server error", T(language.German, MsgInternal))
	assert.Equal(t, "no_such_key", T(language.English, "no_such_key"))
}
