package i18n

import "golang.org/x/text/language"

// Message keys shared by the HTTP layer.
const (
	MsgBadRequest        = "bad_request"
	MsgUnauthorized      = "unauthorized"
	MsgForbidden         = "forbidden"
	MsgNotFound          = "not_found"
	MsgValidation        = "validation"
	MsgCapacityExceeded  = "capacity_exceeded"
	MsgDateConflict      = "date_conflict"
	MsgInvalidTransition = "invalid_transition"
	MsgTooManyRequests   = "too_many_requests"
	MsgInternal          = "internal"
)

var messages = map[string]map[language.Tag]string{
	MsgBadRequest: {
		language.English:    "invalid request",
		language.Albanian:   "kërkesë e pavlefshme",
		language.Macedonian: "невалидно барање",
	},
	MsgUnauthorized: {
		language.English:    "authentication required",
		language.Albanian:   "kërkohet identifikimi",
		language.Macedonian: "потребна е најава",
	},
	MsgForbidden: {
		language.English:    "you are not allowed to do this",
		language.Albanian:   "nuk keni leje për këtë veprim",
		language.Macedonian: "немате дозвола за ова дејство",
	},
	MsgNotFound: {
		language.English:    "not found",
		language.Albanian:   "nuk u gjet",
		language.Macedonian: "не е пронајдено",
	},
	MsgValidation: {
		language.English:    "invalid data",
		language.Albanian:   "të dhëna të pavlefshme",
		language.Macedonian: "невалидни податоци",
	},
	MsgCapacityExceeded: {
		language.English:    "guest count exceeds the venue capacity",
		language.Albanian:   "numri i të ftuarve tejkalon kapacitetin e sallës",
		language.Macedonian: "бројот на гости го надминува капацитетот на салата",
	},
	MsgDateConflict: {
		language.English:    "this date is already booked, please choose another",
		language.Albanian:   "kjo datë është e rezervuar, ju lutem zgjidhni një tjetër",
		language.Macedonian: "овој датум е веќе резервиран, изберете друг",
	},
	MsgInvalidTransition: {
		language.English:    "the reservation cannot change to that status",
		language.Albanian:   "rezervimi nuk mund të kalojë në atë status",
		language.Macedonian: "резервацијата не може да премине во тој статус",
	},
	MsgTooManyRequests: {
		language.English:    "too many requests, please try again shortly",
		language.Albanian:   "shumë kërkesa, ju lutem provoni përsëri pas pak",
		language.Macedonian: "премногу барања, обидете се повторно наскоро",
	},
	MsgInternal: {
		language.English:    "internal server error",
		language.Albanian:   "gabim i brendshëm i serverit",
		language.Macedonian: "внатрешна грешка на серверот",
	},
}

// T returns the message for key in tag, falling back to English and then
// to the key itself.
func T(tag language.Tag, key string) string {
	byLang, ok := messages[key]
	if !ok {
		return key
	}
	if m, ok := byLang[tag]; ok {
		return m
	}
	return byLang[language.English]
}
