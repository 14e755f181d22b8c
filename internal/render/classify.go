package render

import (
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ValueClass is a best-effort guess at what a scalar value represents.
// The guess only drives presentation (icons, link styling, date
// reformatting); false positives and negatives are acceptable product
// behavior since no schema declares these sub-types.
type ValueClass string

const (
	ClassText    ValueClass = "text"
	ClassNumber  ValueClass = "number"
	ClassBoolean ValueClass = "boolean"
	ClassDate    ValueClass = "date"
	ClassEmail   ValueClass = "email"
	ClassPhone   ValueClass = "phone"
	ClassURL     ValueClass = "url"
)

// phonePattern matches international-looking phone numbers: optional +,
// then digits with common separators, at least 7 digits total.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-().]{5,}[0-9]$`)

var dateLikeLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006",
	"01/02/2006",
}

// Classify guesses the value class of a string. It never fails; anything
// unrecognized is plain text.
func Classify(s string) ValueClass {
	s = strings.TrimSpace(s)
	if s == "" {
		return ClassText
	}

	switch strings.ToLower(s) {
	case "true", "false":
		return ClassBoolean
	}

	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return ClassNumber
	}

	for _, layout := range dateLikeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return ClassDate
		}
	}

	// mail.ParseAddress accepts display-name forms too; require an @ and
	// no spaces so e.g. "Foo Bar <x@y>" stays text.
	if strings.Contains(s, "@") && !strings.ContainsAny(s, " \t") {
		if _, err := mail.ParseAddress(s); err == nil {
			return ClassEmail
		}
	}

	if u, err := url.Parse(s); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return ClassURL
	}

	if digits := strings.Count(s, "0") + strings.Count(s, "1") + strings.Count(s, "2") +
		strings.Count(s, "3") + strings.Count(s, "4") + strings.Count(s, "5") +
		strings.Count(s, "6") + strings.Count(s, "7") + strings.Count(s, "8") +
		strings.Count(s, "9"); digits >= 7 && phonePattern.MatchString(s) {
		return ClassPhone
	}

	return ClassText
}
