package subscribe

import (
	"regexp"
	"strings"
	"unicode"
)

// Whitespace follows the browser's definition: Unicode space separators,
// line terminators and the byte order mark, without U+0085.
var emailPattern = regexp.MustCompile(
	`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`,
)

// Submission is a validated pair of trimmed values.
type Submission struct {
	Email string
	Name  string
}

// ValidateInput trims both values and checks, in order, email presence, name
// presence and email format. Only the first failure is reported.
func ValidateInput(email, name string) (Submission, error) {
	email = trimSpace(email)
	name = trimSpace(name)

	switch {
	case email == "":
		return Submission{}, &ValidationError{Reason: ReasonMissingEmail}
	case name == "":
		return Submission{}, &ValidationError{Reason: ReasonMissingName}
	case !IsEmail(email):
		return Submission{}, &ValidationError{Reason: ReasonInvalidEmailFormat}
	}
	return Submission{Email: email, Name: name}, nil
}

// IsEmail reports whether value has the shape local@domain.tld with no
// whitespace and a single @.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}
