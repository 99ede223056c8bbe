package domain

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonDigit     = regexp.MustCompile(`[^0-9]`)
)

const (
	minBookYear = 1000
	maxBookYear = 2030
)

// ValidISBN reports whether isbn contains exactly 10 or 13 digits,
// ignoring separators such as dashes and spaces.
func ValidISBN(isbn string) bool {
	digits := nonDigit.ReplaceAllString(isbn, "")
	return len(digits) == 10 || len(digits) == 13
}

// NormalizeISBN strips separators so lookups and the unique index see
// one canonical form.
func NormalizeISBN(isbn string) string {
	return nonDigit.ReplaceAllString(isbn, "")
}

// ValidEmail reports whether email looks like a well-formed address.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	return emailPattern.MatchString(email)
}

// ValidPublicationYear reports whether year falls in the accepted range.
func ValidPublicationYear(year int) bool {
	return year >= minBookYear && year <= maxBookYear
}
