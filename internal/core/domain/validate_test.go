package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidISBN(t *testing.T) {
	testCases := []struct {
		isbn     string
		expected bool
	}{
		{"0306406152", true},
		{"9780306406157", true},
		{"978-0-306-40615-7", true},
		{"0-306-40615-2", true},
		{"978 0 306 40615 7", true},
		{"", false},
		{"12345", false},
		{"123456789012", false},
		{"12345678901234", false},
		{"030640615X", false},
		{"abcdefghij", false},
	}

	for _, tt := range testCases {
		assert.Equal(t, tt.expected, ValidISBN(tt.isbn), tt.isbn)
	}
}

func TestNormalizeISBN(t *testing.T) {
	assert.Equal(t, "9780306406157", NormalizeISBN("978-0-306-40615-7"))
	assert.Equal(t, "0306406152", NormalizeISBN("0 306 40615 2"))
	assert.Equal(t, "9780306406157", NormalizeISBN("9780306406157"))
}

func TestValidEmail(t *testing.T) {
	testCases := []struct {
		email    string
		expected bool
	}{
		{"ada@example.org", true},
		{"grace.hopper@navy.mil", true},
		{"a+b@sub.domain.co", true},
		{"", false},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"@example.org", false},
		{"spaces in@example.org", false},
	}

	for _, tt := range testCases {
		assert.Equal(t, tt.expected, ValidEmail(tt.email), tt.email)
	}
}

func TestValidPublicationYear(t *testing.T) {
	testCases := []struct {
		year     int
		expected bool
	}{
		{1000, true},
		{1980, true},
		{2030, true},
		{999, false},
		{2031, false},
		{0, false},
		{-500, false},
	}

	for _, tt := range testCases {
		assert.Equal(t, tt.expected, ValidPublicationYear(tt.year), tt.year)
	}
}
