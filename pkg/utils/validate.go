package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Ethiopian mobile numbers: optional +251 or 0 prefix, then 9 or 7 and
	// eight more digits.
	phoneRegex = regexp.MustCompile(`^(\+251|0)?[79]\d{8}$`)
)

// IsValidEmail reports whether email looks like an address. Deliverability is
// proven by the verification mail, not here.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone validates an Ethiopian mobile number, ignoring spaces.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(strings.ReplaceAll(phone, " ", ""))
}
