package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.org",
	}
	invalid := []string{
		"",
		"plain",
		"missing@tld",
		"two words@example.com",
		"@example.com",
	}

	for _, email := range valid {
		assert.True(t, IsValidEmail(email), "expected %q to be valid", email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), "expected %q to be invalid", email)
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{
		"+251911234567",
		"0911234567",
		"911234567",
		"0711234567",
		"09 11 23 45 67",
	}
	invalid := []string{
		"",
		"12345",
		"0811234567",
		"+2519112345678",
		"phone",
	}

	for _, phone := range valid {
		assert.True(t, IsValidPhone(phone), "expected %q to be valid", phone)
	}
	for _, phone := range invalid {
		assert.False(t, IsValidPhone(phone), "expected %q to be invalid", phone)
	}
}
