package utils

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrUsernameTooShort = errors.New("username must be at least 3 characters long")
	ErrUsernameTooLong  = errors.New("username must be at most 30 characters long")
	ErrUsernameCharset  = errors.New("username may only contain lowercase letters, digits and hyphens")
	ErrUsernameHyphen   = errors.New("username cannot start or end with a hyphen")
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 30
)

var usernameCharsetRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// NormalizeUsername lower-cases and trims a requested username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateUsername checks that a normalized username can serve as a subdomain label
func ValidateUsername(username string) error {
	if len(username) < UsernameMinLength {
		return ErrUsernameTooShort
	}
	if len(username) > UsernameMaxLength {
		return ErrUsernameTooLong
	}
	if !usernameCharsetRegex.MatchString(username) {
		return ErrUsernameCharset
	}
	if strings.HasPrefix(username, "-") || strings.HasSuffix(username, "-") {
		return ErrUsernameHyphen
	}
	return nil
}
