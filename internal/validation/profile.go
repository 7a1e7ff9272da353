// Package validation holds input validation rules for user-supplied fields.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	MaxBioLength      = 160
	MaxNameLength     = 50
	MaxUsernameLength = 30
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateName checks the display name supplied at registration or profile edit.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	return nil
}

// ValidateUsername checks the unique handle. Only letters, digits and
// underscores are accepted so handles are safe in URLs and mentions.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return fmt.Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username may only contain letters, numbers and underscores")
	}
	return nil
}

// ValidateEmail checks the address shape. Deliverability is not verified.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("email address is not valid")
	}
	return nil
}

// ValidatePassword enforces the minimum length. Strength scoring is left to
// the client.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// ValidateBio bounds the profile bio. An empty bio is allowed.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return fmt.Errorf("bio must be at most %d characters", MaxBioLength)
	}
	return nil
}
