// Package passwd implements the signup password policy and the one-way
// credential hasher.
package passwd

import "unicode"

// MinLength is the minimum accepted password length, in characters.
const MinLength = 8

const (
	reasonWeak      = "password must be at least 8 characters long and contain letters and numbers"
	reasonNoSpecial = "password must contain at least one special character"
)

// PolicyError describes why a candidate password was rejected. The reason is
// safe to return to the caller.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string { return e.Reason }

// Validate checks a candidate password against the policy. Rules are applied
// in order and the first failure wins: minimum length, at least one letter,
// at least one digit, and, when strict is set, at least one character that is
// neither a letter nor a digit. The input is not normalized in any way.
func Validate(password string, strict bool) error {
	runes := []rune(password)

	if len(runes) < MinLength {
		return &PolicyError{Reason: reasonWeak}
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasLetter || !hasDigit {
		return &PolicyError{Reason: reasonWeak}
	}

	if strict && !hasSpecial {
		return &PolicyError{Reason: reasonNoSpecial}
	}

	return nil
}
