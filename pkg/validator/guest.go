package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyField indicates a required guest field was blank
	ErrEmptyField = errors.New("field cannot be empty")

	// ErrInvalidEmail indicates the email address is malformed
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidPhone indicates the phone number is not a valid South African number
	ErrInvalidPhone = errors.New("phone number must be 10 digits starting with 0")

	// ErrInvalidNationalID indicates the ID number failed the 13-digit checksum
	ErrInvalidNationalID = errors.New("national ID must be a valid 13-digit South African ID number")
)

var (
	emailRegex  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	digitsRegex = regexp.MustCompile(`^\d+$`)
)

// GuestValidator validates guest contact details on booking submissions
type GuestValidator struct{}

// NewGuestValidator creates a new guest validator instance
func NewGuestValidator() *GuestValidator {
	return &GuestValidator{}
}

// ValidateEmail checks basic email shape and returns the lowercased address
func (v *GuestValidator) ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", ErrEmptyField
	}
	if !emailRegex.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// ValidatePhone validates a South African phone number.
// Accepts 053 123 4567, 053-123-4567 or 0531234567; returns digits only.
func (v *GuestValidator) ValidatePhone(phone string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", ErrEmptyField
	}

	sanitized := v.Sanitize(phone)
	if !digitsRegex.MatchString(sanitized) {
		return "", ErrInvalidPhone
	}
	if len(sanitized) != 10 || sanitized[0] != '0' {
		return "", ErrInvalidPhone
	}
	return sanitized, nil
}

// ValidateNationalID validates a South African ID number: 13 digits with a
// Luhn check digit.
func (v *GuestValidator) ValidateNationalID(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrEmptyField
	}

	sanitized := v.Sanitize(id)
	if !digitsRegex.MatchString(sanitized) || len(sanitized) != 13 {
		return "", ErrInvalidNationalID
	}
	if !luhnValid(sanitized) {
		return "", ErrInvalidNationalID
	}
	return sanitized, nil
}

// Sanitize removes spaces, dashes, dots and parentheses
func (v *GuestValidator) Sanitize(s string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "", "+", "")
	return replacer.Replace(s)
}

// luhnValid runs the Luhn checksum over a digit string, rightmost digit
// being the check digit
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
