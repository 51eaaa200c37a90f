package forms

import (
	"fmt"
	"regexp"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// Email validates an email address value.
func Email(value any) error {
	s, ok := value.(string)
	if !ok || !emailPattern.MatchString(s) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// Phone validates a phone number in international digits form.
func Phone(value any) error {
	s, ok := value.(string)
	if !ok || !phonePattern.MatchString(s) {
		return fmt.Errorf("invalid phone number")
	}
	return nil
}

// Date validates an RFC 3339 timestamp or a plain YYYY-MM-DD date.
func Date(value any) error {
	switch v := value.(type) {
	case time.Time:
		return nil
	case string:
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return nil
		}
		if _, err := time.Parse("2006-01-02", v); err == nil {
			return nil
		}
		return fmt.Errorf("invalid date")
	default:
		_ = v
		return fmt.Errorf("invalid date")
	}
}

// MustBeTrue validates a consent checkbox: the value must be boolean true.
func MustBeTrue(value any) error {
	b, ok := value.(bool)
	if !ok || !b {
		return fmt.Errorf("consent is required")
	}
	return nil
}

// OneOf returns a validator accepting only the listed string values.
func OneOf(allowed ...string) func(any) error {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	return func(value any) error {
		s, ok := value.(string)
		if !ok || !set[s] {
			return fmt.Errorf("value must be one of %v", allowed)
		}
		return nil
	}
}

// MinLen returns a validator requiring a string of at least n characters.
func MinLen(n int) func(any) error {
	return func(value any) error {
		s, ok := value.(string)
		if !ok || len(s) < n {
			return fmt.Errorf("must be at least %d characters", n)
		}
		return nil
	}
}
