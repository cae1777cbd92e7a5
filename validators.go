package konsole

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// StringValidator validates a string value.
type StringValidator func(string) error

// IntValidator validates an integer value.
type IntValidator func(int) error

// VRequired rejects empty strings.
func VRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// VEmail rejects strings that don't look like email addresses.
func VEmail(s string) error {
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return fmt.Errorf("invalid email")
	}
	domain := s[at+1:]
	if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") || strings.HasPrefix(domain, ".") {
		return fmt.Errorf("invalid email")
	}
	return nil
}

// VMinLen rejects strings shorter than n characters.
func VMinLen(n int) StringValidator {
	return func(s string) error {
		if utf8.RuneCountInString(s) < n {
			return fmt.Errorf("min %d characters", n)
		}
		return nil
	}
}

// VMaxLen rejects strings longer than n characters.
func VMaxLen(n int) StringValidator {
	return func(s string) error {
		if utf8.RuneCountInString(s) > n {
			return fmt.Errorf("max %d characters", n)
		}
		return nil
	}
}

// VMatch rejects non-empty strings that don't match the pattern.
// It panics if the pattern does not compile.
func VMatch(pattern string) StringValidator {
	re := regexp.MustCompile(pattern)
	return func(s string) error {
		if s == "" {
			return nil
		}
		if !re.MatchString(s) {
			return fmt.Errorf("invalid format")
		}
		return nil
	}
}

// VOneOf accepts only the given options, ignoring case.
func VOneOf(options ...string) StringValidator {
	return func(s string) error {
		for _, o := range options {
			if strings.EqualFold(strings.TrimSpace(s), o) {
				return nil
			}
		}
		return fmt.Errorf("must be one of %s", strings.Join(options, ", "))
	}
}

// VRange rejects integers outside [lo, hi].
func VRange(lo, hi int) IntValidator {
	return func(v int) error {
		if v < lo || v > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}
