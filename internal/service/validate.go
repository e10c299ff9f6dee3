package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"shopbot/internal/domain"
)

var phoneRe = regexp.MustCompile(`^\+?\d{9,15}$`)

// ValidationError reports a rejected field input. The step does not
// advance; the caller re-prompts with the hint.
type ValidationError struct {
	Field domain.Field
	Hint  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Hint)
}

func invalid(field domain.Field, hint string) *ValidationError {
	return &ValidationError{Field: field, Hint: hint}
}

// NormalizePhone strips spaces and dashes
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

// ValidPhone accepts an optional plus followed by 9 to 15 digits
func ValidPhone(s string) bool {
	return phoneRe.MatchString(NormalizePhone(s))
}

// ValidMinLen reports whether the trimmed input is at least n runes long
func ValidMinLen(s string, n int) bool {
	return len([]rune(strings.TrimSpace(s))) >= n
}

// ParsePriceCents converts a decimal price like "199.99" (comma
// accepted) into minor units
func ParsePriceCents(raw string) (int64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	return int64(math.Round(val * 100)), nil
}

// ParseStock converts a non-negative integer stock value
func ParseStock(raw string) (int, error) {
	stock, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || stock < 0 {
		return 0, fmt.Errorf("invalid stock %q", raw)
	}
	return stock, nil
}
