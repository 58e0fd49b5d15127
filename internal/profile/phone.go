package profile

import (
	"errors"
	"fmt"
	"strings"
)

const (
	phoneMinDigits = 8
	phoneMaxDigits = 15
)

// ErrInvalidPhone marks user input rejected by phone validation. Callers
// re-prompt instead of storing anything.
var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone strips everything except digits from the input, keeping a
// leading plus sign when one was present, and validates that the remainder
// holds between 8 and 15 digits.
func NormalizePhone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	var digits strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	normalized := digits.String()
	count := len(normalized)
	if count < phoneMinDigits || count > phoneMaxDigits {
		return "", fmt.Errorf("%w: %d digits, want %d-%d", ErrInvalidPhone, count, phoneMinDigits, phoneMaxDigits)
	}

	if strings.HasPrefix(trimmed, "+") {
		normalized = "+" + normalized
	}

	return normalized, nil
}
