package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/theandrewmo/warbler/internal/models"
)

// ValidateMessageText checks warble text against the length bounds.
// Callers are expected to have trimmed surrounding whitespace already.
func ValidateMessageText(text string) error {
	if text == "" {
		return fmt.Errorf("message text must be non-empty")
	}
	if utf8.RuneCountInString(text) > models.MaxMessageLength {
		return fmt.Errorf("message text must not exceed %d characters", models.MaxMessageLength)
	}
	return nil
}
