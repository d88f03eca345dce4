package validation

import (
	"strings"
	"testing"

	"github.com/theandrewmo/warbler/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateMessageText(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidateMessageText(""))
	assert.NoError(t, ValidateMessageText("hello"))
	assert.NoError(t, ValidateMessageText(strings.Repeat("a", models.MaxMessageLength)))
	assert.Error(t, ValidateMessageText(strings.Repeat("a", models.MaxMessageLength+1)))

	// Length is measured in runes, not bytes.
	assert.NoError(t, ValidateMessageText(strings.Repeat("é", models.MaxMessageLength)))
}
