package unitnumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"already canonical", "12a", "12a"},
		{"uppercase", "12A", "12a"},
		{"internal space", "12 a", "12a"},
		{"surrounding space", "  12A  ", "12a"},
		{"tabs and newlines", "\t12\n A\r", "12a"},
		{"multiple internal runs", "Block  B - 4", "blockb-4"},
		{"non-breaking space", "\u00a012\u00a0A", "12a"},
		{"empty", "", ""},
		{"only whitespace", " \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, raw := range []string{"12A", " shop 3 ", "Block  B - 4", "\u00a012\u00a0A"} {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once), raw)
	}
	assert.NotEqual(t, Normalize("1-2"), Normalize("12"))
}
