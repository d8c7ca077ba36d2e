package unitnumber

import (
	"strings"
	"testing"
	"unicode"
)

// FuzzNormalize checks the invariants lookups rely on: idempotence, no
// whitespace in the key, and insensitivity to case and padding.
func FuzzNormalize(f *testing.F) {
	f.Add("12A")
	f.Add(" 12 a ")
	f.Add("")
	f.Add("  ")
	f.Add("Ünit 7")
	f.Add(string([]byte{0xff, 0xfe}))

	f.Fuzz(func(t *testing.T, raw string) {
		key := Normalize(raw)

		if again := Normalize(key); again != key {
			t.Errorf("not idempotent: %q -> %q -> %q", raw, key, again)
		}
		if strings.IndexFunc(key, unicode.IsSpace) >= 0 {
			t.Errorf("key %q still contains whitespace", key)
		}
		if padded := Normalize("  " + raw + "\t"); padded != key {
			t.Errorf("padding changed key: %q vs %q", padded, key)
		}
	})
}
