package organization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSlug(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Al Noor Mosque", "al-noor-mosque"},
		{"special characters and padding", "  Team #1!! ", "team-1"},
		{"already a slug", "al-noor-mosque", "al-noor-mosque"},
		{"repeated separators", "a  --  b", "a-b"},
		{"uppercase", "MOSKENT", "moskent"},
		{"only invalid characters", "!!!", ""},
		{"empty", "", ""},
		{"unicode stripped", "Çamlıca Camii", "amlca-camii"},
		{"tabs and newlines", "one\ttwo\nthree", "one-two-three"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeriveSlug(tc.input))
		})
	}
}

func TestDeriveSlugIdempotent(t *testing.T) {
	inputs := []string{
		"Al Noor Mosque",
		"  Team #1!! ",
		"--a--b--",
		"Mixed CASE With  Spaces",
		"",
		"123 456",
	}

	for _, in := range inputs {
		once := DeriveSlug(in)
		assert.Equal(t, once, DeriveSlug(once), "derivation must be idempotent for %q", in)
	}
}

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("al-noor"))
	assert.NoError(t, ValidateSlug("a1"))

	assert.ErrorIs(t, ValidateSlug("a"), ErrSlugTooShort)
	assert.ErrorIs(t, ValidateSlug(""), ErrSlugTooShort)
	assert.ErrorIs(t, ValidateSlug("Al-Noor"), ErrSlugInvalid)
	assert.ErrorIs(t, ValidateSlug("al noor"), ErrSlugInvalid)
	assert.ErrorIs(t, ValidateSlug("al_noor"), ErrSlugInvalid)
}
