package organization

import "strings"

// DeriveSlug turns an organization name into its URL-safe slug: lowercase,
// whitespace runs become single hyphens, anything outside [a-z0-9-] is
// dropped, repeated hyphens collapse and leading/trailing hyphens are
// trimmed. The function is idempotent.
func DeriveSlug(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte('-')
		case r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}

	// Collapse repeated hyphens.
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return strings.Trim(slug, "-")
}

// ValidateSlug checks the slug against the format a create call would accept.
func ValidateSlug(slug string) error {
	if len(slug) < 2 {
		return ErrSlugTooShort
	}
	for _, r := range slug {
		if r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			continue
		}
		return ErrSlugInvalid
	}
	return nil
}
