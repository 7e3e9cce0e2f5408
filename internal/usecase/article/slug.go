package article

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// makeSlug derives a URL slug from the title plus a short random suffix.
// The suffix keeps slugs unique without a lookup, so two articles may share
// a title.
func makeSlug(title string) string {
	base := slugify(title)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// slugify lowercases the title and collapses every non-alphanumeric run into
// a single hyphen. Non-ASCII letters and digits are kept as-is.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
