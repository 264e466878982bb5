package marketdata

import "strings"

// Slugify normalizes a free-text region query into the filename-safe form
// used by per-region data files: lowercase, every run of characters outside
// [a-z0-9] collapsed into a single '-', no leading or trailing '-'.
//
// "Detroit, MI" -> "detroit-mi", "St. Louis, MO" -> "st-louis-mo".
func Slugify(query string) string {
	var b strings.Builder
	b.Grow(len(query))
	dash := false
	for _, r := range strings.ToLower(query) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}
