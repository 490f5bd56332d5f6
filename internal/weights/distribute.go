package weights

import "strings"

// DistributeEvenly splits total into n integer shares that sum exactly to
// total. The division remainder is handed out one unit at a time to the
// first entries, so the result is deterministic and no two shares differ by
// more than 1.
func DistributeEvenly(n, total int) []int {
	if n <= 0 {
		return nil
	}
	base := total / n
	remainder := total - base*n
	shares := make([]int, n)
	for i := range shares {
		shares[i] = base
		if i < remainder {
			shares[i]++
		}
	}
	return shares
}

const maxSlugLen = 50

// Slugify derives a machine name from a display name: lowercase, runs of
// non-alphanumeric characters collapsed to single underscores, trimmed, and
// capped at 50 characters. Idempotent; duplicate slugs are tolerated by
// callers, only display identity matters downstream.
func Slugify(displayName string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(displayName) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	slug := b.String()
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "_")
	}
	return slug
}
