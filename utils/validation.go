package utils

import (
	"regexp"
	"strings"
)

// videoURLPattern accepts links to the common video-sharing hosts.
var videoURLPattern = regexp.MustCompile(`^https?://(www\.)?(youtube\.com|youtu\.be|vimeo\.com|dailymotion\.com)/\S+$`)

// IsValidVideoURL reports whether s looks like a recognized video-sharing
// link. An empty value is valid; the field is optional.
func IsValidVideoURL(s string) bool {
	if s == "" {
		return true
	}
	return videoURLPattern.MatchString(s)
}

// NormalizeFacing lower-cases the compass direction before it is
// persisted, so "East" and "east" are the same value in the store.
func NormalizeFacing(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DedupeAmenities drops duplicate tags while preserving first-seen order.
func DedupeAmenities(amenities []string) []string {
	seen := make(map[string]bool, len(amenities))
	out := make([]string, 0, len(amenities))
	for _, a := range amenities {
		a = strings.TrimSpace(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
