package entity

import (
	"strings"
	"time"
)

// Tag is a shared, reference-counted label. A tag row is created on first use
// and deleted once both ArticleCount and FollowerCount reach zero, whether the
// last reference is dropped by an article deletion or by an unfollow.
type Tag struct {
	Name          string
	FollowerCount int64
	ArticleCount  int64
	CreatedAt     time.Time
}

// NormalizeTag lowercases a tag and ensures the leading "#" prefix.
// An empty or "#"-only input normalizes to the empty string.
func NormalizeTag(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.TrimPrefix(t, "#")
	if t == "" {
		return ""
	}
	return "#" + t
}

// NormalizeTags normalizes a list of tags, dropping empties and duplicates
// while preserving first-seen order.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		t := NormalizeTag(r)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
