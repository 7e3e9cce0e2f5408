package pagination

// FetchSize returns the number of rows a repository should request for one
// page: limit+1. The extra row is a probe; if it comes back, more pages
// remain after this one.
func FetchSize(limit int) int {
	return limit + 1
}

// Trim applies the limit+1 probe rule to a fetched slice: it drops the probe
// row if present and reports whether the last page has been reached.
func Trim[T any](items []T, limit int) ([]T, bool) {
	if len(items) > limit {
		return items[:limit], false
	}
	return items, true
}

// Keyset describes the compound cursor predicate for ranked feeds:
// items strictly after (LikeCount, ID) in (like_count DESC, id DESC) order.
// For chronological feeds only ID is set and the predicate is id < ID
// (or id > ID for ascending reply threads).
type Keyset struct {
	ID        int64
	LikeCount int64
}

// FromParams converts request Params to a Keyset, or nil when no cursor was
// supplied, meaning the page starts at the beginning of the order.
func FromParams(p Params) *Keyset {
	if p.AfterID == nil {
		return nil
	}
	k := Keyset{ID: *p.AfterID}
	if p.AfterLikeCount != nil {
		k.LikeCount = *p.AfterLikeCount
	}
	return &k
}
