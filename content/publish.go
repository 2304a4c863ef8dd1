package content

import "time"

// publishedAt decides the publish timestamp of an entity being saved with
// status next. prev is the stored timestamp (nil on create) and explicit is
// the caller-supplied one, if any.
//
// Leaving the published state clears the timestamp. Entering or staying in
// it keeps an explicit value, then the previous one, then falls back to now.
func publishedAt(next Status, prev, explicit *time.Time, now time.Time) *time.Time {
	if next != StatusPublished {
		return nil
	}
	switch {
	case explicit != nil:
		t := explicit.UTC()
		return &t
	case prev != nil:
		t := *prev
		return &t
	}
	t := now.UTC()
	return &t
}
