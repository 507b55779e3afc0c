package common

import (
	"time"
)

// PostDateLayout renders dates the way posts display them, e.g. "August 24, 2026".
const PostDateLayout = "January 2, 2006"

func FormatPostDate(t time.Time) string {
	return t.Format(PostDateLayout)
}
