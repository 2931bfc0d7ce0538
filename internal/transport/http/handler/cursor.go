package handler

import (
	"strings"
	"time"
)

// The cursor mirrors the search sort key (featured DESC, created_at
// DESC, id DESC): "<RFC3339Nano>,<id>,<0|1 featured>".
func formatCursor(t time.Time, id string, featured bool) string {
	f := "0"
	if featured {
		f = "1"
	}
	return t.UTC().Format(time.RFC3339Nano) + "," + id + "," + f
}

func parseCursor(cursor string) (t time.Time, id string, featured, ok bool) {
	parts := strings.Split(cursor, ",")
	if len(parts) != 3 || parts[1] == "" {
		return time.Time{}, "", false, false
	}
	t, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", false, false
	}
	switch parts[2] {
	case "0":
		featured = false
	case "1":
		featured = true
	default:
		return time.Time{}, "", false, false
	}
	return t, parts[1], featured, true
}
