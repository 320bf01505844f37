package store

import "time"

// Today returns today's date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// FormatDateDisplay formats a date_id for human-readable display,
// e.g. "Jan 02, 2025". Unparseable ids are returned as-is.
func FormatDateDisplay(dateID string) string {
	d, err := time.Parse("2006-01-02", dateID)
	if err != nil {
		return dateID
	}
	return d.Format("Jan 02, 2006")
}
