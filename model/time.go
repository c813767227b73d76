package model

import "time"

// ApproachTimeLayout is the calendar-date layout used by the close-approach
// dataset, e.g. "1900-Dec-27 01:30". The same layout is used for input
// timestamps and human-readable output; it carries no seconds because the
// source data has none.
const ApproachTimeLayout = "2006-Jan-02 15:04"

// ParseApproachTime parses a dataset timestamp.
func ParseApproachTime(s string) (time.Time, error) {
	return time.Parse(ApproachTimeLayout, s)
}

// FormatApproachTime renders t in the dataset layout. Formatting then
// re-parsing yields the same formatted string.
func FormatApproachTime(t time.Time) string {
	return t.Format(ApproachTimeLayout)
}
