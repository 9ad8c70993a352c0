package domain

import (
	"fmt"
	"time"
)

const (
	// USDateLayout is the MM/DD/YYYY format used by every date parameter and
	// by the stored occurrence/report date prefixes.
	USDateLayout = "01/02/2006"
	// VoteDateLayout is the day-granularity format of upvote dates.
	VoteDateLayout = "2006-01-02"

	// usDateParseLayout accepts both padded and unpadded month/day digits.
	// Callers may send "3/1/2020"; the stored form is always padded.
	usDateParseLayout = "1/2/2006"
)

// ParseUSDate validates an MM/DD/YYYY parameter, accepting unpadded month and
// day digits. The parsed time is used only for validation and day arithmetic;
// all store-side comparisons stay textual.
func ParseUSDate(s string) (time.Time, error) {
	t, err := time.Parse(usDateParseLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatUSDate renders a time as MM/DD/YYYY, the stored-prefix form.
func FormatUSDate(t time.Time) string {
	return t.Format(USDateLayout)
}

// EnumerateDays returns every calendar day from start to end inclusive as
// MM/DD/YYYY strings, in chronological order. Empty when end precedes start.
func EnumerateDays(start, end time.Time) []string {
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, FormatUSDate(d))
	}
	return days
}
