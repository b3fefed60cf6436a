package domain

import "time"

// Day represents a day with learned word count
type Day struct {
	Date      time.Time
	WordCount int
}

// DateString returns date in YYYYMMDD format
func (d Day) DateString() string {
	return d.Date.Format("20060102")
}

// DisplayString returns user-friendly date string. now must be in the
// timezone the day was grouped in; Date is a calendar date and is compared
// by its fields only.
func (d Day) DisplayString(now time.Time) string {
	if sameDay(d.Date, now) {
		return "Today"
	}
	if sameDay(d.Date, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return d.Date.Format("2 Jan 2006")
}

// NextStreak returns the daily streak after activity at now.
// Activity on the same calendar day keeps the streak, activity on the
// following day extends it, anything else starts over at 1.
func NextStreak(lastActive *time.Time, now time.Time, streak int, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	if lastActive == nil || streak < 1 {
		return 1
	}

	last := lastActive.In(loc)
	today := now.In(loc)

	switch {
	case sameDay(last, today):
		return streak
	case sameDay(last, today.AddDate(0, 0, -1)):
		return streak + 1
	default:
		return 1
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
