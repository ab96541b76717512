package exam

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for game dates.
const DateLayout = "2006-01-02"

// examDay is a fixed month/day on the exam calendar.
type examDay struct {
	Month time.Month
	Day   int
}

// The yearly exam schedule. November is the CSAT; the rest are the
// nationwide mock exams.
var examDays = []examDay{
	{time.March, 7},
	{time.April, 4},
	{time.May, 9},
	{time.June, 6},
	{time.July, 11},
	{time.September, 5},
	{time.October, 17},
	{CSATMonth, CSATDay},
}

// CSATMonth and CSATDay fix the date of the final exam.
const (
	CSATMonth = time.November
	CSATDay   = 14
)

// NextCSAT returns the next CSAT date on or after the given date.
func NextCSAT(after time.Time) time.Time {
	csat := time.Date(after.Year(), CSATMonth, CSATDay, 0, 0, 0, 0, time.UTC)
	if csat.Before(after) {
		csat = csat.AddDate(1, 0, 0)
	}
	return csat
}

// MonthInWindow reports whether an exam falls inside [start, end] and
// returns its month key formatted as "YYYY-MM". The window is inclusive
// on both ends; exams only occur on their exact calendar day.
func MonthInWindow(start, end time.Time) (string, bool) {
	for year := start.Year(); year <= end.Year(); year++ {
		for _, d := range examDays {
			day := time.Date(year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
			if day.Before(start) || day.After(end) {
				continue
			}
			return fmt.Sprintf("%04d-%02d", year, int(d.Month)), true
		}
	}
	return "", false
}

// IsExamDay reports whether the given date is exactly an exam day and
// returns its month key.
func IsExamDay(date time.Time) (string, bool) {
	for _, d := range examDays {
		if date.Month() == d.Month && date.Day() == d.Day {
			return fmt.Sprintf("%04d-%02d", date.Year(), int(d.Month)), true
		}
	}
	return "", false
}

// IsOfficialMockMonth reports whether the month key ("YYYY-MM") is one of
// the official mock-exam months (March, April, May, July, October).
// June, September and the CSAT are handled by their own flows.
func IsOfficialMockMonth(monthKey string) bool {
	var year, month int
	if _, err := fmt.Sscanf(monthKey, "%d-%d", &year, &month); err != nil {
		return false
	}
	switch time.Month(month) {
	case time.March, time.April, time.May, time.July, time.October:
		return true
	default:
		return false
	}
}

// Name returns the player-facing exam name for a month key:
// "수능" for November, "N월 모의고사" otherwise.
func Name(monthKey string) string {
	var year, month int
	if _, err := fmt.Sscanf(monthKey, "%d-%d", &year, &month); err != nil {
		return monthKey
	}
	if time.Month(month) == CSATMonth {
		return "수능"
	}
	return fmt.Sprintf("%d월 모의고사", month)
}
