// Package schedule parses weekly study timetables out of player messages
// ("수학 4시간 국어 3시간 ...") and enforces the weekly hour budget.
package schedule

import (
	"fmt"
	"regexp"

	"golang.org/x/text/width"
)

// MaxWeeklyHours is the total number of study hours a player can commit
// per week.
const MaxWeeklyHours = 14

// ExerciseSubject is the schedule entry that restores stamina instead of
// raising an ability.
const ExerciseSubject = "운동"

// MaxStamina caps stamina gained from exercise.
const MaxStamina = 100

// inquirySlots are the generic elective slots. Explicit "탐구1"/"탐구2"
// mentions take priority over elective subject names.
var inquirySlots = []string{"탐구1", "탐구2"}

// basicSubjects are always parseable by their own name.
var basicSubjects = []string{"국어", "수학", "영어", ExerciseSubject}

type span struct{ start, end int }

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

// subjectPattern matches "<name> N시간", "<name> N 시간" or a bare
// "<name> N".
func subjectPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `\s*(\d+)\s*(?:시간)?`)
}

// inquiryPattern allows a space between "탐구" and the slot number.
func inquiryPattern(slot int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?i)탐구\s*%d\s*(\d+)\s*(?:시간)?`, slot))
}

// Parse extracts a weekly timetable from the message. The player's
// selected elective names map onto the 탐구1/탐구2 slots. Returns nil when
// nothing parseable was found or the total exceeds MaxWeeklyHours.
func Parse(message string, selected []string) map[string]int {
	// Full-width digits from a Korean IME ("５시간") fold to ASCII
	// before the patterns run.
	message = width.Narrow.String(message)

	parsed := make(map[string]int)
	total := 0
	var matched []span

	collect := func(re *regexp.Regexp, key string, once bool) {
		for _, m := range re.FindAllStringSubmatchIndex(message, -1) {
			start, end := m[0], m[1]
			if overlaps(matched, start, end) {
				continue
			}
			var hours int
			fmt.Sscanf(message[m[2]:m[3]], "%d", &hours)
			parsed[key] += hours
			total += hours
			matched = append(matched, span{start, end})
			if once {
				return
			}
		}
	}

	// Explicit 탐구 slots win over elective subject names.
	for i, slot := range inquirySlots {
		collect(inquiryPattern(i+1), slot, false)
	}

	// Elective names fill whichever 탐구 slot they were chosen for,
	// unless that slot is already set.
	for i, slot := range inquirySlots {
		if i >= len(selected) {
			break
		}
		if _, ok := parsed[slot]; ok {
			continue
		}
		collect(subjectPattern(selected[i]), slot, true)
	}

	for _, subject := range basicSubjects {
		collect(subjectPattern(subject), subject, false)
	}

	if len(parsed) == 0 {
		return nil
	}
	if total > MaxWeeklyHours {
		return nil
	}
	return parsed
}

// TotalHours sums all hours in a timetable.
func TotalHours(timetable map[string]int) int {
	total := 0
	for _, h := range timetable {
		total += h
	}
	return total
}

// ScaleToCap shrinks a timetable proportionally when its total exceeds
// MaxWeeklyHours. Timetables within the budget are returned unchanged.
func ScaleToCap(timetable map[string]int) map[string]int {
	total := TotalHours(timetable)
	if total <= MaxWeeklyHours {
		return timetable
	}
	scaled := make(map[string]int, len(timetable))
	for subject, hours := range timetable {
		scaled[subject] = hours * MaxWeeklyHours / total
	}
	return scaled
}

// ExerciseHours returns the exercise hours in a timetable, if any.
func ExerciseHours(timetable map[string]int) int {
	return timetable[ExerciseSubject]
}

// ApplyExercise raises stamina by the exercised hours, capped at MaxStamina.
func ApplyExercise(stamina, hours int) int {
	stamina += hours
	if stamina > MaxStamina {
		return MaxStamina
	}
	return stamina
}
