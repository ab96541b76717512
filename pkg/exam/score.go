// Package exam converts accumulated subject ability into mock-exam and
// CSAT results: percentile, grade band, and a formatted score report.
package exam

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Score is the result for a single subject.
type Score struct {
	Grade      int     `json:"grade"`      // 1 (best) .. 9
	Percentile float64 `json:"percentile"` // 0..100, one decimal
}

// ReportSubjects is the fixed subject order used in score reports.
var ReportSubjects = []string{"국어", "수학", "영어", "탐구1", "탐구2"}

// Percentile converts raw ability points into an exam percentile.
// The curve is 2*sqrt(ability), capped at 100.
func Percentile(ability float64) float64 {
	if ability <= 0 {
		return 0
	}
	p := 2 * math.Sqrt(ability)
	return math.Min(100, p)
}

// GradeFromPercentile maps a percentile onto the 9-band CSAT grade scale.
// Band lower bounds are inclusive.
func GradeFromPercentile(percentile float64) int {
	switch {
	case percentile >= 96:
		return 1
	case percentile >= 89:
		return 2
	case percentile >= 77:
		return 3
	case percentile >= 60:
		return 4
	case percentile >= 40:
		return 5
	case percentile >= 23:
		return 6
	case percentile >= 11:
		return 7
	case percentile >= 4:
		return 8
	default:
		return 9
	}
}

// ScoreAbilities grades every subject in the abilities map.
// Percentiles are rounded to one decimal, matching the report format.
func ScoreAbilities(abilities map[string]float64) map[string]Score {
	scores := make(map[string]Score, len(abilities))
	for subject, ability := range abilities {
		p := Percentile(ability)
		scores[subject] = Score{
			Grade:      GradeFromPercentile(p),
			Percentile: math.Round(p*10) / 10,
		}
	}
	return scores
}

// WeakestSubject returns the subject with the worst grade (highest band
// number). Ties break alphabetically so the result is deterministic.
// Returns "수학" for an empty score set.
func WeakestSubject(scores map[string]Score) string {
	if len(scores) == 0 {
		return "수학"
	}
	subjects := make([]string, 0, len(scores))
	for s := range scores {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	weakest := subjects[0]
	for _, s := range subjects[1:] {
		if scores[s].Grade > scores[weakest].Grade {
			weakest = s
		}
	}
	return weakest
}

// ReportText formats a score announcement for the player, listing the
// standard subjects in their fixed order.
func ReportText(examName string, scores map[string]Score) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s 성적이 발표되었습니다:\n", examName)

	lines := make([]string, 0, len(ReportSubjects))
	for _, subject := range ReportSubjects {
		score, ok := scores[subject]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %d등급 (백분위 %.1f%%)", subject, score.Grade, score.Percentile))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}
