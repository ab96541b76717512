package progress

import (
	"time"

	"github.com/dhleesep9/mentor-engine/pkg/exam"
	"github.com/dhleesep9/mentor-engine/pkg/schedule"
)

// ExamResult describes an exam that fell inside an advanced week.
type ExamResult struct {
	Name   string                `json:"name"`
	Month  string                `json:"month"` // YYYY-MM
	Scores map[string]exam.Score `json:"scores"`
	Text   string                `json:"text"`
}

// WeekResult summarizes one week of game time.
type WeekResult struct {
	Week int         `json:"week"`
	Date string      `json:"date"` // game date after the advance
	Exam *ExamResult `json:"exam,omitempty"`
}

// AdvanceWeek moves the session one week of game time forward: the
// timetable is applied to abilities, exercise restores stamina, the week
// costs one stamina, the date moves seven days, and the conversation
// count resets. Any exam day inside the seven-day window is scored.
func (p *Progress) AdvanceWeek() WeekResult {
	start := p.Date()

	p.ApplySchedule()

	if hours := schedule.ExerciseHours(p.Schedule); hours > 0 {
		p.Stamina = schedule.ApplyExercise(p.Stamina, hours)
	}

	p.Week++
	if p.Stamina > 0 {
		p.Stamina--
	}

	end := start.AddDate(0, 0, 7)
	p.GameDate = end.Format(exam.DateLayout)
	p.ConversationCount = 0

	result := WeekResult{Week: p.Week, Date: p.GameDate}
	if month, ok := exam.MonthInWindow(start, end); ok {
		scores := exam.ScoreAbilities(p.Abilities)
		name := exam.Name(month)
		result.Exam = &ExamResult{
			Name:   name,
			Month:  month,
			Scores: scores,
			Text:   exam.ReportText(name, scores),
		}
	}
	return result
}

// SkipWeeks advances several weeks at once (debug command). The last
// exam encountered, if any, is reported.
func (p *Progress) SkipWeeks(n int) WeekResult {
	var result WeekResult
	var lastExam *ExamResult
	for i := 0; i < n; i++ {
		result = p.AdvanceWeek()
		if result.Exam != nil {
			lastExam = result.Exam
		}
	}
	result.Exam = lastExam
	return result
}

// DaysUntil returns whole days from the current game date to the target.
func (p *Progress) DaysUntil(target time.Time) int {
	return int(target.Sub(p.Date()).Hours() / 24)
}
