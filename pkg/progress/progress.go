// Package progress holds the per-player session state of the mentoring
// game. All turn handlers receive a Progress explicitly; there is no
// ambient global state.
package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/dhleesep9/mentor-engine/pkg/exam"
	"github.com/dhleesep9/mentor-engine/pkg/schedule"
)

// Starting values for a fresh session.
const (
	StartState      = "start"
	StartDate       = "2023-11-17"
	StartAffection  = 5
	StartStamina    = 30
	StartMental     = 40
	StartConfidence = 50

	MaxAbility = 2500
	MaxStamina = 100
)

// DefaultAbilities returns the initial ability map. 탐구1/탐구2 are the
// elective slots, filled once the player selects subjects.
func DefaultAbilities() map[string]float64 {
	return map[string]float64{
		"국어": 0, "수학": 0, "영어": 0, "탐구1": 0, "탐구2": 0,
	}
}

// Progress is the full state of one player's session.
type Progress struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	State    string    `json:"state"` // current state machine node

	Affection  int `json:"affection"`
	Stamina    int `json:"stamina"`
	Mental     int `json:"mental"`
	Confidence int `json:"confidence"`

	Abilities        map[string]float64 `json:"abilities"`
	SelectedSubjects []string           `json:"selected_subjects,omitempty"`
	Schedule         map[string]int     `json:"schedule,omitempty"`

	ConversationCount int    `json:"conversation_count"`
	Week              int    `json:"week"`
	GameDate          string `json:"game_date"` // YYYY-MM-DD
	MockExamLastWeek  int    `json:"mock_exam_last_week"`
	Career            string `json:"career,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a fresh session for the given player name.
func New(username string) *Progress {
	return &Progress{
		ID:               uuid.New(),
		Username:         username,
		State:            StartState,
		Affection:        StartAffection,
		Stamina:          StartStamina,
		Mental:           StartMental,
		Confidence:       StartConfidence,
		Abilities:        DefaultAbilities(),
		MockExamLastWeek: -1,
		GameDate:         StartDate,
		CreatedAt:        time.Now(),
	}
}

// Date parses the current game date. The start date is used as a
// fallback when the stored value is unparseable.
func (p *Progress) Date() time.Time {
	t, err := time.Parse(exam.DateLayout, p.GameDate)
	if err != nil {
		t, _ = time.Parse(exam.DateLayout, StartDate)
	}
	return t
}

// AddAffection applies a per-turn affection delta.
func (p *Progress) AddAffection(delta int) {
	p.Affection += delta
	if p.Affection < 0 {
		p.Affection = 0
	}
}

// SetSchedule stores a weekly timetable, scaling it down proportionally
// if it exceeds the weekly hour budget.
func (p *Progress) SetSchedule(timetable map[string]int) {
	p.Schedule = schedule.ScaleToCap(timetable)
}

// SetSelectedSubjects records the player's elective choices.
func (p *Progress) SetSelectedSubjects(selected []string) {
	p.SelectedSubjects = selected
}

// Stats returns the secondary stats for API responses.
func (p *Progress) Stats() map[string]int {
	return map[string]int{
		"stamina":    p.Stamina,
		"mental":     p.Mental,
		"confidence": p.Confidence,
	}
}
