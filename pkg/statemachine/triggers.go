package statemachine

import (
	"github.com/dhleesep9/mentor-engine/pkg/subjects"
)

// Trigger type names usable in state JSON files.
const (
	TriggerAffectionIncrease    = "affection_increase"
	TriggerAffectionThreshold   = "affection_threshold"
	TriggerAffectionAndSubjects = "affection_and_subjects"
	TriggerUserInput            = "user_input"
	TriggerSubjectSelection     = "subject_selection"
	TriggerStudySchedule        = "study_schedule"
	TriggerMockExam             = "mock_exam"
	TriggerJuneExam             = "june_exam"
	TriggerTimeAdvanceWeek      = "time_advance_week"
	TriggerConfessionEvent      = "confession_event"
)

// Default keyword per keyword-matching trigger.
const (
	defaultScheduleKeyword    = "학습 시간표 관리"
	defaultMockExamKeyword    = "사설모의고사 응시"
	defaultJuneExamKeyword    = "6월 모의고사"
	defaultWeekAdvanceKeyword = "멘토링 종료"
)

func builtinTriggers() map[string]TriggerFunc {
	return map[string]TriggerFunc{
		TriggerAffectionIncrease:    affectionIncrease,
		TriggerAffectionThreshold:   affectionThreshold,
		TriggerAffectionAndSubjects: affectionAndSubjects,
		TriggerUserInput:            userInput,
		TriggerSubjectSelection:     subjectSelection,
		TriggerStudySchedule:        keywordTrigger(defaultScheduleKeyword),
		TriggerMockExam:             keywordTrigger(defaultMockExamKeyword),
		TriggerJuneExam:             keywordTrigger(defaultJuneExamKeyword),
		TriggerTimeAdvanceWeek:      keywordTrigger(defaultWeekAdvanceKeyword),
		TriggerConfessionEvent:      confessionEvent,
	}
}

// affectionIncrease fires when this turn's affection delta reaches the
// minimum. The boundary is inclusive.
func affectionIncrease(t Transition, tc TurnContext) bool {
	min := intOrDefault(t.Conditions.AffectionIncreaseMin, 1)
	return tc.AffectionDelta >= min
}

// affectionThreshold fires when accumulated affection reaches the
// minimum. The boundary is inclusive.
func affectionThreshold(t Transition, tc TurnContext) bool {
	min := intOrDefault(t.Conditions.AffectionMin, 10)
	return tc.Progress.Affection >= min
}

// affectionAndSubjects fires when both the affection threshold and the
// selected-subject count are met.
func affectionAndSubjects(t Transition, tc TurnContext) bool {
	minAffection := intOrDefault(t.Conditions.AffectionMin, 10)
	minSubjects := intOrDefault(t.Conditions.SubjectsCount, subjects.RequiredCount)
	return tc.Progress.Affection >= minAffection &&
		len(tc.Progress.SelectedSubjects) >= minSubjects
}

// userInput matches the player's message against input_equals,
// input_contains, or input_contains_any, in that priority order.
// All comparisons are case-insensitive.
func userInput(t Transition, tc TurnContext) bool {
	c := t.Conditions
	switch {
	case c.InputEquals != "":
		return equalsFolded(tc.Message, c.InputEquals)
	case c.InputContains != "":
		return containsFolded(tc.Message, c.InputContains)
	case len(c.InputContainsAny) > 0:
		for _, keyword := range c.InputContainsAny {
			if containsFolded(tc.Message, keyword) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// subjectSelection parses elective subjects from the message and fires
// once enough were named. Found subjects are recorded on the session.
func subjectSelection(t Transition, tc TurnContext) bool {
	required := intOrDefault(t.Conditions.RequiredCount, subjects.RequiredCount)
	found := subjects.ParseMessage(tc.Message)
	if !subjects.ValidCount(found, required) {
		return false
	}
	tc.Progress.SetSelectedSubjects(found)
	return true
}

// keywordTrigger builds a containment trigger with a default keyword,
// matched ignoring spacing differences.
func keywordTrigger(defaultKeyword string) TriggerFunc {
	return func(t Transition, tc TurnContext) bool {
		keyword := t.Conditions.InputContains
		if keyword == "" {
			keyword = defaultKeyword
		}
		return containsIgnoringSpaces(tc.Message, keyword)
	}
}

// confessionEvent only fires from daily_routine once affection is high
// enough, either on the configured game date or when the player asks for
// the event by name.
func confessionEvent(t Transition, tc TurnContext) bool {
	if tc.Progress.State != "daily_routine" {
		return false
	}
	if tc.Progress.Affection < intOrDefault(t.Conditions.AffectionMin, 0) {
		return false
	}
	if t.Conditions.DateCheck != "" && tc.Progress.GameDate == t.Conditions.DateCheck {
		return true
	}
	return containsFolded(tc.Message, "고백") && containsFolded(tc.Message, "이벤트")
}
