package statemachine

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhleesep9/mentor-engine/pkg/progress"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func intPtr(v int) *int { return &v }

func turnContext(message string, delta int) TurnContext {
	return TurnContext{
		Message:        message,
		AffectionDelta: delta,
		Progress:       progress.New("tester"),
	}
}

func TestAffectionIncrease(t *testing.T) {
	tr := Transition{
		TriggerType: TriggerAffectionIncrease,
		Conditions:  Conditions{AffectionIncreaseMin: intPtr(2)},
		NextState:   "icebreak",
	}

	tests := []struct {
		name    string
		delta   int
		matched bool
	}{
		{"below minimum", 1, false},
		{"exactly minimum", 2, true},
		{"above minimum", 5, true},
		{"zero delta", 0, false},
		{"negative delta", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matched, affectionIncrease(tr, turnContext("hi", tt.delta)))
		})
	}
}

func TestAffectionIncrease_DefaultMinimum(t *testing.T) {
	tr := Transition{TriggerType: TriggerAffectionIncrease, NextState: "icebreak"}
	assert.True(t, affectionIncrease(tr, turnContext("hi", 1)))
	assert.False(t, affectionIncrease(tr, turnContext("hi", 0)))
}

func TestAffectionThreshold(t *testing.T) {
	tr := Transition{
		TriggerType: TriggerAffectionThreshold,
		Conditions:  Conditions{AffectionMin: intPtr(10)},
	}

	tc := turnContext("hi", 0)

	tc.Progress.Affection = 9
	assert.False(t, affectionThreshold(tr, tc))

	// Boundary is inclusive.
	tc.Progress.Affection = 10
	assert.True(t, affectionThreshold(tr, tc))

	tc.Progress.Affection = 11
	assert.True(t, affectionThreshold(tr, tc))
}

func TestAffectionAndSubjects(t *testing.T) {
	tr := Transition{
		TriggerType: TriggerAffectionAndSubjects,
		Conditions:  Conditions{AffectionMin: intPtr(10), SubjectsCount: intPtr(2)},
	}

	tests := []struct {
		name      string
		affection int
		selected  []string
		matched   bool
	}{
		{"both conditions met", 10, []string{"경제", "세계사"}, true},
		{"affection too low", 9, []string{"경제", "세계사"}, false},
		{"not enough subjects", 15, []string{"경제"}, false},
		{"neither met", 3, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := turnContext("hi", 0)
			tc.Progress.Affection = tt.affection
			tc.Progress.SelectedSubjects = tt.selected
			assert.Equal(t, tt.matched, affectionAndSubjects(tr, tc))
		})
	}
}

func TestUserInput(t *testing.T) {
	tests := []struct {
		name       string
		conditions Conditions
		message    string
		matched    bool
	}{
		{"equals match", Conditions{InputEquals: "A"}, "a", true},
		{"equals mismatch", Conditions{InputEquals: "A"}, "ab", false},
		{"contains match", Conditions{InputContains: "시험전략"}, "시험전략 세워줘", true},
		{"contains mismatch", Conditions{InputContains: "시험전략"}, "안녕", false},
		{"contains any match", Conditions{InputContainsAny: []string{"화이팅", "파이팅"}}, "파이팅!!", true},
		{"contains any mismatch", Conditions{InputContainsAny: []string{"화이팅", "파이팅"}}, "글쎄", false},
		{"no condition set", Conditions{}, "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transition{TriggerType: TriggerUserInput, Conditions: tt.conditions}
			assert.Equal(t, tt.matched, userInput(tr, turnContext(tt.message, 0)))
		})
	}
}

func TestSubjectSelection_RecordsSubjects(t *testing.T) {
	tr := Transition{
		TriggerType: TriggerSubjectSelection,
		Conditions:  Conditions{RequiredCount: intPtr(2)},
	}

	tc := turnContext("사회문화랑 경제로 할게요", 0)
	assert.True(t, subjectSelection(tr, tc))
	assert.Equal(t, []string{"사회문화", "경제"}, tc.Progress.SelectedSubjects)

	tc2 := turnContext("경제만 할래요", 0)
	assert.False(t, subjectSelection(tr, tc2))
	assert.Empty(t, tc2.Progress.SelectedSubjects)
}

func TestKeywordTriggers_IgnoreSpacing(t *testing.T) {
	reg := NewRegistry(testLogger())

	tr := Transition{TriggerType: TriggerStudySchedule}
	assert.True(t, reg.Evaluate(tr, turnContext("학습 시간표 관리 할래", 0)))
	assert.True(t, reg.Evaluate(tr, turnContext("학습시간표관리", 0)))
	assert.False(t, reg.Evaluate(tr, turnContext("시간표만 보여줘", 0)))

	tr = Transition{TriggerType: TriggerTimeAdvanceWeek}
	assert.True(t, reg.Evaluate(tr, turnContext("오늘은 여기까지, 멘토링 종료", 0)))

	tr = Transition{TriggerType: TriggerJuneExam, Conditions: Conditions{InputContains: "6월 모의고사"}}
	assert.True(t, reg.Evaluate(tr, turnContext("6월모의고사 응시할게요", 0)))
}

func TestConfessionEvent(t *testing.T) {
	tr := Transition{
		TriggerType: TriggerConfessionEvent,
		Conditions:  Conditions{DateCheck: "2024-08-16"},
	}

	tc := turnContext("안녕", 0)
	tc.Progress.State = "daily_routine"
	tc.Progress.GameDate = "2024-08-16"
	assert.True(t, confessionEvent(tr, tc))

	// Not yet the configured date.
	tc.Progress.GameDate = "2024-08-09"
	assert.False(t, confessionEvent(tr, tc))

	// Manual request works regardless of date.
	tc.Message = "고백 이벤트 시작해줘"
	assert.True(t, confessionEvent(tr, tc))

	// Only fires from daily_routine.
	tc.Progress.State = "start"
	assert.False(t, confessionEvent(tr, tc))
}

func TestRegistry_UnknownTriggerSkipped(t *testing.T) {
	reg := NewRegistry(testLogger())
	tr := Transition{TriggerType: "no_such_trigger", NextState: "icebreak"}
	assert.False(t, reg.Evaluate(tr, turnContext("hi", 5)))
}

func TestRegistry_CustomTrigger(t *testing.T) {
	reg := NewRegistry(testLogger())
	reg.Register("always", func(Transition, TurnContext) bool { return true })

	assert.True(t, reg.Has("always"))
	assert.True(t, reg.Evaluate(Transition{TriggerType: "always"}, turnContext("", 0)))
	assert.Contains(t, reg.List(), "always")
}
