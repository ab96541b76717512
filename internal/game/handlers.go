package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhleesep9/mentor-engine/pkg/exam"
	"github.com/dhleesep9/mentor-engine/pkg/schedule"
	"github.com/dhleesep9/mentor-engine/pkg/statemachine"
	"github.com/dhleesep9/mentor-engine/pkg/subjects"
)

// State ids with attached behavior. These match the filenames under
// data/states/.
const (
	StateDailyRoutine  = "daily_routine"
	StateSelection     = "selection"
	StateStudySchedule = "study_schedule"
	StateMockExam      = "mock_exam"
)

// RegisterTriggers adds the trigger types that need game-side parsing
// beyond the built-in set.
func RegisterTriggers(registry *statemachine.Registry) {
	// schedule_set fires when the message parses into a weekly
	// timetable, and records it on the session.
	registry.Register("schedule_set", func(t statemachine.Transition, tc statemachine.TurnContext) bool {
		timetable := schedule.Parse(tc.Message, tc.Progress.SelectedSubjects)
		if timetable == nil {
			return false
		}
		tc.Progress.SetSchedule(timetable)
		return true
	})

	// any_input fires on any non-empty message. Used by transient
	// states that return to the routine on the next turn.
	registry.Register("any_input", func(t statemachine.Transition, tc statemachine.TurnContext) bool {
		return strings.TrimSpace(tc.Message) != ""
	})
}

// SelectionHandler guides the player through elective subject choice.
// The subject_selection trigger does the actual recording; this handler
// only supplies feedback while the choice is incomplete.
type SelectionHandler struct {
	statemachine.BaseHandler
}

func (SelectionHandler) OnEnter(tc statemachine.TurnContext) (*statemachine.HandlerResult, error) {
	return &statemachine.HandlerResult{
		Narration: "탐구 영역 선택 과목 두 개를 골라야 한다.\n\n" + subjects.ListText(),
	}, nil
}

func (SelectionHandler) Handle(tc statemachine.TurnContext) (*statemachine.HandlerResult, error) {
	found := subjects.ParseMessage(tc.Message)
	switch len(found) {
	case 0:
		return nil, nil // not a selection attempt, let the LLM answer
	case 1:
		return &statemachine.HandlerResult{
			Reply: fmt.Sprintf("%s 좋지. 탐구는 두 과목이니까 하나 더 골라줄래?", found[0]),
		}, nil
	default:
		return &statemachine.HandlerResult{
			Reply: fmt.Sprintf("%s, 이 조합으로 가자. 잘 어울리는 선택이야.",
				strings.Join(found, "랑 ")),
		}, nil
	}
}

// ScheduleHandler runs the weekly timetable editor. The schedule_set
// trigger records the parsed timetable; OnExit summarizes it.
type ScheduleHandler struct {
	statemachine.BaseHandler
}

func (ScheduleHandler) OnEnter(tc statemachine.TurnContext) (*statemachine.HandlerResult, error) {
	narration := fmt.Sprintf(
		"일주일 학습 시간표를 정할 차례다. 주당 최대 %d시간까지 배정할 수 있다.\n"+
			"예시: 국어 3시간 수학 5시간 영어 3시간 운동 2시간",
		schedule.MaxWeeklyHours)
	return &statemachine.HandlerResult{Narration: narration}, nil
}

func (ScheduleHandler) Handle(tc statemachine.TurnContext) (*statemachine.HandlerResult, error) {
	if schedule.Parse(tc.Message, tc.Progress.SelectedSubjects) != nil {
		return nil, nil // the schedule_set trigger takes it from here
	}
	return &statemachine.HandlerResult{
		Reply: "과목이랑 시간을 같이 말해줘. 예를 들면 '수학 5시간 영어 3시간' 이렇게.",
	}, nil
}

func (ScheduleHandler) OnExit(tc statemachine.TurnContext) (*statemachine.HandlerResult, error) {
	timetable := tc.Progress.Schedule
	if len(timetable) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(timetable))
	for name := range timetable {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("이번 주 시간표가 정해졌다.\n")
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %d시간\n", name, timetable[name])
	}
	fmt.Fprintf(&b, "총 %d시간.", schedule.TotalHours(timetable))
	return &statemachine.HandlerResult{Narration: b.String()}, nil
}

// MockExamHandler scores a private mock exam the moment the state is
// entered and reports the results.
type MockExamHandler struct {
	statemachine.BaseHandler
}

func (MockExamHandler) OnEnter(tc statemachine.TurnContext) (*statemachine.HandlerResult, error) {
	p := tc.Progress
	scores := exam.ScoreAbilities(p.Abilities)
	p.MockExamLastWeek = p.Week

	report := exam.ReportText("사설 모의고사", scores)
	weakest := exam.WeakestSubject(scores)
	return &statemachine.HandlerResult{
		Narration: report,
		Reply:     fmt.Sprintf("수고했어. 지금은 %s 보완이 제일 급해 보여.", weakest),
	}, nil
}

// registerHandlers wires every stateful scene to its handler.
func registerHandlers(hr *statemachine.HandlerRegistry) {
	hr.Register(StateSelection, SelectionHandler{})
	hr.Register(StateStudySchedule, ScheduleHandler{})
	hr.Register(StateMockExam, MockExamHandler{})
}
