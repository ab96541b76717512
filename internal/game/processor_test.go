package game

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhleesep9/mentor-engine/internal/services"
	"github.com/dhleesep9/mentor-engine/internal/storage"
	"github.com/dhleesep9/mentor-engine/pkg/chat"
	"github.com/dhleesep9/mentor-engine/pkg/progress"
	"github.com/dhleesep9/mentor-engine/pkg/statemachine"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testStates() []statemachine.State {
	return []statemachine.State{
		{
			ID:   "start",
			Name: "첫 만남",
			Transitions: []statemachine.Transition{
				{
					TriggerType:         statemachine.TriggerAffectionIncrease,
					NextState:           "icebreak",
					TransitionNarration: "민수가 조금 마음을 연 것 같다.",
				},
			},
		},
		{
			ID:        "icebreak",
			Name:      "아이스브레이킹",
			Narration: "어색한 공기가 조금 풀렸다.",
			Transitions: []statemachine.Transition{
				{TriggerType: statemachine.TriggerAffectionThreshold, NextState: "selection"},
			},
		},
		{
			ID:   "selection",
			Name: "과목 선택",
			Transitions: []statemachine.Transition{
				{TriggerType: statemachine.TriggerSubjectSelection, NextState: "daily_routine"},
			},
		},
		{
			ID:   "daily_routine",
			Name: "일상 멘토링",
			Transitions: []statemachine.Transition{
				{TriggerType: statemachine.TriggerStudySchedule, NextState: "study_schedule"},
				{TriggerType: statemachine.TriggerMockExam, NextState: "mock_exam"},
				{TriggerType: statemachine.TriggerTimeAdvanceWeek, NextState: "daily_routine"},
			},
		},
		{
			ID:   "study_schedule",
			Name: "학습 시간표 관리",
			Transitions: []statemachine.Transition{
				{TriggerType: "schedule_set", NextState: "daily_routine"},
			},
		},
		{
			ID:        "mock_exam",
			Name:      "사설 모의고사",
			Narration: "시험지가 걷히고 채점이 시작된다.",
			Transitions: []statemachine.Transition{
				{TriggerType: "any_input", NextState: "daily_routine"},
			},
		},
	}
}

func newTestProcessor(t *testing.T) (*Processor, *storage.MockStorage, *services.MockLLM) {
	t.Helper()

	logger := testLogger()
	registry := statemachine.NewRegistry(logger)
	machine := statemachine.NewMachine(testStates(), registry, logger)

	store := storage.NewMockStorage()
	llm := services.NewMockLLM()
	debug := &DebugConfig{
		Enabled: true,
		Commands: []DebugCommand{
			{Keyword: "/stats", Action: DebugShowStats},
			{Keyword: "/skip4", Action: DebugSkipWeeks, Amount: 4},
		},
	}

	return NewProcessor(store, llm, machine, debug, logger), store, llm
}

func saveProgress(t *testing.T, store *storage.MockStorage, p *progress.Progress) {
	t.Helper()
	require.NoError(t, store.SaveProgress(context.Background(), p.ID, p))
}

func TestProcessTurn_ProgressNotFound(t *testing.T) {
	proc, _, _ := newTestProcessor(t)

	_, err := proc.ProcessTurn(context.Background(), chat.ChatRequest{
		ProgressID: uuid.New(),
		Message:    "안녕하세요",
	})
	assert.ErrorIs(t, err, ErrProgressNotFound)
}

func TestProcessTurn_StartToIcebreak(t *testing.T) {
	proc, store, _ := newTestProcessor(t)
	p := progress.New("민수")
	saveProgress(t, store, p)

	// The mock LLM scores every message as +1 affection, which meets
	// the default affection_increase minimum.
	resp, err := proc.ProcessTurn(context.Background(), chat.ChatRequest{
		ProgressID: p.ID,
		Message:    "요즘 공부가 잘돼서 기분이 좋아요",
	})
	require.NoError(t, err)

	assert.Equal(t, "icebreak", resp.State)
	assert.Equal(t, progress.StartAffection+1, resp.Affection)
	assert.Contains(t, resp.Narration, "민수가 조금 마음을 연 것 같다.")
	assert.Contains(t, resp.Narration, "어색한 공기가 조금 풀렸다.")
	assert.NotEmpty(t, resp.Message)

	saved, err := store.LoadProgress(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "icebreak", saved.State)
}

func TestProcessTurn_SubjectSelection(t *testing.T) {
	proc, store, _ := newTestProcessor(t)
	p := progress.New("민수")
	p.State = "selection"
	saveProgress(t, store, p)

	resp, err := proc.ProcessTurn(context.Background(), chat.ChatRequest{
		ProgressID: p.ID,
		Message:    "사회문화랑 경제로 할게요",
	})
	require.NoError(t, err)

	assert.Equal(t, "daily_routine", resp.State)
	saved, _ := store.LoadProgress(context.Background(), p.ID)
	assert.Equal(t, []string{"사회문화", "경제"}, saved.SelectedSubjects)
}

func TestProcessTurn_ScheduleFlow(t *testing.T) {
	proc, store, _ := newTestProcessor(t)
	p := progress.New("민수")
	p.State = "study_schedule"
	saveProgress(t, store, p)

	// A message without hours stays in the editor.
	resp, err := proc.ProcessTurn(context.Background(), chat.ChatRequest{
		ProgressID: p.ID,
		Message:    "어떻게 짜는 게 좋을까?",
	})
	require.NoError(t, err)
	assert.Equal(t, "study_schedule", resp.State)
	assert.NotEmpty(t, resp.Message)

	resp, err = proc.ProcessTurn(context.Background(), chat.ChatRequest{
		ProgressID: p.ID,
		Message:    "수학 5시간 운동 2시간",
	})
	require.NoError(t, err)

	assert.Equal(t, "daily_routine", resp.State)
	assert.Contains(t, resp.Narration, "총 7시간")

	saved, _ := store.LoadProgress(context.Background(), p.ID)
	assert.Equal(t, map[string]int{"수학": 5, "운동": 2}, saved.Schedule)
}

func TestProcessTurn_WeekAdvanceWithExam(t *testing.T) {
	proc, store, _ := newTestProcessor(t)
	p := progress.New("민수")
	p.State = "daily_routine"
	p.GameDate = "2024-05-30"
	p.Week = 28
	p.Schedule = map[string]int{"수학": 4}
	saveProgress(t, store, p)

	resp, err := proc.ProcessTurn(context.Background(), chat.ChatRequest{
		ProgressID: p.ID,
		Message:    "오늘은 여기까지, 멘토링 종료할게요",
	})
	require.NoError(t, err)

	assert.Equal(t, "daily_routine", resp.State)
	assert.Contains(t, resp.Narration, "29주차")
	assert.Contains(t, resp.Narration, "6월 모의고사")

	saved, _ := store.LoadProgress(context.Background(), p.ID)
	assert.Equal(t, 29, saved.Week)
	assert.Equal(t, "2024-06-06", saved.GameDate)
	assert.Greater(t, saved.Abilities["수학"], progress.DefaultAbilities()["수학"])
}

func TestProcessTurn_MockExam(t *testing.T) {
	proc, store, _ := newTestProcessor(t)
	p := progress.New("민수")
	p.State = "daily_routine"
	p.Week = 3
	saveProgress(t, store, p)

	resp, err := proc.ProcessTurn(context.Background(), chat.ChatRequest{
		ProgressID: p.ID,
		Message:    "사설모의고사 응시하고 싶어요",
	})
	require.NoError(t, err)

	assert.Equal(t, "mock_exam", resp.State)
	assert.Contains(t, resp.Narration, "사설 모의고사")
	assert.NotEmpty(t, resp.Message)

	saved, _ := store.LoadProgress(context.Background(), p.ID)
	assert.Equal(t, 3, saved.MockExamLastWeek)

	// Any reply returns to the routine.
	resp, err = proc.ProcessTurn(context.Background(), chat.ChatRequest{
		ProgressID: p.ID,
		Message:    "알겠어요",
	})
	require.NoError(t, err)
	assert.Equal(t, "daily_routine", resp.State)
}

func TestProcessTurn_LLMFallback(t *testing.T) {
	proc, store, llm := newTestProcessor(t)
	p := progress.New("민수")
	p.State = "daily_routine"
	saveProgress(t, store, p)

	llm.SetGenerateResponseError(assert.AnError)

	resp, err := proc.ProcessTurn(context.Background(), chat.ChatRequest{
		ProgressID: p.ID,
		Message:    "안녕",
	})
	require.NoError(t, err)
	assert.Equal(t, fallbackReply, resp.Message)
	assert.Equal(t, "daily_routine", resp.State)
}

func TestProcessTurn_DebugCommand(t *testing.T) {
	proc, store, _ := newTestProcessor(t)
	p := progress.New("민수")
	p.State = "daily_routine"
	saveProgress(t, store, p)

	resp, err := proc.ProcessTurn(context.Background(), chat.ChatRequest{
		ProgressID: p.ID,
		Message:    "/stats",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Narration, "[debug]")
	assert.Empty(t, resp.Message)

	// Debug turns do not count as conversation.
	saved, _ := store.LoadProgress(context.Background(), p.ID)
	assert.Equal(t, 0, saved.ConversationCount)
}

func TestProcessTurn_ConversationCount(t *testing.T) {
	proc, store, _ := newTestProcessor(t)
	p := progress.New("민수")
	p.State = "daily_routine"
	saveProgress(t, store, p)

	for i := 0; i < 3; i++ {
		_, err := proc.ProcessTurn(context.Background(), chat.ChatRequest{
			ProgressID: p.ID,
			Message:    "오늘 공부 얘기 좀 하자",
		})
		require.NoError(t, err)
	}

	saved, _ := store.LoadProgress(context.Background(), p.ID)
	assert.Equal(t, 3, saved.ConversationCount)
}
