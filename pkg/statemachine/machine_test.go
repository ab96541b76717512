package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMachine(t *testing.T, states []State) *Machine {
	t.Helper()
	return NewMachine(states, NewRegistry(testLogger()), testLogger())
}

func TestEvaluate_SpecExample(t *testing.T) {
	// State "start" with an affection_increase(min 1) transition to
	// "icebreak": affection going 0 -> 1 must move the player.
	m := testMachine(t, []State{
		{
			ID: "start",
			Transitions: []Transition{{
				TriggerType: TriggerAffectionIncrease,
				Conditions:  Conditions{AffectionIncreaseMin: intPtr(1)},
				NextState:   "icebreak",
			}},
		},
		{ID: "icebreak", Narration: "분위기가 풀렸다."},
	})

	tc := turnContext("안녕하세요!", 1)
	tc.Progress.Affection = 1

	result := m.Evaluate(tc)
	require.NotNil(t, result)
	assert.Equal(t, "start", result.From)
	assert.Equal(t, "icebreak", result.To)
	assert.Equal(t, TriggerAffectionIncrease, result.TriggerType)
	assert.Equal(t, "분위기가 풀렸다.", result.Narration)
}

func TestEvaluate_NoMatchLeavesStateUnchanged(t *testing.T) {
	m := testMachine(t, []State{
		{
			ID: "start",
			Transitions: []Transition{{
				TriggerType: TriggerAffectionIncrease,
				Conditions:  Conditions{AffectionIncreaseMin: intPtr(3)},
				NextState:   "icebreak",
			}},
		},
		{ID: "icebreak"},
	})

	assert.Nil(t, m.Evaluate(turnContext("hi", 2)))
}

func TestEvaluate_DeclarationOrderWins(t *testing.T) {
	// Both transitions match; the earlier one in the array must win.
	m := testMachine(t, []State{
		{
			ID: "daily_routine",
			Transitions: []Transition{
				{
					TriggerType: TriggerAffectionThreshold,
					Conditions:  Conditions{AffectionMin: intPtr(5)},
					NextState:   "first_target",
				},
				{
					TriggerType: TriggerAffectionThreshold,
					Conditions:  Conditions{AffectionMin: intPtr(1)},
					NextState:   "second_target",
				},
			},
		},
		{ID: "first_target"},
		{ID: "second_target"},
	})

	tc := turnContext("hi", 0)
	tc.Progress.State = "daily_routine"
	tc.Progress.Affection = 20

	result := m.Evaluate(tc)
	require.NotNil(t, result)
	assert.Equal(t, "first_target", result.To)
}

func TestEvaluate_UnknownTriggerTypeFallsThrough(t *testing.T) {
	// The unknown trigger is skipped with a warning; the next declared
	// transition still gets its chance.
	m := testMachine(t, []State{
		{
			ID: "start",
			Transitions: []Transition{
				{TriggerType: "made_up_trigger", NextState: "icebreak"},
				{
					TriggerType: TriggerAffectionIncrease,
					Conditions:  Conditions{AffectionIncreaseMin: intPtr(1)},
					NextState:   "icebreak",
				},
			},
		},
		{ID: "icebreak"},
	})

	result := m.Evaluate(turnContext("hi", 1))
	require.NotNil(t, result)
	assert.Equal(t, TriggerAffectionIncrease, result.TriggerType)
}

func TestEvaluate_MissingCurrentStateIsDeadEnd(t *testing.T) {
	m := testMachine(t, []State{{ID: "start"}})

	tc := turnContext("hi", 5)
	tc.Progress.State = "nonexistent"
	assert.Nil(t, m.Evaluate(tc))
}

func TestEvaluate_UnloadedTargetSkipped(t *testing.T) {
	m := testMachine(t, []State{
		{
			ID: "start",
			Transitions: []Transition{
				{
					TriggerType: TriggerAffectionIncrease,
					Conditions:  Conditions{AffectionIncreaseMin: intPtr(1)},
					NextState:   "missing_state",
				},
				{
					TriggerType: TriggerAffectionIncrease,
					Conditions:  Conditions{AffectionIncreaseMin: intPtr(1)},
					NextState:   "icebreak",
				},
			},
		},
		{ID: "icebreak"},
	})

	result := m.Evaluate(turnContext("hi", 1))
	require.NotNil(t, result)
	assert.Equal(t, "icebreak", result.To)
}

func TestCombineNarration(t *testing.T) {
	assert.Equal(t, "a\n\nb", combineNarration("a", "b"))
	assert.Equal(t, "a", combineNarration("a", ""))
	assert.Equal(t, "b", combineNarration("", "b"))
	assert.Equal(t, "", combineNarration("", ""))
}
