// Package statemachine implements the JSON-declared game state machine:
// named states, ordered transitions gated by triggers, and the registry
// of trigger evaluators.
package statemachine

import (
	"github.com/dhleesep9/mentor-engine/pkg/progress"
)

// State is one node of the game flow, loaded from data/states/<id>.json.
// States are immutable after load.
type State struct {
	ID          string       `json:"id,omitempty"` // set from the filename
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Narration   string       `json:"narration,omitempty"`
	FromStates  []string     `json:"from_states,omitempty"`
	ToStates    []string     `json:"to_states,omitempty"`
	Transitions []Transition `json:"transitions,omitempty"`
}

// Transition is a directed edge out of a state. Transitions are evaluated
// in declaration order; the first whose trigger matches wins.
type Transition struct {
	Name                string     `json:"name,omitempty"`
	TriggerType         string     `json:"trigger_type"`
	Conditions          Conditions `json:"conditions,omitempty"`
	NextState           string     `json:"next_state"`
	TransitionNarration string     `json:"transition_narration,omitempty"`
}

// Conditions carries every threshold a built-in trigger may read.
// Pointer fields distinguish "absent" from zero so each trigger can apply
// its own default.
type Conditions struct {
	AffectionIncreaseMin *int     `json:"affection_increase_min,omitempty"`
	AffectionMin         *int     `json:"affection_min,omitempty"`
	SubjectsCount        *int     `json:"subjects_count,omitempty"`
	RequiredCount        *int     `json:"required_count,omitempty"`
	InputEquals          string   `json:"input_equals,omitempty"`
	InputContains        string   `json:"input_contains,omitempty"`
	InputContainsAny     []string `json:"input_contains_any,omitempty"`
	DateCheck            string   `json:"date_check,omitempty"` // YYYY-MM-DD
}

// intOrDefault resolves an optional integer condition.
func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// TurnContext is everything a trigger may inspect for one chat turn.
type TurnContext struct {
	Message        string             // the player's message this turn
	AffectionDelta int                // affection gained this turn
	Progress       *progress.Progress // session state, pre-transition
}

// Result describes a fired transition.
type Result struct {
	From        string `json:"from"`
	To          string `json:"to"`
	TriggerType string `json:"trigger_type"`
	Narration   string `json:"narration,omitempty"`
}
