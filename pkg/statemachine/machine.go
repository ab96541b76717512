package statemachine

import (
	"log/slog"
)

// Machine holds the loaded state set and evaluates turns against it.
// It never mutates session state beyond what triggers record; applying
// a Result is the caller's job.
type Machine struct {
	states   map[string]State
	order    []string // load order, for listings
	registry *Registry
	logger   *slog.Logger
}

// NewMachine builds a machine over an already-loaded state set.
func NewMachine(states []State, registry *Registry, logger *slog.Logger) *Machine {
	m := &Machine{
		states:   make(map[string]State, len(states)),
		registry: registry,
		logger:   logger,
	}
	for _, s := range states {
		m.states[s.ID] = s
		m.order = append(m.order, s.ID)
	}
	return m
}

// State returns a loaded state by id.
func (m *Machine) State(id string) (State, bool) {
	s, ok := m.states[id]
	return s, ok
}

// StateIDs returns the loaded state ids in load order.
func (m *Machine) StateIDs() []string {
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids
}

// Registry exposes the trigger registry for custom registrations.
func (m *Machine) Registry() *Registry {
	return m.registry
}

// Evaluate checks the current state's transitions in declaration order
// and returns the first that fires, or nil when the state is unchanged.
// A state id with no definition is a dead end: the player stays put.
// Transitions pointing at unloaded states are skipped with a warning.
func (m *Machine) Evaluate(tc TurnContext) *Result {
	current, ok := m.states[tc.Progress.State]
	if !ok {
		m.logger.Warn("Current state has no definition, treating as dead end",
			"state", tc.Progress.State)
		return nil
	}

	for _, tr := range current.Transitions {
		if !m.registry.Evaluate(tr, tc) {
			continue
		}

		next, ok := m.states[tr.NextState]
		if !ok {
			m.logger.Warn("Transition target is not loaded, skipping",
				"from", current.ID, "next_state", tr.NextState)
			continue
		}

		m.logger.Info("State transition",
			"from", current.ID, "to", next.ID, "trigger_type", tr.TriggerType)

		return &Result{
			From:        current.ID,
			To:          next.ID,
			TriggerType: tr.TriggerType,
			Narration:   combineNarration(tr.TransitionNarration, next.Narration),
		}
	}
	return nil
}

// combineNarration joins the transition's narration and the entered
// state's narration with a blank line. Either side may be empty.
func combineNarration(transition, state string) string {
	switch {
	case transition != "" && state != "":
		return transition + "\n\n" + state
	case transition != "":
		return transition
	default:
		return state
	}
}
