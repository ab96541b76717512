package statemachine

import (
	"log/slog"
	"sort"
)

// TriggerFunc evaluates one transition's condition for the current turn.
// Implementations may record results on the session (subject selection
// does) but must not change the current state.
type TriggerFunc func(t Transition, tc TurnContext) bool

// Registry maps trigger type names to their evaluators. Unknown trigger
// types are logged and treated as non-matching; they are never fatal.
type Registry struct {
	triggers map[string]TriggerFunc
	logger   *slog.Logger
}

// NewRegistry creates a registry with all built-in triggers loaded.
func NewRegistry(logger *slog.Logger) *Registry {
	r := &Registry{
		triggers: make(map[string]TriggerFunc),
		logger:   logger,
	}
	for name, fn := range builtinTriggers() {
		r.triggers[name] = fn
	}
	return r
}

// Register adds or replaces a trigger evaluator.
func (r *Registry) Register(name string, fn TriggerFunc) {
	r.triggers[name] = fn
}

// Has reports whether a trigger type is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.triggers[name]
	return ok
}

// List returns the registered trigger type names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.triggers))
	for name := range r.triggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate runs the evaluator for the transition's trigger type.
// An unknown type logs a warning and evaluates to false.
func (r *Registry) Evaluate(t Transition, tc TurnContext) bool {
	fn, ok := r.triggers[t.TriggerType]
	if !ok {
		r.logger.Warn("Unknown trigger type, skipping transition",
			"trigger_type", t.TriggerType,
			"next_state", t.NextState,
			"registered", r.List())
		return false
	}
	matched := fn(t, tc)
	r.logger.Debug("Trigger evaluated",
		"trigger_type", t.TriggerType,
		"next_state", t.NextState,
		"matched", matched)
	return matched
}
