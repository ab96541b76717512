package statemachine

import (
	"log/slog"
)

// HandlerResult is a deterministic reply produced by a state handler.
// A nil result means the turn should fall through to the LLM.
type HandlerResult struct {
	Reply     string
	Narration string
}

// StateHandler hooks a state's lifecycle. Handle runs on every turn
// spent in the state; OnEnter/OnExit run around transitions.
type StateHandler interface {
	OnEnter(tc TurnContext) (*HandlerResult, error)
	Handle(tc TurnContext) (*HandlerResult, error)
	OnExit(tc TurnContext) (*HandlerResult, error)
}

// BaseHandler is a no-op StateHandler for embedding, so handlers only
// implement the hooks they need.
type BaseHandler struct{}

func (BaseHandler) OnEnter(TurnContext) (*HandlerResult, error) { return nil, nil }
func (BaseHandler) Handle(TurnContext) (*HandlerResult, error)  { return nil, nil }
func (BaseHandler) OnExit(TurnContext) (*HandlerResult, error)  { return nil, nil }

// HandlerRegistry maps state ids to their lifecycle handlers.
type HandlerRegistry struct {
	handlers map[string]StateHandler
	logger   *slog.Logger
}

func NewHandlerRegistry(logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[string]StateHandler),
		logger:   logger,
	}
}

// Register binds a handler to a state id.
func (hr *HandlerRegistry) Register(stateID string, h StateHandler) {
	hr.handlers[stateID] = h
	hr.logger.Debug("State handler registered", "state", stateID)
}

// Has reports whether a state has a handler.
func (hr *HandlerRegistry) Has(stateID string) bool {
	_, ok := hr.handlers[stateID]
	return ok
}

// Handle dispatches the per-turn hook for a state. States without a
// handler fall through (nil result).
func (hr *HandlerRegistry) Handle(stateID string, tc TurnContext) (*HandlerResult, error) {
	h, ok := hr.handlers[stateID]
	if !ok {
		return nil, nil
	}
	return h.Handle(tc)
}

// OnEnter dispatches the enter hook for a state.
func (hr *HandlerRegistry) OnEnter(stateID string, tc TurnContext) (*HandlerResult, error) {
	h, ok := hr.handlers[stateID]
	if !ok {
		return nil, nil
	}
	return h.OnEnter(tc)
}

// OnExit dispatches the exit hook for a state.
func (hr *HandlerRegistry) OnExit(stateID string, tc TurnContext) (*HandlerResult, error) {
	h, ok := hr.handlers[stateID]
	if !ok {
		return nil, nil
	}
	return h.OnExit(tc)
}
