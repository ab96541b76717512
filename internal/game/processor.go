// Package game runs one chat turn end to end: sentiment scoring, state
// handlers, transition evaluation, weekly time advance, and the LLM
// reply, then persists the session.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dhleesep9/mentor-engine/internal/services"
	"github.com/dhleesep9/mentor-engine/internal/storage"
	"github.com/dhleesep9/mentor-engine/pkg/chat"
	"github.com/dhleesep9/mentor-engine/pkg/progress"
	"github.com/dhleesep9/mentor-engine/pkg/statemachine"
)

// ErrProgressNotFound is returned when the requested session does not
// exist in storage.
var ErrProgressNotFound = errors.New("progress not found")

// Processor executes chat turns. It owns no session state itself; every
// turn loads, mutates, and saves one Progress record.
type Processor struct {
	store    storage.Storage
	llm      services.LLMService
	machine  *statemachine.Machine
	handlers *statemachine.HandlerRegistry
	debug    *DebugConfig
	logger   *slog.Logger
}

func NewProcessor(store storage.Storage, llm services.LLMService, machine *statemachine.Machine, debug *DebugConfig, logger *slog.Logger) *Processor {
	RegisterTriggers(machine.Registry())

	handlers := statemachine.NewHandlerRegistry(logger)
	registerHandlers(handlers)

	if debug == nil {
		debug = &DebugConfig{}
	}

	return &Processor{
		store:    store,
		llm:      llm,
		machine:  machine,
		handlers: handlers,
		debug:    debug,
		logger:   logger,
	}
}

// Machine exposes the loaded state machine, used by the states endpoint.
func (pr *Processor) Machine() *statemachine.Machine {
	return pr.machine
}

// ProcessTurn runs one player message through the full turn pipeline
// and returns the response to send back.
func (pr *Processor) ProcessTurn(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error) {
	p, err := pr.store.LoadProgress(ctx, req.ProgressID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	if p == nil {
		return nil, ErrProgressNotFound
	}

	if cmd, ok := pr.debug.Match(req.Message); ok {
		narration, err := pr.debug.Apply(cmd, p)
		if err != nil {
			return nil, err
		}
		if err := pr.store.SaveProgress(ctx, req.ProgressID, p); err != nil {
			return nil, fmt.Errorf("failed to save progress: %w", err)
		}
		return pr.response(req, p, "", narration), nil
	}

	delta := services.ScoreAffection(ctx, pr.llm, req.Message, pr.logger)
	p.AddAffection(delta)

	tc := statemachine.TurnContext{
		Message:        req.Message,
		AffectionDelta: delta,
		Progress:       p,
	}

	handled, err := pr.handlers.Handle(p.State, tc)
	if err != nil {
		pr.logger.Warn("State handler failed", "state", p.State, "error", err)
	}

	var narration []string
	reply := ""
	if handled != nil {
		reply = handled.Reply
		if handled.Narration != "" {
			narration = append(narration, handled.Narration)
		}
	}

	result := pr.machine.Evaluate(tc)
	if result != nil {
		if exited, err := pr.handlers.OnExit(result.From, tc); err != nil {
			pr.logger.Warn("OnExit handler failed", "state", result.From, "error", err)
		} else if exited != nil && exited.Narration != "" {
			narration = append(narration, exited.Narration)
		}

		p.State = result.To
		if result.Narration != "" {
			narration = append(narration, result.Narration)
		}

		if entered, err := pr.handlers.OnEnter(result.To, tc); err != nil {
			pr.logger.Warn("OnEnter handler failed", "state", result.To, "error", err)
		} else if entered != nil {
			if entered.Narration != "" {
				narration = append(narration, entered.Narration)
			}
			if reply == "" {
				reply = entered.Reply
			}
		}

		if result.TriggerType == statemachine.TriggerTimeAdvanceWeek {
			narration = append(narration, pr.advanceWeek(p))
		}
	}

	if reply == "" {
		reply = pr.generateReply(ctx, req.Message, p)
	}

	if p.State == StateDailyRoutine {
		p.ConversationCount++
	}

	if err := pr.store.SaveProgress(ctx, req.ProgressID, p); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	return pr.response(req, p, reply, strings.Join(narration, "\n\n")), nil
}

// advanceWeek moves the game clock one week and narrates what happened,
// including a scheduled exam report when one fell inside the week.
func (pr *Processor) advanceWeek(p *progress.Progress) string {
	wr := p.AdvanceWeek()
	text := fmt.Sprintf("한 주가 지났다. %d주차, %s.", wr.Week, wr.Date)
	if wr.Exam != nil {
		text += "\n\n" + wr.Exam.Text
	}

	pr.logger.Info("Week advanced",
		"week", wr.Week, "date", wr.Date, "exam", wr.Exam != nil)
	return text
}

func (pr *Processor) generateReply(ctx context.Context, message string, p *progress.Progress) string {
	state, _ := pr.machine.State(p.State)
	messages := []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: buildSystemPrompt(p, state)},
		{Role: chat.ChatRoleUser, Content: message},
	}

	resp, err := pr.llm.GenerateResponse(ctx, messages)
	if err != nil {
		pr.logger.Error("LLM reply failed, using fallback", "error", err)
		return fallbackReply
	}
	return resp.Message
}

func (pr *Processor) response(req chat.ChatRequest, p *progress.Progress, reply, narration string) *chat.ChatResponse {
	return &chat.ChatResponse{
		ProgressID: req.ProgressID,
		Message:    reply,
		Narration:  narration,
		State:      p.State,
		Affection:  p.Affection,
		Stats:      p.Stats(),
	}
}
