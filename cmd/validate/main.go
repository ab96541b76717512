package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/dhleesep9/mentor-engine/internal/game"
	"github.com/dhleesep9/mentor-engine/pkg/exam"
	"github.com/dhleesep9/mentor-engine/pkg/progress"
	"github.com/dhleesep9/mentor-engine/pkg/statemachine"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <data-dir>\n", os.Args[0])
		os.Exit(1)
	}

	dataDir := os.Args[1]
	validator := NewStateValidator()

	if err := validator.validateDir(dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Game data is valid!")
}

var snakeCase = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type StateValidator struct {
	registry *statemachine.Registry
	errors   []string
}

func NewStateValidator() *StateValidator {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	registry := statemachine.NewRegistry(logger)
	game.RegisterTriggers(registry)
	return &StateValidator{registry: registry}
}

func (v *StateValidator) errorf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *StateValidator) validateDir(dataDir string) error {
	fmt.Printf("Validating %s...\n", dataDir)

	cfg, err := statemachine.LoadGameConfig(filepath.Join(dataDir, "game.json"))
	if err != nil {
		return fmt.Errorf("failed to load game config: %w", err)
	}

	if len(cfg.AvailableStates) == 0 {
		return fmt.Errorf("game config lists no available states")
	}

	available := make(map[string]bool, len(cfg.AvailableStates))
	for _, id := range cfg.AvailableStates {
		available[id] = true
	}

	if !available[cfg.StartState] {
		v.errorf("start state %q is not in available_states", cfg.StartState)
	}

	statesDir := filepath.Join(dataDir, cfg.StatesDirectory)
	for _, id := range cfg.AvailableStates {
		v.validateStateFile(statesDir, id, available)
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", dataDir, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *StateValidator) validateStateFile(statesDir, id string, available map[string]bool) {
	if !snakeCase.MatchString(id) {
		v.errorf("state id %q must be lowercase snake_case", id)
	}

	path := filepath.Join(statesDir, id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		v.errorf("state %q: failed to read %s: %v", id, path, err)
		return
	}

	var s statemachine.State
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&s); err != nil {
		v.errorf("state %q: strict JSON unmarshaling failed: %v", id, err)
		return
	}

	if s.Name == "" {
		v.errorf("state %q: name is required", id)
	}

	for i, tr := range s.Transitions {
		if tr.TriggerType == "" {
			v.errorf("state %q transition %d: trigger_type is required", id, i)
		} else if !v.registry.Has(tr.TriggerType) {
			v.errorf("state %q transition %d: unknown trigger_type %q", id, i, tr.TriggerType)
		}

		if tr.NextState == "" {
			v.errorf("state %q transition %d: next_state is required", id, i)
		} else if !available[tr.NextState] {
			v.errorf("state %q transition %d: next_state %q is not in available_states", id, i, tr.NextState)
		}

		v.validateDateCheck(id, i, tr.Conditions.DateCheck)
	}

	for _, to := range s.ToStates {
		if !available[to] {
			v.errorf("state %q: to_state %q is not in available_states", id, to)
		}
	}
	for _, from := range s.FromStates {
		if !available[from] {
			v.errorf("state %q: from_state %q is not in available_states", id, from)
		}
	}
}

// validateDateCheck rejects date_check conditions the game clock can
// never land on: the date starts at progress.StartDate and only moves in
// exact 7-day steps.
func (v *StateValidator) validateDateCheck(id string, i int, dateCheck string) {
	if dateCheck == "" {
		return
	}

	target, err := time.Parse(exam.DateLayout, dateCheck)
	if err != nil {
		v.errorf("state %q transition %d: date_check %q is not a YYYY-MM-DD date", id, i, dateCheck)
		return
	}

	start, _ := time.Parse(exam.DateLayout, progress.StartDate)
	days := int(target.Sub(start).Hours() / 24)
	if days < 0 || days%7 != 0 {
		v.errorf("state %q transition %d: date_check %q is unreachable: the game date starts at %s and advances a week at a time",
			id, i, dateCheck, progress.StartDate)
	}
}
