package statemachine

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// GameConfig is the top-level game configuration (data/game.json).
type GameConfig struct {
	StatesDirectory string   `json:"states_directory"`
	AvailableStates []string `json:"available_states"`
	StartState      string   `json:"start_state,omitempty"`
}

// LoadGameConfig reads the game configuration file.
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if cfg.StatesDirectory == "" {
		cfg.StatesDirectory = "states"
	}
	return &cfg, nil
}

// LoadStates reads every available state's JSON file from the states
// directory. A missing file is a warning (the state becomes a dead end
// if referenced); a malformed file fails only that state. The remaining
// configuration stays usable.
func LoadStates(dir string, available []string, logger *slog.Logger) []State {
	states := make([]State, 0, len(available))

	for _, id := range available {
		path := filepath.Join(dir, id+".json")

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Warn("State file missing, state will be a dead end",
					"state", id, "path", path)
			} else {
				logger.Error("Failed to read state file", "state", id, "error", err)
			}
			continue
		}

		var s State
		if err := json.Unmarshal(data, &s); err != nil {
			logger.Error("Failed to parse state file, skipping state",
				"state", id, "error", err)
			continue
		}

		// The filename is the canonical id.
		s.ID = id
		states = append(states, s)
		logger.Debug("Loaded state", "state", id, "transitions", len(s.Transitions))
	}

	return states
}

// LoadMachine wires config, states, and a registry into a Machine.
func LoadMachine(dataDir string, registry *Registry, logger *slog.Logger) (*Machine, error) {
	cfg, err := LoadGameConfig(filepath.Join(dataDir, "game.json"))
	if err != nil {
		return nil, err
	}

	states := LoadStates(filepath.Join(dataDir, cfg.StatesDirectory), cfg.AvailableStates, logger)
	if len(states) == 0 {
		return nil, fmt.Errorf("no states could be loaded from %s", dataDir)
	}

	m := NewMachine(states, registry, logger)
	logger.Info("State machine loaded", "states", m.StateIDs())
	return m, nil
}
