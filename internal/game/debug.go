package game

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dhleesep9/mentor-engine/pkg/progress"
)

// DebugCommand maps a chat keyword to a development shortcut.
type DebugCommand struct {
	Keyword string `json:"keyword"`
	Action  string `json:"action"`
	Amount  int    `json:"amount,omitempty"`
}

// DebugConfig is loaded from data/debug_commands.json. When the file is
// absent or Enabled is false, debug keywords are treated as normal chat.
type DebugConfig struct {
	Enabled  bool           `json:"enabled"`
	Commands []DebugCommand `json:"commands"`
}

// Debug actions usable in debug_commands.json.
const (
	DebugSkipWeeks    = "skip_weeks"
	DebugAddAffection = "add_affection"
	DebugMaxAbilities = "max_abilities"
	DebugShowStats    = "show_stats"
)

// LoadDebugConfig reads the debug command table. A missing file is not
// an error; it just disables debug commands.
func LoadDebugConfig(path string, logger *slog.Logger) *DebugConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read debug commands", "path", path, "error", err)
		}
		return &DebugConfig{}
	}

	var cfg DebugConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		logger.Error("Malformed debug commands file, disabling", "path", path, "error", err)
		return &DebugConfig{}
	}
	return &cfg
}

// Match returns the command whose keyword equals the trimmed message.
func (dc *DebugConfig) Match(message string) (DebugCommand, bool) {
	if !dc.Enabled {
		return DebugCommand{}, false
	}
	trimmed := strings.TrimSpace(message)
	for _, cmd := range dc.Commands {
		if cmd.Keyword == trimmed {
			return cmd, true
		}
	}
	return DebugCommand{}, false
}

// Apply runs a debug command against the session and returns the
// narration describing what changed.
func (dc *DebugConfig) Apply(cmd DebugCommand, p *progress.Progress) (string, error) {
	switch cmd.Action {
	case DebugSkipWeeks:
		n := cmd.Amount
		if n <= 0 {
			n = 1
		}
		wr := p.SkipWeeks(n)
		text := fmt.Sprintf("[debug] %d주 경과. 현재 %d주차, %s", n, wr.Week, wr.Date)
		if wr.Exam != nil {
			text += "\n\n" + wr.Exam.Text
		}
		return text, nil

	case DebugAddAffection:
		p.AddAffection(cmd.Amount)
		return fmt.Sprintf("[debug] 호감도 %+d. 현재 %d", cmd.Amount, p.Affection), nil

	case DebugMaxAbilities:
		for subject := range p.Abilities {
			p.Abilities[subject] = progress.MaxAbility
		}
		return "[debug] 모든 과목 능력치를 최대로 설정했습니다.", nil

	case DebugShowStats:
		return fmt.Sprintf("[debug] state=%s affection=%d stamina=%d mental=%d confidence=%d week=%d date=%s",
			p.State, p.Affection, p.Stamina, p.Mental, p.Confidence, p.Week, p.GameDate), nil

	default:
		return "", fmt.Errorf("unknown debug action: %s", cmd.Action)
	}
}
