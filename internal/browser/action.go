package browser

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxActions caps how many browser actions a single task may carry.
const MaxActions = 5

// Action is one configured "open this URL when the task fires" entry.
type Action struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	URL       string    `json:"url"`
	Enabled   bool      `json:"enabled"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewAction(label, url string, order int) Action {
	return Action{
		ID:        uuid.New().String(),
		Label:     label,
		URL:       url,
		Enabled:   true,
		Order:     order,
		CreatedAt: time.Now(),
	}
}

// Settings is the per-task browser action configuration, persisted as a JSON
// column on the task row.
type Settings struct {
	Enabled bool     `json:"enabled"`
	Actions []Action `json:"actions"`
}

// ParseSettings decodes the stored JSON column. An empty or missing value is a
// disabled config, not an error; stale UI state must never break a tick.
func ParseSettings(raw *string) (Settings, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return Settings{}, nil
	}
	var s Settings
	if err := json.Unmarshal([]byte(*raw), &s); err != nil {
		return Settings{}, fmt.Errorf("parse browser action settings: %w", err)
	}
	return s, nil
}

// Encode serializes the settings back into the stored column shape.
func (s Settings) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode browser action settings: %w", err)
	}
	return string(data), nil
}

// EnabledActions returns the enabled actions in stored order. Disabled overall
// settings yield none.
func (s Settings) EnabledActions() []Action {
	if !s.Enabled {
		return nil
	}
	actions := make([]Action, 0, len(s.Actions))
	for _, a := range s.Actions {
		if a.Enabled {
			actions = append(actions, a)
		}
	}
	sort.SliceStable(actions, func(i, j int) bool { return actions[i].Order < actions[j].Order })
	return actions
}
