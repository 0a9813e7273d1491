package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	TickMs int `yaml:"tick_ms"`

	ThawDurationMs int `yaml:"thaw_duration_ms"`
	WashDurationMs int `yaml:"wash_duration_ms"`

	ComboWindowMs int `yaml:"combo_window_ms"`
	ComboBonusCap int `yaml:"combo_bonus_cap"`
	ScoreFloor    int `yaml:"score_floor"`

	TimeBonusMax      int `yaml:"time_bonus_max"`
	ExpiryPenalty     int `yaml:"expiry_penalty"`
	BadServePenalty   int `yaml:"bad_serve_penalty"`
	StartingPlates    int `yaml:"starting_plates"`
	DirtyPlateEveryMs int `yaml:"dirty_plate_every_ms"`

	Difficulties map[string]Difficulty `yaml:"difficulties"`
}

// Difficulty is the per-tier knob set injected once at session start.
type Difficulty struct {
	OrderIntervalMs     int     `yaml:"order_interval_ms"`
	MaxConcurrentOrders int     `yaml:"max_concurrent_orders"`
	ScoreMultiplier     int     `yaml:"score_multiplier"`
	TimeMultiplier      float64 `yaml:"time_multiplier"`
	RecipeTier          string  `yaml:"recipe_tier"`
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

func (t Tuning) Validate() error {
	if t.TickMs <= 0 {
		return fmt.Errorf("tuning: tick_ms must be positive")
	}
	if t.ThawDurationMs <= 0 || t.WashDurationMs <= 0 {
		return fmt.Errorf("tuning: thaw/wash durations must be positive")
	}
	if len(t.Difficulties) == 0 {
		return fmt.Errorf("tuning: no difficulties defined")
	}
	for name, d := range t.Difficulties {
		if d.OrderIntervalMs <= 0 {
			return fmt.Errorf("tuning: difficulty %q: order_interval_ms must be positive", name)
		}
		if d.MaxConcurrentOrders <= 0 {
			return fmt.Errorf("tuning: difficulty %q: max_concurrent_orders must be positive", name)
		}
		if d.TimeMultiplier <= 0 {
			return fmt.Errorf("tuning: difficulty %q: time_multiplier must be positive", name)
		}
		if d.RecipeTier == "" {
			return fmt.Errorf("tuning: difficulty %q: recipe_tier missing", name)
		}
	}
	return nil
}

func (t Tuning) Difficulty(name string) (Difficulty, error) {
	d, ok := t.Difficulties[name]
	if !ok {
		return Difficulty{}, fmt.Errorf("tuning: unknown difficulty %q", name)
	}
	return d, nil
}
