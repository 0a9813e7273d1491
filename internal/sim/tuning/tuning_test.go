package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `protocol_version: "1.0"
tick_ms: 100
thaw_duration_ms: 5000
wash_duration_ms: 5000
combo_window_ms: 10000
combo_bonus_cap: 200
score_floor: 0
time_bonus_max: 50
expiry_penalty: 50
bad_serve_penalty: 10
starting_plates: 2
dirty_plate_every_ms: 15000
difficulties:
  simple:
    order_interval_ms: 30000
    max_concurrent_orders: 4
    score_multiplier: 1
    time_multiplier: 1.2
    recipe_tier: simple
  hard:
    order_interval_ms: 15000
    max_concurrent_orders: 4
    score_multiplier: 3
    time_multiplier: 0.8
    recipe_tier: hard
`

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write tuning: %v", err)
	}
	return path
}

func TestLoadSample(t *testing.T) {
	tun, err := Load(writeTuning(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tun.TickMs != 100 || tun.ThawDurationMs != 5000 || tun.DirtyPlateEveryMs != 15000 {
		t.Fatalf("tuning %+v", tun)
	}
	d, err := tun.Difficulty("hard")
	if err != nil {
		t.Fatalf("Difficulty: %v", err)
	}
	if d.OrderIntervalMs != 15000 || d.ScoreMultiplier != 3 || d.TimeMultiplier != 0.8 {
		t.Fatalf("hard preset %+v", d)
	}
	if _, err := tun.Difficulty("nightmare"); err == nil {
		t.Fatalf("unknown difficulty accepted")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero tick", func(t *Tuning) { t.TickMs = 0 }},
		{"zero thaw", func(t *Tuning) { t.ThawDurationMs = 0 }},
		{"no difficulties", func(t *Tuning) { t.Difficulties = nil }},
		{"zero interval", func(t *Tuning) {
			d := t.Difficulties["simple"]
			d.OrderIntervalMs = 0
			t.Difficulties["simple"] = d
		}},
		{"missing tier", func(t *Tuning) {
			d := t.Difficulties["simple"]
			d.RecipeTier = ""
			t.Difficulties["simple"] = d
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tun, err := Load(writeTuning(t, sampleYAML))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tc.mutate(&tun)
			if err := tun.Validate(); err == nil {
				t.Fatalf("invalid tuning accepted")
			}
		})
	}
}
