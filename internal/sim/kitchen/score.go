package kitchen

import (
	"math"

	"freezerush/internal/protocol"
)

// Ledger accumulates score deltas and the derived run statistics. The total
// is floored at a configured minimum so penalties can never take it negative.
type Ledger struct {
	floor         int
	comboWindowMs int64
	comboCap      int

	total     int
	completed int
	expired   int
	perfect   int

	combo           int
	maxCombo        int
	lastCompletedAt int64
}

func NewLedger(floor int, comboWindowMs int64, comboCap int) *Ledger {
	return &Ledger{floor: floor, comboWindowMs: comboWindowMs, comboCap: comboCap}
}

// Apply adds a signed delta and clamps the total at the floor.
func (l *Ledger) Apply(delta int) int {
	l.total += delta
	if l.total < l.floor {
		l.total = l.floor
	}
	return l.total
}

// RecordCompletion applies the order delta, advances the combo streak if the
// previous completion was inside the combo window, and returns the combo
// bonus that was added on top. The bonus grows quadratically and is capped.
func (l *Ledger) RecordCompletion(now int64, delta int, perfect bool) (comboBonus int) {
	l.completed++
	if perfect {
		l.perfect++
	}
	if l.lastCompletedAt > 0 && now-l.lastCompletedAt <= l.comboWindowMs {
		l.combo++
	} else {
		l.combo = 1
	}
	if l.combo > l.maxCombo {
		l.maxCombo = l.combo
	}
	l.lastCompletedAt = now

	if l.combo > 1 {
		comboBonus = int(math.Round(5 * math.Pow(float64(l.combo-1), 2)))
		if l.comboCap > 0 && comboBonus > l.comboCap {
			comboBonus = l.comboCap
		}
	}
	l.Apply(delta + comboBonus)
	return comboBonus
}

// RecordExpiry applies the expiry penalty and breaks the combo streak.
func (l *Ledger) RecordExpiry(penalty int) {
	l.expired++
	l.combo = 0
	l.Apply(-penalty)
}

func (l *Ledger) Total() int { return l.total }
func (l *Ledger) Combo() int { return l.combo }

func (l *Ledger) Snapshot() protocol.StatsView {
	acc := 0.0
	if l.completed+l.expired > 0 {
		acc = float64(l.completed) / float64(l.completed+l.expired)
	}
	return protocol.StatsView{
		Total:     l.total,
		Completed: l.completed,
		Expired:   l.expired,
		Perfect:   l.perfect,
		Combo:     l.combo,
		MaxCombo:  l.maxCombo,
		Accuracy:  acc,
	}
}
