package kitchen

import "testing"

func TestLedgerFloor(t *testing.T) {
	l := NewLedger(0, 10000, 200)
	l.Apply(30)
	if got := l.Apply(-100); got != 0 {
		t.Fatalf("total %d, want floored at 0", got)
	}
	// Recovering from the floor starts from zero, not from the debt.
	if got := l.Apply(10); got != 10 {
		t.Fatalf("total %d after recovery, want 10", got)
	}
}

func TestComboGrowsInsideWindow(t *testing.T) {
	l := NewLedger(0, 10000, 200)

	if bonus := l.RecordCompletion(1000, 100, false); bonus != 0 {
		t.Fatalf("first completion bonus %d, want 0", bonus)
	}
	// 5*(combo-1)^2: combo 2 -> 5, combo 3 -> 20, combo 4 -> 45.
	for i, want := range []int{5, 20, 45} {
		now := int64(1000 + (i+1)*5000)
		if bonus := l.RecordCompletion(now, 100, false); bonus != want {
			t.Fatalf("completion %d: bonus %d, want %d", i+2, bonus, want)
		}
	}
	stats := l.Snapshot()
	if stats.Combo != 4 || stats.MaxCombo != 4 {
		t.Fatalf("combo=%d max=%d", stats.Combo, stats.MaxCombo)
	}
	if stats.Total != 400+5+20+45 {
		t.Fatalf("total %d", stats.Total)
	}
}

func TestComboResetOutsideWindow(t *testing.T) {
	l := NewLedger(0, 10000, 200)
	l.RecordCompletion(1000, 100, false)
	l.RecordCompletion(5000, 100, false) // combo 2

	if bonus := l.RecordCompletion(20000, 100, false); bonus != 0 {
		t.Fatalf("completion 15s later kept the streak: bonus %d", bonus)
	}
	if l.Combo() != 1 {
		t.Fatalf("combo %d, want reset to 1", l.Combo())
	}
	if l.Snapshot().MaxCombo != 2 {
		t.Fatalf("max combo %d, want 2", l.Snapshot().MaxCombo)
	}
}

func TestComboWindowBoundaryInclusive(t *testing.T) {
	l := NewLedger(0, 10000, 200)
	l.RecordCompletion(1000, 100, false)
	l.RecordCompletion(11000, 100, false) // exactly the window apart
	if l.Combo() != 2 {
		t.Fatalf("combo %d at the window boundary, want 2", l.Combo())
	}
}

func TestComboBonusCapped(t *testing.T) {
	l := NewLedger(0, 10000, 200)
	now := int64(1000)
	var bonus int
	// Combo 8 would pay 5*49=245; the cap holds it at 200.
	for i := 0; i < 8; i++ {
		bonus = l.RecordCompletion(now, 100, false)
		now += 1000
	}
	if bonus != 200 {
		t.Fatalf("bonus %d at combo 8, want capped 200", bonus)
	}
}

func TestExpiryBreaksCombo(t *testing.T) {
	l := NewLedger(0, 10000, 200)
	l.RecordCompletion(1000, 100, false)
	l.RecordCompletion(2000, 100, false)
	l.RecordExpiry(50)

	if l.Combo() != 0 {
		t.Fatalf("combo %d after expiry, want 0", l.Combo())
	}
	stats := l.Snapshot()
	if stats.Expired != 1 || stats.Completed != 2 {
		t.Fatalf("stats %+v", stats)
	}
	if stats.Total != 100+100+5-50 {
		t.Fatalf("total %d", stats.Total)
	}
	// The next completion starts a fresh streak inside the old window.
	if bonus := l.RecordCompletion(3000, 100, false); bonus != 0 {
		t.Fatalf("post-expiry completion bonus %d, want 0", bonus)
	}
}

func TestAccuracy(t *testing.T) {
	l := NewLedger(0, 10000, 200)
	l.RecordCompletion(1000, 100, true)
	l.RecordCompletion(2000, 100, false)
	l.RecordCompletion(3000, 100, false)
	l.RecordExpiry(50)

	stats := l.Snapshot()
	if stats.Perfect != 1 {
		t.Fatalf("perfect %d", stats.Perfect)
	}
	if stats.Accuracy != 0.75 {
		t.Fatalf("accuracy %f, want 0.75", stats.Accuracy)
	}
}
