package kitchen

import (
	"testing"

	"freezerush/internal/protocol"
)

func TestBeginThawRequiresHeatSource(t *testing.T) {
	k := newTestKitchen(t, "simple")
	it := mustCreate(t, k, KindIngredient, "rice", StationOf("surface_1"))

	if code := k.reg.BeginThaw(it.ID, 0); code != protocol.ErrInvalidTransition {
		t.Fatalf("BeginThaw off heat: code %q, want %q", code, protocol.ErrInvalidTransition)
	}
	if it.State != StateFrozen {
		t.Fatalf("failed BeginThaw changed state to %s", it.State)
	}
}

func TestThawMonotonicAndExact(t *testing.T) {
	k := newTestKitchen(t, "simple")
	it := mustCreate(t, k, KindIngredient, "rice", StationOf("heat_1"))
	if code := k.reg.BeginThaw(it.ID, 0); code != "" {
		t.Fatalf("BeginThaw: %s", code)
	}

	last := 0.0
	for now := int64(500); now <= 4500; now += 500 {
		k.Tick(now)
		if it.Progress < last {
			t.Fatalf("progress decreased: %f -> %f at %d", last, it.Progress, now)
		}
		if it.Progress > 1 {
			t.Fatalf("progress exceeded 1: %f", it.Progress)
		}
		last = it.Progress
	}
	if it.State != StateThawing {
		t.Fatalf("state %s before full duration", it.State)
	}

	k.Tick(5000)
	if it.State != StateThawed || it.Progress != 1 {
		t.Fatalf("after thaw_duration: state=%s progress=%f, want THAWED/1", it.State, it.Progress)
	}

	// Extra heat does nothing.
	k.Tick(9000)
	if it.State != StateThawed || it.Progress != 1 {
		t.Fatalf("thawed item changed after more heat: state=%s progress=%f", it.State, it.Progress)
	}
}

func TestThawPauseAndResume(t *testing.T) {
	k := newTestKitchen(t, "simple")
	it := mustCreate(t, k, KindIngredient, "rice", StationOf("heat_1"))
	if code := k.reg.BeginThaw(it.ID, 0); code != "" {
		t.Fatalf("BeginThaw: %s", code)
	}

	k.Tick(2000) // 0.4
	if code := k.reg.Transfer(it.ID, HandOf(testPlayer), 2000); code != "" {
		t.Fatalf("Transfer off heat: %s", code)
	}
	if it.Progress != 0.4 {
		t.Fatalf("progress at removal: %f, want 0.4", it.Progress)
	}

	// Time passes off heat; progress is frozen in place.
	k.Tick(20000)
	if it.Progress != 0.4 || it.State != StateThawing {
		t.Fatalf("off-heat progress moved: %f state=%s", it.Progress, it.State)
	}

	// Back on heat: resumes at 0.4, finishes after the remaining 3000ms.
	if code := k.reg.Transfer(it.ID, StationOf("heat_1"), 20000); code != "" {
		t.Fatalf("Transfer back to heat: %s", code)
	}
	k.Tick(22000)
	if it.State != StateThawing || it.Progress >= 1 {
		t.Fatalf("resumed thaw finished early: state=%s progress=%f", it.State, it.Progress)
	}
	k.Tick(23000)
	if it.State != StateThawed {
		t.Fatalf("total heat time 5000ms did not complete the thaw: state=%s progress=%f", it.State, it.Progress)
	}
}

func TestBeginThawIdempotent(t *testing.T) {
	k := newTestKitchen(t, "simple")
	it := mustCreate(t, k, KindIngredient, "rice", StationOf("heat_1"))
	if code := k.reg.BeginThaw(it.ID, 0); code != "" {
		t.Fatalf("BeginThaw: %s", code)
	}
	k.Tick(2000)

	// Duplicate interaction signal must not reset progress.
	if code := k.reg.BeginThaw(it.ID, 2000); code != "" {
		t.Fatalf("repeat BeginThaw: %s", code)
	}
	k.Tick(2500)
	if it.Progress != 0.5 {
		t.Fatalf("progress after repeat BeginThaw: %f, want 0.5", it.Progress)
	}
}

func TestBeginThawOnThawedRejected(t *testing.T) {
	k := newTestKitchen(t, "simple")
	it := mustCreate(t, k, KindIngredient, "rice", StationOf("heat_1"))
	if code := k.reg.BeginThaw(it.ID, 0); code != "" {
		t.Fatalf("BeginThaw: %s", code)
	}
	k.Tick(5000)
	if code := k.reg.BeginThaw(it.ID, 5000); code != protocol.ErrInvalidTransition {
		t.Fatalf("BeginThaw on thawed: code %q, want %q", code, protocol.ErrInvalidTransition)
	}
}
