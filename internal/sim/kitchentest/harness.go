// Package kitchentest is a black-box test helper for driving a kitchen via
// exported APIs only: Tick for time, Interact for actions, the snapshot
// accessors for assertions and the Debug hooks for preconditions. Tests built
// on it live outside the kitchen package and see exactly what the transport
// layer sees.
package kitchentest

import (
	"testing"

	"freezerush/internal/protocol"
	"freezerush/internal/sim/catalogs"
	"freezerush/internal/sim/kitchen"
	"freezerush/internal/sim/tuning"
)

type Harness struct {
	T    *testing.T
	Tun  tuning.Tuning
	Cats *catalogs.Catalogs
	K    *kitchen.Kitchen

	Player string

	now    int64
	events []protocol.Event
}

func NewHarness(t *testing.T, tun tuning.Tuning, diffName string, cats *catalogs.Catalogs, seed int64) *Harness {
	t.Helper()
	k, err := kitchen.New(tun, diffName, cats, seed, nil)
	if err != nil {
		t.Fatalf("kitchen.New: %v", err)
	}
	return &Harness{
		T:      t,
		Tun:    tun,
		Cats:   cats,
		K:      k,
		Player: "P001",
	}
}

// Now returns the harness's sim clock, which leads the kitchen's clock by at
// most one pending Advance.
func (h *Harness) Now() int64 { return h.now }

// Advance moves sim time forward in whole ticks, collecting events.
func (h *Harness) Advance(ms int64) {
	h.T.Helper()
	step := int64(h.Tun.TickMs)
	if step <= 0 {
		step = 100
	}
	target := h.now + ms
	for h.now < target {
		h.now += step
		if h.now > target {
			h.now = target
		}
		h.events = append(h.events, h.K.Tick(h.now)...)
	}
}

// Interact performs one action as the default player.
func (h *Harness) Interact(station string, signalHeld bool) kitchen.Outcome {
	h.T.Helper()
	return h.K.Interact(h.Player, kitchen.StationID(station), signalHeld)
}

// MustInteract is Interact, failing the test on a rejected action.
func (h *Harness) MustInteract(station string, signalHeld bool) kitchen.Outcome {
	h.T.Helper()
	out := h.Interact(station, signalHeld)
	if !out.OK {
		h.T.Fatalf("interact %s: code=%s reason=%s", station, out.Code, out.Reason)
	}
	return out
}

// HoldAt keeps the interact control pressed at a station for a duration,
// re-signalling every tick the way the input layer does.
func (h *Harness) HoldAt(station string, ms int64) {
	h.T.Helper()
	step := int64(h.Tun.TickMs)
	if step <= 0 {
		step = 100
	}
	for elapsed := int64(0); elapsed < ms; elapsed += step {
		h.Interact(station, true)
		h.Advance(step)
	}
}

// GiveThawed puts a ready-to-plate ingredient in the player's hand.
func (h *Harness) GiveThawed(ingredient string) kitchen.ItemID {
	h.T.Helper()
	id, ok := h.K.DebugSpawnItem(kitchen.KindIngredient, ingredient, kitchen.HandOf(h.Player))
	if !ok {
		h.T.Fatalf("spawn %s in hand", ingredient)
	}
	if !h.K.DebugSetItemState(id, kitchen.StateThawed) {
		h.T.Fatalf("set %s thawed", id)
	}
	return id
}

// PlaceAt spawns an item directly on a station.
func (h *Harness) PlaceAt(kind kitchen.ItemKind, ingredient, station string) kitchen.ItemID {
	h.T.Helper()
	id, ok := h.K.DebugSpawnItem(kind, ingredient, kitchen.StationOf(kitchen.StationID(station)))
	if !ok {
		h.T.Fatalf("spawn %s at %s", kind, station)
	}
	return id
}

// AssembleDish builds and picks up a complete dish from thawed ingredients.
func (h *Harness) AssembleDish(surface string, ingredients ...string) kitchen.Outcome {
	h.T.Helper()
	h.PlaceAt(kitchen.KindPlate, "", surface)
	var out kitchen.Outcome
	for _, ing := range ingredients {
		h.GiveThawed(ing)
		out = h.MustInteract(surface, false)
	}
	if out.Dish == "" {
		h.T.Fatalf("ingredients %v completed no dish", ingredients)
	}
	return h.MustInteract(surface, false) // pick it up
}

// Held returns the default player's held item view.
func (h *Harness) Held() (protocol.ItemView, bool) {
	return h.K.Held(h.Player)
}

// Events returns and clears the events collected by Advance.
func (h *Harness) Events() []protocol.Event {
	evs := h.events
	h.events = nil
	return evs
}

// WaitingOrders filters the display queue down to serveable orders.
func (h *Harness) WaitingOrders() []protocol.OrderView {
	var out []protocol.OrderView
	for _, o := range h.K.ActiveOrders() {
		if o.Status == string(kitchen.OrderWaiting) {
			out = append(out, o)
		}
	}
	return out
}
