package kitchen

import (
	"fmt"
	"sort"

	"freezerush/internal/protocol"
)

// Registry owns every item and is the sole mutator of item holders. The
// holder index guarantees single ownership: one entry per hand or station
// slot, ever.
type Registry struct {
	layout *Layout

	thawDurationMs int64
	washDurationMs int64

	items    map[ItemID]*Item
	byHolder map[string]ItemID
	nextID   int

	events []protocol.Event
}

func NewRegistry(layout *Layout, thawDurationMs, washDurationMs int64) *Registry {
	return &Registry{
		layout:         layout,
		thawDurationMs: thawDurationMs,
		washDurationMs: washDurationMs,
		items:          map[ItemID]*Item{},
		byHolder:       map[string]ItemID{},
	}
}

func (r *Registry) emit(ev protocol.Event) {
	r.events = append(r.events, ev)
}

// DrainEvents returns and clears the events accumulated since the last drain.
func (r *Registry) DrainEvents() []protocol.Event {
	evs := r.events
	r.events = nil
	return evs
}

// Create allocates a new item in its kind's initial state. The destination
// holder must be free; the resolver checks that before calling, the registry
// checks again to defend the single-owner invariant.
func (r *Registry) Create(kind ItemKind, ingredient string, h Holder, now int64) (*Item, string) {
	if _, taken := r.byHolder[h.key()]; taken {
		return nil, protocol.ErrSlotOccupied
	}
	r.nextID++
	it := &Item{
		ID:         ItemID(fmt.Sprintf("I%05d", r.nextID)),
		Kind:       kind,
		Ingredient: ingredient,
		State:      initialState(kind),
		Holder:     h,
	}
	r.items[it.ID] = it
	r.byHolder[h.key()] = it.ID
	r.emit(protocol.Event{
		Kind:      protocol.EvItemSpawned,
		At:        now,
		ItemID:    string(it.ID),
		ItemKind:  string(it.Kind),
		ItemState: string(it.State),
		StationID: string(h.Station),
	})
	return it, ""
}

func (r *Registry) Get(id ItemID) (*Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// At returns the item owned by the given holder, if any.
func (r *Registry) At(h Holder) (*Item, bool) {
	id, ok := r.byHolder[h.key()]
	if !ok {
		return nil, false
	}
	return r.items[id], true
}

func (r *Registry) Occupied(h Holder) bool {
	_, ok := r.byHolder[h.key()]
	return ok
}

// Transfer moves an item to a new holder. It is the single mutator of
// Item.Holder. Thaw progress is frozen in place when an item leaves a heat
// source and resumes from the retained value when it lands on one again,
// by recomputing a virtual start time rather than storing elapsed ticks.
func (r *Registry) Transfer(id ItemID, to Holder, now int64) string {
	it, ok := r.items[id]
	if !ok {
		return protocol.ErrNotHeld
	}
	if cur, ok := r.byHolder[it.Holder.key()]; !ok || cur != id {
		return protocol.ErrNotHeld
	}
	if _, taken := r.byHolder[to.key()]; taken {
		return protocol.ErrSlotOccupied
	}
	if it.State == StateThawing && r.onHeat(it.Holder) {
		it.Progress = r.thawProgressAt(it, now)
	}
	delete(r.byHolder, it.Holder.key())
	it.Holder = to
	r.byHolder[to.key()] = id
	if it.State == StateThawing && r.onHeat(to) {
		it.thawStart = now - int64(it.Progress*float64(r.thawDurationMs))
	}
	return ""
}

// Destroy removes an item entirely (served, combined away, dropped).
func (r *Registry) Destroy(id ItemID, now int64, reason string) {
	it, ok := r.items[id]
	if !ok {
		return
	}
	delete(r.byHolder, it.Holder.key())
	delete(r.items, id)
	r.emit(protocol.Event{
		Kind:     protocol.EvItemConsumed,
		At:       now,
		ItemID:   string(id),
		ItemKind: string(it.Kind),
		Reason:   reason,
	})
}

// Items returns all items sorted by id for deterministic iteration.
func (r *Registry) Items() []*Item {
	out := make([]*Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Len() int { return len(r.items) }

func (r *Registry) onHeat(h Holder) bool {
	if !h.AtStation() {
		return false
	}
	s, ok := r.layout.Station(h.Station)
	return ok && s.Kind == StationHeatSource
}

func (r *Registry) onBasin(h Holder) bool {
	if !h.AtStation() {
		return false
	}
	s, ok := r.layout.Station(h.Station)
	return ok && s.Kind == StationWashBasin
}

// FindNearestFreeSurface walks the layout's distance-ordered candidate list
// and returns the first station that accepts a plate and is empty.
func (r *Registry) FindNearestFreeSurface() (StationID, bool) {
	for _, id := range r.layout.surfaceOrder {
		s, ok := r.layout.Station(id)
		if !ok || !s.Accepts(KindPlate) {
			continue
		}
		if !r.Occupied(StationOf(id)) {
			return id, true
		}
	}
	return "", false
}
