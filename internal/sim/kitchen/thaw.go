package kitchen

import "freezerush/internal/protocol"

// BeginThaw starts thawing a frozen ingredient sitting on a heat source.
// Calling it on an item that is already thawing is a no-op, so duplicate
// interaction signals are harmless.
func (r *Registry) BeginThaw(id ItemID, now int64) string {
	it, ok := r.items[id]
	if !ok {
		return protocol.ErrNotHeld
	}
	if it.Kind != KindIngredient || !r.onHeat(it.Holder) {
		return protocol.ErrInvalidTransition
	}
	switch it.State {
	case StateThawing:
		return ""
	case StateFrozen:
		it.State = StateThawing
		it.Progress = 0
		it.thawStart = now
		r.emit(protocol.Event{
			Kind:      protocol.EvItemStateChanged,
			At:        now,
			ItemID:    string(id),
			ItemKind:  string(it.Kind),
			ItemState: string(StateThawing),
			StationID: string(it.Holder.Station),
		})
		return ""
	default:
		return protocol.ErrInvalidTransition
	}
}

func (r *Registry) thawProgressAt(it *Item, now int64) float64 {
	if r.thawDurationMs <= 0 {
		return 1
	}
	return clamp01(float64(now-it.thawStart) / float64(r.thawDurationMs))
}

// AdvanceThaw refreshes progress for every thawing item that is still on a
// heat source. Items removed mid-thaw keep their last progress and are simply
// skipped here; there is no timer to cancel.
func (r *Registry) AdvanceThaw(now int64) {
	for _, it := range r.Items() {
		if it.State != StateThawing || !r.onHeat(it.Holder) {
			continue
		}
		it.Progress = r.thawProgressAt(it, now)
		if it.Progress >= 1 {
			it.Progress = 1
			it.State = StateThawed
			r.emit(protocol.Event{
				Kind:      protocol.EvItemStateChanged,
				At:        now,
				ItemID:    string(it.ID),
				ItemKind:  string(it.Kind),
				ItemState: string(StateThawed),
				StationID: string(it.Holder.Station),
			})
		}
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
