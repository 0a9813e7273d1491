package kitchen

import "freezerush/internal/protocol"

// BeginWash starts washing a dirty plate sitting in the wash basin.
// Idempotent for a plate that is already washing.
func (r *Registry) BeginWash(id ItemID, now int64) string {
	it, ok := r.items[id]
	if !ok {
		return protocol.ErrNotHeld
	}
	if it.Kind != KindDirtyPlate || !r.onBasin(it.Holder) {
		return protocol.ErrInvalidTransition
	}
	switch it.State {
	case StateWashing:
		return ""
	case StateDirty:
		it.State = StateWashing
		it.Progress = 0
		it.washSignalAt = now
		r.emit(protocol.Event{
			Kind:      protocol.EvItemStateChanged,
			At:        now,
			ItemID:    string(id),
			ItemKind:  string(it.Kind),
			ItemState: string(StateWashing),
			StationID: string(it.Holder.Station),
		})
		return ""
	default:
		return protocol.ErrInvalidTransition
	}
}

// SignalWash records that the hold signal was seen for a washing plate.
// Washing is cooperative: progress only moves on ticks where the signal was
// present since the previous tick.
func (r *Registry) SignalWash(id ItemID, now int64) {
	if it, ok := r.items[id]; ok && it.State == StateWashing {
		it.washSignalAt = now
	}
}

// InterruptWash resets a washing plate back to dirty with zero progress.
// Unlike thawing, washing does not pause; releasing the signal throws the
// progress away.
func (r *Registry) InterruptWash(id ItemID, now int64) string {
	it, ok := r.items[id]
	if !ok {
		return protocol.ErrNotHeld
	}
	if it.State != StateWashing {
		return protocol.ErrInvalidTransition
	}
	it.State = StateDirty
	it.Progress = 0
	it.washSignalAt = 0
	r.emit(protocol.Event{
		Kind:      protocol.EvItemStateChanged,
		At:        now,
		ItemID:    string(id),
		ItemKind:  string(it.Kind),
		ItemState: string(StateDirty),
		StationID: string(it.Holder.Station),
	})
	return ""
}

// WashResult reports what happened to a plate that finished washing.
type WashResult struct {
	Plate   ItemID
	Station StationID
	Dropped bool
}

// AdvanceWash moves washing plates forward by the elapsed time if their hold
// signal was seen since the previous tick, and interrupts them if it was not.
// A plate reaching full progress is destroyed and a clean plate spawns on the
// nearest free surface; with nowhere to land the plate is dropped and the
// caller logs the loss.
func (r *Registry) AdvanceWash(now, prev int64) []WashResult {
	var results []WashResult
	for _, it := range r.Items() {
		if it.State != StateWashing {
			continue
		}
		if it.washSignalAt < prev {
			_ = r.InterruptWash(it.ID, now)
			continue
		}
		if r.washDurationMs > 0 {
			it.Progress = clamp01(it.Progress + float64(now-prev)/float64(r.washDurationMs))
		} else {
			it.Progress = 1
		}
		if it.Progress < 1 {
			continue
		}
		dirtyID := it.ID
		r.Destroy(dirtyID, now, "washed")
		target, found := r.FindNearestFreeSurface()
		if !found {
			r.emit(protocol.Event{
				Kind:   protocol.EvItemDropped,
				At:     now,
				ItemID: string(dirtyID),
				Reason: protocol.ErrNoFreeSurface,
			})
			results = append(results, WashResult{Plate: dirtyID, Dropped: true})
			continue
		}
		plate, code := r.Create(KindPlate, "", StationOf(target), now)
		if code != "" {
			// Candidate was free a moment ago; treat as drop.
			r.emit(protocol.Event{
				Kind:   protocol.EvItemDropped,
				At:     now,
				ItemID: string(dirtyID),
				Reason: code,
			})
			results = append(results, WashResult{Plate: dirtyID, Dropped: true})
			continue
		}
		results = append(results, WashResult{Plate: plate.ID, Station: target})
	}
	return results
}
