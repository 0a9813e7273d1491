package kitchen

// Debug hooks for black-box tests that arrange preconditions without walking
// the full interaction path. The transport layer never calls these.

// DebugSpawnItem places a new item directly at a holder.
func (k *Kitchen) DebugSpawnItem(kind ItemKind, ingredient string, h Holder) (ItemID, bool) {
	it, code := k.reg.Create(kind, ingredient, h, k.now)
	if code != "" {
		return "", false
	}
	return it.ID, true
}

// DebugSetItemState forces an item's state, e.g. a pre-thawed ingredient.
func (k *Kitchen) DebugSetItemState(id ItemID, state ItemState) bool {
	it, ok := k.reg.Get(id)
	if !ok {
		return false
	}
	it.State = state
	if state == StateThawed || state == StateReady {
		it.Progress = 1
	}
	return true
}

// DebugItemCount reports the live item count.
func (k *Kitchen) DebugItemCount() int { return k.reg.Len() }
