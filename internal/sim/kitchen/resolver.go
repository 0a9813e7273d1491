package kitchen

import (
	"math"

	"freezerush/internal/protocol"
)

// User-facing outcome reasons. The UI layer turns these into feedback text;
// the sim only guarantees they are distinct per situation.
const (
	ReasonPickedUp        = "picked_up"
	ReasonPlaced          = "placed"
	ReasonIngredientTaken = "ingredient_taken"
	ReasonThawStarted     = "thaw_started"
	ReasonThawResumed     = "thaw_resumed"
	ReasonWashing         = "washing"
	ReasonWashInterrupted = "wash_interrupted"
	ReasonIngredientAdded = "ingredient_added"
	ReasonDishAssembled   = "dish_assembled"

	ReasonServed          = "served"
	ReasonServeNoOrder    = "serve_no_matching_order"
	ReasonServeFrozen     = "serve_frozen_ingredient"
	ReasonServeThawing    = "serve_thawing_ingredient"
	ReasonServeUnplated   = "serve_unplated_ingredient"
	ReasonServeEmptyPlate = "serve_empty_plate"
	ReasonServeDirtyPlate = "serve_dirty_plate"

	ReasonTwoIngredients     = "combine_two_ingredients"
	ReasonTwoPlates          = "combine_two_plates"
	ReasonDishInvolved       = "combine_with_dish"
	ReasonDirtyPlateInvolved = "combine_with_dirty_plate"
	ReasonNotThawed          = "combine_ingredient_not_thawed"

	ReasonNothingToDo = "nothing_to_do"
)

// Outcome is the result of one interaction. Code is empty on success and one
// of the protocol error codes otherwise; Reason is always set.
type Outcome struct {
	OK      bool
	Code    string
	Reason  string
	Item    ItemID // the item now relevant to the actor (held or assembled)
	Dish    string
	Delta   int
	OrderID string
}

func failure(code, reason string) Outcome {
	return Outcome{Code: code, Reason: reason}
}

// Interact is the single choke point for gameplay rules: "this actor acts on
// this station", with signalHeld distinguishing a held interact (washing)
// from a single press. It never mutates state on a rejected action.
func (k *Kitchen) Interact(player string, stationID StationID, signalHeld bool) Outcome {
	now := k.now
	st, ok := k.layout.Station(stationID)
	if !ok {
		return failure(protocol.ErrUnknownStation, ReasonNothingToDo)
	}
	hand := HandOf(player)
	held, hasHeld := k.reg.At(hand)
	occ, hasOcc := k.reg.At(StationOf(stationID))

	switch st.Kind {
	case StationServing:
		if !hasHeld {
			return failure(protocol.ErrEmptyHand, ReasonNothingToDo)
		}
		return k.serve(held, now)

	case StationHeatSource:
		if hasHeld {
			if held.Kind != KindIngredient {
				return failure(protocol.ErrWrongCapability, ReasonNothingToDo)
			}
			if hasOcc {
				return failure(protocol.ErrStationFull, ReasonNothingToDo)
			}
			if code := k.reg.Transfer(held.ID, StationOf(stationID), now); code != "" {
				return failure(code, ReasonNothingToDo)
			}
			reason := ReasonPlaced
			switch held.State {
			case StateFrozen:
				if code := k.reg.BeginThaw(held.ID, now); code != "" {
					return failure(code, ReasonNothingToDo)
				}
				reason = ReasonThawStarted
			case StateThawing:
				reason = ReasonThawResumed
			}
			return Outcome{OK: true, Reason: reason, Item: held.ID}
		}
		if hasOcc {
			if code := k.reg.Transfer(occ.ID, hand, now); code != "" {
				return failure(code, ReasonNothingToDo)
			}
			return Outcome{OK: true, Reason: ReasonPickedUp, Item: occ.ID}
		}
		return failure(protocol.ErrEmptyHand, ReasonNothingToDo)

	case StationWashBasin:
		if hasHeld {
			if held.Kind != KindDirtyPlate {
				return failure(protocol.ErrWrongCapability, ReasonNothingToDo)
			}
			if hasOcc {
				return failure(protocol.ErrStationFull, ReasonNothingToDo)
			}
			if code := k.reg.Transfer(held.ID, StationOf(stationID), now); code != "" {
				return failure(code, ReasonNothingToDo)
			}
			return Outcome{OK: true, Reason: ReasonPlaced, Item: held.ID}
		}
		if !hasOcc {
			return failure(protocol.ErrEmptyHand, ReasonNothingToDo)
		}
		if signalHeld {
			if occ.State == StateDirty {
				if code := k.reg.BeginWash(occ.ID, now); code != "" {
					return failure(code, ReasonNothingToDo)
				}
			}
			k.reg.SignalWash(occ.ID, now)
			return Outcome{OK: true, Reason: ReasonWashing, Item: occ.ID}
		}
		if occ.State == StateWashing {
			if code := k.reg.InterruptWash(occ.ID, now); code != "" {
				return failure(code, ReasonNothingToDo)
			}
			return Outcome{OK: true, Reason: ReasonWashInterrupted, Item: occ.ID}
		}
		return failure(protocol.ErrInvalidTransition, ReasonNothingToDo)

	case StationAssembly:
		switch {
		case !hasHeld && hasOcc:
			if code := k.reg.Transfer(occ.ID, hand, now); code != "" {
				return failure(code, ReasonNothingToDo)
			}
			return Outcome{OK: true, Reason: ReasonPickedUp, Item: occ.ID}
		case hasHeld && !hasOcc:
			if code := k.reg.Transfer(held.ID, StationOf(stationID), now); code != "" {
				return failure(code, ReasonNothingToDo)
			}
			return Outcome{OK: true, Reason: ReasonPlaced, Item: held.ID}
		case hasHeld && hasOcc:
			return k.combineOnSurface(held, occ, now)
		default:
			return failure(protocol.ErrEmptyHand, ReasonNothingToDo)
		}

	case StationStorage:
		if hasHeld {
			// Storage is a source, never a sink.
			return failure(protocol.ErrWrongCapability, ReasonNothingToDo)
		}
		it, code := k.reg.Create(KindIngredient, st.Ingredient, hand, now)
		if code != "" {
			return failure(code, ReasonNothingToDo)
		}
		return Outcome{OK: true, Reason: ReasonIngredientTaken, Item: it.ID}
	}
	return failure(protocol.ErrInternal, ReasonNothingToDo)
}

// serve consumes whatever is in hand at the serving window. A ready dish with
// a waiting order scores; everything else is destroyed with a penalty whose
// reason names exactly what went wrong.
func (k *Kitchen) serve(held *Item, now int64) Outcome {
	if held.Kind == KindDish && held.State == StateReady {
		o, delta, ok := k.orders.Complete(held.Dish, now)
		if !ok {
			k.reg.Destroy(held.ID, now, ReasonServeNoOrder)
			k.ledger.Apply(-k.tun.BadServePenalty)
			k.emit(protocol.Event{
				Kind:  protocol.EvScoreChanged,
				At:    now,
				Delta: -k.tun.BadServePenalty,
				Total: k.ledger.Total(),
			})
			return Outcome{
				Code:   protocol.ErrNoMatchingOrder,
				Reason: ReasonServeNoOrder,
				Delta:  -k.tun.BadServePenalty,
			}
		}
		delta += difficultyBonus(o)
		perfect := 2*o.RemainingMs(now) >= o.TotalMs
		comboBonus := k.ledger.RecordCompletion(now, delta, perfect)
		k.reg.Destroy(held.ID, now, ReasonServed)
		k.emit(protocol.Event{
			Kind:    protocol.EvOrderFulfilled,
			At:      now,
			OrderID: o.ID,
			Dish:    o.Dish,
		})
		k.emit(protocol.Event{
			Kind:  protocol.EvScoreChanged,
			At:    now,
			Delta: delta + comboBonus,
			Total: k.ledger.Total(),
		})
		if combo := k.ledger.Combo(); combo > 1 {
			k.emit(protocol.Event{
				Kind:  protocol.EvComboChanged,
				At:    now,
				Combo: combo,
			})
		}
		return Outcome{
			OK:      true,
			Reason:  ReasonServed,
			Dish:    o.Dish,
			Delta:   delta + comboBonus,
			OrderID: o.ID,
		}
	}

	reason, penalty := servePenalty(held)
	k.reg.Destroy(held.ID, now, reason)
	k.ledger.Apply(-penalty)
	k.emit(protocol.Event{
		Kind:   protocol.EvScoreChanged,
		At:     now,
		Delta:  -penalty,
		Total:  k.ledger.Total(),
		Reason: reason,
	})
	return Outcome{Code: protocol.ErrWrongCapability, Reason: reason, Delta: -penalty}
}

// servePenalty maps a non-serveable held item to its rejection reason and
// fixed penalty.
func servePenalty(it *Item) (string, int) {
	switch it.Kind {
	case KindIngredient:
		switch it.State {
		case StateFrozen:
			return ReasonServeFrozen, 20
		case StateThawing:
			return ReasonServeThawing, 15
		default:
			return ReasonServeUnplated, 10
		}
	case KindPlate:
		return ReasonServeEmptyPlate, 5
	case KindDirtyPlate:
		return ReasonServeDirtyPlate, 10
	default:
		return ReasonServeNoOrder, 10
	}
}

// combineOnSurface tries to merge the held item with the surface occupant.
// Every impossible pairing gets its own reason so the UI can explain it.
func (k *Kitchen) combineOnSurface(held, occ *Item, now int64) Outcome {
	if held.Kind == KindDish || occ.Kind == KindDish {
		return failure(protocol.ErrIncompatibleItems, ReasonDishInvolved)
	}
	if held.Kind == KindDirtyPlate || occ.Kind == KindDirtyPlate {
		return failure(protocol.ErrIncompatibleItems, ReasonDirtyPlateInvolved)
	}
	if held.Kind == KindIngredient && occ.Kind == KindIngredient {
		return failure(protocol.ErrIncompatibleItems, ReasonTwoIngredients)
	}
	if held.Kind == KindPlate && occ.Kind == KindPlate {
		return failure(protocol.ErrIncompatibleItems, ReasonTwoPlates)
	}

	plate, ing := held, occ
	if held.Kind == KindIngredient {
		plate, ing = occ, held
	}
	if ing.State != StateThawed {
		return failure(protocol.ErrIncompatibleItems, ReasonNotThawed)
	}
	res, code := k.reg.Combine(plate.ID, ing.ID, &k.cats.Recipes, now)
	if code != "" {
		return failure(code, ReasonNothingToDo)
	}
	if res.Completed {
		return Outcome{OK: true, Reason: ReasonDishAssembled, Item: res.Plate, Dish: res.Dish}
	}
	return Outcome{OK: true, Reason: ReasonIngredientAdded, Item: res.Plate}
}

// difficultyBonus rewards harder recipes: no extra for simple dishes, 10% of
// the base for medium, 25% for hard.
func difficultyBonus(o *Order) int {
	switch {
	case o.Complexity >= 3:
		return int(math.Round(float64(o.BaseScore) * 0.25))
	case o.Complexity == 2:
		return int(math.Round(float64(o.BaseScore) * 0.10))
	default:
		return 0
	}
}
