package kitchen

import (
	"freezerush/internal/protocol"
	"freezerush/internal/sim/catalogs"
)

// CombineResult reports the outcome of merging an ingredient into a plate.
type CombineResult struct {
	Plate     ItemID
	Dish      string
	Completed bool
}

// Combine appends a thawed ingredient to a plate's contents, consuming the
// ingredient's identity. On an exact recipe match the plate itself is
// promoted to a ready dish; its id survives, its contents are cleared. On no
// match the plate keeps waiting for more ingredients.
func (r *Registry) Combine(plateID, ingredientID ItemID, cat *catalogs.RecipeCatalog, now int64) (CombineResult, string) {
	plate, ok := r.items[plateID]
	if !ok {
		return CombineResult{}, protocol.ErrNotHeld
	}
	ing, ok := r.items[ingredientID]
	if !ok {
		return CombineResult{}, protocol.ErrNotHeld
	}
	if ing.Kind != KindIngredient || ing.State != StateThawed {
		return CombineResult{}, protocol.ErrIncompatibleItems
	}
	if plate.Kind != KindPlate || plate.State != StateClean {
		return CombineResult{}, protocol.ErrIncompatibleItems
	}

	plate.Contents = append(plate.Contents, ing.Ingredient)
	r.Destroy(ingredientID, now, "combined")

	dish, matched := cat.Match(plate.Contents)
	if !matched {
		r.emit(protocol.Event{
			Kind:      protocol.EvItemStateChanged,
			At:        now,
			ItemID:    string(plate.ID),
			ItemKind:  string(plate.Kind),
			ItemState: string(plate.State),
			Reason:    "ingredient_added",
		})
		return CombineResult{Plate: plate.ID}, ""
	}

	plate.Kind = KindDish
	plate.Dish = dish
	plate.State = StateReady
	plate.Contents = nil
	r.emit(protocol.Event{
		Kind:      protocol.EvItemStateChanged,
		At:        now,
		ItemID:    string(plate.ID),
		ItemKind:  string(KindDish),
		ItemState: string(StateReady),
		Dish:      dish,
	})
	return CombineResult{Plate: plate.ID, Dish: dish, Completed: true}, ""
}
