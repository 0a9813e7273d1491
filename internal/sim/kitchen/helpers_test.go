package kitchen

import (
	"testing"

	"freezerush/internal/sim/catalogs"
	"freezerush/internal/sim/tuning"
)

const testPlayer = "P1"

func testTuning() tuning.Tuning {
	return tuning.Tuning{
		TickMs:          100,
		ThawDurationMs:  5000,
		WashDurationMs:  5000,
		ComboWindowMs:   10000,
		ComboBonusCap:   200,
		ScoreFloor:      0,
		TimeBonusMax:    50,
		ExpiryPenalty:   50,
		BadServePenalty: 10,
		Difficulties: map[string]tuning.Difficulty{
			"simple": {
				OrderIntervalMs:     8000,
				MaxConcurrentOrders: 4,
				ScoreMultiplier:     1,
				TimeMultiplier:      1.0,
				RecipeTier:          "simple",
			},
			"medium": {
				OrderIntervalMs:     8000,
				MaxConcurrentOrders: 4,
				ScoreMultiplier:     2,
				TimeMultiplier:      1.0,
				RecipeTier:          "medium",
			},
		},
	}
}

func testCatalogs(t *testing.T) *catalogs.Catalogs {
	t.Helper()
	ings, err := catalogs.BuildIngredients([]catalogs.IngredientDef{
		{ID: "millet_cake_base", Name: "millet cake base"},
		{ID: "rice", Name: "rice"},
		{ID: "beef_brisket", Name: "beef brisket"},
		{ID: "greens", Name: "greens"},
	})
	if err != nil {
		t.Fatalf("BuildIngredients: %v", err)
	}
	recipes, err := catalogs.BuildRecipes([]catalogs.RecipeDef{
		{
			Dish: "millet_cake", Name: "millet cake",
			Ingredients: []string{"millet_cake_base"},
			Complexity:  1, BaseTimeMs: 30000, Tier: "simple", BaseScore: 100,
		},
		{
			Dish: "beef_rice", Name: "beef brisket rice",
			Ingredients: []string{"beef_brisket", "rice"},
			Complexity:  2, BaseTimeMs: 45000, Tier: "medium", BaseScore: 200,
		},
		{
			Dish: "beef_platter", Name: "beef bone platter",
			Ingredients: []string{"beef_brisket", "greens", "rice"},
			Complexity:  3, BaseTimeMs: 60000, Tier: "hard", BaseScore: 300,
		},
	})
	if err != nil {
		t.Fatalf("BuildRecipes: %v", err)
	}
	return &catalogs.Catalogs{Ingredients: ings, Recipes: recipes}
}

func newTestKitchen(t *testing.T, diff string) *Kitchen {
	t.Helper()
	tun := testTuning()
	k, err := New(tun, diff, testCatalogs(t), 1337, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return k
}

func mustCreate(t *testing.T, k *Kitchen, kind ItemKind, ingredient string, h Holder) *Item {
	t.Helper()
	it, code := k.reg.Create(kind, ingredient, h, k.now)
	if code != "" {
		t.Fatalf("Create(%s at %s): %s", kind, h.key(), code)
	}
	return it
}

func mustInteract(t *testing.T, k *Kitchen, station StationID, signal bool) Outcome {
	t.Helper()
	out := k.Interact(testPlayer, station, signal)
	if !out.OK {
		t.Fatalf("Interact(%s): code=%s reason=%s", station, out.Code, out.Reason)
	}
	return out
}
