package kitchentest

import (
	"testing"

	"freezerush/internal/sim/catalogs"
	"freezerush/internal/sim/tuning"
)

func baseTuning() tuning.Tuning {
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
				OrderIntervalMs:     6000,
				MaxConcurrentOrders: 4,
				ScoreMultiplier:     2,
				TimeMultiplier:      1.0,
				RecipeTier:          "medium",
			},
		},
	}
}

func sessionCatalogs(t *testing.T) *catalogs.Catalogs {
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
	})
	if err != nil {
		t.Fatalf("BuildRecipes: %v", err)
	}
	return &catalogs.Catalogs{Ingredients: ings, Recipes: recipes}
}

func newSession(t *testing.T, diff string, mutate func(*tuning.Tuning)) *Harness {
	t.Helper()
	tun := baseTuning()
	if mutate != nil {
		mutate(&tun)
	}
	return NewHarness(t, tun, diff, sessionCatalogs(t), 1337)
}
