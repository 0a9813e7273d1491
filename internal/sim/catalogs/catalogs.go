package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Catalogs struct {
	Ingredients IngredientCatalog
	Recipes     RecipeCatalog
}

type IngredientCatalog struct {
	Palette []string
	Index   map[string]uint16
	Defs    map[string]IngredientDef
	Digest  string
}

type IngredientDef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RecipeCatalog struct {
	ByDish map[string]RecipeDef
	// byNeed maps a canonical multiset key to the dish it produces. Required
	// ingredient multisets are pairwise distinct, enforced at load, so a key
	// resolves to at most one dish.
	byNeed map[string]string
	Digest string
}

// RecipeDef is static data, never mutated at runtime.
type RecipeDef struct {
	Dish        string   `json:"dish"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Complexity  int      `json:"complexity"`
	BaseTimeMs  int64    `json:"base_time_ms"`
	Tier        string   `json:"tier"` // "simple","medium","hard"
	BaseScore   int      `json:"base_score"`
}

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs

	if err := loadIngredients(filepath.Join(configDir, "ingredients.json"), &c.Ingredients); err != nil {
		return nil, err
	}
	if err := loadRecipes(filepath.Join(configDir, "recipes.json"), &c.Recipes); err != nil {
		return nil, err
	}
	for dish, r := range c.Recipes.ByDish {
		for _, ing := range r.Ingredients {
			if _, ok := c.Ingredients.Defs[ing]; !ok {
				return nil, fmt.Errorf("recipes.json: %s references unknown ingredient %q", dish, ing)
			}
		}
	}
	return &c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func loadIngredients(path string, out *IngredientCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var defs []IngredientDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("ingredients.json: %w", err)
	}
	c, err := BuildIngredients(defs)
	if err != nil {
		return fmt.Errorf("ingredients.json: %w", err)
	}
	c.Digest = sha256Hex(raw)
	*out = c
	return nil
}

// BuildIngredients assembles the catalog from in-memory defs (tests, tools).
func BuildIngredients(defs []IngredientDef) (IngredientCatalog, error) {
	var out IngredientCatalog
	out.Defs = map[string]IngredientDef{}
	for _, d := range defs {
		if d.ID == "" {
			return out, fmt.Errorf("empty ingredient id")
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out.Palette = ids
	out.Index = make(map[string]uint16, len(ids))
	for i, id := range ids {
		out.Index[id] = uint16(i)
	}
	return out, nil
}

func loadRecipes(path string, out *RecipeCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var defs []RecipeDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("recipes.json: %w", err)
	}
	c, err := BuildRecipes(defs)
	if err != nil {
		return fmt.Errorf("recipes.json: %w", err)
	}
	c.Digest = sha256Hex(raw)
	*out = c
	return nil
}

// BuildRecipes assembles the catalog from in-memory defs, rejecting duplicate
// dishes and duplicate required-ingredient multisets (the distinctness that
// makes Match unambiguous by construction).
func BuildRecipes(defs []RecipeDef) (RecipeCatalog, error) {
	var out RecipeCatalog
	out.ByDish = map[string]RecipeDef{}
	out.byNeed = map[string]string{}
	for _, r := range defs {
		if r.Dish == "" {
			return out, fmt.Errorf("empty dish id")
		}
		if len(r.Ingredients) == 0 {
			return out, fmt.Errorf("%s has no ingredients", r.Dish)
		}
		if r.BaseTimeMs <= 0 {
			return out, fmt.Errorf("%s has no base time", r.Dish)
		}
		if _, dup := out.ByDish[r.Dish]; dup {
			return out, fmt.Errorf("duplicate dish %s", r.Dish)
		}
		key := MultisetKey(r.Ingredients)
		if prev, dup := out.byNeed[key]; dup {
			return out, fmt.Errorf("%s and %s share the ingredient multiset %s", prev, r.Dish, key)
		}
		out.ByDish[r.Dish] = r
		out.byNeed[key] = r.Dish
	}
	return out, nil
}

// MultisetKey canonicalizes an ingredient multiset: order-independent,
// duplicates significant.
func MultisetKey(ingredients []string) string {
	s := make([]string, len(ingredients))
	copy(s, ingredients)
	sort.Strings(s)
	return strings.Join(s, "+")
}

// Match returns the dish whose required ingredients equal the given multiset
// exactly. There is no partial-match scoring.
func (c *RecipeCatalog) Match(ingredients []string) (string, bool) {
	dish, ok := c.byNeed[MultisetKey(ingredients)]
	return dish, ok
}

func (c *RecipeCatalog) ForTier(tier string) []RecipeDef {
	out := make([]RecipeDef, 0, len(c.ByDish))
	for _, r := range c.ByDish {
		if r.Tier == tier {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dish < out[j].Dish })
	return out
}
