// Package recipe provides the meal-to-ingredients lookup table.
package recipe

import (
	"sort"
	"strings"

	"github.com/freshcart-labs/freshcart/internal/domain"
	"github.com/freshcart-labs/freshcart/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeTable = (*Table)(nil)

// Table is a static in-memory recipe table. It is a plain data lookup,
// not a rules engine: seeded once at construction, read-only afterwards.
type Table struct {
	recipes map[string]domain.Recipe
	log     *logger.Logger
}

// NewTable creates a recipe table preloaded with the built-in meals.
func NewTable(log *logger.Logger) *Table {
	t := &Table{
		recipes: make(map[string]domain.Recipe),
		log:     log,
	}
	t.seed()
	return t
}

// Lookup returns the ingredient list for a meal. The match is
// case-insensitive and trimmed. Returns domain.ErrRecipeNotFound when
// the meal is not in the table; callers should turn that into a spoken
// clarification, never a crash.
func (t *Table) Lookup(meal string) ([]domain.RecipeLine, error) {
	key := strings.ToLower(strings.TrimSpace(meal))
	r, ok := t.recipes[key]
	if !ok {
		t.log.Debug("recipe not found: %q", meal)
		return nil, domain.ErrRecipeNotFound
	}

	// Copy so callers can't mutate the table through the slice.
	lines := make([]domain.RecipeLine, len(r.Lines))
	copy(lines, r.Lines)
	return lines, nil
}

// ListKnown returns all meal names the table knows, sorted.
func (t *Table) ListKnown() []string {
	out := make([]string, 0, len(t.recipes))
	for _, r := range t.recipes {
		out = append(out, r.Name)
	}
	sort.Strings(out)
	return out
}

// seed populates the table with the built-in meals.
func (t *Table) seed() {
	recipes := []domain.Recipe{
		{
			Name: "peanut butter sandwich",
			Lines: []domain.RecipeLine{
				{Item: "bread", Quantity: 1},
				{Item: "peanut butter", Quantity: 1},
			},
		},
		{
			Name: "pasta",
			Lines: []domain.RecipeLine{
				{Item: "pasta", Quantity: 1},
				{Item: "pasta sauce", Quantity: 1},
			},
		},
		{
			Name: "tea",
			Lines: []domain.RecipeLine{
				{Item: "tea powder", Quantity: 1},
				{Item: "milk", Quantity: 1},
				{Item: "sugar", Quantity: 1},
			},
		},
		{
			Name: "veggie omelette",
			Lines: []domain.RecipeLine{
				{Item: "eggs", Quantity: 3},
				{Item: "bell pepper", Quantity: 1},
				{Item: "onions", Quantity: 1},
				{Item: "butter", Quantity: 1},
			},
		},
		{
			Name: "fruit salad",
			Lines: []domain.RecipeLine{
				{Item: "apples", Quantity: 2},
				{Item: "bananas", Quantity: 2},
				{Item: "oranges", Quantity: 2},
			},
		},
	}
	for _, r := range recipes {
		t.recipes[strings.ToLower(r.Name)] = r
	}
	t.log.Debug("seeded %d recipes", len(recipes))
}
