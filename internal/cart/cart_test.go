package cart

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/freshcart-labs/freshcart/internal/catalog"
	"github.com/freshcart-labs/freshcart/internal/domain"
	"github.com/freshcart-labs/freshcart/internal/logger"
	"github.com/freshcart-labs/freshcart/internal/recipe"
)

const testCatalog = `[
  {"name":"bread","price":2.5},
  {"name":"eggs","price":3.0},
  {"name":"milk","price":3.5},
  {"name":"tea powder","price":4.5},
  {"name":"peanut butter","price":5.75}
]`

func setupCart(t *testing.T) *Cart {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(testCatalog), 0o644); err != nil {
		t.Fatalf("writing catalog fixture: %v", err)
	}
	cat, err := catalog.Load(path, log)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return New(cat, log)
}

func TestAddCumulative(t *testing.T) {
	c := setupCart(t)

	if err := c.Add("bread", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Add("bread", 3); err != nil {
		t.Fatalf("second add: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected cumulative quantity 5, got %d", lines[0].Quantity)
	}
}

func TestAddRejectsUnknownItem(t *testing.T) {
	c := setupCart(t)

	err := c.Add("caviar", 1)
	uie := domain.AsUnknownItem(err)
	if uie == nil {
		t.Fatalf("expected UnknownItemError, got %v", err)
	}
	if uie.Item != "caviar" {
		t.Fatalf("expected offending item 'caviar', got %q", uie.Item)
	}
	if c.Len() != 0 {
		t.Fatal("cart was mutated by a rejected add")
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	c := setupCart(t)

	for _, qty := range []int{0, -1} {
		if err := c.Add("bread", qty); err == nil {
			t.Fatalf("expected error for quantity %d", qty)
		}
	}
	if c.Len() != 0 {
		t.Fatal("cart was mutated by a rejected add")
	}
}

func TestSetQuantity(t *testing.T) {
	c := setupCart(t)

	if err := c.Add("milk", 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Overwrite, not accumulate.
	if err := c.SetQuantity("milk", 7); err != nil {
		t.Fatalf("set: %v", err)
	}
	if lines := c.Lines(); lines[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", lines[0].Quantity)
	}

	// Setting an absent item creates the line.
	if err := c.SetQuantity("eggs", 12); err != nil {
		t.Fatalf("set absent: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", c.Len())
	}

	// Zero or negative removes the line — never kept at zero.
	if err := c.SetQuantity("milk", 0); err != nil {
		t.Fatalf("set zero: %v", err)
	}
	for _, l := range c.Lines() {
		if l.Item == "milk" {
			t.Fatal("zero-quantity line was retained")
		}
		if l.Quantity <= 0 {
			t.Fatalf("line %q holds non-positive quantity %d", l.Item, l.Quantity)
		}
	}

	if err := c.SetQuantity("caviar", 1); domain.AsUnknownItem(err) == nil {
		t.Fatalf("expected UnknownItemError, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	c := setupCart(t)

	if err := c.Add("bread", 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	c.Remove("BREAD") // case-insensitive like every other lookup
	if c.Len() != 0 {
		t.Fatal("expected empty cart after remove")
	}

	// Removing what isn't there is a no-op, not an error.
	c.Remove("bread")
	c.Remove("caviar")
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	c := setupCart(t)

	for _, item := range []string{"milk", "bread", "eggs"} {
		if err := c.Add(item, 1); err != nil {
			t.Fatalf("add %s: %v", item, err)
		}
	}
	c.Remove("bread")
	if err := c.Add("bread", 2); err != nil {
		t.Fatalf("re-add: %v", err)
	}

	got := make([]string, 0, 3)
	for _, l := range c.Lines() {
		got = append(got, l.Item)
	}
	want := []string{"milk", "eggs", "bread"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
}

func TestTotalMatchesRecomputation(t *testing.T) {
	c := setupCart(t)

	// An arbitrary mutation sequence; the invariant must hold after
	// every step.
	steps := []func() error{
		func() error { return c.Add("bread", 2) },
		func() error { return c.Add("eggs", 1) },
		func() error { return c.SetQuantity("bread", 4) },
		func() error { c.Remove("eggs"); return nil },
		func() error { return c.Add("milk", 3) },
		func() error { return c.SetQuantity("milk", 0) },
	}

	prices := map[string]float64{"bread": 2.5, "eggs": 3.0, "milk": 3.5}

	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		var want float64
		for _, l := range c.Lines() {
			want += float64(l.Quantity) * prices[l.Item]
		}
		if got := c.Total(); got != Round2(want) {
			t.Fatalf("after step %d: total %.2f, independently recomputed %.2f", i, got, want)
		}
	}
}

func TestTotalWorkedExample(t *testing.T) {
	c := setupCart(t)

	// catalog: bread 2.50, eggs 3.00
	if err := c.Add("bread", 2); err != nil {
		t.Fatalf("add bread: %v", err)
	}
	if err := c.Add("eggs", 1); err != nil {
		t.Fatalf("add eggs: %v", err)
	}
	if got := c.Total(); got != 8.00 {
		t.Fatalf("expected total 8.00, got %.2f", got)
	}
}

func TestEmptyCartTotalsZero(t *testing.T) {
	c := setupCart(t)
	if got := c.Total(); got != 0 {
		t.Fatalf("expected 0, got %.2f", got)
	}
}

func TestApplyRecipe(t *testing.T) {
	c := setupCart(t)
	log := logger.New(logger.LevelOff, nil)
	table := recipe.NewTable(log)

	lines, err := c.ApplyRecipe(table, "Peanut Butter Sandwich")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(lines))
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 cart lines, got %d", c.Len())
	}
}

func TestApplyRecipeAllOrNothing(t *testing.T) {
	c := setupCart(t)
	log := logger.New(logger.LevelOff, nil)
	table := recipe.NewTable(log)

	if err := c.Add("bread", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	before := c.Lines()

	// The tea recipe needs sugar, which the test catalog doesn't carry.
	_, err := c.ApplyRecipe(table, "tea")
	uie := domain.AsUnknownItem(err)
	if uie == nil {
		t.Fatalf("expected UnknownItemError, got %v", err)
	}
	if uie.Item != "sugar" {
		t.Fatalf("expected offending ingredient 'sugar', got %q", uie.Item)
	}

	if !reflect.DeepEqual(c.Lines(), before) {
		t.Fatalf("cart changed by a failed recipe apply: before=%v after=%v", before, c.Lines())
	}
}

func TestApplyRecipeUnknownMeal(t *testing.T) {
	c := setupCart(t)
	log := logger.New(logger.LevelOff, nil)
	table := recipe.NewTable(log)

	if _, err := c.ApplyRecipe(table, "lasagna"); err != domain.ErrRecipeNotFound {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatal("cart was mutated by an unknown meal")
	}
}

func TestClear(t *testing.T) {
	c := setupCart(t)

	if err := c.Add("bread", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	c.Clear()
	if c.Len() != 0 || c.Total() != 0 {
		t.Fatal("expected empty cart after clear")
	}

	// The cart stays usable after a clear.
	if err := c.Add("milk", 1); err != nil {
		t.Fatalf("add after clear: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", c.Len())
	}
}
