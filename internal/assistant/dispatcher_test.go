package assistant

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/freshcart-labs/freshcart/internal/cart"
	"github.com/freshcart-labs/freshcart/internal/catalog"
	"github.com/freshcart-labs/freshcart/internal/domain"
	"github.com/freshcart-labs/freshcart/internal/logger"
	"github.com/freshcart-labs/freshcart/internal/order"
	"github.com/freshcart-labs/freshcart/internal/recipe"
)

const testCatalog = `[
  {"name":"bread","price":2.5},
  {"name":"eggs","price":3.0},
  {"name":"milk","price":3.5},
  {"name":"tea powder","price":4.5},
  {"name":"peanut butter","price":5.75}
]`

func setupDispatcher(t *testing.T) (*Dispatcher, domain.OrderLog) {
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

	c := cart.New(cat, log)
	orders := order.NewMemoryLog(log)
	writer := order.NewWriter(orders, cat, log)
	recipes := recipe.NewTable(log)

	return New(cat, recipes, c, writer, log), orders
}

func dispatch(t *testing.T, d *Dispatcher, intent *domain.Intent) string {
	t.Helper()
	reply := d.Dispatch(context.Background(), intent)
	if reply == "" {
		t.Fatalf("empty reply for intent %s", intent.Type)
	}
	return reply
}

func TestAddShowPlaceFlow(t *testing.T) {
	d, orders := setupDispatcher(t)

	dispatch(t, d, &domain.Intent{Type: domain.IntentAddItem, Item: "bread", Quantity: 2})
	dispatch(t, d, &domain.Intent{Type: domain.IntentAddItem, Item: "eggs", Quantity: 1})

	reply := dispatch(t, d, &domain.Intent{Type: domain.IntentShowCart})
	if !strings.Contains(reply, "2 bread") || !strings.Contains(reply, "1 eggs") {
		t.Fatalf("cart reply missing lines: %q", reply)
	}
	if !strings.Contains(reply, "8.00") {
		t.Fatalf("cart reply missing total 8.00: %q", reply)
	}

	reply = dispatch(t, d, &domain.Intent{Type: domain.IntentPlaceOrder})
	if !strings.Contains(reply, "ORD-") || !strings.Contains(reply, "8.00") {
		t.Fatalf("order reply missing id or total: %q", reply)
	}

	if d.Cart().Len() != 0 {
		t.Fatal("cart not cleared after order")
	}
	logged, _ := orders.List(context.Background())
	if len(logged) != 1 {
		t.Fatalf("expected 1 logged order, got %d", len(logged))
	}
	if logged[0].Total != 8.00 {
		t.Fatalf("expected logged total 8.00, got %.2f", logged[0].Total)
	}
}

func TestAddUnknownItem(t *testing.T) {
	d, _ := setupDispatcher(t)

	reply := dispatch(t, d, &domain.Intent{Type: domain.IntentAddItem, Item: "caviar", Quantity: 1})
	if !strings.Contains(reply, "caviar") {
		t.Fatalf("reply should name the unknown item: %q", reply)
	}
	if d.Cart().Len() != 0 {
		t.Fatal("cart was mutated by an unknown item")
	}
}

func TestAddDefaultsToOne(t *testing.T) {
	d, _ := setupDispatcher(t)

	// "add milk" with no number means one.
	dispatch(t, d, &domain.Intent{Type: domain.IntentAddItem, Item: "milk"})
	lines := d.Cart().Lines()
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("expected milk x1, got %v", lines)
	}
}

func TestAddNegativeQuantity(t *testing.T) {
	d, _ := setupDispatcher(t)

	// A misbehaving classifier can emit a negative count; it must be
	// refused, not rounded up to one.
	reply := dispatch(t, d, &domain.Intent{Type: domain.IntentAddItem, Item: "milk", Quantity: -2})
	if !strings.Contains(reply, "at least one") {
		t.Fatalf("expected a quantity complaint, got: %q", reply)
	}
	if d.Cart().Len() != 0 {
		t.Fatal("cart was mutated by a negative quantity")
	}
}

func TestRemoveItem(t *testing.T) {
	d, _ := setupDispatcher(t)

	dispatch(t, d, &domain.Intent{Type: domain.IntentAddItem, Item: "milk", Quantity: 1})
	reply := dispatch(t, d, &domain.Intent{Type: domain.IntentRemoveItem, Item: "milk"})
	if !strings.Contains(reply, "Removed") {
		t.Fatalf("unexpected remove reply: %q", reply)
	}

	// Removing again is answered gracefully, not an error.
	reply = dispatch(t, d, &domain.Intent{Type: domain.IntentRemoveItem, Item: "milk"})
	if !strings.Contains(reply, "no milk") {
		t.Fatalf("unexpected reply for absent item: %q", reply)
	}
}

func TestSetQuantity(t *testing.T) {
	d, _ := setupDispatcher(t)

	dispatch(t, d, &domain.Intent{Type: domain.IntentAddItem, Item: "eggs", Quantity: 2})
	dispatch(t, d, &domain.Intent{Type: domain.IntentSetQuantity, Item: "eggs", Quantity: 6})

	lines := d.Cart().Lines()
	if len(lines) != 1 || lines[0].Quantity != 6 {
		t.Fatalf("expected eggs x6, got %v", lines)
	}

	// Setting to zero removes.
	dispatch(t, d, &domain.Intent{Type: domain.IntentSetQuantity, Item: "eggs", Quantity: 0})
	if d.Cart().Len() != 0 {
		t.Fatal("expected empty cart after setting quantity to zero")
	}
}

func TestApplyRecipeAllOrNothing(t *testing.T) {
	d, _ := setupDispatcher(t)

	dispatch(t, d, &domain.Intent{Type: domain.IntentAddItem, Item: "bread", Quantity: 1})

	// tea needs sugar, which this catalog doesn't carry — the reply
	// names the missing ingredient and the cart is untouched.
	reply := dispatch(t, d, &domain.Intent{Type: domain.IntentApplyRecipe, Item: "tea"})
	if !strings.Contains(reply, "sugar") {
		t.Fatalf("reply should name the missing ingredient: %q", reply)
	}

	lines := d.Cart().Lines()
	if len(lines) != 1 || lines[0].Item != "bread" {
		t.Fatalf("cart changed by failed recipe: %v", lines)
	}
}

func TestApplyRecipeSuccess(t *testing.T) {
	d, _ := setupDispatcher(t)

	reply := dispatch(t, d, &domain.Intent{Type: domain.IntentApplyRecipe, Item: "peanut butter sandwich"})
	if !strings.Contains(reply, "bread") || !strings.Contains(reply, "peanut butter") {
		t.Fatalf("reply should list the ingredients: %q", reply)
	}
	if d.Cart().Len() != 2 {
		t.Fatalf("expected 2 cart lines, got %d", d.Cart().Len())
	}
}

func TestApplyRecipeUnknownMeal(t *testing.T) {
	d, _ := setupDispatcher(t)

	reply := dispatch(t, d, &domain.Intent{Type: domain.IntentApplyRecipe, Item: "lasagna"})
	if !strings.Contains(reply, "lasagna") {
		t.Fatalf("reply should name the unknown meal: %q", reply)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	d, orders := setupDispatcher(t)

	reply := dispatch(t, d, &domain.Intent{Type: domain.IntentPlaceOrder})
	if !strings.Contains(strings.ToLower(reply), "empty") {
		t.Fatalf("unexpected empty-cart reply: %q", reply)
	}

	logged, _ := orders.List(context.Background())
	if len(logged) != 0 {
		t.Fatalf("empty order reached the log: %d entries", len(logged))
	}
}

func TestShowEmptyCart(t *testing.T) {
	d, _ := setupDispatcher(t)

	reply := dispatch(t, d, &domain.Intent{Type: domain.IntentShowCart})
	if !strings.Contains(strings.ToLower(reply), "empty") {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestUnknownIntentAsksForClarification(t *testing.T) {
	d, _ := setupDispatcher(t)

	reply := dispatch(t, d, &domain.Intent{Type: domain.IntentUnknown, Raw: "sing me a song"})
	if !strings.Contains(reply, "sing me a song") {
		t.Fatalf("clarification should echo the input: %q", reply)
	}
}

func TestListRecipesAndCatalog(t *testing.T) {
	d, _ := setupDispatcher(t)

	reply := dispatch(t, d, &domain.Intent{Type: domain.IntentListRecipes})
	if !strings.Contains(reply, "pasta") {
		t.Fatalf("recipe list missing pasta: %q", reply)
	}

	reply = dispatch(t, d, &domain.Intent{Type: domain.IntentShowCatalog})
	if !strings.Contains(reply, "milk") || !strings.Contains(reply, "3.50") {
		t.Fatalf("catalog reply missing items or prices: %q", reply)
	}
}
