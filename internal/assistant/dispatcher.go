package assistant

import (
	"context"
	"errors"

	"github.com/freshcart-labs/freshcart/internal/cart"
	"github.com/freshcart-labs/freshcart/internal/catalog"
	"github.com/freshcart-labs/freshcart/internal/domain"
	"github.com/freshcart-labs/freshcart/internal/logger"
	"github.com/freshcart-labs/freshcart/internal/order"
)

// Dispatcher maps parsed intents onto cart, recipe, and order
// operations and renders each outcome as a line to speak back. It owns
// the session state (the cart) explicitly — no framework context object
// is threaded through. It performs no speech or language-model work;
// arguments arrive already extracted.
//
// Every recoverable error is converted to a reply here; nothing a user
// says can terminate the session.
type Dispatcher struct {
	catalog *catalog.Catalog
	recipes domain.RecipeTable
	cart    *cart.Cart
	writer  *order.Writer
	log     *logger.Logger
}

// New creates a dispatcher for one conversation session.
func New(cat *catalog.Catalog, recipes domain.RecipeTable, c *cart.Cart, w *order.Writer, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		catalog: cat,
		recipes: recipes,
		cart:    c,
		writer:  w,
		log:     log,
	}
}

// Cart exposes the session cart for the display's status bar.
func (d *Dispatcher) Cart() *cart.Cart { return d.cart }

// Dispatch executes one intent and returns the reply to speak.
func (d *Dispatcher) Dispatch(ctx context.Context, intent *domain.Intent) string {
	d.log.Debug("dispatch: %s (item=%q qty=%d)", intent.Type, intent.Item, intent.Quantity)

	switch intent.Type {
	case domain.IntentAddItem:
		return d.addItem(intent.Item, intent.Quantity)
	case domain.IntentRemoveItem:
		return d.removeItem(intent.Item)
	case domain.IntentSetQuantity:
		return d.setQuantity(intent.Item, intent.Quantity)
	case domain.IntentApplyRecipe:
		return d.applyRecipe(intent.Item)
	case domain.IntentShowCart:
		return d.showCart()
	case domain.IntentPlaceOrder:
		return d.placeOrder(ctx)
	case domain.IntentListRecipes:
		return LineKnownRecipes(d.recipes.ListKnown())
	case domain.IntentShowCatalog:
		return LineCatalog(d.catalog.Items())
	default:
		return LineUnknown(intent.Raw)
	}
}

func (d *Dispatcher) addItem(item string, quantity int) string {
	// The classifier can hand back a negative count; refuse it rather
	// than guessing what the user meant.
	if quantity < 0 {
		return LineBadQuantity()
	}
	if quantity == 0 {
		quantity = 1 // "add milk" means one
	}

	if err := d.cart.Add(item, quantity); err != nil {
		if uie := domain.AsUnknownItem(err); uie != nil {
			return LineUnknownItem(uie.Item)
		}
		d.log.Error("add %q x%d: %v", item, quantity, err)
		return LineBadQuantity()
	}

	// Report the post-add quantity so "add 2 milk" twice reads back
	// as four, matching what will be ordered.
	newTotal := quantity
	for _, l := range d.cart.Lines() {
		if it, ok := d.catalog.Lookup(item); ok && l.Item == it.Name {
			newTotal = l.Quantity
		}
	}
	return LineAdded(canonical(d.catalog, item), quantity, newTotal)
}

func (d *Dispatcher) removeItem(item string) string {
	name := canonical(d.catalog, item)

	present := false
	for _, l := range d.cart.Lines() {
		if l.Item == name {
			present = true
			break
		}
	}
	d.cart.Remove(item)

	if !present {
		return LineNotInCart(name)
	}
	return LineRemoved(name)
}

func (d *Dispatcher) setQuantity(item string, quantity int) string {
	if err := d.cart.SetQuantity(item, quantity); err != nil {
		if uie := domain.AsUnknownItem(err); uie != nil {
			return LineUnknownItem(uie.Item)
		}
		d.log.Error("set %q to %d: %v", item, quantity, err)
		return LineUnknown("")
	}
	name := canonical(d.catalog, item)
	if quantity <= 0 {
		return LineRemoved(name)
	}
	return LineQuantitySet(name, quantity)
}

func (d *Dispatcher) applyRecipe(meal string) string {
	lines, err := d.cart.ApplyRecipe(d.recipes, meal)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return LineRecipeNotFound(meal)
		}
		if uie := domain.AsUnknownItem(err); uie != nil {
			return LineRecipeIngredientMissing(meal, uie.Item)
		}
		d.log.Error("apply recipe %q: %v", meal, err)
		return LineUnknown("")
	}
	return LineRecipeApplied(meal, lines)
}

func (d *Dispatcher) showCart() string {
	lines := d.cart.Lines()
	if len(lines) == 0 {
		return LineCartEmpty()
	}
	return LineCartContents(lines, d.cart.Total())
}

func (d *Dispatcher) placeOrder(ctx context.Context) string {
	ord, err := d.writer.PlaceOrder(ctx, d.cart)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			return LineOrderEmptyCart()
		}
		d.log.Error("place order: %v", err)
		return LineOrderFailed()
	}
	return LineOrderPlaced(ord)
}

// canonical returns the catalog's casing for an item name, or the input
// unchanged when the item is not carried.
func canonical(cat *catalog.Catalog, item string) string {
	if it, ok := cat.Lookup(item); ok {
		return it.Name
	}
	return item
}
