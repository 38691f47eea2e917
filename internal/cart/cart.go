// Package cart implements the session shopping cart.
//
// The cart is scoped to a single conversation: one cart per process,
// discarded when the conversation ends without an order. A mutex guards
// the line map because the display's status bar reads the cart from the
// UI goroutine while the conversation loop mutates it.
package cart

import (
	"fmt"
	"math"
	"sync"

	"github.com/freshcart-labs/freshcart/internal/catalog"
	"github.com/freshcart-labs/freshcart/internal/domain"
	"github.com/freshcart-labs/freshcart/internal/logger"
)

// Cart holds the items the user has picked so far. Lines keep the
// insertion order of their first add; a line removed and re-added moves
// to the end. Quantities are always positive — a removal deletes the
// line rather than leaving it at zero.
type Cart struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	lines   []*domain.CartLine
	index   map[string]*domain.CartLine // canonical item name -> line
	log     *logger.Logger
}

// New creates an empty cart backed by the given catalog.
func New(cat *catalog.Catalog, log *logger.Logger) *Cart {
	return &Cart{
		catalog: cat,
		index:   make(map[string]*domain.CartLine),
		log:     log,
	}
}

// Add puts quantity units of an item into the cart. Adding an item that
// is already present is cumulative, not a replacement. The item must
// resolve in the catalog and quantity must be positive; nothing is
// mutated otherwise.
func (c *Cart) Add(item string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	it, ok := c.catalog.Lookup(item)
	if !ok {
		return &domain.UnknownItemError{Item: item}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, exists := c.index[it.Name]; exists {
		line.Quantity += quantity
		c.log.Debug("cart: %s -> %d (cumulative)", it.Name, line.Quantity)
		return nil
	}

	line := &domain.CartLine{Item: it.Name, Quantity: quantity}
	c.lines = append(c.lines, line)
	c.index[it.Name] = line
	c.log.Debug("cart: added %s x%d", it.Name, quantity)
	return nil
}

// SetQuantity overwrites the quantity of an item. A quantity of zero or
// less removes the line. The item must resolve in the catalog.
func (c *Cart) SetQuantity(item string, quantity int) error {
	it, ok := c.catalog.Lookup(item)
	if !ok {
		return &domain.UnknownItemError{Item: item}
	}

	if quantity <= 0 {
		c.Remove(it.Name)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, exists := c.index[it.Name]; exists {
		line.Quantity = quantity
	} else {
		line := &domain.CartLine{Item: it.Name, Quantity: quantity}
		c.lines = append(c.lines, line)
		c.index[it.Name] = line
	}
	c.log.Debug("cart: set %s to %d", it.Name, quantity)
	return nil
}

// Remove deletes an item's line. Removing an absent item is a no-op,
// not an error — "remove the eggs" when there are none is harmless.
func (c *Cart) Remove(item string) {
	name := item
	if it, ok := c.catalog.Lookup(item); ok {
		name = it.Name
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.index[name]; !exists {
		return
	}
	delete(c.index, name)
	for i, line := range c.lines {
		if line.Item == name {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
	c.log.Debug("cart: removed %s", name)
}

// ApplyRecipe adds every ingredient of a meal to the cart. The apply is
// all-or-nothing: every ingredient is resolved against the catalog
// before any line is touched, so an unknown ingredient leaves the cart
// exactly as it was.
func (c *Cart) ApplyRecipe(table domain.RecipeTable, meal string) ([]domain.RecipeLine, error) {
	lines, err := table.Lookup(meal)
	if err != nil {
		return nil, err
	}

	for _, rl := range lines {
		if _, ok := c.catalog.Lookup(rl.Item); !ok {
			return nil, &domain.UnknownItemError{Item: rl.Item}
		}
	}

	for _, rl := range lines {
		if err := c.Add(rl.Item, rl.Quantity); err != nil {
			// Unreachable after the pre-check; surfaced anyway so a
			// bug here can't fail silently.
			return nil, err
		}
	}

	c.log.Info("cart: applied recipe %q (%d ingredients)", meal, len(lines))
	return lines, nil
}

// Lines returns a snapshot of the cart in first-add order.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.CartLine, len(c.lines))
	for i, line := range c.lines {
		out[i] = *line
	}
	return out
}

// Total recomputes the cart's cost from current catalog prices,
// rounded to cents. An empty cart totals zero.
func (c *Cart) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total float64
	for _, line := range c.lines {
		if it, ok := c.catalog.Lookup(line.Item); ok {
			total += float64(line.Quantity) * it.Price
		}
	}
	return Round2(total)
}

// Len returns the number of distinct lines in the cart.
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.index = make(map[string]*domain.CartLine)
	c.log.Debug("cart: cleared")
}

// Round2 rounds a price to two decimals. Totals are rounded once at the
// edge, never per line.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
