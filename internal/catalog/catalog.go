// Package catalog loads the product catalog from a JSON document.
// The catalog is read once at startup and is immutable for the process
// lifetime; there is no reload or mutation path.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/freshcart-labs/freshcart/internal/domain"
	"github.com/freshcart-labs/freshcart/internal/logger"
)

// Catalog is the loaded product list. Lookups are case-insensitive and
// ignore surrounding whitespace; Items preserves document order.
type Catalog struct {
	items  []domain.CatalogItem
	byName map[string]domain.CatalogItem
}

// Load reads and validates a catalog document. Any problem — missing
// file, invalid JSON, empty or duplicate names, negative prices — is
// fatal to the caller and wraps domain.ErrCatalogLoad.
func Load(path string, log *logger.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrCatalogLoad, path, err)
	}

	var items []domain.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrCatalogLoad, path, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s contains no items", domain.ErrCatalogLoad, path)
	}

	c := &Catalog{
		items:  items,
		byName: make(map[string]domain.CatalogItem, len(items)),
	}
	for _, it := range items {
		key := normalize(it.Name)
		if key == "" {
			return nil, fmt.Errorf("%w: item with empty name", domain.ErrCatalogLoad)
		}
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("%w: duplicate item %q", domain.ErrCatalogLoad, it.Name)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("%w: item %q has negative price %.2f", domain.ErrCatalogLoad, it.Name, it.Price)
		}
		c.byName[key] = it
	}

	log.Info("catalog loaded: %d items from %s", len(items), path)
	return c, nil
}

// Lookup resolves an item name. The match is case-insensitive and
// trimmed; the returned item carries the catalog's canonical casing.
func (c *Catalog) Lookup(name string) (domain.CatalogItem, bool) {
	it, ok := c.byName[normalize(name)]
	return it, ok
}

// Items returns all catalog items in document order. The caller must
// not mutate the returned slice.
func (c *Catalog) Items() []domain.CatalogItem {
	return c.items
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
