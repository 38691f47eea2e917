// Package domain defines the core types and interfaces for the grocery
// assistant. All other packages depend on domain; domain depends on nothing.
package domain

import "time"

// CatalogItem is a single product the store carries. The catalog is
// loaded once at startup and never mutated afterwards.
type CatalogItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// RecipeLine is one ingredient of a recipe: a catalog item name and how
// many units of it the recipe needs.
type RecipeLine struct {
	Item     string
	Quantity int
}

// Recipe maps a meal name to its ingredient list, in cooking order.
type Recipe struct {
	Name  string
	Lines []RecipeLine
}

// CartLine is one entry in the session cart. Quantity is always > 0;
// a line whose quantity drops to zero is deleted, never kept.
type CartLine struct {
	Item     string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// OrderLine is a CartLine snapshot enriched with the unit price that was
// current at order time.
type OrderLine struct {
	Item      string  `json:"item_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order is a finalized cart, immutable once written to the order log.
type Order struct {
	ID        string      `json:"order_id"`
	Lines     []OrderLine `json:"lines"`
	Total     float64     `json:"total_cost"`
	CreatedAt time.Time   `json:"created_at"`
	Status    string      `json:"status"`
}

// OrderStatusReceived is the only status this system writes. Fulfilment
// systems downstream may rewrite it in their own copies, never in the log.
const OrderStatusReceived = "received"
