package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freshcart-labs/freshcart/internal/cart"
	"github.com/freshcart-labs/freshcart/internal/catalog"
	"github.com/freshcart-labs/freshcart/internal/domain"
	"github.com/freshcart-labs/freshcart/internal/logger"
)

// Writer turns a cart into an immutable order record and appends it to
// the order log.
type Writer struct {
	orders  domain.OrderLog
	catalog *catalog.Catalog
	log     *logger.Logger
	now     func() time.Time // overridable in tests
}

// NewWriter creates an order writer.
func NewWriter(orders domain.OrderLog, cat *catalog.Catalog, log *logger.Logger) *Writer {
	return &Writer{
		orders:  orders,
		catalog: cat,
		log:     log,
		now:     time.Now,
	}
}

// PlaceOrder snapshots the cart, appends the order to the log, and
// clears the cart. An empty cart is refused with domain.ErrEmptyCart.
// The total is recomputed from current catalog prices at this moment,
// never taken from any earlier cart state. If the append fails the cart
// is left untouched so the user can retry without re-building it.
func (w *Writer) PlaceOrder(ctx context.Context, c *cart.Cart) (*domain.Order, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var total float64
	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		it, ok := w.catalog.Lookup(line.Item)
		if !ok {
			// Cart lines are validated on the way in, so a miss here
			// means the cart and catalog disagree about what exists.
			return nil, &domain.UnknownItemError{Item: line.Item}
		}
		orderLines = append(orderLines, domain.OrderLine{
			Item:      it.Name,
			Quantity:  line.Quantity,
			UnitPrice: it.Price,
		})
		total += float64(line.Quantity) * it.Price
	}

	ord := &domain.Order{
		ID:        w.newOrderID(),
		Lines:     orderLines,
		Total:     cart.Round2(total),
		CreatedAt: w.now().UTC(),
		Status:    domain.OrderStatusReceived,
	}

	if err := w.orders.Append(ctx, ord); err != nil {
		w.log.Error("placing order %s: %v", ord.ID, err)
		return nil, err
	}

	c.Clear()
	w.log.Info("order %s placed: %d lines, total %.2f", ord.ID, len(ord.Lines), ord.Total)
	return ord, nil
}

// newOrderID generates an order id of the form ORD-<unix>-<hex>. The
// timestamp keeps ids roughly sortable; the random suffix keeps two
// orders in the same second, or across restarts, from colliding.
func (w *Writer) newOrderID() string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("ORD-%d-%s", w.now().Unix(), suffix)
}
