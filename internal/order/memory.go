package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/freshcart-labs/freshcart/internal/domain"
	"github.com/freshcart-labs/freshcart/internal/logger"
)

// Compile-time interface check.
var _ domain.OrderLog = (*MemoryLog)(nil)

// MemoryLog is an in-memory order log. It backs tests and any
// deployment that doesn't care about orders surviving a restart; the
// append-only and unique-id rules match FileLog exactly.
type MemoryLog struct {
	mu     sync.RWMutex
	orders []domain.Order
	log    *logger.Logger
}

// NewMemoryLog creates an empty in-memory order log.
func NewMemoryLog(log *logger.Logger) *MemoryLog {
	return &MemoryLog{log: log}
}

// Append adds one order. Duplicate ids are refused.
func (m *MemoryLog) Append(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders {
		if o.ID == order.ID {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateOrder, order.ID)
		}
	}
	m.orders = append(m.orders, *order)
	m.log.Debug("order %s appended (memory, %d total)", order.ID, len(m.orders))
	return nil
}

// List returns all orders, oldest first.
func (m *MemoryLog) List(ctx context.Context) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Order, len(m.orders))
	copy(out, m.orders)
	return out, nil
}
