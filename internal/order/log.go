// Package order finalizes carts into persisted order records.
package order

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/freshcart-labs/freshcart/internal/domain"
	"github.com/freshcart-labs/freshcart/internal/logger"
)

// Compile-time interface check.
var _ domain.OrderLog = (*FileLog)(nil)

// FileLog persists orders as a JSON array in a single file. The file is
// created on the first order. Appends are read-modify-write through a
// temp file and rename, so a failed write can never corrupt the entries
// already on disk. The log is append-only: existing records are never
// rewritten or deleted.
type FileLog struct {
	path string
	log  *logger.Logger
}

// NewFileLog creates a log backed by the given path. The file itself is
// not touched until the first append.
func NewFileLog(path string, log *logger.Logger) *FileLog {
	return &FileLog{path: path, log: log}
}

// List returns every order in the log, oldest first. A missing file is
// an empty log, not an error.
func (f *FileLog) List(ctx context.Context) ([]domain.Order, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading order log %s: %w", f.path, err)
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("parsing order log %s: %w", f.path, err)
	}
	return orders, nil
}

// Append adds one order to the log. Duplicate order ids are refused so
// a retried placement can never double-write.
func (f *FileLog) Append(ctx context.Context, order *domain.Order) error {
	existing, err := f.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOrderPersist, err)
	}

	for _, o := range existing {
		if o.ID == order.ID {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateOrder, order.ID)
		}
	}

	existing = append(existing, *order)

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding: %v", domain.ErrOrderPersist, err)
	}

	if err := f.writeAtomic(data); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOrderPersist, err)
	}

	f.log.Info("order %s appended to %s (%d total)", order.ID, f.path, len(existing))
	return nil
}

// writeAtomic writes data to a temp file in the log's directory and
// renames it over the log, so readers never see a half-written file.
func (f *FileLog) writeAtomic(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".orders-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
