package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lfmorais/stockledger/internal/core/domain"
	"github.com/lfmorais/stockledger/internal/port"
)

// DefaultLedgerKey is the blob key the sales collection is stored under.
const DefaultLedgerKey = "ledger:sales"

// SaleInput carries every sale field except the id, which the ledger assigns.
type SaleInput struct {
	Product   string
	Brand     string
	Color     string
	Size      string
	UnitPrice decimal.Decimal
	Quantity  int
	Total     decimal.Decimal
	SoldAt    time.Time
}

// Ledger owns the sales collection. It is append-only: entries are never
// edited, and the single destructive operation is Clear. Whether a sale is
// allowed at all is the coordinator's call, not the ledger's.
type Ledger struct {
	blobs  port.BlobStore
	key    string
	logger *zap.Logger

	mu     sync.RWMutex
	sales  []domain.Sale
	nextID int64
}

// OpenLedger loads the sales collection. An absent key means an empty ledger.
func OpenLedger(ctx context.Context, blobs port.BlobStore, key string, logger *zap.Logger) (*Ledger, error) {
	if key == "" {
		key = DefaultLedgerKey
	}

	data, err := blobs.Get(ctx, key)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Key: key, Err: err}
	}

	var sales []domain.Sale
	if data != nil {
		if err := json.Unmarshal(data, &sales); err != nil {
			return nil, fmt.Errorf("decode ledger blob %q: %w", key, err)
		}
	}

	var nextID int64 = 1
	for _, s := range sales {
		if s.ID >= nextID {
			nextID = s.ID + 1
		}
	}

	return &Ledger{
		blobs:  blobs,
		key:    key,
		logger: logger,
		sales:  sales,
		nextID: nextID,
	}, nil
}

// List returns the sales in insertion order. Time ordering is a reporting
// concern.
func (l *Ledger) List() []domain.Sale {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Sale, len(l.sales))
	copy(out, l.sales)
	return out
}

// Append assigns a fresh id and records the sale. Only structural completeness
// is checked here. A zero SoldAt is stamped with the current time.
func (l *Ledger) Append(ctx context.Context, in SaleInput) (domain.Sale, error) {
	if in.Product == "" {
		return domain.Sale{}, domain.Validationf("sale product name is required")
	}
	if in.SoldAt.IsZero() {
		in.SoldAt = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	s := domain.Sale{
		ID:        l.nextID,
		Product:   in.Product,
		Brand:     in.Brand,
		Color:     in.Color,
		Size:      in.Size,
		UnitPrice: in.UnitPrice,
		Quantity:  in.Quantity,
		Total:     in.Total,
		SoldAt:    in.SoldAt,
	}
	l.nextID++

	l.sales = append(l.sales, s)
	if err := l.flush(ctx); err != nil {
		l.sales = l.sales[:len(l.sales)-1]
		return domain.Sale{}, err
	}

	l.logger.Info("sale appended",
		zap.Int64("id", s.ID),
		zap.String("product", s.Product),
		zap.Int("quantity", s.Quantity),
		zap.String("total", s.Total.String()),
	)
	return s, nil
}

// Clear empties the ledger and removes its blob. Deliberate and irreversible;
// nothing calls this implicitly.
func (l *Ledger) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.sales
	l.sales = nil
	if err := l.blobs.Delete(ctx, l.key); err != nil {
		l.sales = prev
		return &domain.PersistenceError{Op: "delete", Key: l.key, Err: err}
	}

	l.logger.Info("ledger cleared", zap.Int("entries_dropped", len(prev)))
	return nil
}

// flush writes the whole collection back. Callers hold the mutex.
func (l *Ledger) flush(ctx context.Context) error {
	data, err := json.Marshal(l.sales)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := l.blobs.Set(ctx, l.key, data); err != nil {
		return &domain.PersistenceError{Op: "write", Key: l.key, Err: err}
	}
	return nil
}
