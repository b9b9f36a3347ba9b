package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lfmorais/stockledger/internal/core/domain"
	"github.com/lfmorais/stockledger/internal/core/store"
)

// SaleService coordinates the one operation that must change both collections
// together: selling N units of a product decrements catalog stock and appends
// a ledger entry. The two stores share no transaction primitive, so the
// service compensates by hand: if the ledger append fails after the stock
// update succeeded, the prior stock value is written back before the error is
// surfaced.
type SaleService struct {
	catalog *store.Catalog
	ledger  *store.Ledger
	logger  *zap.Logger

	// mu makes the decrement+append pair a critical section; no other sale
	// may interleave between the two writes.
	mu sync.Mutex
}

func NewSaleService(catalog *store.Catalog, ledger *store.Ledger, logger *zap.Logger) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		catalog: catalog,
		ledger:  ledger,
		logger:  logger,
	}
}

// Sell records the sale of quantity units of the given product. On success
// the stock is decremented by exactly quantity and the returned sale carries
// a product snapshot with Total = quantity × sale price. On any failure both
// collections are left as they were; the caller decides whether to retry.
func (s *SaleService) Sell(ctx context.Context, productID int64, quantity int) (domain.Sale, error) {
	if quantity <= 0 {
		return domain.Sale{}, domain.Validationf("sale quantity must be positive, got %d", quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.catalog.Get(productID)
	if err != nil {
		return domain.Sale{}, err
	}

	if quantity > p.Quantity {
		return domain.Sale{}, &domain.InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: p.Quantity,
		}
	}

	newQuantity := p.Quantity - quantity
	total := p.SalePrice.Mul(decimal.NewFromInt(int64(quantity)))

	if err := s.catalog.SetQuantity(ctx, productID, newQuantity); err != nil {
		return domain.Sale{}, fmt.Errorf("decrement stock: %w", err)
	}

	sale, err := s.ledger.Append(ctx, store.SaleInput{
		Product:   p.Name,
		Brand:     p.Brand,
		Color:     p.Color,
		Size:      p.Size,
		UnitPrice: p.SalePrice,
		Quantity:  quantity,
		Total:     total,
		SoldAt:    time.Now(),
	})
	if err != nil {
		// Compensate: restore the stock we already took.
		if rbErr := s.catalog.SetQuantity(ctx, productID, p.Quantity); rbErr != nil {
			s.logger.Error("CRITICAL: stock rollback failed, collections inconsistent",
				zap.Int64("product_id", productID),
				zap.Int("expected_quantity", p.Quantity),
				zap.Error(rbErr),
			)
		} else {
			s.logger.Warn("rolled back stock after ledger failure",
				zap.Int64("product_id", productID),
				zap.Int("restored_quantity", p.Quantity),
			)
		}
		return domain.Sale{}, fmt.Errorf("record sale: %w", err)
	}

	s.logger.Info("sale completed",
		zap.Int64("product_id", productID),
		zap.Int64("sale_id", sale.ID),
		zap.Int("quantity", quantity),
		zap.String("total", total.String()),
	)
	return sale, nil
}
