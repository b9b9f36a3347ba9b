package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lfmorais/stockledger/internal/core/domain"
)

func shirtSale() SaleInput {
	return SaleInput{
		Product:   "Shirt",
		Brand:     "Acme",
		Color:     "blue",
		Size:      "M",
		UnitPrice: decimal.NewFromInt(50),
		Quantity:  3,
		Total:     decimal.NewFromInt(150),
		SoldAt:    time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC),
	}
}

func openTestLedger(t *testing.T, blobs *fakeBlobs) *Ledger {
	t.Helper()
	l, err := OpenLedger(context.Background(), blobs, "", zap.NewNop())
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	return l
}

func TestAppend_PreservesInsertionOrder(t *testing.T) {
	l := openTestLedger(t, newFakeBlobs())

	for i := 0; i < 3; i++ {
		if _, err := l.Append(context.Background(), shirtSale()); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	sales := l.List()
	if len(sales) != 3 {
		t.Fatalf("expected 3 sales, got %d", len(sales))
	}
	for i := 1; i < len(sales); i++ {
		if sales[i].ID <= sales[i-1].ID {
			t.Errorf("ids out of order: %d after %d", sales[i].ID, sales[i-1].ID)
		}
	}
}

func TestAppend_RequiresProductName(t *testing.T) {
	l := openTestLedger(t, newFakeBlobs())

	in := shirtSale()
	in.Product = ""
	_, err := l.Append(context.Background(), in)
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestAppend_StampsZeroSoldAt(t *testing.T) {
	l := openTestLedger(t, newFakeBlobs())

	in := shirtSale()
	in.SoldAt = time.Time{}
	s, err := l.Append(context.Background(), in)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if s.SoldAt.IsZero() {
		t.Error("expected SoldAt to be stamped")
	}
}

func TestAppend_FlushFailureRevertsMemory(t *testing.T) {
	blobs := newFakeBlobs()
	l := openTestLedger(t, blobs)
	blobs.failSetOn(DefaultLedgerKey, errors.New("disk full"))

	_, err := l.Append(context.Background(), shirtSale())
	var pErr *domain.PersistenceError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if got := len(l.List()); got != 0 {
		t.Errorf("expected empty ledger after failed append, got %d", got)
	}
}

func TestClear_EmptiesLedgerAndRemovesBlob(t *testing.T) {
	blobs := newFakeBlobs()
	l := openTestLedger(t, blobs)

	for i := 0; i < 5; i++ {
		if _, err := l.Append(context.Background(), shirtSale()); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	if err := l.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := len(l.List()); got != 0 {
		t.Errorf("expected empty ledger, got %d", got)
	}
	if _, ok := blobs.data[DefaultLedgerKey]; ok {
		t.Error("expected ledger blob removed")
	}
}

func TestClear_DeleteFailureRevertsMemory(t *testing.T) {
	blobs := newFakeBlobs()
	l := openTestLedger(t, blobs)
	if _, err := l.Append(context.Background(), shirtSale()); err != nil {
		t.Fatalf("append: %v", err)
	}

	blobs.delErr = errors.New("connection reset")
	err := l.Clear(context.Background())
	var pErr *domain.PersistenceError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if got := len(l.List()); got != 1 {
		t.Errorf("expected ledger unchanged, got %d entries", got)
	}
}

func TestOpenLedger_ResumesIDCounter(t *testing.T) {
	blobs := newFakeBlobs()
	blobs.data[DefaultLedgerKey] = []byte(`[{"id":4,"product":"Shirt"}]`)

	l := openTestLedger(t, blobs)
	s, err := l.Append(context.Background(), shirtSale())
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if s.ID != 5 {
		t.Errorf("expected next id 5, got %d", s.ID)
	}
}
