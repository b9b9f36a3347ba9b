package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one ledger entry. It carries a denormalized snapshot of the product
// at the moment of sale, so later catalog edits never change history.
// Sales are immutable once appended; the only destructive operation on the
// ledger is a full clear.
type Sale struct {
	ID        int64           `json:"id"`
	Product   string          `json:"product"`
	Brand     string          `json:"brand"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	SoldAt    time.Time       `json:"sold_at"`
}
