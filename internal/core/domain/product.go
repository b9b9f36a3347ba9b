package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. IDs are assigned by the catalog store and are
// strictly monotonic for the life of the data set.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Size          string          `json:"size"`
	Color         string          `json:"color"`
	Brand         string          `json:"brand"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Quantity      int             `json:"quantity"`
}
