// Package report derives filtered views, aggregates, and exports over ledger
// snapshots. Everything here is a pure function: callers pass in whatever the
// stores returned and nothing is mutated or cached.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfmorais/stockledger/internal/core/domain"
)

// Query describes an optional filter per dimension. Criteria compose with
// logical AND; a zero-value criterion is a no-op for that dimension.
type Query struct {
	// Text matches case-insensitively against product name or brand.
	Text string
	// Day filters on calendar-day equality with the sale timestamp.
	Day *time.Time
	// Brand filters on exact brand equality.
	Brand string
}

// Filter returns the sales matching every set criterion, preserving order.
func Filter(sales []domain.Sale, q Query) []domain.Sale {
	out := make([]domain.Sale, 0, len(sales))
	for _, s := range sales {
		if q.Text != "" && !matchesText(s, q.Text) {
			continue
		}
		if q.Day != nil && !sameDay(s.SoldAt, *q.Day) {
			continue
		}
		if q.Brand != "" && s.Brand != q.Brand {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesText(s domain.Sale, text string) bool {
	t := strings.ToLower(text)
	return strings.Contains(strings.ToLower(s.Product), t) ||
		strings.Contains(strings.ToLower(s.Brand), t)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SortByDateDesc returns a copy sorted most recent first. The sort is stable,
// so sales sharing a timestamp keep their insertion order.
func SortByDateDesc(sales []domain.Sale) []domain.Sale {
	out := make([]domain.Sale, len(sales))
	copy(out, sales)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SoldAt.After(out[j].SoldAt)
	})
	return out
}

// Total sums the total value over the given sales; zero for an empty slice.
func Total(sales []domain.Sale) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range sales {
		sum = sum.Add(s.Total)
	}
	return sum
}

// DistinctBrands returns each brand in the catalog once, in first-seen order.
func DistinctBrands(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		out = append(out, p.Brand)
	}
	return out
}

// exportHeader fixes the column order of the CSV export.
var exportHeader = []string{"date", "product", "brand", "quantity", "unit_price", "total"}

// ExportCSV renders the sales as a CSV document: header row first, one row
// per sale, dates as YYYY-MM-DD, prices with exactly two decimals. Exporting
// zero sales fails with domain.ErrEmptyExport rather than producing a
// meaningless empty file.
func ExportCSV(sales []domain.Sale) ([]byte, error) {
	if len(sales) == 0 {
		return nil, domain.ErrEmptyExport
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write export header: %w", err)
	}
	for _, s := range sales {
		row := []string{
			s.SoldAt.Format("2006-01-02"),
			s.Product,
			s.Brand,
			strconv.Itoa(s.Quantity),
			s.UnitPrice.StringFixed(2),
			s.Total.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush export: %w", err)
	}
	return buf.Bytes(), nil
}
